package dashboard

import (
	"context"
	"strconv"
	"time"

	"textile-backend/internal/apperr"
	"textile-backend/internal/models"
	"textile-backend/internal/quality"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

type ChartPoint struct {
	Label   string  `json:"label"` // bucket start, YYYY-MM-DD
	Entries int     `json:"entries"`
	Total   float64 `json:"total"`
}

type ChartResponse struct {
	Period     string       `json:"period"`
	From       string       `json:"from"`
	To         string       `json:"to"`
	Points     []ChartPoint `json:"points"`
	GrandTotal float64      `json:"grandTotal"`
}

type EntryLister interface {
	List(ctx context.Context, c quality.Criteria) ([]models.QualityEntry, error)
}

// DefaultCount is the number of buckets shown when the caller gives none.
func DefaultCount(period string) int {
	switch period {
	case PeriodWeekly:
		return 8
	case PeriodMonthly:
		return 12
	}
	return 7
}

// Window returns the first bucket start and the last calendar day covered.
func Window(period string, count int, now time.Time) (time.Time, time.Time) {
	today := quality.StartOfDay(now)
	switch period {
	case PeriodWeekly:
		last := weekStart(today)
		return last.AddDate(0, 0, -7*(count-1)), last.AddDate(0, 0, 6)
	case PeriodMonthly:
		last := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return last.AddDate(0, -(count - 1), 0), last.AddDate(0, 1, -1)
	}
	return today.AddDate(0, 0, -(count - 1)), today
}

func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	return t.AddDate(0, 0, -offset)
}

func bucketOf(period string, t time.Time) time.Time {
	day := quality.StartOfDay(t)
	switch period {
	case PeriodWeekly:
		return weekStart(day)
	case PeriodMonthly:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	}
	return day
}

func next(period string, t time.Time) time.Time {
	switch period {
	case PeriodWeekly:
		return t.AddDate(0, 0, 7)
	case PeriodMonthly:
		return t.AddDate(0, 1, 0)
	}
	return t.AddDate(0, 0, 1)
}

// BuildChart buckets entry subtotals. Every bucket in the window is present,
// empty ones with zero totals.
func BuildChart(entries []models.QualityEntry, period string, count int, now time.Time) ChartResponse {
	start, end := Window(period, count, now)

	type agg struct {
		entries int
		total   decimal.Decimal
	}
	buckets := map[time.Time]*agg{}
	for _, e := range entries {
		b := bucketOf(period, e.Date.In(start.Location()))
		if b.Before(start) || b.After(end) {
			continue
		}
		a, ok := buckets[b]
		if !ok {
			a = &agg{}
			buckets[b] = a
		}
		a.entries++
		a.total = a.total.Add(decimal.NewFromFloat(e.Subtotal))
	}

	resp := ChartResponse{
		Period: period,
		From:   start.Format(quality.DateLayout),
		To:     end.Format(quality.DateLayout),
		Points: make([]ChartPoint, 0, count),
	}
	grand := decimal.Zero
	for b := start; !b.After(end); b = next(period, b) {
		p := ChartPoint{Label: b.Format(quality.DateLayout)}
		if a, ok := buckets[b]; ok {
			p.Entries = a.entries
			p.Total = a.total.InexactFloat64()
			grand = grand.Add(a.total)
		}
		resp.Points = append(resp.Points, p)
	}
	resp.GrandTotal = grand.InexactFloat64()
	return resp
}

// GET /api/admin/dashboard/production-chart?period=daily&count=7&supervisorId=&productId=
func ProductionChartHandler(entries EntryLister) fiber.Handler {
	return func(c *fiber.Ctx) error {
		period := c.Query("period", PeriodDaily)
		switch period {
		case PeriodDaily, PeriodWeekly, PeriodMonthly:
		default:
			return apperr.Validation("period must be daily, weekly or monthly")
		}

		count := DefaultCount(period)
		if v := c.Query("count"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 || n > 366 {
				return apperr.Validation("count must be between 1 and 366")
			}
			count = n
		}

		now := time.Now().UTC()
		start, end := Window(period, count, now)
		list, err := entries.List(c.UserContext(), quality.Criteria{
			From:         &start,
			To:           &end,
			SupervisorID: c.Query("supervisorId"),
			ProductID:    c.Query("productId"),
		})
		if err != nil {
			return err
		}

		return c.JSON(BuildChart(list, period, count, now))
	}
}
