package quality

import (
	"textile-backend/internal/models"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type Summary struct {
	TotalEntries    int     `json:"totalEntries"`
	TotalValue      float64 `json:"totalValue"`
	AvgValue        float64 `json:"avgValue"`
	UniqueEmployees int     `json:"uniqueEmployees"`
	UniqueProducts  int     `json:"uniqueProducts"`
}

// Summarize aggregates subtotals over entries. An empty input yields zeros.
func Summarize(entries []models.QualityEntry) Summary {
	s := Summary{TotalEntries: len(entries)}
	if len(entries) == 0 {
		return s
	}

	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(decimal.NewFromFloat(e.Subtotal))
	}
	s.TotalValue = total.InexactFloat64()
	s.AvgValue = average(total, len(entries))

	s.UniqueEmployees = len(lo.Uniq(lo.Map(entries, func(e models.QualityEntry, _ int) string { return e.EmployeeID })))
	s.UniqueProducts = len(lo.Uniq(lo.Map(entries, func(e models.QualityEntry, _ int) string { return e.ProductID })))
	return s
}

func average(total decimal.Decimal, n int) float64 {
	if n == 0 {
		return 0
	}
	return total.Div(decimal.NewFromInt(int64(n))).InexactFloat64()
}

// Breakdown totals each quality grade across entries.
func Breakdown(entries []models.QualityEntry) map[string]float64 {
	sums := map[string]decimal.Decimal{}
	for _, e := range entries {
		for name, v := range e.Values() {
			sums[name] = sums[name].Add(decimal.NewFromFloat(v))
		}
	}
	out := make(map[string]float64, len(sums))
	for name, d := range sums {
		out[name] = d.InexactFloat64()
	}
	return out
}

type ProductionStatsResult struct {
	TotalEntries     int                `json:"totalEntries"`
	TotalProduction  float64            `json:"totalProduction"`
	QualityBreakdown map[string]float64 `json:"qualityBreakdown"`
	AveragePerEntry  float64            `json:"averagePerEntry"`
}

// ProductionStats is the per-employee / per-product production view.
func ProductionStats(entries []models.QualityEntry) ProductionStatsResult {
	breakdown := Breakdown(entries)
	total := decimal.Zero
	for _, v := range breakdown {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return ProductionStatsResult{
		TotalEntries:     len(entries),
		TotalProduction:  total.InexactFloat64(),
		QualityBreakdown: breakdown,
		AveragePerEntry:  average(total, len(entries)),
	}
}

type GradeStats struct {
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
}

type QualityStatsResult struct {
	TotalEntries  int                   `json:"totalEntries"`
	TotalQuantity float64               `json:"totalQuantity"`
	Grades        map[string]GradeStats `json:"grades"`
}

// QualityStats reports, per grade, the total and the average per entry.
func QualityStats(entries []models.QualityEntry) QualityStatsResult {
	res := QualityStatsResult{
		TotalEntries: len(entries),
		Grades:       map[string]GradeStats{},
	}
	total := decimal.Zero
	for name, v := range Breakdown(entries) {
		d := decimal.NewFromFloat(v)
		total = total.Add(d)
		res.Grades[name] = GradeStats{Total: v, Average: average(d, len(entries))}
	}
	res.TotalQuantity = total.InexactFloat64()
	return res
}
