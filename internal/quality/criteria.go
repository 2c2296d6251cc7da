package quality

import (
	"strings"
	"time"

	"textile-backend/internal/apperr"
	"textile-backend/internal/models"

	"github.com/samber/lo"
)

// DateLayout is the calendar-day format used by query strings and responses.
const DateLayout = "2006-01-02"

// Criteria narrows a set of entries. Zero-valued fields impose no constraint.
// From and To are calendar days and both bounds are inclusive.
type Criteria struct {
	From         *time.Time
	To           *time.Time
	EmployeeID   string
	ProductID    string
	SupervisorID string
	Status       models.EntryStatus
}

func (c Criteria) IsEmpty() bool {
	return c.From == nil && c.To == nil &&
		c.EmployeeID == "" && c.ProductID == "" && c.SupervisorID == "" && c.Status == ""
}

// Matches reports whether e satisfies every present criterion.
func (c Criteria) Matches(e models.QualityEntry) bool {
	if c.EmployeeID != "" && e.EmployeeID != c.EmployeeID {
		return false
	}
	if c.ProductID != "" && e.ProductID != c.ProductID {
		return false
	}
	if c.SupervisorID != "" && e.SupervisorID != c.SupervisorID {
		return false
	}
	if c.Status != "" && e.Status != c.Status {
		return false
	}
	if c.From != nil && e.Date.Before(StartOfDay(*c.From)) {
		return false
	}
	if c.To != nil && !e.Date.Before(NextDay(*c.To)) {
		return false
	}
	return true
}

// FilterEntries returns the entries matching c in their original order.
// The input is never modified.
func FilterEntries(entries []models.QualityEntry, c Criteria) []models.QualityEntry {
	if c.IsEmpty() {
		return entries
	}
	return lo.Filter(entries, func(e models.QualityEntry, _ int) bool {
		return c.Matches(e)
	})
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NextDay is midnight following t's calendar day; used as an exclusive upper bound.
func NextDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}

// ParseDay parses a YYYY-MM-DD value. Empty input yields nil.
func ParseDay(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, apperr.Validation("Invalid " + field + " format (expected YYYY-MM-DD)")
	}
	return &t, nil
}

// ParseDateRange builds the date part of a Criteria and rejects inverted ranges.
func ParseDateRange(fromField, from, toField, to string) (*time.Time, *time.Time, error) {
	start, err := ParseDay(fromField, from)
	if err != nil {
		return nil, nil, err
	}
	end, err := ParseDay(toField, to)
	if err != nil {
		return nil, nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, apperr.Validation(toField + " must not be before " + fromField)
	}
	return start, end, nil
}
