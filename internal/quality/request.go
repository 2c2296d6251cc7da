package quality

import (
	"textile-backend/internal/apperr"
	"textile-backend/internal/models"
)

// CreateRequest is the JSON body for recording an entry.
type CreateRequest struct {
	EmployeeID string         `json:"employeeId" validate:"required,max=64"`
	ProductID  string         `json:"productId" validate:"required,max=36"`
	Date       string         `json:"date" validate:"required"`
	Qualities  map[string]any `json:"qualities"`
	ReceiptNo  string         `json:"receiptNo" validate:"max=64"`
	Notes      string         `json:"notes" validate:"max=1000"`
}

// Input converts the body; the caller supplies the recording supervisor.
func (r CreateRequest) Input(supervisorID, supervisorName string) (RecordInput, error) {
	date, err := ParseDay("date", r.Date)
	if err != nil {
		return RecordInput{}, err
	}
	in := RecordInput{
		EmployeeID:     r.EmployeeID,
		ProductID:      r.ProductID,
		Qualities:      r.Qualities,
		SupervisorID:   supervisorID,
		SupervisorName: supervisorName,
		ReceiptNo:      r.ReceiptNo,
		Notes:          r.Notes,
	}
	if date != nil {
		in.Date = *date
	}
	return in, nil
}

type UpdateRequest struct {
	EmployeeID *string             `json:"employeeId" validate:"omitempty,min=1,max=64"`
	ProductID  *string             `json:"productId" validate:"omitempty,min=1,max=36"`
	Date       *string             `json:"date"`
	Qualities  map[string]any      `json:"qualities"`
	ReceiptNo  *string             `json:"receiptNo" validate:"omitempty,max=64"`
	Notes      *string             `json:"notes" validate:"omitempty,max=1000"`
	Status     *models.EntryStatus `json:"status" validate:"omitempty,oneof=active inactive deleted"`
}

func (r UpdateRequest) Input() (UpdateInput, error) {
	in := UpdateInput{
		EmployeeID: r.EmployeeID,
		ProductID:  r.ProductID,
		Qualities:  r.Qualities,
		ReceiptNo:  r.ReceiptNo,
		Notes:      r.Notes,
		Status:     r.Status,
	}
	if r.Date != nil {
		date, err := ParseDay("date", *r.Date)
		if err != nil {
			return UpdateInput{}, err
		}
		in.Date = date
	}
	return in, nil
}

type StatusRequest struct {
	Status models.EntryStatus `json:"status" validate:"required,oneof=active inactive deleted"`
}

// QueryFunc matches fiber.Ctx.Query.
type QueryFunc func(key string, defaultValue ...string) string

// ParseCriteria reads entry filters from a query string. Dates may be given
// as startDate/endDate or fromDate/toDate.
func ParseCriteria(q QueryFunc) (Criteria, error) {
	fromKey, toKey := "startDate", "endDate"
	if q(fromKey) == "" && q("fromDate") != "" {
		fromKey = "fromDate"
	}
	if q(toKey) == "" && q("toDate") != "" {
		toKey = "toDate"
	}
	from, to, err := ParseDateRange(fromKey, q(fromKey), toKey, q(toKey))
	if err != nil {
		return Criteria{}, err
	}

	c := Criteria{
		From:         from,
		To:           to,
		EmployeeID:   q("employeeId"),
		ProductID:    q("productId"),
		SupervisorID: q("supervisorId"),
	}
	if s := models.EntryStatus(q("status")); s != "" {
		if !s.Valid() || s == models.EntryDeleted {
			return Criteria{}, apperr.Validation("status must be active or inactive")
		}
		c.Status = s
	}
	return c, nil
}
