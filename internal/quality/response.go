package quality

import (
	"time"

	"textile-backend/internal/models"
)

type EntryResponse struct {
	ID             string               `json:"id"`
	ReceiptNo      *string              `json:"receiptNo,omitempty"`
	EmployeeID     string               `json:"employeeId"`
	EmployeeName   string               `json:"employeeName"`
	ProductID      string               `json:"productId"`
	ProductName    string               `json:"productName"`
	Qualities      models.QualityValues `json:"qualities"`
	Date           string               `json:"date"`
	SubTotal       float64              `json:"subTotal"`
	SupervisorID   string               `json:"supervisorId"`
	SupervisorName string               `json:"supervisorName"`
	Notes          string               `json:"notes"`
	Status         models.EntryStatus   `json:"status"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

func ToResponse(e *models.QualityEntry) EntryResponse {
	values := e.Values()
	if values == nil {
		values = models.QualityValues{}
	}
	return EntryResponse{
		ID:             e.ID,
		ReceiptNo:      e.ReceiptNo,
		EmployeeID:     e.EmployeeID,
		EmployeeName:   e.EmployeeName,
		ProductID:      e.ProductID,
		ProductName:    e.ProductName,
		Qualities:      values,
		Date:           e.Date.Format(DateLayout),
		SubTotal:       e.Subtotal,
		SupervisorID:   e.SupervisorID,
		SupervisorName: e.SupervisorName,
		Notes:          e.Notes,
		Status:         e.Status,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func ToResponses(entries []models.QualityEntry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, ToResponse(&entries[i]))
	}
	return out
}
