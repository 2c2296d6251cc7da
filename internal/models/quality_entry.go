package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EntryStatus string

const (
	EntryActive   EntryStatus = "active"
	EntryInactive EntryStatus = "inactive"
	EntryDeleted  EntryStatus = "deleted"
)

func (s EntryStatus) Valid() bool {
	return s == EntryActive || s == EntryInactive || s == EntryDeleted
}

// QualityValues maps a quality-grade name to the produced quantity.
type QualityValues map[string]float64

// Sum adds the quantities in decimal so grade fractions do not drift.
func (v QualityValues) Sum() float64 {
	sum := decimal.Zero
	for _, q := range v {
		sum = sum.Add(decimal.NewFromFloat(q))
	}
	return sum.InexactFloat64()
}

// QualityEntry: one dated production record for a weaver and product.
// Subtotal always equals the sum of Qualities; it is computed on write.
type QualityEntry struct {
	ID             string                            `gorm:"primaryKey;size:36"`
	ReceiptNo      *string                           `gorm:"size:64;uniqueIndex"`
	EmployeeID     string                            `gorm:"size:64;index:idx_entry_employee_date,priority:1;not null"`
	EmployeeName   string                            `gorm:"size:100"`
	ProductID      string                            `gorm:"size:36;index:idx_entry_product_date,priority:1;not null"`
	ProductName    string                            `gorm:"size:100"`
	Qualities      datatypes.JSONType[QualityValues] `gorm:"not null"`
	Date           time.Time                         `gorm:"index:idx_entry_employee_date,priority:2;index:idx_entry_product_date,priority:2;index:idx_entry_supervisor_date,priority:2;not null"`
	Subtotal       float64                           `gorm:"not null"`
	SupervisorID   string                            `gorm:"size:64;index:idx_entry_supervisor_date,priority:1;not null"`
	SupervisorName string                            `gorm:"size:100"`
	Notes          string                            `gorm:"size:1000"`
	Status         EntryStatus                       `gorm:"size:16;index;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (e *QualityEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Status == "" {
		e.Status = EntryActive
	}
	return nil
}

func (e *QualityEntry) Values() QualityValues {
	return e.Qualities.Data()
}

// SetValues stores values and recomputes Subtotal.
func (e *QualityEntry) SetValues(values QualityValues) {
	if values == nil {
		values = QualityValues{}
	}
	e.Qualities = datatypes.NewJSONType(values)
	e.Subtotal = values.Sum()
}
