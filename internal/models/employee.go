package models

import "time"

type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
)

func (s EmployeeStatus) Valid() bool {
	return s == EmployeeActive || s == EmployeeInactive
}

// Employee: a weaver. EmployeeID is assigned by the caller.
type Employee struct {
	EmployeeID   string         `gorm:"primaryKey;size:64" json:"employeeId"`
	Name         string         `gorm:"size:100;not null" json:"name"`
	Photo        string         `gorm:"size:500" json:"photo"`
	Status       EmployeeStatus `gorm:"size:16;index;not null" json:"status"`
	SupervisorID *string        `gorm:"size:64;index" json:"supervisorId"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}
