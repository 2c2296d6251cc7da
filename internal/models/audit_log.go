package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionUndo   AuditAction = "undo"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	UserID   string `gorm:"size:64;index" json:"userId"`
	UserName string `gorm:"size:100" json:"userName"`

	// e.g. "quality_entry", "employee", "product"
	EntityType string `gorm:"size:50;index" json:"entityType"`
	EntityID   string `gorm:"size:64;index" json:"entityId"`

	Action      AuditAction `gorm:"size:20" json:"action"`
	Description string      `gorm:"size:255" json:"description"`

	BeforeData datatypes.JSON `json:"beforeData"`
	AfterData  datatypes.JSON `json:"afterData"`

	// Undone marks logs written by an undo; IsUndone marks logs that were reverted.
	Undone   bool       `json:"undone"`
	IsUndone bool       `gorm:"not null" json:"isUndone"`
	UndoneBy *string    `gorm:"size:64" json:"undoneBy"`
	UndoneAt *time.Time `json:"undoneAt"`
}
