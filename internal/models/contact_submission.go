package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactSubmission struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Phone     *string   `gorm:"size:32" json:"phone"`
	Message   string    `gorm:"size:4000;not null" json:"message"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (c *ContactSubmission) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
