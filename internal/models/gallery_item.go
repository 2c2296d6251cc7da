package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GalleryItem records an image already hosted elsewhere; files are never
// stored by this service.
type GalleryItem struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Filename     string    `gorm:"size:255;not null;uniqueIndex" json:"filename"`
	OriginalName string    `gorm:"size:255" json:"originalName"`
	FilePath     string    `gorm:"size:500;not null" json:"filePath"`
	FileSize     *int64    `json:"fileSize"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
}

func (g *GalleryItem) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
