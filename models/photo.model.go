package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListingPhoto struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	ListingID string `gorm:"size:36;index;not null" json:"listing_id"`

	PhotoURL     string `gorm:"size:500;not null" json:"photo_url"`
	DisplayOrder int    `gorm:"not null;default:0" json:"display_order"`

	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (p *ListingPhoto) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
