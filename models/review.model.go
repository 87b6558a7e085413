package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review moderation states. Any state may overwrite any other via update;
// delete forces Rejected.
const (
	ModerationPending  = "Pending"
	ModerationApproved = "Approved"
	ModerationRejected = "Rejected"
)

// Review is never hard-deleted: delete marks it Rejected and flagged. The
// unique index on (listing_id, reviewer_id) enforces one review per reviewer
// per listing, including soft-deleted ones.
type Review struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	ListingID  string `gorm:"size:36;not null;uniqueIndex:idx_reviews_listing_reviewer" json:"listing_id"`
	ReviewerID string `gorm:"size:36;not null;uniqueIndex:idx_reviews_listing_reviewer" json:"reviewer_id"`
	RevieweeID string `gorm:"size:36;index;not null" json:"reviewee_id"`

	Rating       int    `gorm:"not null" json:"rating"`
	Comment      string `gorm:"size:1000" json:"comment"`
	HelpfulCount int    `gorm:"not null;default:0" json:"helpful_count"`

	IsFlagged        bool   `gorm:"default:false" json:"is_flagged"`
	ModerationStatus string `gorm:"size:10;not null;default:'Pending'" json:"moderation_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func ValidModerationStatus(status string) bool {
	return status == ModerationPending || status == ModerationApproved || status == ModerationRejected
}
