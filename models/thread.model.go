package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatThread ties one buyer/seller pair to one listing. The unique index on
// (listing_id, buyer_id) enforces at most one thread per pair even under
// concurrent creation.
type ChatThread struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	ListingID string `gorm:"size:36;not null;uniqueIndex:idx_threads_listing_buyer" json:"listing_id"`
	BuyerID   string `gorm:"size:36;not null;uniqueIndex:idx_threads_listing_buyer" json:"buyer_id"`
	SellerID  string `gorm:"size:36;index;not null" json:"seller_id"`

	CreatedAt        time.Time `json:"created_at"`
	LastActivityTime time.Time `gorm:"autoCreateTime" json:"last_activity_time"`
}

func (t *ChatThread) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// HasParticipant reports whether user is the buyer or the seller of this
// thread.
func (t *ChatThread) HasParticipant(user *User) bool {
	return t.BuyerID == user.ID || t.SellerID == user.ID
}
