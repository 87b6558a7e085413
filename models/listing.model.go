package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Listing status values. Transitions are unrestricted.
const (
	ListingStatusDraft     = "Draft"
	ListingStatusPublished = "Published"
	ListingStatusSold      = "Sold"
)

// ListingCategories is the fixed category set for listings.
var ListingCategories = []string{
	"Textbooks", "Electronics", "Dorm Supplies", "Furniture", "Clothing", "Other",
}

// ListingConditions is the fixed condition set for listings.
var ListingConditions = []string{
	"New", "Like New", "Good", "Fair", "Poor",
}

type Listing struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	SellerID string `gorm:"size:36;index;not null" json:"seller_id"`

	Title       string  `gorm:"size:200;not null" json:"title"`
	Description string  `gorm:"size:1000" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Category    string  `gorm:"size:50;index;not null" json:"category"`
	Condition   string  `gorm:"size:20;not null" json:"condition"`
	Status      string  `gorm:"size:20;not null;default:'Draft'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// IsOwnedBy reports whether user is the seller of this listing.
func (l *Listing) IsOwnedBy(user *User) bool {
	return l.SellerID == user.ID
}

func ValidListingCategory(category string) bool {
	return contains(ListingCategories, category)
}

func ValidListingCondition(condition string) bool {
	return contains(ListingConditions, condition)
}

func ValidListingStatus(status string) bool {
	return status == ListingStatusDraft || status == ListingStatusPublished || status == ListingStatusSold
}
