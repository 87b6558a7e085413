package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles. "Both" users may act as buyer or seller anywhere a single
// role is required.
const (
	RoleBuyer  = "Buyer"
	RoleSeller = "Seller"
	RoleBoth   = "Both"
)

type User struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	// Account
	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// Role & Status
	Role     string `gorm:"size:10;not null" json:"role"`
	Verified bool   `gorm:"default:false" json:"verified"`

	CreatedAt time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// ValidRole reports whether role is one of the fixed user roles.
func ValidRole(role string) bool {
	return role == RoleBuyer || role == RoleSeller || role == RoleBoth
}

// CanSell reports whether the user may create and own listings.
func (u *User) CanSell() bool {
	return u.Role == RoleSeller || u.Role == RoleBoth
}
