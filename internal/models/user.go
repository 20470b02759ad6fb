package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a banking customer in the system
type User struct {
	// Using gorm.Model gives us ID (uint), CreatedAt, UpdatedAt, DeletedAt automatically
	gorm.Model

	// UserID is the public identifier exposed over the API
	UserID  string `json:"id" gorm:"uniqueIndex"`
	Name    string `json:"name"`
	Phone   string `json:"phone" gorm:"uniqueIndex"` // Registered mobile number - unique
	PIN     string `json:"-" gorm:"column:pin"`      // Login secret, never serialized
	Balance int64  `json:"balance"`                  // Account balance in whole rupees
}

// OpeningBalance is credited to every new account (demo money)
const OpeningBalance int64 = 50000

// BeforeCreate hook to auto-generate UserID and normalize data
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == "" {
		u.UserID = uuid.NewString()
	}

	u.Phone = NormalizePhone(u.Phone)

	// New accounts open with demo money
	if u.Balance == 0 {
		u.Balance = OpeningBalance
	}

	return nil
}

// NormalizePhone ensures phone numbers carry the +91 country prefix
func NormalizePhone(phone string) string {
	phone = strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
	if phone == "" || strings.HasPrefix(phone, "+") {
		return phone
	}
	return "+91" + strings.TrimPrefix(phone, "91")
}

// UserRegistration is used for new account registration
type UserRegistration struct {
	Phone string `json:"phone" validate:"required"`
	Name  string `json:"name" validate:"required"`
	PIN   string `json:"pin" validate:"required"`
}
