package models

import (
	"time"

	"gorm.io/gorm"
)

// OTP purposes
const (
	OTPPurposeAuth = "auth" // phone verification before register/login
)

type OTP struct {
	gorm.Model
	Phone      string    `gorm:"not null;index"`
	Code       string    `gorm:"not null"`
	Purpose    string    `gorm:"not null"`
	ExpiresAt  time.Time `gorm:"not null"`
	VerifiedAt *time.Time
	Attempts   int  `gorm:"default:0"`
	IsUsed     bool `gorm:"default:false"`
}
