package services

import (
	"fmt"
	"time"

	"github.com/nairsand/voicebank/internal/models"
	"github.com/nairsand/voicebank/internal/storage"
	"github.com/nairsand/voicebank/internal/utils"
)

const (
	otpTTL         = 10 * time.Minute
	otpMaxAttempts = 3
)

type OTPService struct {
	store storage.Store
}

func NewOTPService(store storage.Store) *OTPService {
	return &OTPService{store: store}
}

// CreateOTP generates and stores a fresh code for the given phone number
func (s *OTPService) CreateOTP(phone, purpose string) (*models.OTP, error) {
	code, err := utils.GenerateSecureOTP()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP: %w", err)
	}

	otp := &models.OTP{
		Phone:     models.NormalizePhone(phone),
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(otpTTL),
		IsUsed:    false,
		Attempts:  0,
	}

	return s.store.CreateOTP(otp)
}

// VerifyOTP checks the submitted code and consumes it on success. Every
// wrong guess counts against the attempt limit; once spent, the code is
// rejected even if guessed correctly afterwards.
func (s *OTPService) VerifyOTP(phone, code, purpose string) (bool, error) {
	otp, err := s.store.GetActiveOTP(phone, purpose)
	if err != nil {
		return false, fmt.Errorf("invalid OTP")
	}

	// Check if expired
	if time.Now().After(otp.ExpiresAt) {
		return false, fmt.Errorf("OTP expired")
	}

	// Check attempts
	if otp.Attempts >= otpMaxAttempts {
		return false, fmt.Errorf("too many attempts")
	}

	if otp.Code != code {
		otp.Attempts++
		_ = s.store.UpdateOTP(otp)
		return false, fmt.Errorf("invalid OTP")
	}

	// Mark as used
	now := time.Now()
	otp.VerifiedAt = &now
	otp.IsUsed = true

	if err := s.store.UpdateOTP(otp); err != nil {
		return false, err
	}

	return true, nil
}
