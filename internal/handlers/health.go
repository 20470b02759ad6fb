package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nairsand/voicebank/internal/services"
	"github.com/nairsand/voicebank/internal/storage"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	Version string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{
		Version: version,
	}
}

// Check returns the health status of the service, including the registered
// user count and whether OTP delivery runs through SMS or mock mode
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	otpDelivery := "mock"
	if services.GetSMSService() != nil {
		otpDelivery = "sms"
	}

	var users int64
	if store := storage.GetStore(); store != nil {
		if count, err := store.CountUsers(); err == nil {
			users = count
		}
	}

	return c.JSON(fiber.Map{
		"status":       "OK",
		"service":      "VoiceBank API",
		"version":      h.Version,
		"users":        users,
		"otp_delivery": otpDelivery,
	})
}
