package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nairsand/voicebank/internal/models"
	"github.com/nairsand/voicebank/internal/services"
)

// TransferHandler handles money movement between accounts
type TransferHandler struct {
	transferService *services.TransferService
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(transferService *services.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// Transfer moves money from the requesting user to another account
func (h *TransferHandler) Transfer(c *fiber.Ctx) error {
	var req models.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.UserID == "" || req.ToPhone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id and to_phone are required",
		})
	}

	txn, newBalance, err := h.transferService.Transfer(req.UserID, req.ToPhone, req.Amount)
	if err != nil {
		status := fiber.StatusBadRequest
		if strings.Contains(err.Error(), "not found") {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.TransferResponse{
		Success:     true,
		NewBalance:  newBalance,
		Transaction: txn,
	})
}
