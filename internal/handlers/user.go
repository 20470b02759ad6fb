package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nairsand/voicebank/internal/models"
	"github.com/nairsand/voicebank/internal/storage"
)

// UserHandler handles account read requests
type UserHandler struct {
	store storage.Store
}

// NewUserHandler creates a new user handler
func NewUserHandler(store storage.Store) *UserHandler {
	return &UserHandler{store: store}
}

// GetBalance returns the current balance for a user
func (h *UserHandler) GetBalance(c *fiber.Ctx) error {
	id := c.Params("id")

	user, err := h.store.GetUserByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	return c.JSON(models.BalanceResponse{Balance: user.Balance})
}

// GetTransactions returns the user's transaction history, newest first
func (h *UserHandler) GetTransactions(c *fiber.Ctx) error {
	id := c.Params("id")
	limit := c.QueryInt("limit", 10)

	if _, err := h.store.GetUserByID(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	txns, err := h.store.GetTransactionsByUser(id, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch transactions",
		})
	}

	if txns == nil {
		txns = []*models.Transaction{}
	}

	return c.JSON(models.TransactionsResponse{Transactions: txns})
}
