package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/nairsand/voicebank/internal/models"
	"github.com/nairsand/voicebank/internal/services"
	"github.com/nairsand/voicebank/internal/storage"
)

// ChatHandler handles assistant conversations
type ChatHandler struct {
	store     storage.Store
	assistant *services.AssistantService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(store storage.Store, assistant *services.AssistantService) *ChatHandler {
	return &ChatHandler{
		store:     store,
		assistant: assistant,
	}
}

// Chat answers a user message and reports the current balance alongside
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := h.store.GetUserByID(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	reply, err := h.assistant.Reply(user, req.Message)
	if err != nil {
		log.Printf("Chat error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	// Re-read the user: the assistant may have executed a transfer
	if updated, err := h.store.GetUserByID(req.UserID); err == nil {
		user = updated
	}

	return c.JSON(models.ChatResponse{
		Success:     true,
		Response:    reply,
		UserBalance: user.Balance,
	})
}
