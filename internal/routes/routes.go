package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nairsand/voicebank/internal/handlers"
	"github.com/nairsand/voicebank/internal/services"
	"github.com/nairsand/voicebank/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, store storage.Store, smsService *services.SMSService) {
	otpService := services.NewOTPService(store)
	transferService := services.NewTransferService(store)
	assistantService := services.NewAssistantService(store, transferService)

	authHandler := handlers.NewAuthHandler(store, otpService, smsService)
	userHandler := handlers.NewUserHandler(store)
	transferHandler := handlers.NewTransferHandler(transferService)
	chatHandler := handlers.NewChatHandler(store, assistantService)
	healthHandler := handlers.NewHealthHandler("1.0.0")

	// Root endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Voice Banking Assistant API",
			"version": "1.0.0",
			"endpoints": fiber.Map{
				"health": "/health",
				"api":    "/api",
			},
		})
	})

	app.Get("/health", healthHandler.Check)

	// API routes
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/send-otp", authHandler.SendOTP)
	auth.Post("/verify-otp", authHandler.VerifyOTP)
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	user := api.Group("/user")
	user.Get("/:id/balance", userHandler.GetBalance)
	user.Get("/:id/transactions", userHandler.GetTransactions)

	api.Post("/transfer", transferHandler.Transfer)
	api.Post("/chat", chatHandler.Chat)
}
