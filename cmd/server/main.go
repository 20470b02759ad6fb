package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/nairsand/voicebank/database"
	"github.com/nairsand/voicebank/internal/jobs"
	"github.com/nairsand/voicebank/internal/models"
	"github.com/nairsand/voicebank/internal/routes"
	"github.com/nairsand/voicebank/internal/services"
	"github.com/nairsand/voicebank/internal/storage"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found - checking environment variables")
	}

	// Initialize storage
	var store storage.Store

	if os.Getenv("USE_MEMORY_STORE") == "true" || os.Getenv("DATABASE_DISABLED") == "true" {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		log.Println("📦 Connecting to PostgreSQL database...")
		database.Connect()

		log.Println("🔄 Running database migrations...")
		err := database.DB.AutoMigrate(
			&models.User{},
			&models.Transaction{},
			&models.OTP{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")

		store = storage.NewDatabaseStore(database.DB)
		log.Println("✅ Using PostgreSQL database storage")
	}

	// Initialize SMS delivery - optional, the demo falls back to mock OTPs
	smsService, err := services.NewSMSService()
	if err != nil {
		log.Printf("⚠️  Twilio not configured - OTPs will be returned in API responses: %v", err)
		smsService = nil
	} else {
		log.Println("✅ Twilio SMS service initialized")
	}

	// Set global instances
	storage.SetStore(store)
	services.SetSMSService(smsService)

	// Start scheduled OTP cleanup
	cleanupJob := jobs.NewCleanupJob(store)
	cleanupJob.Start()

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "VoiceBank API v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Setup routes
	routes.SetupRoutes(app, store, smsService)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		cleanupJob.Stop()
		_ = app.Shutdown()
	}()

	// Start server
	log.Println("========================================")
	log.Printf("🚀 VoiceBank API starting on port %s", port)
	log.Printf("📊 Storage: %s", getStorageType())
	log.Printf("📱 OTP delivery: %s", getOTPDeliveryMode(smsService))
	log.Println("========================================")

	log.Fatal(app.Listen(":" + port))
}

func getStorageType() string {
	if os.Getenv("USE_MEMORY_STORE") == "true" || os.Getenv("DATABASE_DISABLED") == "true" {
		return "In-Memory (Testing)"
	}
	return "PostgreSQL Database"
}

func getOTPDeliveryMode(smsService *services.SMSService) string {
	if smsService == nil {
		return "Mock (code returned in response)"
	}
	return "Twilio SMS"
}
