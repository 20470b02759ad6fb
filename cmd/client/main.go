package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nairsand/voicebank/internal/cli"
)

var (
	backendURL string
	quiet      bool
	voiceFirst bool
)

var rootCmd = &cobra.Command{
	Use:   "voicebank",
	Short: "Voice-driven banking assistant client",
	Long: `Interactive terminal client for the VoiceBank demo.

Authenticates with phone, OTP and PIN, shows your balance and recent
transactions, and chats with the banking assistant - speaking replies
aloud when a text-to-speech engine is available.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.NewApp(backendURL, quiet, voiceFirst)
		return app.Run()
	},
}

func init() {
	// Load .env file for local development
	_ = godotenv.Load(".env")

	defaultBackend := os.Getenv("BACKEND_URL")
	if defaultBackend == "" {
		defaultBackend = "http://localhost:8080"
	}

	rootCmd.Flags().StringVar(&backendURL, "backend", defaultBackend, "VoiceBank API base URL")
	rootCmd.Flags().BoolVar(&quiet, "quiet", false, "disable speech output")
	rootCmd.Flags().BoolVar(&voiceFirst, "voice", false, "open the dashboard in voice capture mode")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
