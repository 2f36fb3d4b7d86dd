package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"subtracker/internal/database"
	"subtracker/internal/seeder"
	"subtracker/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	// Load .env.local first, then .env.
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(".env"); err != nil {
			slog.Warn("no .env file found, using environment variables")
		}
	}
	logging.Setup()

	dbPath := getEnv("DB_PATH", "subtracker.db")
	if err := database.InitDB(dbPath); err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := seeder.InsertSampleData(); err != nil {
		slog.Error("failed to seed database", "error", err)
		os.Exit(1)
	}

	slog.Info("database seeding completed", "database", dbPath)
}
