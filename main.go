package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"subtracker/internal/billing"
	"subtracker/internal/database"
	"subtracker/internal/handler"
	"subtracker/internal/middleware"
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
	slog.Info("database initialized", "database", dbPath)

	// The exchange rate is read once and passed down explicitly; a bad or
	// missing value silently falls back to the fixed default.
	rate := billing.USDToVNDRate(os.Getenv("USD_TO_VND_RATE"))
	handler.SetConfig(handler.Config{USDToVNDRate: rate})
	slog.Info("exchange rate configured", "usd_to_vnd", rate.String())

	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.BasicAuthMiddleware())

	// Routes
	e.GET("/", handler.DashboardHandler)
	e.GET("/subscriptions/new", handler.NewSubscriptionPageHandler)
	e.POST("/subscriptions", handler.CreateSubscriptionHandler)
	e.GET("/subscriptions/edit", handler.EditSubscriptionPageHandler)
	e.POST("/subscriptions/update", handler.UpdateSubscriptionHandler)
	e.POST("/subscriptions/archive", handler.ArchiveSubscriptionHandler)
	e.POST("/subscriptions/billed", handler.MarkBilledHandler)
	e.GET("/api/subscriptions", handler.GetSubscriptionsHandler)

	// Start server
	port := getEnv("PORT", "8080")
	if err := e.Start(":" + port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
