package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/lunover/attendly/internal/api"
	"github.com/lunover/attendly/internal/db"
	"github.com/lunover/attendly/internal/harvest"
	"github.com/lunover/attendly/internal/services"
)

func main() {
	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location

	secretKey := getEnv("AUTH_SECRET", "change_me_in_production")
	dbPath := getEnv("DB_PATH", filepath.Join("data", "attendly.db"))
	port := getEnv("PORT", "8080")
	baseURL := getEnv("BASE_URL", "http://localhost:"+port)
	cookieSecure := getEnv("COOKIE_SECURE", "false") == "true"

	accessToken := os.Getenv("HARVEST_ACCESS_TOKEN")
	accountID := os.Getenv("HARVEST_ACCOUNT_ID")
	if accessToken == "" || accountID == "" {
		log.Fatal("missing Harvest API credentials: set HARVEST_ACCESS_TOKEN and HARVEST_ACCOUNT_ID")
	}

	allowedEmails := splitEmails(os.Getenv("ALLOWED_EMAILS"))
	if len(allowedEmails) == 0 {
		log.Fatal("ALLOWED_EMAILS is empty: nobody would be able to sign in")
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	var mailer services.Mailer
	if apiKey := os.Getenv("RESEND_API_KEY"); apiKey != "" {
		mailer = services.NewResendMailer(apiKey, getEnv("MAIL_FROM", "report@attendly.local"))
	} else {
		log.Print("RESEND_API_KEY not set, magic links will be logged instead of emailed")
		mailer = services.LogMailer{}
	}

	remote := harvest.NewClient(accessToken, accountID)
	handler := api.NewHandler(database, remote, mailer, secretKey, baseURL, allowedEmails, location, cookieSecure)

	app := fiber.New(fiber.Config{
		AppName:               "Attendly",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Attendly listening on http://0.0.0.0:%s (db: %s, tz: %s)", port, dbPath, location.String())
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func splitEmails(raw string) []string {
	parts := strings.Split(raw, ",")
	emails := make([]string, 0, len(parts))
	for _, part := range parts {
		email := strings.TrimSpace(part)
		if email == "" {
			continue
		}
		emails = append(emails, email)
	}
	return emails
}
