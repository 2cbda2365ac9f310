package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AWSConfig holds credentials and endpoint settings shared by the DynamoDB
// and SES clients. Endpoint is only set for local development (DynamoDB Local).
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
}

// Tables holds the DynamoDB table names. Defaults match the production tables;
// tests and local tooling override them via env.
type Tables struct {
	Users        string
	Venues       string
	Rooms        string
	Events       string
	Invitations  string
	Participants string
}

// Config holds all configuration for the application
type Config struct {
	Environment    string
	Port           string
	AWS            AWSConfig
	Tables         Tables
	JWTSecret      string
	JWTExpiryHours int
	EmailProvider  string
	EmailFrom      string
	EmailFromName  string
	AllowedOrigins []string
}

// Load loads configuration from environment variables.
// It attempts to load from .env file if not in production.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production we rely on system environment variables only; a missing
	// .env file elsewhere is not fatal.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment: env,
		Port:        getEnv("PORT", "8080"),
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			Endpoint:        os.Getenv("DYNAMODB_ENDPOINT"),
		},
		Tables: Tables{
			Users:        getEnv("TABLE_USERS", "users"),
			Venues:       getEnv("TABLE_VENUES", "venues"),
			Rooms:        getEnv("TABLE_ROOMS", "rooms"),
			Events:       getEnv("TABLE_EVENTS", "events"),
			Invitations:  getEnv("TABLE_INVITATIONS", "invitations"),
			Participants: getEnv("TABLE_PARTICIPANTS", "participants"),
		},
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 72),
		EmailProvider:  getEnv("EMAIL_PROVIDER", "noop"),
		EmailFrom:      getEnv("EMAIL_FROM", "no-reply@roomscheduler.local"),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "Room Scheduler"),
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}

	// Local development talks to DynamoDB Local with dummy credentials, the
	// same setup the ops scripts use.
	if env == "development" {
		if cfg.AWS.Endpoint == "" {
			cfg.AWS.Endpoint = "http://localhost:8000"
		}
		if cfg.AWS.AccessKeyID == "" {
			cfg.AWS.AccessKeyID = "dummy"
			cfg.AWS.SecretAccessKey = "dummy"
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
