package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server Settings
	AppPort     string
	Host        string
	DatabaseURL string

	// JWT Settings
	JWTSecret     string
	JWTExpiration time.Duration
}

func LoadConfig() *Config {
	// Load configuration from a .env file when present, otherwise fall back
	// to plain environment variables.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	config := &Config{
		AppPort:     getEnv("PORT", "8080"),
		Host:        getEnv("HOST", "0.0.0.0"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTExpiration: 24 * time.Hour,
	}

	// JWT_EXPIRES_IN is a lifetime in hours.
	if v := os.Getenv("JWT_EXPIRES_IN"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			config.JWTExpiration = time.Duration(hours) * time.Hour
		} else {
			log.Printf("Ignoring invalid JWT_EXPIRES_IN value %q", v)
		}
	}

	return config
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
