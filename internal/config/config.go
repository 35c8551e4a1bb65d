// Package config reads the server configuration from the environment.
// A .env file is loaded first when present, so local development needs no
// exported variables.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisAddr     string
	RedisPassword string

	JWTSecret string

	StorageURL            string
	StorageKey            string
	StorageBucket         string
	StorageFallbackBucket string

	TelegramBotToken    string
	TelegramStaffChatID string

	AllowedOrigin string
}

// Load reads the configuration. Only JWT_SECRET is mandatory; everything
// else has a development default or disables its feature when empty.
func Load() (*Config, error) {
	// Missing .env is fine in containers, the environment is already set.
	_ = godotenv.Load()

	cfg := &Config{
		Port:                  getenv("PORT", "8080"),
		DBHost:                getenv("DB_HOST", "localhost"),
		DBUser:                getenv("DB_USER", "postgres"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                getenv("DB_NAME", "returnhub"),
		DBPort:                getenv("DB_PORT", "5432"),
		RedisAddr:             getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		StorageURL:            os.Getenv("STORAGE_URL"),
		StorageKey:            os.Getenv("STORAGE_KEY"),
		StorageBucket:         getenv("STORAGE_BUCKET", "returnhub"),
		StorageFallbackBucket: getenv("STORAGE_FALLBACK_BUCKET", "images"),
		TelegramBotToken:      os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramStaffChatID:   os.Getenv("TELEGRAM_STAFF_CHAT_ID"),
		AllowedOrigin:         getenv("ALLOWED_ORIGIN", "*"),
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	return cfg, nil
}

// DSN builds the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
