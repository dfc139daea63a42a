package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config carries the environment-derived settings for the service.
type Config struct {
	Port      int
	DBHost    string
	DBUser    string
	DBPass    string
	DBName    string
	DBPort    string
	RedisAddr string
	JWTSecret string
}

// Load reads configuration from environment variables, applying local
// development defaults where a variable is unset.
func Load() Config {
	port := 8080
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			port = p
		}
	}

	return Config{
		Port:      port,
		DBHost:    envOr("DB_HOST", "localhost"),
		DBUser:    envOr("DB_USER", "user"),
		DBPass:    envOr("DB_PASSWORD", "password"),
		DBName:    envOr("DB_NAME", "fourkaradb"),
		DBPort:    envOr("DB_PORT", "5432"),
		RedisAddr: envOr("REDIS_ADDR", "localhost:6379"),
		JWTSecret: envOr("JWT_SECRET", "dev-only-secret"),
	}
}

// DSN builds the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
