package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
)

// This function will Load the ENVIORNMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn("No .env file found, using process environment")
			return nil
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// Environment holds every setting the service reads from the process env
type Environment struct {
	GO_ENV string
	PORT   int

	// Database Configuration
	DB_DRIVER    string // "postgres" or "sqlite"
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	SQLITE_PATH  string

	// Redis Configuration
	REDIS_URL              string
	AVAILABILITY_CACHE_TTL time.Duration

	// Admin Authentication
	JWT_SECRET          string
	JWT_ISSUER          string
	JWT_EXPIRY          time.Duration
	ADMIN_EMAIL         string
	ADMIN_PASSWORD_HASH string

	// HTTP
	ALLOWED_ORIGINS     string
	RATE_LIMIT_REQUESTS int
}

// IsProduction reports whether GO_ENV is "production"
func (e *Environment) IsProduction() bool {
	return e.GO_ENV == "production"
}

func Get() (*Environment, error) {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	rateLimit, err := strconv.Atoi(os.Getenv("RATE_LIMIT_REQUESTS"))
	if err != nil {
		rateLimit = 100
	}

	cacheTTL, err := time.ParseDuration(os.Getenv("AVAILABILITY_CACHE_TTL"))
	if err != nil {
		cacheTTL = time.Minute
	}

	jwtExpiry, err := time.ParseDuration(os.Getenv("JWT_EXPIRY"))
	if err != nil {
		jwtExpiry = 12 * time.Hour
	}

	envVariables := &Environment{
		GO_ENV: os.Getenv("GO_ENV"),
		PORT:   port,
		// Database
		DB_DRIVER:    strings.ToLower(getEnvOrDefault("DB_DRIVER", "postgres")),
		DB_USER_NAME: os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:  os.Getenv("DB_PASSWORD"),
		DB_NAME:      os.Getenv("DB_NAME"),
		DB_HOST:      getEnvOrDefault("DB_HOST", "localhost"),
		DB_PORT:      getEnvOrDefault("DB_PORT", "5432"),
		DB_SSL_MODE:  getEnvOrDefault("DB_SSL_MODE", "disable"),
		SQLITE_PATH:  getEnvOrDefault("SQLITE_PATH", "events.db"),
		// Redis
		REDIS_URL:              os.Getenv("REDIS_URL"),
		AVAILABILITY_CACHE_TTL: cacheTTL,
		// Admin auth
		JWT_SECRET:          os.Getenv("JWT_SECRET"),
		JWT_ISSUER:          getEnvOrDefault("JWT_ISSUER", "event-registration-api"),
		JWT_EXPIRY:          jwtExpiry,
		ADMIN_EMAIL:         os.Getenv("ADMIN_EMAIL"),
		ADMIN_PASSWORD_HASH: os.Getenv("ADMIN_PASSWORD_HASH"),
		// HTTP
		ALLOWED_ORIGINS:     getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:3000"),
		RATE_LIMIT_REQUESTS: rateLimit,
	}

	return envVariables, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
