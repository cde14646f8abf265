package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the dev server
type Config struct {
	// Database Configuration
	Database DatabaseConfig

	// HTTP Configuration
	HTTP HTTPConfig

	// Uploads Configuration
	Uploads UploadsConfig

	// Seed Configuration
	Seed SeedConfig

	// Logging Configuration
	Logging LoggingConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Port        string
	CORSOrigins []string
}

// UploadsConfig holds uploaded-file storage configuration
type UploadsConfig struct {
	Dir string
}

// SeedConfig holds catalog seed configuration
type SeedConfig struct {
	File string // YAML seed file, empty = no seeding
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// Database URL - default to a local SQLite file, allow override for dev
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = "shopd.sqlite"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:5173"
	}

	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}

	seedFile := os.Getenv("SEED_FILE")

	// Logging configuration - defaults suitable for production
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "json"
	}

	return &Config{
		Database: DatabaseConfig{
			URL: dbURL,
		},
		HTTP: HTTPConfig{
			Port:        port,
			CORSOrigins: []string{corsOrigin},
		},
		Uploads: UploadsConfig{
			Dir: uploadsDir,
		},
		Seed: SeedConfig{
			File: seedFile,
		},
		Logging: LoggingConfig{
			Level:  logLevel,
			Format: logFormat,
		},
	}, nil
}
