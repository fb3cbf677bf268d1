package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Server ServerConfig

	// Database Configuration
	Database DatabaseConfig

	// Admin panel credentials
	Admin AdminConfig

	// Logging Configuration
	Logging LoggingConfig

	// APIBaseURL is the backend base URL used by the CLI client.
	// A trailing "/api" segment is stripped so the client never duplicates it.
	APIBaseURL string

	// CredentialBackend selects where the CLI keeps session tokens:
	// "file" (default) or "keyring" for the OS keychain.
	CredentialBackend string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port          string
	JWTSecret     string
	EncryptionKey string // AES key for store API tokens at rest
	SeedFile      string // optional YAML file with demo data
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// AdminConfig holds the admin panel credential pair
type AdminConfig struct {
	Username string
	Password string
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// NormalizeBaseURL strips a trailing "/api" path segment from the backend
// base URL. All endpoints live under /api and the client appends that
// segment itself, so a configured ".../api" must not be duplicated.
func NormalizeBaseURL(raw string) string {
	raw = strings.TrimRight(raw, "/")
	raw = strings.TrimSuffix(raw, "/api")
	return raw
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	apiURL := os.Getenv("MARTRACK_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = "martrack.sqlite"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	adminUser := os.Getenv("ADMIN_USERNAME")
	if adminUser == "" {
		adminUser = "admin"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "json"
	}

	credBackend := os.Getenv("MARTRACK_CREDENTIALS")
	if credBackend == "" {
		credBackend = "file"
	}

	return &Config{
		Server: ServerConfig{
			Port:          port,
			JWTSecret:     os.Getenv("JWT_SECRET"),
			EncryptionKey: os.Getenv("ENCRYPTION_KEY"),
			SeedFile:      os.Getenv("MARTRACK_SEED_FILE"),
		},
		Database: DatabaseConfig{
			URL: dbURL,
		},
		Admin: AdminConfig{
			Username: adminUser,
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
		Logging: LoggingConfig{
			Level:  logLevel,
			Format: logFormat,
		},
		APIBaseURL:        NormalizeBaseURL(apiURL),
		CredentialBackend: credBackend,
	}, nil
}
