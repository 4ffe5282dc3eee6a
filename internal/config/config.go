package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	CORS        CORSConfig
	Categorizer CategorizerConfig
	Snapshot    SnapshotConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
	// EncryptionKey is a base64 fernet key used to encrypt secret settings
	// at rest. Empty disables encrypted settings.
	EncryptionKey string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// CategorizerConfig holds settings for the external categorization service.
type CategorizerConfig struct {
	BaseURL string
	// BatchSize caps how many transactions are sent per classify call.
	BatchSize int
}

// SnapshotConfig controls the scheduled refresh of the persisted analysis
// snapshot.
type SnapshotConfig struct {
	// CronSpec is a robfig/cron expression. Empty disables the scheduler.
	CronSpec string
	// Mode is the range token refreshed on schedule.
	Mode string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path:          getEnv("DB_PATH", "./data/pennyflow.db"),
			EncryptionKey: getEnv("DB_ENCRYPTION_KEY", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Categorizer: CategorizerConfig{
			BaseURL:   getEnv("CATEGORIZER_URL", ""),
			BatchSize: 100,
		},
		Snapshot: SnapshotConfig{
			CronSpec: getEnv("SNAPSHOT_CRON", "0 3 * * *"),
			Mode:     getEnv("SNAPSHOT_RANGE", "max"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
