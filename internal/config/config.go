// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Store       StoreConfig
	Auth        AuthConfig
	CORS        CORSConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

// StoreConfig selects and configures the persistence backend. Backend is
// "badger" (embedded, default) or "postgres".
type StoreConfig struct {
	Backend    string
	Path       string
	SyncWrites bool
	Database   DatabaseConfig
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type AuthConfig struct {
	CredentialSecret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Store: StoreConfig{
			Backend:    getEnv("STORE_BACKEND", "badger"),
			Path:       getEnv("STORE_PATH", "./data/catalog"),
			SyncWrites: getEnvAsBool("STORE_SYNC_WRITES", true),
			Database: DatabaseConfig{
				Host:         getEnv("DB_HOST", "localhost"),
				Port:         getEnv("DB_PORT", "5432"),
				User:         getEnv("DB_USER", "postgres"),
				Password:     getEnv("DB_PASSWORD", ""),
				Database:     getEnv("DB_NAME", "music_licensing"),
				SSLMode:      getEnv("DB_SSL_MODE", "disable"),
				MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
				MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
				MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
				LogLevel:     getEnv("DB_LOG_LEVEL", "warn"),
			},
		},
		Auth: AuthConfig{
			CredentialSecret: getEnv("CREDENTIAL_SECRET", "change-me-in-production"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", nil),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "badger", "postgres":
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	if c.Environment == "production" {
		if c.Auth.CredentialSecret == "change-me-in-production" {
			return fmt.Errorf("credential secret must be changed in production")
		}
		if c.Store.Backend == "postgres" && c.Store.Database.Password == "" {
			return fmt.Errorf("database password is required in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
