package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration of the engine.
type Config struct {
	DatabaseURL        string
	ServerPort         int
	QualifiersPerGroup int
}

// Load reads configuration from environment variables, optionally
// seeded from a .env file. A missing .env is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	qualifiers := 2
	if qualStr := os.Getenv("QUALIFIERS_PER_GROUP"); qualStr != "" {
		qualifiers, err = strconv.Atoi(qualStr)
		if err != nil {
			return nil, fmt.Errorf("invalid QUALIFIERS_PER_GROUP environment variable: %w", err)
		}
		if qualifiers <= 0 {
			return nil, fmt.Errorf("QUALIFIERS_PER_GROUP must be positive, got %d", qualifiers)
		}
	}

	return &Config{
		DatabaseURL:        dbURL,
		ServerPort:         port,
		QualifiersPerGroup: qualifiers,
	}, nil
}
