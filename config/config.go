package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults for the import pipeline tunables.
const (
	DefaultImportBatchSize    = 50
	DefaultImportFailureLimit = 10
)

func LoadEnv() error {
	// Try to load .env file if it exists (for local development).
	// On production the environment variables are set directly.
	if err := godotenv.Load(); err != nil {
		// A missing .env file is not an error.
		return nil
	}
	return nil
}

// ValidateEnv checks the environment this process was started with.
// Missing variables fall back to defaults with a warning; malformed
// numeric tunables are an error.
func ValidateEnv() error {
	if os.Getenv("DATABASE_URL") == "" {
		log.Println("WARNING: DATABASE_URL not set - using local postgres defaults")
	}
	if os.Getenv("FRONTEND_URL") == "" {
		log.Println("WARNING: FRONTEND_URL not set - CORS may not work correctly")
	}

	for _, key := range []string{"IMPORT_BATCH_SIZE", "IMPORT_FAILURE_LIMIT"} {
		raw := os.Getenv(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return fmt.Errorf("%s must be a positive integer, got %q", key, raw)
		}
	}

	return nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt reads an integer environment variable, returning the default
// when the variable is unset or not a positive integer.
func GetEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return defaultValue
	}
	return n
}

// ImportBatchSize is the number of rows committed per transaction during
// a live import.
func ImportBatchSize() int {
	return GetEnvInt("IMPORT_BATCH_SIZE", DefaultImportBatchSize)
}

// ImportFailureLimit is how many failed rows an import tolerates before
// aborting the remaining rows.
func ImportFailureLimit() int {
	return GetEnvInt("IMPORT_FAILURE_LIMIT", DefaultImportFailureLimit)
}
