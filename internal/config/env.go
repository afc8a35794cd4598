package config

import (
	"os"
	"path/filepath"

	"fjacquet/budget-csv/internal/fileutils"

	"github.com/joho/godotenv"
)

// EnvFileVar names an explicit .env file to load instead of the default lookup.
const EnvFileVar = "BUDGET_ENV_FILE"

// LoadEnv loads a .env file from the working directory, or its parent, into the
// process environment. Variables already set are not overridden. It returns the file
// that was loaded, or "" when none was found.
func LoadEnv() (string, error) {
	if explicit := GetEnv(EnvFileVar, ""); explicit != "" {
		if err := godotenv.Load(explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}
	for _, candidate := range []string{".env", filepath.Join("..", ".env")} {
		if !fileutils.FileExists(candidate) {
			continue
		}
		if err := godotenv.Load(candidate); err != nil {
			return "", err
		}
		return candidate, nil
	}
	return "", nil
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
