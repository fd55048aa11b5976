package cli

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// loadEnv applies a .env file from the working directory. Variables that are
// already set win.
func loadEnv(logger *log.Logger) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using system environment variables")
	}
}

// getEnv returns GRAPHLOAD_<key>, or "" when unset.
func getEnv(key string) string {
	return os.Getenv(envPrefix + key)
}

func getEnvString(key, defaultValue string) string {
	value, ok := os.LookupEnv(envPrefix + key)
	if !ok {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, ok := os.LookupEnv(envPrefix + key)
	if !ok {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
