package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Config carries the process configuration. Values come from a .env file if
// present, then the environment, then the defaults.
type Config struct {
	Addr       string
	MongoURI   string
	MongoDB    string
	UploadsDir string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	return Config{
		Addr:       ":" + getEnv("PORT", "3000"),
		MongoURI:   getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:    getEnv("MONGO_DB", "loja"),
		UploadsDir: getEnv("UPLOADS_DIR", "uploads"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
