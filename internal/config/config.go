package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	Port          string
	MongoURI      string
	MongoDB       string
	JWTSecret     string
	TokenExpiry   time.Duration
	AIDetectURL   string
	AIDetectKey   string
	AllowedOrigin string
}

// LoadConfig reads configuration from a .env file (if present) and the
// environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on environment variables")
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "starwish"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		TokenExpiry:   time.Duration(getEnvInt("TOKEN_EXPIRY_HOURS", 72)) * time.Hour,
		AIDetectURL:   getEnv("AIDETECT_URL", "https://api.sapling.ai/api/v1/aidetect"),
		AIDetectKey:   getEnv("AIDETECT_KEY", ""),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		logrus.Warnf("Invalid integer for %s, using default %d", key, fallback)
	}
	return fallback
}
