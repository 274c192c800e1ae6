package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Environment string
	Port        string
	OutputDir   string
	PromptsFile string

	LogLevel  string
	LogFormat string

	AI AIConfig

	RedisURL    string
	DatabaseURL string
	SessionTTL  time.Duration

	CookieSecure bool
	ChromePath   string
}

// AIConfig describes the text-generation service used for sub-skill
// suggestions and professional summaries.
type AIConfig struct {
	Provider    string // "ai-service" or "openai"
	BaseURL     string
	APIKey      string
	Model       string
	Timeout     time.Duration
	MaxAttempts int
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Msg("no .env file found")
	}

	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "3000"),
		OutputDir:   getEnv("OUTPUT_DIR", "resume-data/generated"),
		PromptsFile: getEnv("PROMPTS_FILE", "config/prompts.yaml"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		AI: AIConfig{
			Provider:    getEnv("AI_PROVIDER", "ai-service"),
			BaseURL:     getEnv("AI_SERVICE_URL", "http://ai-service:8000"),
			APIKey:      getEnv("AI_API_KEY", ""),
			Model:       getEnv("AI_MODEL", "llama-3.1-8b-instant"),
			Timeout:     getEnvAsDuration("AI_TIMEOUT", 60*time.Second),
			MaxAttempts: getEnvAsInt("AI_MAX_ATTEMPTS", 1),
		},

		RedisURL:    getEnv("REDIS_URL", ""),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		SessionTTL:  getEnvAsDuration("SESSION_TTL", 24*time.Hour),

		CookieSecure: getEnvAsBool("COOKIE_SECURE", false),
		ChromePath:   getEnv("CHROME_PATH", ""),
	}
}

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
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
