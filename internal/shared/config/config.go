package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	RedisURL    string
	OpenAIKey   string
	Port        string
	Env         string

	// Responder settings. "heuristic" is the default deterministic engine;
	// "openai" routes the personalized path through a hosted model.
	ResponderProvider string
	AITurnTimeout     time.Duration
	AIMaxRetries      int

	// Conversations in "negotiating" with no activity for this long are
	// swept to "abandoned".
	AbandonAfter  time.Duration
	SweepSchedule string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		Port:              os.Getenv("PORT"),
		Env:               os.Getenv("ENV"),
		ResponderProvider: os.Getenv("RESPONDER_PROVIDER"),
		AITurnTimeout:     durationEnv("AI_TURN_TIMEOUT", 30*time.Second),
		AIMaxRetries:      intEnv("AI_MAX_RETRIES", 3),
		AbandonAfter:      durationEnv("ABANDON_AFTER", 72*time.Hour),
		SweepSchedule:     os.Getenv("SWEEP_SCHEDULE"),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.ResponderProvider == "" {
		cfg.ResponderProvider = "heuristic"
	}
	if cfg.SweepSchedule == "" {
		cfg.SweepSchedule = "0 */30 * * * *" // every 30 minutes
	}

	return cfg
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return n
}
