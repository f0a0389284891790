// Package config loads assistant settings from the environment.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries everything needed to boot an assistant.
type Config struct {
	Provider    string
	Model       string
	Temperature float32
	MaxTokens   int
	MaxTurns    int
	PostgresDSN string
	LogLevel    string
}

// Defaults mirror a small local setup: an Ollama host and a modest turn
// budget.
const (
	DefaultProvider  = "ollama"
	DefaultModel     = "llama3.2"
	DefaultMaxTokens = 1024
	DefaultMaxTurns  = 5
	DefaultLogLevel  = "info"
)

// Load reads configuration from the environment. A .env file in the working
// directory is applied first, best-effort; real environment variables win.
// Invalid numeric values fall back to defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Provider:    envOr("PAGEPILOT_PROVIDER", DefaultProvider),
		Model:       envOr("PAGEPILOT_MODEL", DefaultModel),
		Temperature: envFloat("PAGEPILOT_TEMPERATURE", 0),
		MaxTokens:   envInt("PAGEPILOT_MAX_TOKENS", DefaultMaxTokens),
		MaxTurns:    envInt("PAGEPILOT_MAX_TURNS", DefaultMaxTurns),
		PostgresDSN: os.Getenv("PAGEPILOT_POSTGRES_DSN"),
		LogLevel:    envOr("PAGEPILOT_LOG_LEVEL", DefaultLogLevel),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float32) float32 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil || f < 0 {
		return fallback
	}
	return float32(f)
}
