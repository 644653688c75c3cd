package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	DeepSeekKey   string
	UseAI         bool // false disables the completion backend entirely
	TestMode      bool // accelerated schedule for verification
	DataPath      string
	LLMModel      string
	LLMBaseURL    string
	Timezone      string
}

func Load() *Config {
	_ = godotenv.Load() // ignore error if no .env

	return &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		DeepSeekKey:   os.Getenv("DEEPSEEK_API_KEY"),
		UseAI:         envBool("USE_AI", true),
		TestMode:      envBool("TEST_MODE", false),
		DataPath:      envOr("DATA_PATH", "./users.yaml"),
		LLMModel:      envOr("LLM_MODEL", "deepseek-chat"),
		LLMBaseURL:    envOr("LLM_BASE_URL", "https://api.deepseek.com/v1"),
		Timezone:      envOr("TIMEZONE", "Europe/Moscow"),
	}
}

// Location resolves the reference time zone for scheduling and streak dates.
// Falls back to a fixed UTC+3 zone if the zone database is unavailable.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.FixedZone("MSK", 3*60*60)
	}
	return loc
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
