package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// LLM endpoint (OpenAI-compatible).
	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string

	// Weather provider.
	WeatherAPIKey string

	// Optional ipinfo.io token for the geolocation fallback.
	IPInfoToken string

	// City used when neither the question nor geolocation yields one.
	DefaultCity string

	// Hour window rendered around the requested hour.
	HoursBefore int
	HoursAfter  int

	// Shared outbound HTTP client timeout.
	HTTPTimeout time.Duration

	// CORS origins for the browser frontend.
	AllowedOrigins []string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.LLMAPIKey = os.Getenv("LLM_API_KEY")
	cfg.LLMBaseURL = os.Getenv("LLM_BASE_URL")
	cfg.LLMModel = os.Getenv("LLM_MODEL")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.IPInfoToken = os.Getenv("IPINFO_TOKEN")

	cfg.DefaultCity = getenvDefault("DEFAULT_CITY", "Berlin")

	cfg.HoursBefore = getenvInt("ANSWER_HOURS_BEFORE", 2)
	cfg.HoursAfter = getenvInt("ANSWER_HOURS_AFTER", 3)
	if cfg.HoursBefore < 0 || cfg.HoursAfter < 0 {
		return nil, fmt.Errorf("hour window widths must not be negative")
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "15s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	origins := getenvDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
