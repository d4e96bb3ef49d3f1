package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type AppConfig struct {
	TodoistAPIKey    string
	NotionToken      string
	NotionDatabaseID string
	OpenAIAPIKey     string // optional; enables LLM summarization

	// Location for weather lookups.
	Latitude  string
	Longitude string

	// UserAgent identifies us to the MET Norway API (required by their ToS).
	UserAgent string

	// RefreshInterval is the news cache staleness threshold.
	RefreshInterval time.Duration

	// RefreshHour is the wall-clock hour (UTC) of the daily news refresh.
	RefreshHour int

	// NewsDBPath is the SQLite file holding the news cache.
	NewsDBPath string

	// HTTPTimeout bounds every outbound adapter call.
	HTTPTimeout time.Duration

	// CORSOrigins is the comma-separated list of allowed frontend origins.
	CORSOrigins string

	Port string
}

// Load reads configuration from environment with sensible defaults.
// Missing credentials for the Todoist or Notion adapters are fatal: the
// process must not start serving endpoints it cannot back.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Infof("no .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.TodoistAPIKey = os.Getenv("TODOIST_API_KEY")
	if cfg.TodoistAPIKey == "" {
		return nil, fmt.Errorf("TODOIST_API_KEY is required")
	}

	cfg.NotionToken = os.Getenv("NOTION_TOKEN")
	cfg.NotionDatabaseID = os.Getenv("NOTION_DATABASE_ID")
	if cfg.NotionToken == "" || cfg.NotionDatabaseID == "" {
		return nil, fmt.Errorf("NOTION_TOKEN and NOTION_DATABASE_ID are required")
	}

	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	// Berlin by default.
	cfg.Latitude = getenvDefault("LATITUDE", "52.5200")
	cfg.Longitude = getenvDefault("LONGITUDE", "13.4050")

	cfg.UserAgent = getenvDefault("WEATHER_USER_AGENT", "personal-dashboard/1.0")

	intervalStr := getenvDefault("NEWS_REFRESH_INTERVAL", "24h")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid NEWS_REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	cfg.RefreshHour = getenvInt("NEWS_REFRESH_HOUR", 8)
	if cfg.RefreshHour < 0 || cfg.RefreshHour > 23 {
		return nil, fmt.Errorf("invalid NEWS_REFRESH_HOUR: %d", cfg.RefreshHour)
	}

	cfg.NewsDBPath = getenvDefault("NEWS_DB_PATH", "news.db")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.CORSOrigins = getenvDefault("CORS_ORIGINS", "http://localhost:5173")
	cfg.Port = getenvDefault("PORT", "8000")

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
