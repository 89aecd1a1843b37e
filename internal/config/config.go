package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	DatabaseURL    string
	UploadDir      string
	MaxUploadBytes int64
	Port           int
	CorsOrigins    []string
}

func Load() Config {
	dataDir := envOr("DATA_DIR", "data")
	return Config{
		DatabaseURL:    envOr("DATABASE_URL", filepath.Join(dataDir, "reeflog.db")),
		UploadDir:      envOr("UPLOAD_DIR", filepath.Join(dataDir, "uploads")),
		MaxUploadBytes: int64(envOrInt("MAX_UPLOAD_BYTES", 4<<20)),
		Port:           envOrInt("PORT", 8000),
		CorsOrigins:    parseCSV(envOr("CORS_ORIGINS", "")),
	}
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
