package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	RowStoreURL          string
	RowStoreToken        string
	GroupsTableID        string
	ReportsTableID       string
	UsersTableID         string
	DatabaseURL          string
	JWTSecret            string
	JWTIssuer            string
	SessionTTLSeconds    int64
	BoostTTLSeconds      int64
	MetricsDiskPath      string
	MetricsSampleSeconds int
	CorsOrigins          []string
}

func Load() Config {
	return Config{
		RowStoreURL:          envOr("ROWSTORE_URL", "https://api.baserow.io"),
		RowStoreToken:        mustEnv("ROWSTORE_TOKEN"),
		GroupsTableID:        mustEnv("ROWSTORE_TABLE_GROUPS"),
		ReportsTableID:       mustEnv("ROWSTORE_TABLE_REPORTS"),
		UsersTableID:         mustEnv("ROWSTORE_TABLE_USERS"),
		DatabaseURL:          mustEnv("DATABASE_URL"),
		JWTSecret:            mustEnv("JWT_SECRET"),
		JWTIssuer:            envOr("JWT_ISSUER", "zapgroups"),
		SessionTTLSeconds:    int64(envOrInt("SESSION_TTL_SECONDS", 86400)),
		BoostTTLSeconds:      int64(envOrInt("BOOST_TTL_SECONDS", 3600)),
		MetricsDiskPath:      envOr("METRICS_DISK_PATH", "storage"),
		MetricsSampleSeconds: envOrInt("METRICS_SAMPLE_INTERVAL", 5),
		CorsOrigins:          parseCSV(envOr("CORS_ORIGINS", "")),
	}
}

func mustEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		panic("missing env var: " + key)
	}
	return value
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
