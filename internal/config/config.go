package config

import (
	"os"
	"strconv"
)

// MomentoConfig holds credentials and tunables for the managed cache/auth service.
type MomentoConfig struct {
	APIKey            string
	CacheName         string
	DefaultTTLSeconds int
}

// LimitsConfig bounds what a single upload or token grant may ask for.
type LimitsConfig struct {
	MaxContentBytes     int64
	MaxRetentionMinutes int
	UserTokenMinutes    int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port string
	// DomainName is the public base URL share links are built against,
	// e.g. "https://share.example.com".
	DomainName string
	Momento    MomentoConfig
	Limits     LimitsConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:       getEnv("PORT", "8080"), // default only for non-sensitive value
		DomainName: getEnv("DOMAIN_NAME", "http://localhost:8080"),
		Momento: MomentoConfig{
			APIKey:    getEnv("MOMENTO_API_KEY", ""),
			CacheName: getEnv("CACHE_NAME", ""),
			// 55 minutes, just under the broad token's one-hour lifetime so a
			// cached token entry never outlives the token's own validity.
			DefaultTTLSeconds: getEnvInt("DEFAULT_TTL_SECONDS", 3300),
		},
		Limits: LimitsConfig{
			MaxContentBytes:     int64(getEnvInt("MAX_CONTENT_BYTES", 1_000_000)),
			MaxRetentionMinutes: getEnvInt("MAX_RETENTION_MINUTES", 1440),
			UserTokenMinutes:    getEnvInt("USER_TOKEN_MINUTES", 60),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
