package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	// Local store
	LocalStorePath string
	// Remote store
	RemoteBaseURL string
	RemoteTimeout time.Duration
	// Remote reference server (cmd/remoted)
	DatabaseURL string
	CORSOrigins string
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    env,
		LocalStorePath: getEnv("LOCAL_STORE_PATH", "inkwell.db"),
		RemoteBaseURL:  getEnv("REMOTE_BASE_URL", "http://localhost:8080"),
		RemoteTimeout:  getTimeout("REMOTE_TIMEOUT_SECONDS", DefaultRemoteTimeout),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		CORSOrigins:    getEnv("CORS_ORIGINS", "http://localhost:3000"),
		// Debug defaults to true outside prod
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTimeout reads a timeout in seconds, clamped to MaxRemoteTimeout.
// Remote calls must always be bounded; an unreachable remote falls back
// to the local store instead of hanging the caller.
func getTimeout(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return fallback
	}
	d := time.Duration(secs) * time.Second
	if d > MaxRemoteTimeout {
		return MaxRemoteTimeout
	}
	return d
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
