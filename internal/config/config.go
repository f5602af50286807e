package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"protos.app/smartlife-api/pkg/log"
)

type Config struct {
	HTTPPort       string
	DatabaseURL    string
	GoogleAPIKey   string
	AllowedOrigins []string
	AssistantName  string
	SeedDataDir    string
	LogLevel       string
	LogFormat      string
}

// Default CORS origins cover the local dev UIs and the deployed frontends.
// ALLOWED_ORIGINS overrides the whole list.
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:8501",
	"https://protos-ui.vercel.app",
}

// Load reads .env (if it exists) and the environment into a Config. It never
// fails: a missing DATABASE_URL or GOOGLE_API_KEY degrades the affected
// subsystem per-request instead of aborting startup, so callers only get
// warnings here.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		GoogleAPIKey:   getEnv("GOOGLE_API_KEY", ""),
		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "")),
		AssistantName:  getEnv("ASSISTANT_NAME", "Ken"),
		SeedDataDir:    getEnv("SEED_DATA_DIR", "data"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
	}

	if cfg.DatabaseURL == "" {
		log.Warnf("DATABASE_URL is not set; store-backed endpoints will return error payloads")
	}
	if cfg.GoogleAPIKey == "" {
		log.Warnf("GOOGLE_API_KEY is not set; generation endpoints will fail per-request")
	}

	return cfg
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return defaultOrigins
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return defaultOrigins
	}
	return origins
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
