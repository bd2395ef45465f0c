package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devJWTSecret = "dev-insecure-secret"

type Config struct {
	Env      string
	LogLevel string
	HTTPAddr string

	DBType  string
	DBDSN   string
	DataDir string

	JWTSecret      string
	TokenTTL       time.Duration
	AuthMode       string
	AuthServiceURL string

	AIProvider string
	AIAPIKey   string
	AIModel    string
	AIBaseURL  string
	AITimeout  time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	CORSOrigins []string
}

// Load reads .env when present and then the process environment.
// The returned Config is treated as read-only for the rest of the process.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, err
		}
	}
	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func FromEnv() *Config {
	env := getEnv("APP_ENV", "development")
	provider := strings.ToLower(getEnv("AI_PROVIDER", "openai"))

	apiKey := os.Getenv("OPENAI_API_KEY")
	if provider == "gemini" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" && env == "development" {
		secret = devJWTSecret
	}

	return &Config{
		Env:            env,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8000"),
		DBType:         getEnv("STORAGE_BACKEND", "file"),
		DBDSN:          getEnv("POSTGRES_DSN", ""),
		DataDir:        getEnv("DATA_DIR", "data"),
		JWTSecret:      secret,
		TokenTTL:       getEnvDuration("TOKEN_TTL", 24*time.Hour),
		AuthMode:       getEnv("AUTH_MODE", "jwt"),
		AuthServiceURL: getEnv("AUTH_SERVICE_URL", ""),
		AIProvider:     provider,
		AIAPIKey:       apiKey,
		AIModel:        getEnv("AI_MODEL", ""),
		AIBaseURL:      getEnv("AI_BASE_URL", ""),
		AITimeout:      getEnvDuration("AI_TIMEOUT", 30*time.Second),
		RateLimitRPS:   getEnvFloat("AI_RATE_LIMIT_RPS", 1),
		RateLimitBurst: getEnvInt("AI_RATE_LIMIT_BURST", 5),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS",
			"http://localhost:5173,http://localhost:5111,http://127.0.0.1:5173")),
	}
}

func (c *Config) Validate() error {
	if c.DBType != "file" && c.DBType != "postgres" {
		return errors.New("STORAGE_BACKEND must be one of: file, postgres")
	}
	if c.DBType == "postgres" && c.DBDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.DBType == "file" && c.DataDir == "" {
		return errors.New("File storage requires DATA_DIR to be set")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.AuthMode != "jwt" && c.AuthMode != "remote" {
		return errors.New("AUTH_MODE must be one of: jwt, remote")
	}
	if c.AuthMode == "remote" && c.AuthServiceURL == "" {
		return errors.New("AUTH_SERVICE_URL is required when AUTH_MODE=remote")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required outside development")
	}
	if c.AIProvider != "openai" && c.AIProvider != "gemini" {
		return errors.New("AI_PROVIDER must be one of: openai, gemini")
	}
	if c.AITimeout <= 0 {
		return errors.New("AI_TIMEOUT must be positive")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("AI_RATE_LIMIT_RPS and AI_RATE_LIMIT_BURST must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
