package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL string

	// Blob storage (S3-compatible: AWS, MinIO, Supabase storage)
	S3Endpoint        string // Empty for AWS; custom endpoint for MinIO and friends
	S3Region          string
	S3Bucket          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PublicBaseURL   string // Public URL prefix for uploaded objects

	// OIDC
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	// Session
	SessionSecret string // Used for signing cookies (min 32 chars)

	// Moderation
	AdminEmail string // The only identity allowed to moderate

	// Submission intake
	SubmissionRateLimit  int           // Max submissions per identity per window
	SubmissionRateWindow time.Duration // Rate limit window

	// Shared cache (rate limit counters + price cache). Empty = in-process.
	RedisURL string

	// Price lookups
	PriceOracleURL string // Base URL of the CoinGecko-compatible API
	PriceCacheTTL  time.Duration

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Email notifications
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	SMTPTLS      string // "none", "tls", or "starttls"

	// Site Branding
	SiteTitle string // env: SITE_TITLE, default: "Bad Bitcoin Takes"

	// Orphan sweeper
	SweepInterval time.Duration // How often to sweep orphaned blobs; 0 disables
	SweepMinAge   time.Duration // Blobs younger than this are never swept
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/badtakes?sslmode=disable"),

		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Bucket:          getEnv("S3_BUCKET", "screenshots"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3PublicBaseURL:   getEnv("S3_PUBLIC_BASE_URL", ""),

		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:  getEnv("OIDC_REDIRECT_URL", "http://localhost:3000/auth/callback"),

		SessionSecret: getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),

		SubmissionRateLimit:  getEnvInt("SUBMISSION_RATE_LIMIT", 5),
		SubmissionRateWindow: getEnvDuration("SUBMISSION_RATE_WINDOW", time.Hour),

		RedisURL: getEnv("REDIS_URL", ""),

		PriceOracleURL: getEnv("PRICE_ORACLE_URL", "https://api.coingecko.com/api/v3"),
		PriceCacheTTL:  getEnvDuration("PRICE_CACHE_TTL", 24*time.Hour),

		CORSOrigins: getEnv("CORS_ORIGINS", ""),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", ""),
		SMTPTLS:      getEnv("SMTP_TLS", "starttls"),

		SiteTitle: getEnv("SITE_TITLE", "Bad Bitcoin Takes"),

		SweepInterval: getEnvDuration("SWEEP_INTERVAL", 0),
		SweepMinAge:   getEnvDuration("SWEEP_MIN_AGE", 24*time.Hour),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsEmailEnabled returns true if SMTP is configured.
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}
