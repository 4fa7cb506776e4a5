package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	OAuth      OAuthConfig
	Cloudinary CloudinaryConfig
	Mail       MailConfig
	Payout     PayoutConfig
	App        AppConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr string
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type MailConfig struct {
	FromAddress string
	FromName    string
}

// PayoutConfig selects the disbursement rails. With no PayPal credentials the
// stub provider runs instead.
type PayoutConfig struct {
	PayPalBaseURL      string
	PayPalClientID     string
	PayPalClientSecret string
}

// AppConfig holds platform-wide knobs that are not admin-editable settings.
type AppConfig struct {
	BaseURL         string // public site URL, used for referral links and email links
	TokenExpiry     time.Duration
	AlertScanSpec   string // cron spec for the price-alert scan
	DefaultCurrency string
}

func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		Server: ServerConfig{
			Port:         env("PORT", "8080"),
			Env:          env("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             env("DATABASE_DSN", "roamio:roamio@tcp(localhost:3306)/roamio?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: time.Hour,
		},
		Redis: RedisConfig{
			Addr: env("REDIS_ADDR", "localhost:6379"),
		},
		JWT: JWTConfig{
			AccessSecret:  env("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: env("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 168 * time.Hour,
			Issuer:        "roamio",
		},
		OAuth: OAuthConfig{
			GoogleClientID:     env("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: env("GOOGLE_CLIENT_SECRET", ""),
			GoogleRedirectURL:  env("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/v1/auth/google/callback"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: env("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    env("CLOUDINARY_API_KEY", ""),
			APISecret: env("CLOUDINARY_API_SECRET", ""),
		},
		Mail: MailConfig{
			FromAddress: env("MAIL_FROM_ADDRESS", "no-reply@roamio.travel"),
			FromName:    env("MAIL_FROM_NAME", "Roamio"),
		},
		Payout: PayoutConfig{
			PayPalBaseURL:      env("PAYPAL_BASE_URL", ""),
			PayPalClientID:     env("PAYPAL_CLIENT_ID", ""),
			PayPalClientSecret: env("PAYPAL_CLIENT_SECRET", ""),
		},
		App: AppConfig{
			BaseURL:         env("APP_BASE_URL", "https://roamio.travel"),
			TokenExpiry:     24 * time.Hour,
			AlertScanSpec:   env("ALERT_SCAN_CRON", "0 * * * *"),
			DefaultCurrency: env("DEFAULT_CURRENCY", "USD"),
		},
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
