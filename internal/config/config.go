package config

import (
	"errors"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Stripe     StripeConfig
	Cloudinary CloudinaryConfig
	RateLimit  RateLimitConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	MigrationsDir  string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	Schema       string
	SSLMode      string
	MaxOpenConns int
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// AuthConfig describes how session tokens issued by the identity provider
// are verified. Only the subject claim is trusted.
type AuthConfig struct {
	JWTSecret     string
	SessionCookie string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	StorefrontURL string
}

type CloudinaryConfig struct {
	URL string
}

type RateLimitConfig struct {
	CheckoutRequests int
	CheckoutWindow   time.Duration
}

// IsDevelopment reports whether the server runs outside production
func (c *Config) IsDevelopment() bool {
	return c.Server.Env != "production"
}

func Load() *Config {
	// .env.local holds per-machine secrets and wins over .env
	if err := godotenv.Load(".env.local"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: Could not load .env.local: %v", err)
	}

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("MIGRATIONS_DIR", "migrations")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("AUTH_SESSION_COOKIE", "__session")
	viper.SetDefault("STOREFRONT_URL", "http://localhost:3001")
	viper.SetDefault("RATE_LIMIT_CHECKOUT_REQUESTS", 20)
	viper.SetDefault("RATE_LIMIT_CHECKOUT_WINDOW_SECONDS", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			Env:            viper.GetString("SERVER_ENV"),
			MigrationsDir:  viper.GetString("MIGRATIONS_DIR"),
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:         viper.GetString("DB_HOST"),
			Port:         viper.GetString("DB_PORT"),
			User:         viper.GetString("DB_USER"),
			Password:     viper.GetString("DB_PASSWORD"),
			Database:     viper.GetString("DB_DATABASE"),
			Schema:       viper.GetString("DB_SCHEMA"),
			SSLMode:      viper.GetString("DB_SSLMODE"),
			MaxOpenConns: viper.GetInt("DB_MAX_OPEN_CONNS"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Auth: AuthConfig{
			JWTSecret:     viper.GetString("AUTH_JWT_SECRET"),
			SessionCookie: viper.GetString("AUTH_SESSION_COOKIE"),
		},
		Stripe: StripeConfig{
			SecretKey:     viper.GetString("STRIPE_API_SECRET_KEY"),
			WebhookSecret: viper.GetString("STRIPE_WEBHOOK_SECRET"),
			StorefrontURL: viper.GetString("STOREFRONT_URL"),
		},
		Cloudinary: CloudinaryConfig{
			URL: viper.GetString("CLOUDINARY_URL"),
		},
		RateLimit: RateLimitConfig{
			CheckoutRequests: viper.GetInt("RATE_LIMIT_CHECKOUT_REQUESTS"),
			CheckoutWindow:   time.Duration(viper.GetInt("RATE_LIMIT_CHECKOUT_WINDOW_SECONDS")) * time.Second,
		},
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
