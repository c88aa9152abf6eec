package config

import (
	"os"
	"strconv"
	"time"
)

// Config struct holds application configuration
// This is a simple way to make config accessible globally.
// A more advanced approach might use dependency injection.
type Config struct {
	JWTSecret          string
	DatabaseURL        string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	CacheTTL           time.Duration
	StripeSecretKey    string
	CheckoutSuccessURL string
	CheckoutCancelURL  string
	GeminiAPIKey       string
}

// AppConfig holds the application-wide configuration
var AppConfig Config

// LoadFromEnv populates AppConfig from environment variables.
// DATABASE_URL and JWT_SECRET are mandatory; main decides how to fail.
func LoadFromEnv() {
	AppConfig.JWTSecret = os.Getenv("JWT_SECRET")
	AppConfig.DatabaseURL = os.Getenv("DATABASE_URL")

	AppConfig.RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	AppConfig.RedisPassword = os.Getenv("REDIS_PASSWORD")
	AppConfig.RedisDB = getEnvInt("REDIS_DB", 0)

	AppConfig.CacheTTL = time.Duration(getEnvInt("CACHE_TTL_SECONDS", 60)) * time.Second

	AppConfig.StripeSecretKey = os.Getenv("STRIPE_SECRET_KEY")
	AppConfig.CheckoutSuccessURL = getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:3000/checkout/success")
	AppConfig.CheckoutCancelURL = getEnv("CHECKOUT_CANCEL_URL", "http://localhost:3000/checkout/cancel")

	AppConfig.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
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
