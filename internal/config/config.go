package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string
	DatabaseURL   string

	RedisAddr         string
	RedisPassword     string
	RedisTLS          bool
	UseMemorySessions bool

	// Conversation tuning
	SessionTimeout       time.Duration
	ServicesViewedWindow time.Duration

	// Telegram Bot API
	TelegramToken         string
	TelegramWebhookSecret string
	TelegramPollTimeout   time.Duration

	// WhatsApp Cloud (Graph) API
	WhatsAppAccessToken    string
	WhatsAppBusinessNumber string
	WhatsAppAPIVersion     string
	WhatsAppVerifyToken    string
	WhatsAppAppSecret      string

	// M-Pesa Daraja
	MpesaConsumerKey    string
	MpesaConsumerSecret string
	MpesaShortcode      string
	MpesaPasskey        string
	MpesaCallbackURL    string
	MpesaEnvironment    string
	DepositAmountKES    int

	AdminJWTSecret string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),

		RedisAddr:         getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisTLS:          getEnvAsBool("REDIS_TLS", false),
		UseMemorySessions: getEnvAsBool("USE_MEMORY_SESSIONS", false),

		SessionTimeout:       getEnvAsDuration("SESSION_TIMEOUT", 30*time.Minute),
		ServicesViewedWindow: getEnvAsDuration("SERVICES_VIEWED_WINDOW", 2*time.Minute),

		TelegramToken:         getEnv("TELEGRAM_TOKEN", ""),
		TelegramWebhookSecret: getEnv("TELEGRAM_WEBHOOK_SECRET", ""),
		TelegramPollTimeout:   getEnvAsDuration("TELEGRAM_POLL_TIMEOUT", 30*time.Second),

		WhatsAppAccessToken:    getEnv("WHATSAPP_ACCESS_TOKEN", ""),
		WhatsAppBusinessNumber: getEnv("WHATSAPP_BUSINESS_NUMBER", ""),
		WhatsAppAPIVersion:     getEnv("WHATSAPP_API_VERSION", "v18.0"),
		WhatsAppVerifyToken:    getEnv("WHATSAPP_VERIFY_TOKEN", ""),
		WhatsAppAppSecret:      getEnv("WHATSAPP_APP_SECRET", ""),

		MpesaConsumerKey:    getEnv("MPESA_CONSUMER_KEY", ""),
		MpesaConsumerSecret: getEnv("MPESA_CONSUMER_SECRET", ""),
		MpesaShortcode:      getEnv("MPESA_SHORTCODE", "174379"),
		MpesaPasskey:        getEnv("MPESA_PASSKEY", ""),
		MpesaCallbackURL:    getEnv("MPESA_CALLBACK_URL", ""),
		MpesaEnvironment:    strings.ToLower(strings.TrimSpace(getEnv("MPESA_ENVIRONMENT", "sandbox"))),
		DepositAmountKES:    getEnvAsInt("DEPOSIT_AMOUNT_KES", 500),

		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
	}
}

// MpesaBaseURL returns the Daraja API host for the configured environment.
func (c *Config) MpesaBaseURL() string {
	if c.MpesaEnvironment == "production" {
		return "https://api.safaricom.co.ke"
	}
	return "https://sandbox.safaricom.co.ke"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
