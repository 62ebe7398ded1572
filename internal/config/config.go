package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPPort       string
	Env            string
	ClientURL      string
	AllowedOrigins []string

	MongoURI    string
	MongoDBName string

	RedisAddr     string
	RedisPassword string

	KafkaBrokers     []string
	OrderEventsTopic string

	StripeSecretKey     string
	StripeWebhookSecret string

	CorpnetBaseURL    string
	CorpnetAPIKey     string
	CorpnetAPIUserPid string
	CorpnetPCID       string
	CorpnetProductID  string

	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	AdminEmail string
	LogoURL    string

	JWTSecret string

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func Load() *Config {
	return &Config{
		HTTPPort:  getEnv("HTTP_PORT", "5001"),
		Env:       getEnv("APP_ENV", "development"),
		ClientURL: getEnv("CLIENT_URL", "http://localhost:5173"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS",
			"https://launchmybiz.net,https://www.launchmybiz.net,http://localhost:5173")),

		MongoURI:    getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDBName: getEnv("MONGO_DB_NAME", "launch"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		KafkaBrokers:     splitList(getEnv("KAFKA_BROKERS", "")),
		OrderEventsTopic: getEnv("ORDER_EVENTS_TOPIC", "order-events"),

		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),

		CorpnetBaseURL:    getEnv("CORPNET_BASE_URL", "https://staging22api.corpnet.com"),
		CorpnetAPIKey:     getEnv("CORPNET_API_KEY", ""),
		CorpnetAPIUserPid: getEnv("CORPNET_API_USER_PID", ""),
		CorpnetPCID:       getEnv("CORPNET_PCID", ""),
		CorpnetProductID:  getEnv("CORPNET_PRODUCT_ID", "01tUS000009xuh7YAA"),

		SMTPHost:   getEnv("EMAIL_HOST", "smtp.hostinger.com"),
		SMTPPort:   getEnvInt("EMAIL_PORT", 465),
		SMTPUser:   getEnv("EMAIL_USER", ""),
		SMTPPass:   getEnv("EMAIL_PASS", ""),
		AdminEmail: getEnv("ADMIN_EMAIL", "support@launchmybiz.net"),
		LogoURL:    getEnv("LOGO_URL", "https://launchmybiz.net/mainlogo-3-2.png"),

		JWTSecret: getEnv("JWT_SECRET", "your_jwt_secret"),

		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
