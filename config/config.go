package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	ServiceName string
	LoggerLevel string

	AppPort int

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	JWTSecret string
	JWTTTL    time.Duration

	// Bootstrap admin credentials. A matching login issues an admin token
	// and creates the admin profile on first use.
	AdminEmail    string
	AdminPassword string

	// Telegram channel for moderation notifications. Empty token disables
	// the notifier.
	TelegramBotToken string
	AdminChatID      int64

	PaymentBaseURL string
	PaymentAPIKey  string
}

func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.ServiceName = cast.ToString(getOrReturnDefault("SERVICE_NAME", "safedrop"))
	cfg.LoggerLevel = cast.ToString(getOrReturnDefault("LOGGER_LEVEL", "debug"))
	cfg.AppPort = cast.ToInt(getOrReturnDefault("APP_PORT", 8080))

	cfg.PostgresHost = cast.ToString(getOrReturnDefault("POSTGRES_HOST", "localhost"))
	cfg.PostgresPort = cast.ToString(getOrReturnDefault("POSTGRES_PORT", "5432"))
	cfg.PostgresUser = cast.ToString(getOrReturnDefault("POSTGRES_USER", "postgres"))
	cfg.PostgresPassword = cast.ToString(getOrReturnDefault("POSTGRES_PASSWORD", "1234"))
	cfg.PostgresDB = cast.ToString(getOrReturnDefault("POSTGRES_DB", "safedrop"))

	cfg.JWTSecret = cast.ToString(getOrReturnDefault("JWT_SECRET", "change-me"))
	cfg.JWTTTL = cast.ToDuration(getOrReturnDefault("JWT_TTL", "24h"))

	cfg.AdminEmail = cast.ToString(getOrReturnDefault("ADMIN_EMAIL", ""))
	cfg.AdminPassword = cast.ToString(getOrReturnDefault("ADMIN_PASSWORD", ""))

	cfg.TelegramBotToken = cast.ToString(getOrReturnDefault("TG_BOT_TOKEN", ""))
	cfg.AdminChatID = cast.ToInt64(getOrReturnDefault("ADMIN_CHAT_ID", 0))

	cfg.PaymentBaseURL = cast.ToString(getOrReturnDefault("PAYMENT_BASE_URL", ""))
	cfg.PaymentAPIKey = cast.ToString(getOrReturnDefault("PAYMENT_API_KEY", ""))

	return cfg
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
