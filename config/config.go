package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	Env         string `mapstructure:"ENV"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisShopCacheDB int    `mapstructure:"REDIS_SHOP_CACHE_DB"`
	RedisWorkerDB    int    `mapstructure:"REDIS_WORKER_DB"`

	// Text generation (Gemini).
	GeminiAPIKey          string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel           string `mapstructure:"GEMINI_MODEL"`
	CompletionTimeoutSecs int    `mapstructure:"COMPLETION_TIMEOUT_SECS"`

	// Conversation and session behaviour.
	SessionTimeoutMins    int `mapstructure:"SESSION_TIMEOUT_MINS"`
	ConversationCacheSize int `mapstructure:"CONVERSATION_CACHE_SIZE"`

	// Reservation policy defaults, used when a shop defines no policy of its own.
	MaxPartySize           int `mapstructure:"MAX_PARTY_SIZE"`
	MaxPerSlot             int `mapstructure:"MAX_RESERVATIONS_PER_SLOT"`
	MinBookingHoursAdvance int `mapstructure:"MIN_BOOKING_HOURS_ADVANCE"`
	MaxAdvanceBookingDays  int `mapstructure:"MAX_ADVANCE_BOOKING_DAYS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SHOP_CACHE_DB", 0)
	viper.SetDefault("REDIS_WORKER_DB", 1)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "models/gemini-1.5-pro")
	viper.SetDefault("COMPLETION_TIMEOUT_SECS", 30)
	viper.SetDefault("SESSION_TIMEOUT_MINS", 60)
	viper.SetDefault("CONVERSATION_CACHE_SIZE", 20)
	viper.SetDefault("MAX_PARTY_SIZE", 20)
	viper.SetDefault("MAX_RESERVATIONS_PER_SLOT", 4)
	viper.SetDefault("MIN_BOOKING_HOURS_ADVANCE", 1)
	viper.SetDefault("MAX_ADVANCE_BOOKING_DAYS", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
