package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration. Leave REDIS_ADDR empty to run without redis:
	// sessions fall back to the bounded in-memory store and the reminder
	// worker stays off.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB       int    `mapstructure:"REDIS_SESSION_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// LLM provider keys; the first configured one wins (Groq, Gemini, OpenAI).
	GroqAPIKey   string `mapstructure:"GROQ_API_KEY"`
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	OpenAIAPIKey string `mapstructure:"OPENAI_API_KEY"`

	LLMTimeoutSeconds   int  `mapstructure:"LLM_TIMEOUT_SECONDS"`
	AgentMaxIterations  int  `mapstructure:"AGENT_MAX_ITERATIONS"`
	SessionTTLMinutes   int  `mapstructure:"SESSION_TTL_MINUTES"`
	SessionHistoryTurns int  `mapstructure:"SESSION_HISTORY_TURNS"`
	SessionMaxCount     int  `mapstructure:"SESSION_MAX_COUNT"`
	CommitPartialAnswer bool `mapstructure:"COMMIT_PARTIAL_ANSWERS"`

	// Google Calendar configuration.
	GoogleCalendarID            string `mapstructure:"GOOGLE_CALENDAR_ID"`
	GoogleServiceAccountFile    string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_FILE"`
	GoogleServiceAccountJSONB64 string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_JSON_BASE64"`

	// Business hours used when generating availability candidates.
	WorkdayStartHour int `mapstructure:"WORKDAY_START_HOUR"`
	WorkdayEndHour   int `mapstructure:"WORKDAY_END_HOUR"`
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
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 1)
	viper.SetDefault("LLM_TIMEOUT_SECONDS", 30)
	viper.SetDefault("AGENT_MAX_ITERATIONS", 5)
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("SESSION_HISTORY_TURNS", 6)
	viper.SetDefault("SESSION_MAX_COUNT", 1000)
	viper.SetDefault("COMMIT_PARTIAL_ANSWERS", false)
	viper.SetDefault("GOOGLE_CALENDAR_ID", "")
	viper.SetDefault("GOOGLE_SERVICE_ACCOUNT_FILE", "./service-account-key.json")
	viper.SetDefault("WORKDAY_START_HOUR", 9)
	viper.SetDefault("WORKDAY_END_HOUR", 17)

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
