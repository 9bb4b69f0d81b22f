package config

import (
	"os"
	"strconv"
	"time"

	"github.com/grizzco/salmon-rotation-bot/internal/splatnet"
)

type Config struct {
	SlackBotToken               string
	ScheduleChannel             string
	ScheduleURL                 string
	TranslationURL              string
	AssetDir                    string
	BackgroundOverride          string
	SuppressInitialNotification bool
	HTTPTimeout                 time.Duration
	RecheckInterval             time.Duration
	Port                        string
	LogLevel                    string
	LogFile                     string
}

func Load() *Config {
	return &Config{
		SlackBotToken:               getEnv("SLACK_BOT_TOKEN", ""),
		ScheduleChannel:             getEnv("SCHEDULE_CHANNEL", ""),
		ScheduleURL:                 getEnv("SCHEDULE_URL", splatnet.DefaultScheduleURL),
		TranslationURL:              getEnv("TRANSLATION_URL", splatnet.DefaultTranslationURL),
		AssetDir:                    getEnv("ASSET_DIR", "./assets"),
		BackgroundOverride:          getEnv("BACKGROUND_OVERRIDE", ""),
		SuppressInitialNotification: getEnvBool("SUPPRESS_INITIAL_NOTIFICATION", false),
		HTTPTimeout:                 getEnvDuration("HTTP_TIMEOUT", 30*time.Second),
		RecheckInterval:             getEnvDuration("RECHECK_INTERVAL", 10*time.Minute),
		Port:                        getEnv("PORT", "3000"),
		LogLevel:                    getEnv("LOG_LEVEL", "info"),
		LogFile:                     getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
