package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Store drivers accepted by Config.StoreDriver
const (
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
)

// Notification channels accepted by Config.NotifyChannel
const (
	NotifyChannelNone     = "none"
	NotifyChannelSMTP     = "smtp"
	NotifyChannelTelegram = "telegram"
)

// Config represents the application configuration
type Config struct {
	// Pipeline configuration
	SourcesFile   string
	DealThreshold int
	FetchTimeout  time.Duration
	WatchInterval time.Duration

	// Store configuration
	StoreDriver string
	PostgresDSN string
	SQLitePath  string

	// Notification configuration
	NotifyChannel  string
	SMTPAddr       string
	SMTPSender     string
	SMTPPassword   string
	SMTPRecipient  string
	TelegramToken  string
	TelegramChatID int64

	// Optional collaborators
	MemcacheAddr string
	SeenTTL      time.Duration
	RedisAddr    string
	RedisDB      int
	RedisStream  string
	RedisMaxLen  int

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	threshold, _ := strconv.Atoi(getEnv("DEAL_THRESHOLD", "1800"))
	fetchTimeout, _ := strconv.Atoi(getEnv("FETCH_TIMEOUT_SECONDS", "10"))
	watchInterval, _ := strconv.Atoi(getEnv("WATCH_INTERVAL_SECONDS", "0"))
	chatID, _ := strconv.ParseInt(getEnv("TELEGRAM_CHAT_ID", "0"), 10, 64)
	seenTTL, _ := strconv.Atoi(getEnv("SEEN_TTL_SECONDS", "86400"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	redisMaxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAXLEN", "1000"))

	return Config{
		SourcesFile:    getEnv("SOURCES_FILE", ""),
		DealThreshold:  threshold,
		FetchTimeout:   time.Duration(fetchTimeout) * time.Second,
		WatchInterval:  time.Duration(watchInterval) * time.Second,
		StoreDriver:    getEnv("STORE_DRIVER", StoreDriverSQLite),
		PostgresDSN:    getEnv("POSTGRES_DSN", ""),
		SQLitePath:     getEnv("SQLITE_PATH", "pricewatcher.db"),
		NotifyChannel:  getEnv("NOTIFY_CHANNEL", NotifyChannelNone),
		SMTPAddr:       getEnv("SMTP_ADDR", "smtp.gmail.com:465"),
		SMTPSender:     getEnv("SMTP_SENDER", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPRecipient:  getEnv("SMTP_RECIPIENT", ""),
		TelegramToken:  getEnv("TELEGRAM_TOKEN", ""),
		TelegramChatID: chatID,
		MemcacheAddr:   getEnv("MEMCACHE_ADDR", ""),
		SeenTTL:        time.Duration(seenTTL) * time.Second,
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisDB:        redisDB,
		RedisStream:    getEnv("REDIS_STREAM", "product_records"),
		RedisMaxLen:    redisMaxLen,
		Environment:    getEnv("WATCHER_ENVIRONMENT", "development"),
	}
}

// Validate checks that the configuration is usable
func (c Config) Validate() error {
	if c.DealThreshold <= 0 {
		return fmt.Errorf("deal threshold must be positive, got %d", c.DealThreshold)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %s", c.FetchTimeout)
	}

	switch c.StoreDriver {
	case StoreDriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite store")
		}
	case StoreDriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}

	switch c.NotifyChannel {
	case NotifyChannelNone:
	case NotifyChannelSMTP:
		if c.SMTPSender == "" || c.SMTPPassword == "" || c.SMTPRecipient == "" {
			return fmt.Errorf("SMTP_SENDER, SMTP_PASSWORD and SMTP_RECIPIENT are required for the smtp channel")
		}
	case NotifyChannelTelegram:
		if c.TelegramToken == "" || c.TelegramChatID == 0 {
			return fmt.Errorf("TELEGRAM_TOKEN and TELEGRAM_CHAT_ID are required for the telegram channel")
		}
	default:
		return fmt.Errorf("unknown notify channel %q", c.NotifyChannel)
	}

	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
