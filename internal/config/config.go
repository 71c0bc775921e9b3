package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string
	ServiceName string
	Version     string
	Environment string
	APIKey      string // API key for authentication between frontend and engine

	// TrustedProxies lists proxy addresses whose X-Forwarded-For header
	// is honored when resolving client IPs.
	TrustedProxies []string

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// Riot API access
	RiotAPIKey   string
	RiotPlatform string // platform routing value, e.g. "euw1", "na1"

	// Polling cadence
	PollInterval time.Duration // sweep interval for tracked accounts
	PollThrottle time.Duration // gap between consecutive upstream requests

	// Betting rules
	BettingWindow   time.Duration
	MinStake        int64
	StartingBalance int64
	MaxTrackedGames int
	ResultDeadline  time.Duration // how long to retry result lookups before flagging
	MultiplierMin   float64
	MultiplierMax   float64

	// Event publishing
	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	// Event journal retention
	EventRetentionDays int

	// Discord frontend
	DiscordToken     string
	DiscordAppID     string
	DiscordGuildID   string
	DiscordChannelID string // channel for game announcements
	EngineBaseURL    string // engine HTTP API address, used by the frontend
	BotInternalPort  string // port the bot's internal notify server listens on
	BotNotifyURL     string // bot notify server address, used by the engine; empty disables announcements
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		LogDir:      getEnv("LOG_DIR", "logs"),
		ServiceName: getEnv("SERVICE_NAME", "kassalytics-tracker"),
		Version:     getEnv("VERSION", "dev"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		APIKey:      getEnv("API_KEY", ""),

		TrustedProxies: getEnvAsSlice("TRUSTED_PROXIES"),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "kassalytics"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", 20),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),

		RiotAPIKey:   getEnv("RIOT_API_KEY", ""),
		RiotPlatform: getEnv("RIOT_PLATFORM", "euw1"),

		PollInterval: getEnvAsDuration("POLL_INTERVAL", DefaultPollInterval),
		PollThrottle: getEnvAsDuration("POLL_THROTTLE", DefaultPollThrottle),

		BettingWindow:   getEnvAsDuration("BETTING_WINDOW", DefaultBettingWindow),
		MinStake:        getEnvAsInt64("MIN_STAKE", DefaultMinStake),
		StartingBalance: getEnvAsInt64("STARTING_BALANCE", DefaultStartingBalance),
		MaxTrackedGames: getEnvAsInt("MAX_TRACKED_GAMES", DefaultMaxTrackedGames),
		ResultDeadline:  getEnvAsDuration("RESULT_DEADLINE", DefaultResultDeadline),
		MultiplierMin:   getEnvAsFloat("MULTIPLIER_MIN", DefaultMultiplierMin),
		MultiplierMax:   getEnvAsFloat("MULTIPLIER_MAX", DefaultMultiplierMax),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", 0),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", 0),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", ""),

		EventRetentionDays: getEnvAsInt("EVENT_RETENTION_DAYS", DefaultEventRetentionDays),

		DiscordToken:     getEnv("DISCORD_TOKEN", ""),
		DiscordAppID:     getEnv("DISCORD_APP_ID", ""),
		DiscordGuildID:   getEnv("DISCORD_GUILD_ID", ""),
		DiscordChannelID: getEnv("DISCORD_CHANNEL_ID", ""),
		EngineBaseURL:    getEnv("ENGINE_BASE_URL", "http://localhost:8080"),
		BotInternalPort:  getEnv("BOT_INTERNAL_PORT", "8091"),
		BotNotifyURL:     getEnv("BOT_NOTIFY_URL", ""),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if cfg.MultiplierMin > cfg.MultiplierMax {
		return nil, fmt.Errorf("MULTIPLIER_MIN (%v) exceeds MULTIPLIER_MAX (%v)", cfg.MultiplierMin, cfg.MultiplierMax)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer env var, falling back on parse failure
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvAsInt64 retrieves an int64 env var, falling back on parse failure
func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvAsFloat retrieves a float env var, falling back on parse failure
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvAsSlice retrieves a comma-separated env var as a string slice
func getEnvAsSlice(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
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

// getEnvAsDuration retrieves a duration env var, falling back on parse failure
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
