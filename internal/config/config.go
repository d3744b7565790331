package config

import (
	"os"
	"strconv"
	"time"
)

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	CORSOrigins  []string
}

type DatabaseConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Broker       string
	RequestTopic string
}

type JWTConfig struct {
	Secret    string
	AccessTTL time.Duration
}

// AutomationConfig drives the background reminder and periodic report loops.
type AutomationConfig struct {
	Enabled                     bool
	ReminderIntervalMinutes     int
	ReportIntervalMinutes       int
	PendingReminderAfterHours   int
	ReminderRecipientEmployeeID string
	ReportRecipientEmployeeID   string
}

// ReportConfig holds reporting defaults that callers may override per query.
type ReportConfig struct {
	MonthlyOvertimeHourLimit float64
}

// TeamsConfig configures the outbound webhook channel. Delivery is
// best-effort; a missing URL disables the channel entirely.
type TeamsConfig struct {
	Enabled    bool
	WebhookURL string
}

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	JWT        JWTConfig
	Automation AutomationConfig
	Report     ReportConfig
	Teams      TeamsConfig
}

// Load reads configuration from the environment, applying defaults for
// every scalar so a bare environment still produces a runnable config.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "3000"),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
			CORSOrigins:  []string{getEnv("CORS_ORIGIN", "http://localhost:5173")},
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "lifeswap"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Kafka: KafkaConfig{
			Broker:       getEnv("KAFKA_BROKER", ""),
			RequestTopic: getEnv("KAFKA_REQUEST_TOPIC", "lifeswap.request-events"),
		},
		JWT: JWTConfig{
			Secret:    getEnv("JWT_SECRET", ""),
			AccessTTL: getEnvDuration("JWT_ACCESS_TTL", 8*time.Hour),
		},
		Automation: AutomationConfig{
			Enabled:                     getEnvBool("AUTOMATION_ENABLED", true),
			ReminderIntervalMinutes:     getEnvInt("AUTOMATION_REMINDER_INTERVAL_MINUTES", 30),
			ReportIntervalMinutes:       getEnvInt("AUTOMATION_REPORT_INTERVAL_MINUTES", 1440),
			PendingReminderAfterHours:   getEnvInt("AUTOMATION_PENDING_REMINDER_AFTER_HOURS", 8),
			ReminderRecipientEmployeeID: getEnv("AUTOMATION_REMINDER_RECIPIENT", "MANAGER"),
			ReportRecipientEmployeeID:   getEnv("AUTOMATION_REPORT_RECIPIENT", "HR"),
		},
		Report: ReportConfig{
			MonthlyOvertimeHourLimit: getEnvFloat("REPORT_MONTHLY_OVERTIME_HOUR_LIMIT", 46),
		},
		Teams: TeamsConfig{
			Enabled:    getEnvBool("TEAMS_NOTIFICATIONS_ENABLED", false),
			WebhookURL: getEnv("TEAMS_WEBHOOK_URL", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
