package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseFile string // Optional: path to SQLite database file (default: ./scheduler.db)

	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)

	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	NotifierBackend string        // Notification backend (log, smtp) (default: log)
	SMTPAddr        string        // SMTP server address (host:port), required for smtp backend
	SMTPFrom        string        // Sender address for outgoing mail
	NotifyTimeout   time.Duration // Per-recipient delivery timeout (default: 10s)

	ReminderInterval time.Duration // Reminder sweep interval; 0 disables the worker (default: 1m)
	ReminderLead     time.Duration // How far ahead of start time reminders go out (default: 1h)
}

func LoadConfig() Config {
	return Config{
		DatabaseFile: getEnvOrDefault("SCHED_DATABASE_FILE", "scheduler.db"),

		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),

		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		NotifierBackend: getEnvOrDefault("SCHED_NOTIFIER", "log"),
		SMTPAddr:        os.Getenv("SCHED_SMTP_ADDR"),
		SMTPFrom:        getEnvOrDefault("SCHED_SMTP_FROM", "huddle@localhost"),
		NotifyTimeout:   getEnvDurationOrDefault("SCHED_NOTIFY_TIMEOUT", 10*time.Second),

		ReminderInterval: getEnvDurationOrDefault("SCHED_REMINDER_INTERVAL", time.Minute),
		ReminderLead:     getEnvDurationOrDefault("SCHED_REMINDER_LEAD", time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
