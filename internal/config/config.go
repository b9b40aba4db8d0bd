package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Schedule configuration
	ReportSchedule string // "daily" or "weekly"
	TimeZone       string

	// Persistence configuration. When StorageAccount is set the snapshot is
	// kept in Azure Blob Storage; otherwise DataDir is used.
	StorageAccount   string
	StorageContainer string
	DataDir          string
	SnapshotBlob     string

	// Notification configuration
	WebhookURL        string
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string

	// Chat companion configuration
	OpenAIAPIKey string
	ChatModel    string

	// Default privacy posture for a fresh profile
	StoreJournal bool

	// Mismatch handling
	AutoVerifyFloor float64 // confidence below which the user is prompted
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Debug:          getBoolEnv("DEBUG", false),
		ReportSchedule: getEnv("REPORT_SCHEDULE", "weekly"),
		TimeZone:       getEnv("TIMEZONE", "UTC"),

		StorageAccount:   getEnv("AZURE_STORAGE_ACCOUNT", ""),
		StorageContainer: getEnv("AZURE_STORAGE_CONTAINER", "moodjournal"),
		DataDir:          getEnv("DATA_DIR", "./data"),
		SnapshotBlob:     getEnv("SNAPSHOT_BLOB", "mood-companion-state.json"),

		WebhookURL:        getEnv("WEBHOOK_URL", ""),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		ChatModel:    getEnv("CHAT_MODEL", "gpt-3.5-turbo"),

		StoreJournal: getBoolEnv("STORE_JOURNAL", false),

		AutoVerifyFloor: getFloatEnv("AUTO_VERIFY_FLOOR", 0.6),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.ReportSchedule != "daily" && c.ReportSchedule != "weekly" {
		return fmt.Errorf("REPORT_SCHEDULE must be 'daily' or 'weekly'")
	}

	if c.StorageAccount == "" && c.DataDir == "" {
		return fmt.Errorf("either AZURE_STORAGE_ACCOUNT or DATA_DIR must be configured")
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	if c.AutoVerifyFloor < 0 || c.AutoVerifyFloor > 1 {
		return fmt.Errorf("AUTO_VERIFY_FLOOR must be between 0 and 1")
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
