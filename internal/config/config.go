package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration
type Config struct {
	TelegramToken string
	AdminUserIDs  []int64

	// Bot mode configuration
	WebhookMode bool   // If true, use webhook mode; if false, use polling mode
	WebhookURL  string // URL for webhook (required if WebhookMode is true)

	// Postgres configuration
	DatabaseURL string

	// Object storage configuration
	StorageURL       string // public base URL, used to derive retrieval URLs
	StorageEndpoint  string // S3 API endpoint
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StorageRegion    string

	MediaDir string

	UseMockDB bool
	LogDev    bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	config := &Config{}

	// Telegram Bot Token (required)
	config.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if config.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	// Admin User IDs (required)
	adminIDsStr := os.Getenv("ADMIN_USER_IDS")
	if adminIDsStr == "" {
		return nil, fmt.Errorf("ADMIN_USER_IDS is required (comma-separated list of Telegram user IDs)")
	}

	idStrs := strings.Split(adminIDsStr, ",")
	for _, idStr := range idStrs {
		id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user ID in ADMIN_USER_IDS: %s", idStr)
		}
		config.AdminUserIDs = append(config.AdminUserIDs, id)
	}

	// Bot mode configuration
	config.WebhookMode = os.Getenv("WEBHOOK_MODE") == "true"
	if config.WebhookMode {
		config.WebhookURL = os.Getenv("WEBHOOK_URL")
		if config.WebhookURL == "" {
			return nil, fmt.Errorf("WEBHOOK_URL is required when WEBHOOK_MODE is true")
		}
	}

	// Use mock backend (default: false)
	config.UseMockDB = os.Getenv("USE_MOCK_DB") == "true"

	// Backend configuration (required if not using mock)
	if !config.UseMockDB {
		config.DatabaseURL = os.Getenv("DATABASE_URL")
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when USE_MOCK_DB is not set")
		}

		config.StorageURL = strings.TrimRight(os.Getenv("STORAGE_URL"), "/")
		if config.StorageURL == "" {
			return nil, fmt.Errorf("STORAGE_URL is required when USE_MOCK_DB is not set")
		}

		config.StorageAccessKey = os.Getenv("STORAGE_ACCESS_KEY")
		if config.StorageAccessKey == "" {
			return nil, fmt.Errorf("STORAGE_ACCESS_KEY is required when USE_MOCK_DB is not set")
		}

		config.StorageSecretKey = os.Getenv("STORAGE_SECRET_KEY")
		if config.StorageSecretKey == "" {
			return nil, fmt.Errorf("STORAGE_SECRET_KEY is required when USE_MOCK_DB is not set")
		}

		config.StorageEndpoint = os.Getenv("STORAGE_ENDPOINT")
		if config.StorageEndpoint == "" {
			// Supabase exposes its S3-compatible API under the project URL
			config.StorageEndpoint = config.StorageURL + "/storage/v1/s3"
		}
	}

	config.StorageBucket = os.Getenv("STORAGE_BUCKET")
	if config.StorageBucket == "" {
		config.StorageBucket = "photos"
	}

	config.StorageRegion = os.Getenv("STORAGE_REGION")
	if config.StorageRegion == "" {
		config.StorageRegion = "us-east-1"
	}

	config.MediaDir = os.Getenv("MEDIA_DIR")
	if config.MediaDir == "" {
		config.MediaDir = "./media"
	}

	config.LogDev = os.Getenv("LOG_DEV") == "true"

	return config, nil
}
