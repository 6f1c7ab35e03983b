package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// StoreBackend names the payment store chosen at startup.
type StoreBackend string

const (
	StoreBackendPostgres StoreBackend = "postgres"
	StoreBackendDynamoDB StoreBackend = "dynamodb"
	StoreBackendFile     StoreBackend = "file"
)

// Config is resolved once at process start and passed down explicitly.
//
// Supported env vars (all optional):
//   - PORT, ADMIN_SECRET, LOG_LEVEL
//   - PAYMENT_STORE (postgres|dynamodb|file), DATABASE_URL, PAYMENTS_TABLE, FALLBACK_FILE
//   - AWS_REGION, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, DYNAMODB_ENDPOINT
//   - TERMII_API_KEY, TERMII_SENDER_ID, TERMII_BASE_URL, SMS_GATEWAY_MOCK
//   - GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SHEET_ID, GOOGLE_SHEET_RANGE
//   - NOTIFY_WORKERS, NOTIFY_QUEUE_SIZE, NOTIFY_TIMEOUT
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST
type Config struct {
	Port        int
	AdminSecret string
	LogLevel    string

	StoreBackend  StoreBackend
	DatabaseURL   string
	PaymentsTable string
	FallbackFile  string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	DynamoDBEndpoint   string

	TermiiAPIKey   string
	TermiiSenderID string
	TermiiBaseURL  string
	SMSGatewayMock bool

	GoogleServiceAccountJSON string
	GoogleSheetID            string
	GoogleSheetRange         string

	NotifyWorkers   int
	NotifyQueueSize int
	NotifyTimeout   time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
}

var defaults = map[string]any{
	"PORT":               8888,
	"ADMIN_SECRET":       "changeme",
	"LOG_LEVEL":          "info",
	"PAYMENTS_TABLE":     "payments",
	"FALLBACK_FILE":      "payments_fallback.json",
	"AWS_REGION":         "us-east-1",
	"TERMII_SENDER_ID":   "EDGEINC",
	"TERMII_BASE_URL":    "https://termii.com",
	"GOOGLE_SHEET_RANGE": "Sheet1!A1",
	"NOTIFY_WORKERS":     2,
	"NOTIFY_QUEUE_SIZE":  64,
	"NOTIFY_TIMEOUT":     10 * time.Second,
	"RATE_LIMIT_RPS":     5.0,
	"RATE_LIMIT_BURST":   10,
}

// Load reads the configuration from the environment (.env is loaded by the
// godotenv autoload import in main).
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) Config {
	cfg := Config{
		Port:        v.GetInt("PORT"),
		AdminSecret: v.GetString("ADMIN_SECRET"),
		LogLevel:    v.GetString("LOG_LEVEL"),

		DatabaseURL:   strings.TrimSpace(v.GetString("DATABASE_URL")),
		PaymentsTable: v.GetString("PAYMENTS_TABLE"),
		FallbackFile:  v.GetString("FALLBACK_FILE"),

		AWSRegion:          v.GetString("AWS_REGION"),
		AWSAccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
		DynamoDBEndpoint:   v.GetString("DYNAMODB_ENDPOINT"),

		TermiiAPIKey:   v.GetString("TERMII_API_KEY"),
		TermiiSenderID: v.GetString("TERMII_SENDER_ID"),
		TermiiBaseURL:  strings.TrimRight(v.GetString("TERMII_BASE_URL"), "/"),
		SMSGatewayMock: isTruthy(v.GetString("SMS_GATEWAY_MOCK")),

		GoogleServiceAccountJSON: v.GetString("GOOGLE_SERVICE_ACCOUNT_JSON"),
		GoogleSheetID:            v.GetString("GOOGLE_SHEET_ID"),
		GoogleSheetRange:         v.GetString("GOOGLE_SHEET_RANGE"),

		NotifyWorkers:   v.GetInt("NOTIFY_WORKERS"),
		NotifyQueueSize: v.GetInt("NOTIFY_QUEUE_SIZE"),
		NotifyTimeout:   v.GetDuration("NOTIFY_TIMEOUT"),

		RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
	}
	cfg.StoreBackend = resolveStoreBackend(v.GetString("PAYMENT_STORE"), cfg)
	return cfg
}

// resolveStoreBackend honours an explicit PAYMENT_STORE and otherwise picks
// the first store whose credentials are present.
func resolveStoreBackend(explicit string, cfg Config) StoreBackend {
	switch StoreBackend(strings.ToLower(strings.TrimSpace(explicit))) {
	case StoreBackendPostgres:
		return StoreBackendPostgres
	case StoreBackendDynamoDB:
		return StoreBackendDynamoDB
	case StoreBackendFile:
		return StoreBackendFile
	}

	switch {
	case cfg.DatabaseURL != "":
		return StoreBackendPostgres
	case cfg.DynamoDBEndpoint != "", cfg.AWSAccessKeyID != "":
		return StoreBackendDynamoDB
	default:
		return StoreBackendFile
	}
}

// LedgerConfigured reports whether Google Sheets credentials and target are set.
func (c Config) LedgerConfigured() bool {
	return c.GoogleServiceAccountJSON != "" && c.GoogleSheetID != ""
}

func isTruthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
