package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	CartStorageFile     = "file"
	CartStoragePostgres = "postgres"
)

type Config struct {
	HTTPPort string

	APIBaseURL string
	APIToken   string
	APITimeout time.Duration

	CartStorage    string
	CartStorageDir string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	AMQPURL      string
	AMQPExchange string

	OrderRefreshSchedule string
	OrderBoardBranchID   int64

	FallbackBranchID     int64
	ReceiptRetryAttempts int
	ReceiptRetryDelay    time.Duration
	ReceiptTimezone      string
	ReceiptTitle         string
	ReceiptWidth         int

	LogLevel string
}

// LoadConfig reads the environment, after loading envFile when it exists.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("API_BASE_URL", "http://localhost:3000/api")
	v.SetDefault("API_TOKEN", "")
	v.SetDefault("API_TIMEOUT", "0s")
	v.SetDefault("CART_STORAGE", CartStorageFile)
	v.SetDefault("CART_STORAGE_DIR", ".steakz")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "steakz")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "steakz")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("AMQP_EXCHANGE", "order_events")
	v.SetDefault("ORDER_REFRESH_SCHEDULE", "*/10 * * * * *")
	v.SetDefault("ORDER_BOARD_BRANCH_ID", 0)
	v.SetDefault("FALLBACK_BRANCH_ID", 7)
	v.SetDefault("RECEIPT_RETRY_ATTEMPTS", 1)
	v.SetDefault("RECEIPT_RETRY_DELAY", "500ms")
	v.SetDefault("RECEIPT_TIMEZONE", "UTC")
	v.SetDefault("RECEIPT_TITLE", "STEAKZ")
	v.SetDefault("RECEIPT_WIDTH", 40)
	v.SetDefault("LOG_LEVEL", "info")

	cfg := Config{
		HTTPPort:             v.GetString("HTTP_PORT"),
		APIBaseURL:           v.GetString("API_BASE_URL"),
		APIToken:             v.GetString("API_TOKEN"),
		APITimeout:           v.GetDuration("API_TIMEOUT"),
		CartStorage:          strings.ToLower(v.GetString("CART_STORAGE")),
		CartStorageDir:       v.GetString("CART_STORAGE_DIR"),
		DBHost:               v.GetString("DB_HOST"),
		DBPort:               v.GetString("DB_PORT"),
		DBUser:               v.GetString("DB_USER"),
		DBPassword:           v.GetString("DB_PASSWORD"),
		DBName:               v.GetString("DB_NAME"),
		DBSslMode:            v.GetString("DB_SSLMODE"),
		AMQPURL:              v.GetString("AMQP_URL"),
		AMQPExchange:         v.GetString("AMQP_EXCHANGE"),
		OrderRefreshSchedule: v.GetString("ORDER_REFRESH_SCHEDULE"),
		OrderBoardBranchID:   v.GetInt64("ORDER_BOARD_BRANCH_ID"),
		FallbackBranchID:     v.GetInt64("FALLBACK_BRANCH_ID"),
		ReceiptRetryAttempts: v.GetInt("RECEIPT_RETRY_ATTEMPTS"),
		ReceiptRetryDelay:    v.GetDuration("RECEIPT_RETRY_DELAY"),
		ReceiptTimezone:      v.GetString("RECEIPT_TIMEZONE"),
		ReceiptTitle:         v.GetString("RECEIPT_TITLE"),
		ReceiptWidth:         v.GetInt("RECEIPT_WIDTH"),
		LogLevel:             v.GetString("LOG_LEVEL"),
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.HTTPPort == "" {
		errs = append(errs, errors.New("HTTP_PORT is required"))
	}
	if c.APIBaseURL == "" {
		errs = append(errs, errors.New("API_BASE_URL is required"))
	}
	switch c.CartStorage {
	case CartStorageFile:
		if c.CartStorageDir == "" {
			errs = append(errs, errors.New("CART_STORAGE_DIR is required for file storage"))
		}
	case CartStoragePostgres:
	default:
		errs = append(errs, fmt.Errorf("CART_STORAGE must be %q or %q, got %q", CartStorageFile, CartStoragePostgres, c.CartStorage))
	}
	if c.APITimeout < 0 {
		errs = append(errs, errors.New("API_TIMEOUT must not be negative"))
	}
	if _, err := time.LoadLocation(c.ReceiptTimezone); err != nil {
		errs = append(errs, fmt.Errorf("RECEIPT_TIMEZONE: %w", err))
	}
	return errors.Join(errs...)
}

// DSN is the PostgreSQL connection string for the key/value cart storage.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// SlogLevel maps LOG_LEVEL to a slog level; unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
