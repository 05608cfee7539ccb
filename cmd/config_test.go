package cmd_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"steakz/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := cmd.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "http://localhost:3000/api", cfg.APIBaseURL)
	assert.Zero(t, cfg.APITimeout)
	assert.Equal(t, cmd.CartStorageFile, cfg.CartStorage)
	assert.Equal(t, "order_events", cfg.AMQPExchange)
	assert.Equal(t, "*/10 * * * * *", cfg.OrderRefreshSchedule)
	assert.Equal(t, int64(7), cfg.FallbackBranchID)
	assert.Equal(t, 1, cfg.ReceiptRetryAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.ReceiptRetryDelay)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("CART_STORAGE", "POSTGRES")
	t.Setenv("FALLBACK_BRANCH_ID", "12")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := cmd.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
	assert.Equal(t, cmd.CartStoragePostgres, cfg.CartStorage)
	assert.Equal(t, int64(12), cfg.FallbackBranchID)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadConfig_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("AMQP_EXCHANGE=kitchen_events\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("AMQP_EXCHANGE") })

	cfg, err := cmd.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "kitchen_events", cfg.AMQPExchange)
}

func TestLoadConfig_MissingEnvFileIsIgnored(t *testing.T) {
	_, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "absent.env"))

	assert.NoError(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("CART_STORAGE", "redis")
	t.Setenv("RECEIPT_TIMEZONE", "Mars/Olympus")

	_, err := cmd.LoadConfig("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "CART_STORAGE")
	assert.Contains(t, err.Error(), "RECEIPT_TIMEZONE")
}

func TestConfig_DSN(t *testing.T) {
	cfg := cmd.Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "n", DBSslMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", cfg.DSN())
}
