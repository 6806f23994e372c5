package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
[server]
http_port = 8080

[database]
host = "localhost"
port = 5432
user = "postgres"
dbname = "notifications"

[webhook]
url = "http://localhost:9000/fired"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 64, cfg.Scheduler.MaxNotifications)
	assert.Equal(t, time.Minute, cfg.Scheduler.MinimumIntervalDuration())
	assert.Equal(t, 30*time.Second, cfg.Scheduler.DeliveryTimeoutDuration())
	assert.Equal(t, 1000, cfg.Scheduler.DeliveredRetention)
	assert.Equal(t, time.Minute, cfg.Scheduler.ReconcileIntervalDuration())
	assert.Equal(t, 10*time.Second, cfg.Webhook.TimeoutDuration())
	assert.Equal(t, "notifications", cfg.Broker.Exchange)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SCHEDULER_MAX_NOTIFICATIONS", "10")
	t.Setenv("SCHEDULER_ALLOW_SILENT", "true")
	t.Setenv("TELEGRAM_ENABLED", "true")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_DEFAULT_CHAT_ID", "-100123")
	t.Setenv("SCHEDULER_DELIVERY_TIMEOUT", "not a number")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Scheduler.MaxNotifications)
	assert.True(t, cfg.Scheduler.AllowSilent)
	assert.True(t, cfg.Telegram.Enabled)
	assert.Equal(t, int64(-100123), cfg.Telegram.DefaultChatID)
	assert.Equal(t, 30, cfg.Scheduler.DeliveryTimeout)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing database host",
			content: "[server]\nhttp_port = 8080\n[database]\nport = 5432\nuser = \"u\"\ndbname = \"d\"\n[webhook]\nurl = \"http://x\"\n",
		},
		{
			name:    "invalid http port",
			content: "[server]\nhttp_port = 70000\n[database]\nhost = \"h\"\nport = 5432\nuser = \"u\"\ndbname = \"d\"\n[webhook]\nurl = \"http://x\"\n",
		},
		{
			name:    "no delivery channel",
			content: "[server]\nhttp_port = 8080\n[database]\nhost = \"h\"\nport = 5432\nuser = \"u\"\ndbname = \"d\"\n",
		},
		{
			name:    "telegram without token",
			content: minimalConfig + "\n[telegram]\nenabled = true\n",
		},
		{
			name:    "broker without url",
			content: minimalConfig + "\n[broker]\nenabled = true\n",
		},
		{
			name:    "negative capacity",
			content: minimalConfig + "\n[scheduler]\nmax_notifications = -1\n",
		},
		{
			name:    "minimum interval below platform limit",
			content: minimalConfig + "\n[scheduler]\nminimum_interval = 30\n",
		},
		{
			name:    "negative minimum interval",
			content: minimalConfig + "\n[scheduler]\nminimum_interval = -5\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MinimumIntervalAboveLimit(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+"\n[scheduler]\nminimum_interval = 300\n"))
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.Scheduler.MinimumIntervalDuration())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: 5432, User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=disable", d.DSN())
}
