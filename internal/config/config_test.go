package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfigFile(t, `
bot:
  token: "123456:test-token"
  webhook:
    endpoint: "https://bot.example.com/webhook"
    listen_port: "9443"
relay:
  admin_ids: [1, 2]
  allowed_groups: [-1001, -1002]
  blocked_groups: [-1003]
  pending_ttl_minutes: 30
logger:
  directory: "/var/log/relay"
  level: "DEBUG"
database:
  enabled: true
  host: "127.0.0.1"
  port: 3306
  username: "relay"
  password: "secret"
  dbname: "relay"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "123456:test-token", cfg.Bot.Token)
	assert.Equal(t, "https://bot.example.com/webhook", cfg.Bot.Webhook.Endpoint)
	assert.Equal(t, "9443", cfg.Bot.Webhook.ListenPort)

	assert.Equal(t, []int64{1, 2}, cfg.Relay.AdminIDs)
	assert.Equal(t, []int64{-1001, -1002}, cfg.Relay.AllowedGroups)
	assert.Equal(t, []int64{-1003}, cfg.Relay.BlockedGroups)
	assert.Equal(t, 30, cfg.Relay.PendingTTLMinutes)

	assert.Equal(t, "/var/log/relay", cfg.Logger.Directory)
	assert.Equal(t, "DEBUG", cfg.Logger.Level)

	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, "relay", cfg.Database.DBName)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
bot:
  token: "123456:test-token"
relay:
  admin_ids: [1]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8443", cfg.Bot.Webhook.ListenPort)
	assert.Equal(t, "/debug", cfg.Bot.Webhook.DebugPath)
	assert.Empty(t, cfg.Bot.Webhook.Endpoint, "long polling is the default")

	assert.Zero(t, cfg.Relay.PendingTTLMinutes, "sessions stay open by default")

	assert.Equal(t, "logs", cfg.Logger.Directory)
	assert.Equal(t, "INFO", cfg.Logger.Level)
	assert.Equal(t, 10, cfg.Logger.Rotation.MaxSize)
	assert.True(t, cfg.Logger.Rotation.Compress)

	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "utf8mb4", cfg.Database.Charset)
}

func TestLoadRequiresToken(t *testing.T) {
	path := writeConfigFile(t, `
relay:
  admin_ids: [1]
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "token")
}

func TestLoadRequiresAdmins(t *testing.T) {
	path := writeConfigFile(t, `
bot:
  token: "123456:test-token"
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "admin")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	_, err = Load("")
	assert.Error(t, err)
}
