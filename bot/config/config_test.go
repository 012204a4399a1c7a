package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
telegram:
  token: "123:abc"
  admin_id: 99
  run_mode: longpoll

database:
  host: localhost
  user: apptbot
  password: secret
  name: apptbot

contact:
  phone: "+1-555-0100"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Core.Telegram.Token)
	assert.Equal(t, int64(99), cfg.Core.Telegram.AdminID)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 10, cfg.Database.MaxConnections)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.Geocode.BaseURL)
	assert.Equal(t, "TelegramAppointmentBot/1.0", cfg.Geocode.UserAgent)
	assert.Equal(t, 5*time.Second, cfg.Geocode.Timeout())
	require.NotNil(t, cfg.CoreConfig())
}

func TestLoadRequiresAdminID(t *testing.T) {
	body := `
telegram:
  token: "123:abc"
database:
  host: localhost
  name: apptbot
contact:
  phone: "+1-555-0100"
`
	_, err := Load(writeConfig(t, body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin_id")
}

func TestLoadRequiresContactPhone(t *testing.T) {
	body := `
telegram:
  token: "123:abc"
  admin_id: 99
database:
  host: localhost
  name: apptbot
`
	_, err := Load(writeConfig(t, body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contact.phone")
}

func TestLoadRequiresDatabaseHost(t *testing.T) {
	body := `
telegram:
  token: "123:abc"
  admin_id: 99
database:
  name: apptbot
contact:
  phone: "+1-555-0100"
`
	_, err := Load(writeConfig(t, body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.host")
}
