package config

import (
	"testing"
	"time"

	pkg_config "ptp_tracker/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	t.Setenv("DBUSER", "ptp")
	t.Setenv("DBPASS", "secret")
	t.Setenv("DBHOST", "localhost")
	t.Setenv("DBNAME", "ptp")
	t.Setenv("DBPORT", "5432")
	t.Setenv("REMINDER_TZ", "Asia/Kolkata")

	var cfg Config
	require.NoError(t, pkg_config.LoadConfigs(&cfg))

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "disable", cfg.SSLMode)
	assert.Equal(t, "0 9 * * *", cfg.Schedule)
	assert.Equal(t, 10*time.Second, cfg.DeliveryTimeout)
	assert.Equal(t, 8, cfg.MaxConcurrent)
	assert.False(t, cfg.GoogleSheetConfig.Enabled())

	loc, err := cfg.ReminderConfig.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", loc.String())
}

func TestConfigRequiresDB(t *testing.T) {
	t.Setenv("DBUSER", "")
	var cfg Config
	assert.Error(t, pkg_config.LoadConfigs(&cfg))
}
