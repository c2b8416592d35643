package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.APIURL)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, RefreshManual, cfg.RefreshMode)
	assert.Zero(t, cfg.HTTPTimeout)
	assert.Equal(t, filepath.Join("/tmp/xdg", "tms"), cfg.DataDir)
	assert.Equal(t, filepath.Join("/tmp/xdg", "tms", "tms.log"), cfg.LogFile)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TMS_API_URL", "https://api.example.com/")
	t.Setenv("TMS_DATA_DIR", "/var/lib/tms")
	t.Setenv("TMS_PAGE_SIZE", "25")
	t.Setenv("TMS_REFRESH", "interval")
	t.Setenv("TMS_REFRESH_INTERVAL", "1m")
	t.Setenv("TMS_HTTP_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.APIURL)
	assert.Equal(t, "/var/lib/tms", cfg.DataDir)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, RefreshInterval, cfg.RefreshMode)
	assert.Equal(t, time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("TMS_DATA_DIR", "/tmp/tms")
	t.Setenv("TMS_REFRESH", "push")
	_, err := Load()
	assert.ErrorContains(t, err, "TMS_REFRESH")

	t.Setenv("TMS_REFRESH", "manual")
	t.Setenv("TMS_SESSION_TTL", "one day")
	_, err = Load()
	assert.ErrorContains(t, err, "SESSION_TTL")

	t.Setenv("TMS_SESSION_TTL", "24h")
	t.Setenv("TMS_PAGE_SIZE", "0")
	_, err = Load()
	assert.ErrorContains(t, err, "PAGE_SIZE")
}
