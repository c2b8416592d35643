package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/tgienger/tms/internal/db"
)

// Refresh modes for list views
const (
	RefreshManual   = "manual"
	RefreshInterval = "interval"
)

// Config holds the client configuration
type Config struct {
	Env             string
	APIURL          string
	DataDir         string
	PageSize        int
	SessionTTL      time.Duration
	RefreshMode     string
	RefreshInterval time.Duration
	HTTPTimeout     time.Duration // 0 means no timeout
	LogLevel        string
	LogFile         string
}

// Load reads .env (if present) and TMS_* environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "production")
	v.SetDefault("API_URL", "http://localhost:5000")
	v.SetDefault("DATA_DIR", "")
	v.SetDefault("PAGE_SIZE", 10)
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("REFRESH", RefreshManual)
	v.SetDefault("REFRESH_INTERVAL", "30s")
	v.SetDefault("HTTP_TIMEOUT", "0s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env:         v.GetString("ENV"),
		APIURL:      strings.TrimRight(v.GetString("API_URL"), "/"),
		DataDir:     v.GetString("DATA_DIR"),
		PageSize:    v.GetInt("PAGE_SIZE"),
		RefreshMode: strings.ToLower(v.GetString("REFRESH")),
		LogLevel:    v.GetString("LOG_LEVEL"),
		LogFile:     v.GetString("LOG_FILE"),
	}

	var err error
	if cfg.SessionTTL, err = duration(v, "SESSION_TTL"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = duration(v, "REFRESH_INTERVAL"); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = duration(v, "HTTP_TIMEOUT"); err != nil {
		return nil, err
	}

	if cfg.DataDir == "" {
		dir, err := db.DefaultDataDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = dir
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, "tms.log")
	}

	return cfg, cfg.Validate()
}

func duration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid TMS_%s %q: %w", key, raw, err)
	}
	return d, nil
}

// Validate rejects values the client cannot work with
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("TMS_API_URL must not be empty")
	}
	if c.PageSize < 1 {
		return fmt.Errorf("TMS_PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	switch c.RefreshMode {
	case RefreshManual:
	case RefreshInterval:
		if c.RefreshInterval <= 0 {
			return fmt.Errorf("TMS_REFRESH_INTERVAL must be positive in interval mode")
		}
	default:
		return fmt.Errorf("TMS_REFRESH must be %q or %q, got %q", RefreshManual, RefreshInterval, c.RefreshMode)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("TMS_HTTP_TIMEOUT must not be negative")
	}
	return nil
}
