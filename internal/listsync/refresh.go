package listsync

import (
	"time"

	"github.com/tgienger/tms/internal/config"
)

// RefreshPolicy says when list views reload from the backend. Manual means
// only on mount and on the refresh key; Interval also reloads periodically.
type RefreshPolicy struct {
	Mode     string
	Interval time.Duration
}

// PolicyFrom reads the refresh settings of cfg
func PolicyFrom(cfg *config.Config) RefreshPolicy {
	return RefreshPolicy{Mode: cfg.RefreshMode, Interval: cfg.RefreshInterval}
}

// Periodic reports whether views should schedule reloads, and how often
func (p RefreshPolicy) Periodic() (time.Duration, bool) {
	if p.Mode != config.RefreshInterval || p.Interval <= 0 {
		return 0, false
	}
	return p.Interval, true
}
