package sync

import "time"

// Config holds configuration for the sync coordinator.
type Config struct {
	// RemoteURL is the spreadsheet-backed endpoint. Empty disables sync.
	RemoteURL string `mapstructure:"remote_url" default:""`
	// DebounceMS is the delay a scheduled push waits for further local edits
	// before firing. Re-scheduling restarts the timer.
	DebounceMS int `mapstructure:"debounce_ms" default:"1500"`
	// MinIntervalMS caps push frequency: a push firing sooner than this after
	// the last successful one is skipped.
	MinIntervalMS int `mapstructure:"min_interval_ms" default:"5000"`
	// CooldownMS suppresses automatic pushes for this long after a failure.
	CooldownMS int `mapstructure:"cooldown_ms" default:"30000"`
	// AutoUpdateIntervalMS is the automatic silent-pull period. Zero disables
	// polling.
	AutoUpdateIntervalMS int `mapstructure:"auto_update_interval_ms" default:"0"`
	// TimeoutSeconds is the HTTP timeout for push and pull requests.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// ArchiveSnapshots enables writing a payload snapshot to object storage
	// after every successful push.
	ArchiveSnapshots bool `mapstructure:"archive_snapshots" default:"false"`
	// SnapshotRetention is the number of archived snapshots to keep. Zero
	// keeps everything.
	SnapshotRetention int `mapstructure:"snapshot_retention" default:"30"`
}

// Enabled reports whether sync is configured at all.
func (c Config) Enabled() bool {
	return c.RemoteURL != ""
}

func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

func (c Config) MinInterval() time.Duration {
	return time.Duration(c.MinIntervalMS) * time.Millisecond
}

func (c Config) Cooldown() time.Duration {
	return time.Duration(c.CooldownMS) * time.Millisecond
}

func (c Config) AutoUpdateInterval() time.Duration {
	return time.Duration(c.AutoUpdateIntervalMS) * time.Millisecond
}

func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
