package config

import "time"

// Config holds the user-facing settings of the monitor. Implementations
// must be safe for concurrent use: the monitor loop reads it every poll
// while the HTTP layer toggles notifications.
type Config interface {
	NotificationsEnabled() bool
	LowBatteryThreshold() int
	CriticalBatteryThreshold() int
	PollInterval() time.Duration
	Source() string
	HeadsetControlPath() string
	ReportSchedule() string

	SetNotificationsEnabled(bool)

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
