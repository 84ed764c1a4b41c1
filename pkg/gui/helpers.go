package gui

import (
	"fmt"
	"time"

	"github.com/headsetmon/headsetmon/pkg/headset"
	"github.com/headsetmon/headsetmon/pkg/monitor"
)

const refreshInterval = 2 * time.Second

func newRefreshTicker() *time.Ticker {
	return time.NewTicker(refreshInterval)
}

// trayTitle renders the compact tray label from the latest status snapshot.
func trayTitle(st *monitor.Status) string {
	if st.SelectedIndex < 0 || st.SelectedIndex >= len(st.Devices) {
		return "🎧 -"
	}

	device := st.Devices[st.SelectedIndex]
	switch device.Battery.Status {
	case headset.BatteryCharging:
		if device.Battery.Level == headset.LevelUnknown {
			return "⚡️ charging"
		}
		return fmt.Sprintf("⚡️ %d%%", device.Battery.Level)
	case headset.BatteryUnavailable, headset.BatteryDisconnected:
		return "🎧 -"
	default:
		if device.Battery.Level == headset.LevelUnknown {
			return "🎧 ?"
		}
		return fmt.Sprintf("🎧 %d%%", device.Battery.Level)
	}
}
