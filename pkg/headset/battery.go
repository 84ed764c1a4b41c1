package headset

import "fmt"

// LevelUnknown is the battery level reported when the device is present
// but its charge cannot be read.
const LevelUnknown = -1

// BatteryStatus describes what the battery of a headset is doing.
type BatteryStatus string

const (
	// BatteryAvailable means the device is on battery and discharging normally.
	BatteryAvailable BatteryStatus = "available"
	// BatteryCharging means the device is currently charging.
	BatteryCharging BatteryStatus = "charging"
	// BatteryDisconnected means the device is no longer reachable.
	BatteryDisconnected BatteryStatus = "disconnected"
	// BatteryUnavailable means the device is present but battery telemetry
	// could not be read (e.g. headset powered off while the dongle is in).
	BatteryUnavailable BatteryStatus = "unavailable"
)

// BatterySample is one battery reading, captured fresh every poll.
type BatterySample struct {
	// Level is a percentage 0-100, or LevelUnknown.
	Level  int           `json:"level"`
	Status BatteryStatus `json:"status"`
}

// Device is a headset as enumerated by a telemetry source. Devices are
// replaced wholesale each poll; there is no stable identity across polls
// beyond list position.
type Device struct {
	Product string        `json:"product"`
	Battery BatterySample `json:"battery"`
}

// String renders the device for tooltips and logs.
func (d Device) String() string {
	switch d.Battery.Status {
	case BatteryCharging:
		if d.Battery.Level == LevelUnknown {
			return fmt.Sprintf("%s: charging", d.Product)
		}
		return fmt.Sprintf("%s: %d%% (charging)", d.Product, d.Battery.Level)
	case BatteryUnavailable:
		return fmt.Sprintf("%s: battery unavailable", d.Product)
	case BatteryDisconnected:
		return fmt.Sprintf("%s: disconnected", d.Product)
	default:
		if d.Battery.Level == LevelUnknown {
			return fmt.Sprintf("%s: battery level unknown", d.Product)
		}
		return fmt.Sprintf("%s: %d%%", d.Product, d.Battery.Level)
	}
}
