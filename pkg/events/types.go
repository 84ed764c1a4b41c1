package events

import "encoding/json"

// Event name constants
const (
	BatteryAlert = "battery.alert"
	DeviceList   = "device.list"
	StatusUpdate = "status.update"
)

// Event is a generic SSE event from the daemon.
type Event struct {
	Name string          // SSE event name
	Data json.RawMessage // Raw JSON payload
}

// BatteryAlertEvent is the typed payload for battery.alert. One is
// published for every notification the monitor emits, regardless of how
// the desktop notification delivery went.
type BatteryAlertEvent struct {
	Kind    string `json:"kind"`
	Product string `json:"product"`
	Level   int    `json:"level"`
	Message string `json:"message"`
	Ts      int64  `json:"ts"`
}

// DeviceListEvent is the typed payload for device.list, published when the
// device count changes and the menu must be rebuilt.
type DeviceListEvent struct {
	Devices  []string `json:"devices"`
	Selected int      `json:"selected"`
	Ts       int64    `json:"ts"`
}

// StatusUpdateEvent is the typed payload for status.update, published when
// the displayed icon or tooltip changes.
type StatusUpdateEvent struct {
	IconID  int    `json:"iconId"`
	Tooltip string `json:"tooltip"`
	Ts      int64  `json:"ts"`
}

// DecodeAs decodes the event payload into the caller-specified generic
// type T. It ignores the event name and simply unmarshals Data into T. If
// Data is empty, it returns the zero value of T with a nil error.
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
