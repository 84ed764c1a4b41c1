package monitor

import (
	"fmt"

	"github.com/headsetmon/headsetmon/pkg/headset"
)

// EventKind identifies a battery transition worth telling the user about.
type EventKind string

const (
	EventLowBattery      EventKind = "low-battery"
	EventCriticalBattery EventKind = "critical-battery"
	EventChargingStarted EventKind = "charging-started"
	EventFullyCharged    EventKind = "fully-charged"
)

// Event is a single edge-triggered notification request. At most one is
// produced per device per poll.
type Event struct {
	Kind  EventKind `json:"kind"`
	Level int       `json:"level"`
}

// Message renders the notification body for the event.
func (e Event) Message() string {
	switch e.Kind {
	case EventLowBattery:
		return fmt.Sprintf("Battery low (%d%%)", e.Level)
	case EventCriticalBattery:
		return fmt.Sprintf("Battery critical (%d%%)", e.Level)
	case EventChargingStarted:
		return fmt.Sprintf("Charging started (%d%%)", e.Level)
	case EventFullyCharged:
		return "Battery full"
	default:
		return string(e.Kind)
	}
}

// Critical reports whether the event should be delivered with critical
// urgency.
func (e Event) Critical() bool { return e.Kind == EventCriticalBattery }

// Thresholds are the battery percentages at which low/critical alerts
// trigger.
type Thresholds struct {
	Low      int
	Critical int
}

// DefaultThresholds matches the icon set shipped with the app.
var DefaultThresholds = Thresholds{Low: 10, Critical: 3}

// Detector turns consecutive battery samples into edge-triggered events.
// It keeps one memory slot per device list position: an event fires only
// on the poll where its condition becomes true, never while it stays true.
//
// Device identity is positional because telemetry sources do not provide a
// stable id across polls. A device swap at the same position is read as a
// continuous transition of one device.
//
// Memory is never dropped when a device disappears. A headset that is
// absent for a few polls (powered off, dongle unplugged, telemetry hiccup)
// continues from its last seen sample when it comes back, so a reconnect
// resets nothing and a crossing that happened while absent still fires.
type Detector struct {
	thresholds Thresholds
	memory     map[int]headset.BatterySample
}

func NewDetector(th Thresholds) *Detector {
	return &Detector{
		thresholds: normalizeThresholds(th),
		memory:     make(map[int]headset.BatterySample),
	}
}

func normalizeThresholds(th Thresholds) Thresholds {
	if th.Low <= 0 {
		th.Low = DefaultThresholds.Low
	}
	if th.Critical <= 0 {
		th.Critical = DefaultThresholds.Critical
	}
	return th
}

// SetThresholds retunes the alert thresholds, e.g. after a config reload.
// Memory is kept; the new values apply from the next Evaluate.
func (d *Detector) SetThresholds(th Thresholds) {
	d.thresholds = normalizeThresholds(th)
}

// Evaluate compares the current sample for a device slot against the last
// one and returns the event to emit, if any. The memory slot advances on
// every call, including the first sample ever seen and while notifications
// are disabled, so that re-enabling notifications never replays a stale
// transition and repeated identical samples never re-fire.
func (d *Detector) Evaluate(slot int, current headset.BatterySample, notificationsEnabled bool) *Event {
	previous, seen := d.memory[slot]
	d.memory[slot] = current

	if !seen || !notificationsEnabled {
		return nil
	}

	return evaluateTransition(previous, current, d.thresholds)
}

// evaluateTransition is the ordered guard chain. The rules are mutually
// exclusive alternatives: the first match wins so a single transition can
// never produce two events.
func evaluateTransition(previous, current headset.BatterySample, th Thresholds) *Event {
	// Low/critical only apply while actually draining.
	draining := current.Status != headset.BatteryCharging && current.Status != headset.BatteryUnavailable

	switch {
	case draining && current.Level <= th.Low && previous.Level > th.Low:
		return &Event{Kind: EventLowBattery, Level: current.Level}

	case draining && current.Level <= th.Critical && previous.Level > th.Critical:
		return &Event{Kind: EventCriticalBattery, Level: current.Level}

	case current.Status == headset.BatteryCharging && previous.Status != headset.BatteryCharging:
		return &Event{Kind: EventChargingStarted, Level: current.Level}

	case current.Status == headset.BatteryCharging && current.Level == 100 && previous.Level < 100:
		return &Event{Kind: EventFullyCharged, Level: current.Level}
	}

	return nil
}
