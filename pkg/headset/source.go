package headset

import pkgerrors "github.com/pkg/errors"

// Source produces a fresh ordered device list for one poll cycle.
// Implementations must not retain state between calls; the monitor owns
// all cross-poll state.
type Source interface {
	// Devices enumerates currently known headsets. An error means the
	// whole poll failed; callers degrade to an empty device list.
	Devices() ([]Device, error)
	// Name identifies the source in logs and the status API.
	Name() string
}

// Source names accepted in the config.
const (
	SourceHeadsetControl = "headsetcontrol"
	SourceBlueZ          = "bluez"
	SourceSystem         = "system"
)

// New returns the telemetry source selected by name.
func New(name, headsetcontrolPath string) (Source, error) {
	switch name {
	case SourceHeadsetControl, "":
		return NewHeadsetControlSource(headsetcontrolPath), nil
	case SourceBlueZ:
		return NewBlueZSource()
	case SourceSystem:
		return NewSystemSource(), nil
	default:
		return nil, pkgerrors.Errorf("unknown telemetry source %q", name)
	}
}
