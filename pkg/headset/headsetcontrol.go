package headset

import (
	"context"
	"encoding/json"
	"os/exec"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const headsetcontrolTimeout = 5 * time.Second

// HeadsetControlSource enumerates headsets by running the HeadsetControl
// utility and parsing its JSON output.
type HeadsetControlSource struct {
	path string
}

func NewHeadsetControlSource(path string) *HeadsetControlSource {
	if path == "" {
		path = "headsetcontrol"
	}
	return &HeadsetControlSource{path: path}
}

func (s *HeadsetControlSource) Name() string { return SourceHeadsetControl }

// headsetcontrolOutput mirrors the `headsetcontrol -o json` schema. Only
// the fields we consume are declared.
type headsetcontrolOutput struct {
	DeviceCount int                    `json:"device_count"`
	Devices     []headsetcontrolDevice `json:"devices"`
}

type headsetcontrolDevice struct {
	Status  string                 `json:"status"`
	Device  string                 `json:"device"`
	Product string                 `json:"product"`
	Battery *headsetcontrolBattery `json:"battery"`
}

type headsetcontrolBattery struct {
	Status string `json:"status"`
	Level  int    `json:"level"`
}

func (s *HeadsetControlSource) Devices() ([]Device, error) {
	ctx, cancel := context.WithTimeout(context.Background(), headsetcontrolTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, s.path, "-o", "json").Output()
	if err != nil {
		// HeadsetControl exits non-zero when no device is found, but it
		// still prints a valid JSON document in that case. Only fail if
		// the output is unusable.
		if len(out) == 0 {
			return nil, pkgerrors.Wrapf(err, "running %s", s.path)
		}
		logrus.WithError(err).Debug("headsetcontrol exited non-zero, parsing output anyway")
	}

	return parseHeadsetControlOutput(out)
}

func parseHeadsetControlOutput(out []byte) ([]Device, error) {
	var parsed headsetcontrolOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return nil, pkgerrors.Wrap(err, "parsing headsetcontrol output")
	}

	devices := make([]Device, 0, len(parsed.Devices))
	for _, d := range parsed.Devices {
		name := d.Product
		if name == "" {
			name = d.Device
		}

		if d.Status != "" && d.Status != "success" {
			devices = append(devices, Device{
				Product: name,
				Battery: BatterySample{Level: LevelUnknown, Status: BatteryDisconnected},
			})
			continue
		}

		devices = append(devices, Device{
			Product: name,
			Battery: sampleFromHeadsetControl(d.Battery),
		})
	}

	return devices, nil
}

func sampleFromHeadsetControl(b *headsetcontrolBattery) BatterySample {
	if b == nil {
		return BatterySample{Level: LevelUnknown, Status: BatteryUnavailable}
	}

	switch b.Status {
	case "BATTERY_AVAILABLE":
		return BatterySample{Level: b.Level, Status: BatteryAvailable}
	case "BATTERY_CHARGING":
		return BatterySample{Level: b.Level, Status: BatteryCharging}
	case "BATTERY_UNAVAILABLE":
		return BatterySample{Level: LevelUnknown, Status: BatteryUnavailable}
	default:
		// BATTERY_HIDERROR, BATTERY_TIMEOUT and anything newer versions
		// may add: the device is there, telemetry is not.
		return BatterySample{Level: LevelUnknown, Status: BatteryUnavailable}
	}
}
