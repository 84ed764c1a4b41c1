package headset

import (
	"math"

	"github.com/distatus/battery"
	pkgerrors "github.com/pkg/errors"
)

// SystemSource reports the host machine's own batteries as devices. It is
// mostly useful for exercising the daemon on machines without a headset.
type SystemSource struct{}

func NewSystemSource() *SystemSource { return &SystemSource{} }

func (s *SystemSource) Name() string { return SourceSystem }

func (s *SystemSource) Devices() ([]Device, error) {
	batteries, err := battery.GetAll()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "reading host batteries")
	}

	devices := make([]Device, 0, len(batteries))
	for _, bat := range batteries {
		devices = append(devices, Device{
			Product: "System Battery",
			Battery: sampleFromSystem(bat),
		})
	}

	return devices, nil
}

func sampleFromSystem(bat *battery.Battery) BatterySample {
	if bat.Full <= 0 {
		return BatterySample{Level: LevelUnknown, Status: BatteryUnavailable}
	}

	level := int(math.Round(bat.Current / bat.Full * 100))
	if level > 100 {
		level = 100
	}

	status := BatteryAvailable
	if bat.State == battery.Charging || bat.State == battery.Full {
		status = BatteryCharging
	}

	return BatterySample{Level: level, Status: status}
}
