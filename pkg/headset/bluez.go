package headset

import (
	"github.com/godbus/dbus/v5"
	pkgerrors "github.com/pkg/errors"
)

const (
	bluezBusName      = "org.bluez"
	bluezDeviceIface  = "org.bluez.Device1"
	bluezBatteryIface = "org.bluez.Battery1"
	objectManagerCall = "org.freedesktop.DBus.ObjectManager.GetManagedObjects"
)

// BlueZSource enumerates connected Bluetooth audio devices that expose the
// org.bluez.Battery1 interface on the system bus.
//
// BlueZ does not report a charging state for remote devices, so samples
// from this source are always BatteryAvailable (or BatteryUnavailable when
// the percentage property is missing).
type BlueZSource struct {
	conn *dbus.Conn
}

func NewBlueZSource() (*BlueZSource, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "connecting to system bus")
	}

	var names []string
	if err := conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names); err != nil {
		return nil, pkgerrors.Wrap(err, "listing bus names")
	}
	found := false
	for _, n := range names {
		if n == bluezBusName {
			found = true
			break
		}
	}
	if !found {
		return nil, pkgerrors.New("org.bluez not found on system bus, is bluetooth.service running?")
	}

	return &BlueZSource{conn: conn}, nil
}

func (s *BlueZSource) Name() string { return SourceBlueZ }

func (s *BlueZSource) Close() error { return s.conn.Close() }

func (s *BlueZSource) Devices() ([]Device, error) {
	var objects map[dbus.ObjectPath]map[string]map[string]dbus.Variant
	obj := s.conn.Object(bluezBusName, "/")
	if err := obj.Call(objectManagerCall, 0).Store(&objects); err != nil {
		return nil, pkgerrors.Wrap(err, "enumerating bluez objects")
	}

	var devices []Device
	for _, ifaces := range objects {
		dev, ok := ifaces[bluezDeviceIface]
		if !ok {
			continue
		}
		if connected, ok := dev["Connected"].Value().(bool); !ok || !connected {
			continue
		}

		name, _ := dev["Name"].Value().(string)
		if name == "" {
			if addr, ok := dev["Address"].Value().(string); ok {
				name = addr
			}
		}

		bat, ok := ifaces[bluezBatteryIface]
		if !ok {
			continue
		}

		sample := BatterySample{Level: LevelUnknown, Status: BatteryUnavailable}
		if pct, ok := bat["Percentage"].Value().(byte); ok {
			sample = BatterySample{Level: int(pct), Status: BatteryAvailable}
		}

		devices = append(devices, Device{Product: name, Battery: sample})
	}

	return devices, nil
}
