package headset

import (
	"testing"
)

func TestParseHeadsetControlOutput(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    []Device
		wantErr bool
	}{
		{
			name: "single device discharging",
			output: `{
				"name": "HeadsetControl",
				"device_count": 1,
				"devices": [
					{
						"status": "success",
						"device": "HyperX Cloud Flight Wireless",
						"product": "Cloud Flight Wireless",
						"battery": {"status": "BATTERY_AVAILABLE", "level": 75}
					}
				]
			}`,
			want: []Device{
				{Product: "Cloud Flight Wireless", Battery: BatterySample{Level: 75, Status: BatteryAvailable}},
			},
		},
		{
			name: "charging device",
			output: `{
				"device_count": 1,
				"devices": [
					{
						"status": "success",
						"product": "Arctis 7",
						"battery": {"status": "BATTERY_CHARGING", "level": 50}
					}
				]
			}`,
			want: []Device{
				{Product: "Arctis 7", Battery: BatterySample{Level: 50, Status: BatteryCharging}},
			},
		},
		{
			name: "powered-off headset reports unavailable",
			output: `{
				"device_count": 1,
				"devices": [
					{
						"status": "success",
						"product": "Arctis 7",
						"battery": {"status": "BATTERY_UNAVAILABLE", "level": -1}
					}
				]
			}`,
			want: []Device{
				{Product: "Arctis 7", Battery: BatterySample{Level: LevelUnknown, Status: BatteryUnavailable}},
			},
		},
		{
			name: "hid error maps to unavailable",
			output: `{
				"device_count": 1,
				"devices": [
					{
						"status": "success",
						"product": "Void Pro",
						"battery": {"status": "BATTERY_HIDERROR", "level": 0}
					}
				]
			}`,
			want: []Device{
				{Product: "Void Pro", Battery: BatterySample{Level: LevelUnknown, Status: BatteryUnavailable}},
			},
		},
		{
			name: "device-level failure marks it disconnected",
			output: `{
				"device_count": 1,
				"devices": [
					{
						"status": "failure",
						"product": "Void Pro",
						"battery": {"status": "BATTERY_AVAILABLE", "level": 40}
					}
				]
			}`,
			want: []Device{
				{Product: "Void Pro", Battery: BatterySample{Level: LevelUnknown, Status: BatteryDisconnected}},
			},
		},
		{
			name: "missing battery block",
			output: `{
				"device_count": 1,
				"devices": [{"status": "success", "product": "Void Pro"}]
			}`,
			want: []Device{
				{Product: "Void Pro", Battery: BatterySample{Level: LevelUnknown, Status: BatteryUnavailable}},
			},
		},
		{
			name: "product falls back to device name",
			output: `{
				"device_count": 1,
				"devices": [
					{
						"status": "success",
						"device": "HyperX Cloud Flight Wireless",
						"battery": {"status": "BATTERY_AVAILABLE", "level": 30}
					}
				]
			}`,
			want: []Device{
				{Product: "HyperX Cloud Flight Wireless", Battery: BatterySample{Level: 30, Status: BatteryAvailable}},
			},
		},
		{
			name:   "no devices",
			output: `{"device_count": 0, "devices": []}`,
			want:   []Device{},
		},
		{
			name:    "malformed json",
			output:  `{"devices": [`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseHeadsetControlOutput([]byte(tt.output))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %t", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d devices, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("device %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDeviceString(t *testing.T) {
	tests := []struct {
		device Device
		want   string
	}{
		{Device{"Arctis 7", BatterySample{75, BatteryAvailable}}, "Arctis 7: 75%"},
		{Device{"Arctis 7", BatterySample{75, BatteryCharging}}, "Arctis 7: 75% (charging)"},
		{Device{"Arctis 7", BatterySample{LevelUnknown, BatteryCharging}}, "Arctis 7: charging"},
		{Device{"Arctis 7", BatterySample{LevelUnknown, BatteryUnavailable}}, "Arctis 7: battery unavailable"},
		{Device{"Arctis 7", BatterySample{LevelUnknown, BatteryDisconnected}}, "Arctis 7: disconnected"},
		{Device{"Arctis 7", BatterySample{LevelUnknown, BatteryAvailable}}, "Arctis 7: battery level unknown"},
	}

	for _, tt := range tests {
		if got := tt.device.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
