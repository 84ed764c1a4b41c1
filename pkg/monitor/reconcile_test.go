package monitor

import (
	"testing"

	"github.com/headsetmon/headsetmon/pkg/headset"
)

func devices(n int) []headset.Device {
	out := make([]headset.Device, n)
	for i := range out {
		out[i] = headset.Device{Product: "Headset"}
	}
	return out
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name          string
		previousCount int
		selected      int
		fresh         []headset.Device
		wantSelected  int
		wantMenu      bool
	}{
		{
			name:          "steady state",
			previousCount: 2,
			selected:      1,
			fresh:         devices(2),
			wantSelected:  1,
			wantMenu:      false,
		},
		{
			name:          "selection clamped when devices disappear",
			previousCount: 3,
			selected:      2,
			fresh:         devices(1),
			wantSelected:  0,
			wantMenu:      true,
		},
		{
			name:          "device added rebuilds menu, keeps selection",
			previousCount: 1,
			selected:      0,
			fresh:         devices(2),
			wantSelected:  0,
			wantMenu:      true,
		},
		{
			name:          "all devices gone",
			previousCount: 2,
			selected:      1,
			fresh:         nil,
			wantSelected:  -1,
			wantMenu:      true,
		},
		{
			name:          "still empty is not a rebuild",
			previousCount: 0,
			selected:      0,
			fresh:         nil,
			wantSelected:  -1,
			wantMenu:      false,
		},
		{
			name:          "negative selection snaps to first device",
			previousCount: 1,
			selected:      -1,
			fresh:         devices(1),
			wantSelected:  0,
			wantMenu:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconcile(tt.previousCount, tt.selected, tt.fresh)
			if got.SelectedIndex != tt.wantSelected {
				t.Errorf("SelectedIndex = %d, want %d", got.SelectedIndex, tt.wantSelected)
			}
			if got.MenuChanged != tt.wantMenu {
				t.Errorf("MenuChanged = %t, want %t", got.MenuChanged, tt.wantMenu)
			}
		})
	}
}
