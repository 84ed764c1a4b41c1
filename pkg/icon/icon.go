// Package icon maps battery readings to tray icon resource ids.
//
// The icon set is organized in five charge buckets (0/25/50/75/100 percent
// glyphs) with dark and light theme variants and a charging overlay:
//
//	dark icons are 10, 20, ..., 50; light icons are 15, 25, ..., 55
//	charging variants are at icon id + 1
//	the "disconnected" glyph is 10 (dark) / 15 (light)
package icon

import "github.com/headsetmon/headsetmon/pkg/headset"

// Theme is the host desktop appearance, sampled fresh every poll.
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// ResolveID returns the icon resource id for a battery reading. It is a
// pure function: identical inputs always produce identical ids.
func ResolveID(theme Theme, percent int, status headset.BatteryStatus) int {
	var bucket int
	switch {
	case percent == headset.LevelUnknown:
		bucket = 1 // unknown level renders as near-empty
	case percent <= 12:
		bucket = 1
	case percent <= 37:
		bucket = 2
	case percent <= 62:
		bucket = 3
	case percent <= 87:
		bucket = 4
	default:
		bucket = 5
	}

	themeOffset := 0
	if theme == Light {
		themeOffset = 5
	}

	// No charging variant exists for the disconnected glyph.
	if status == headset.BatteryUnavailable {
		return 10 + themeOffset
	}

	chargingOffset := 0
	if status == headset.BatteryCharging {
		chargingOffset = 1
	}

	return bucket*10 + themeOffset + chargingOffset
}
