package daemon

import (
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"

	"github.com/headsetmon/headsetmon/pkg/icon"
	"github.com/headsetmon/headsetmon/pkg/monitor"
)

const (
	portalDest      = "org.freedesktop.portal.Desktop"
	portalPath      = "/org/freedesktop/portal/desktop"
	portalSettings  = "org.freedesktop.portal.Settings"
	appearanceNS    = "org.freedesktop.appearance"
	colorSchemeKey  = "color-scheme"
	colorSchemeDark = uint32(1)
)

// DesktopTheme returns a ThemeFunc backed by the xdg-desktop-portal
// color-scheme setting. Headless sessions and desktops without the portal
// fall back to the dark theme.
func DesktopTheme() monitor.ThemeFunc {
	var (
		once sync.Once
		conn *dbus.Conn
	)

	return func() icon.Theme {
		once.Do(func() {
			c, err := dbus.SessionBus()
			if err != nil {
				logrus.WithError(err).Warn("session bus unavailable, assuming dark theme")
				return
			}
			conn = c
		})
		if conn == nil {
			return icon.Dark
		}

		var value dbus.Variant
		obj := conn.Object(portalDest, portalPath)
		err := obj.Call(portalSettings+".Read", 0, appearanceNS, colorSchemeKey).Store(&value)
		if err != nil {
			logrus.WithError(err).Debug("failed to read color scheme from portal")
			return icon.Dark
		}

		// Settings.Read wraps the value in a nested variant.
		inner, ok := value.Value().(dbus.Variant)
		if ok {
			return schemeToTheme(inner.Value())
		}
		return schemeToTheme(value.Value())
	}
}

func schemeToTheme(v any) icon.Theme {
	scheme, ok := v.(uint32)
	if !ok {
		return icon.Dark
	}
	// 0 means no preference; treat it like dark, which matches most tray
	// backgrounds.
	if scheme == colorSchemeDark || scheme == 0 {
		return icon.Dark
	}
	return icon.Light
}
