package gui

import (
	"context"
	"fmt"

	"github.com/getlantern/systray"
	"github.com/sirupsen/logrus"

	"github.com/headsetmon/headsetmon/pkg/client"
	"github.com/headsetmon/headsetmon/pkg/events"
	"github.com/headsetmon/headsetmon/pkg/version"
)

// maxDeviceSlots caps the device menu. systray cannot remove menu items,
// so a fixed pool of items is shown/hidden as the device list changes.
const maxDeviceSlots = 8

var apiClient *client.Client

func Run(unixSocketPath string) {
	apiClient = client.NewClient(unixSocketPath)
	logrus.WithField("version", version.Version).Info("headsetmon gui")

	systray.Run(onReady, onExit)
}

func onReady() {
	systray.SetTitle("🎧 Loading...")
	systray.SetTooltip("headsetmon - Headset Battery Monitor")

	mStatus := systray.AddMenuItem("Status: Connecting...", "Current headset battery status")
	mStatus.Disable()

	systray.AddSeparator()

	deviceItems := make([]*systray.MenuItem, maxDeviceSlots)
	for i := range deviceItems {
		deviceItems[i] = systray.AddMenuItem("-", "Show this headset in the tray")
		deviceItems[i].Hide()
	}

	systray.AddSeparator()

	mNotifications := systray.AddMenuItemCheckbox("Notifications", "Notify on low battery, charging and full charge", false)

	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Quit the tray icon, keep the daemon running")

	ctx, cancel := context.WithCancel(context.Background())

	refreshCh := make(chan struct{}, 1)
	requestRefresh := func() {
		select {
		case refreshCh <- struct{}{}:
		default:
		}
	}

	go eventBridge(ctx, requestRefresh)

	go func() {
		selectCh := make(chan int)
		for i, item := range deviceItems {
			go func(i int, item *systray.MenuItem) {
				for {
					select {
					case <-item.ClickedCh:
						selectCh <- i
					case <-ctx.Done():
						return
					}
				}
			}(i, item)
		}

		go func() {
			for {
				select {
				case <-mNotifications.ClickedCh:
					enabled := !mNotifications.Checked()
					if _, err := apiClient.SetNotifications(enabled); err != nil {
						logrus.WithError(err).Error("failed to toggle notifications")
						continue
					}
					if enabled {
						mNotifications.Check()
					} else {
						mNotifications.Uncheck()
					}
					requestRefresh()
				case <-mQuit.ClickedCh:
					cancel()
					systray.Quit()
					return
				case <-ctx.Done():
					return
				case index := <-selectCh:
					if _, err := apiClient.SetSelected(index); err != nil {
						logrus.WithError(err).Error("failed to select device")
						continue
					}
					requestRefresh()
				}
			}
		}()

		ticker := newRefreshTicker()
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-refreshCh:
			case <-ticker.C:
			}
			updateStatus(mStatus, mNotifications, deviceItems)
		}
	}()

	updateStatus(mStatus, mNotifications, deviceItems)
}

func onExit() {
	logrus.Info("headsetmon gui exiting")
}

// eventBridge turns daemon push events into refreshes, so the tray reacts
// immediately instead of waiting for the next poll tick.
func eventBridge(ctx context.Context, requestRefresh func()) {
	evCh := apiClient.SubscribeEvents(ctx)

	for ev := range evCh {
		logrus.WithFields(logrus.Fields{
			"event": ev.Name,
			"data":  string(ev.Data),
		}).Debug("new event")

		switch ev.Name {
		case events.StatusUpdate, events.DeviceList:
			requestRefresh()
		case events.BatteryAlert:
			// The daemon already delivered the desktop notification;
			// refresh so the icon catches up right away.
			requestRefresh()
		}
	}
}

func updateStatus(mStatus, mNotifications *systray.MenuItem, deviceItems []*systray.MenuItem) {
	st, err := apiClient.GetStatus()
	if err != nil {
		systray.SetTitle("🚫 Offline")
		systray.SetTooltip("headsetmon daemon is not running")
		mStatus.SetTitle("Status: Disconnected")
		for _, item := range deviceItems {
			item.Hide()
		}
		logrus.WithError(err).Debug("cannot connect to daemon")
		return
	}

	systray.SetTitle(trayTitle(st))
	systray.SetTooltip(st.Tooltip)
	mStatus.SetTitle("Status: " + st.Tooltip)

	if st.NotificationsEnabled {
		mNotifications.Check()
	} else {
		mNotifications.Uncheck()
	}

	for i, item := range deviceItems {
		if i >= len(st.Devices) {
			item.Hide()
			continue
		}
		item.SetTitle(st.Devices[i].String())
		item.Show()
		if i == st.SelectedIndex {
			item.Check()
		} else {
			item.Uncheck()
		}
	}
}
