package monitor

import (
	"context"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/headsetmon/headsetmon/pkg/config"
	"github.com/headsetmon/headsetmon/pkg/events"
	"github.com/headsetmon/headsetmon/pkg/headset"
	"github.com/headsetmon/headsetmon/pkg/icon"
)

// NoAdapterTooltip is shown when telemetry enumerates no devices.
const NoAdapterTooltip = "No headset adapter found"

// Presenter is the external surface rendering tray state. Failures are
// logged and never stop the monitor.
type Presenter interface {
	SetTooltip(text string) error
	SetIcon(id int) error
	SetMenu(devices []string, selected int) error
}

// Notifier delivers user-facing notifications. It is called at most once
// per poll, only on a qualifying transition.
type Notifier interface {
	Notify(title, body string, critical bool) error
}

// ThemeFunc reports the host desktop theme. It is called fresh every poll
// because the theme can change between polls.
type ThemeFunc func() icon.Theme

// Status is a snapshot of the monitor state for the HTTP API.
type Status struct {
	Source               string           `json:"source"`
	Devices              []headset.Device `json:"devices"`
	SelectedIndex        int              `json:"selectedIndex"`
	Tooltip              string           `json:"tooltip"`
	IconID               int              `json:"iconId"`
	Theme                icon.Theme       `json:"theme"`
	NotificationsEnabled bool             `json:"notificationsEnabled"`
	UpdatedAt            time.Time        `json:"updatedAt"`
}

// Options wires a Monitor. Source, Presenter, Notifier and Config are
// required; Theme defaults to always-dark and Hub may be nil.
type Options struct {
	Source    headset.Source
	Presenter Presenter
	Notifier  Notifier
	Config    config.Config
	Theme     ThemeFunc
	Hub       *events.EventHub
}

// Monitor owns the current device list and all detector memory. All state
// is touched under one mutex: the poll loop and the HTTP handlers
// interleave but never race.
type Monitor struct {
	source    headset.Source
	presenter Presenter
	notifier  Notifier
	conf      config.Config
	theme     ThemeFunc
	hub       *events.EventHub

	mu       sync.Mutex
	detector *Detector
	devices  []headset.Device
	selected int
	status   Status
}

func New(opts Options) *Monitor {
	theme := opts.Theme
	if theme == nil {
		theme = func() icon.Theme { return icon.Dark }
	}

	return &Monitor{
		source:    opts.Source,
		presenter: opts.Presenter,
		notifier:  opts.Notifier,
		conf:      opts.Config,
		theme:     theme,
		hub:       opts.Hub,
		detector: NewDetector(Thresholds{
			Low:      opts.Config.LowBatteryThreshold(),
			Critical: opts.Config.CriticalBatteryThreshold(),
		}),
		status: Status{Source: opts.Source.Name(), SelectedIndex: -1},
	}
}

// Run drives the poll loop until the context is canceled. The timer is
// re-armed from "now" after each cycle completes, so a delayed wake can
// never cause a burst of catch-up polls.
func (m *Monitor) Run(ctx context.Context) {
	logrus.WithFields(logrus.Fields{
		"source":   m.source.Name(),
		"interval": m.conf.PollInterval().String(),
	}).Info("monitor loop started")

	for {
		m.Tick()

		timer := time.NewTimer(m.conf.PollInterval())
		select {
		case <-ctx.Done():
			timer.Stop()
			logrus.Info("monitor loop stopped")
			return
		case <-timer.C:
		}
	}
}

// Tick runs one poll cycle: telemetry, reconciliation, transition
// detection, icon resolution, presentation.
func (m *Monitor) Tick() {
	m.mu.Lock()
	defer m.mu.Unlock()

	fresh, err := m.source.Devices()
	if err != nil {
		// Degrade to "no devices" for this cycle; the source may recover.
		logrus.WithError(err).Error("telemetry poll failed")
		fresh = nil
	}

	theme := m.theme() // sampled fresh: the desktop theme can change between polls

	// Thresholds are read from config every cycle so a SIGHUP reload takes
	// effect without a restart, like the notifications toggle.
	m.detector.SetThresholds(Thresholds{
		Low:      m.conf.LowBatteryThreshold(),
		Critical: m.conf.CriticalBatteryThreshold(),
	})

	result := Reconcile(len(m.devices), m.selected, fresh)
	m.devices = fresh

	if result.MenuChanged {
		names := deviceNames(fresh)
		if err := m.presenter.SetMenu(names, result.SelectedIndex); err != nil {
			logrus.WithError(err).Error("failed to rebuild device menu")
		}
		m.hub.Publish(events.DeviceList, events.DeviceListEvent{
			Devices:  names,
			Selected: result.SelectedIndex,
			Ts:       time.Now().Unix(),
		})
	}

	if result.SelectedIndex < 0 {
		m.selected = 0
		m.present(NoAdapterTooltip, icon.ResolveID(theme, headset.LevelUnknown, headset.BatteryUnavailable))
		m.status.Devices = nil
		m.status.SelectedIndex = -1
		m.finishCycle(theme)
		return
	}

	m.selected = result.SelectedIndex
	device := fresh[m.selected]

	if event := m.detector.Evaluate(m.selected, device.Battery, m.conf.NotificationsEnabled()); event != nil {
		m.notify(device.Product, *event)
	}

	m.present(device.String(), icon.ResolveID(theme, device.Battery.Level, device.Battery.Status))
	m.status.Devices = fresh
	m.status.SelectedIndex = m.selected
	m.finishCycle(theme)
}

// present pushes tooltip and icon to the presenter and publishes a status
// event when either changed since the last cycle.
func (m *Monitor) present(tooltip string, iconID int) {
	changed := tooltip != m.status.Tooltip || iconID != m.status.IconID

	if err := m.presenter.SetTooltip(tooltip); err != nil {
		logrus.WithError(err).WithField("tooltip", tooltip).Error("failed to set tooltip")
	}
	if err := m.presenter.SetIcon(iconID); err != nil {
		logrus.WithError(err).WithField("iconId", iconID).Error("failed to set icon")
	}

	m.status.Tooltip = tooltip
	m.status.IconID = iconID

	if changed {
		m.hub.Publish(events.StatusUpdate, events.StatusUpdateEvent{
			IconID:  iconID,
			Tooltip: tooltip,
			Ts:      time.Now().Unix(),
		})
	}
}

func (m *Monitor) notify(product string, event Event) {
	logrus.WithFields(logrus.Fields{
		"kind":    event.Kind,
		"level":   event.Level,
		"product": product,
	}).Info("battery transition")

	if err := m.notifier.Notify(product, event.Message(), event.Critical()); err != nil {
		logrus.WithError(err).Error("failed to deliver notification")
	}

	m.hub.Publish(events.BatteryAlert, events.BatteryAlertEvent{
		Kind:    string(event.Kind),
		Product: product,
		Level:   event.Level,
		Message: event.Message(),
		Ts:      time.Now().Unix(),
	})
}

func (m *Monitor) finishCycle(theme icon.Theme) {
	m.status.Theme = theme
	m.status.NotificationsEnabled = m.conf.NotificationsEnabled()
	m.status.UpdatedAt = time.Now()
}

// Status returns a copy of the latest cycle's snapshot.
func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.status
	st.Devices = append([]headset.Device(nil), m.status.Devices...)
	return st
}

// Select switches the displayed device. The change takes full effect on
// the next poll cycle.
func (m *Monitor) Select(index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= len(m.devices) {
		return pkgerrors.Errorf("device index %d out of range (%d devices)", index, len(m.devices))
	}
	m.selected = index
	return nil
}

func deviceNames(devices []headset.Device) []string {
	names := make([]string, 0, len(devices))
	for _, d := range devices {
		names = append(names, d.Product)
	}
	return names
}
