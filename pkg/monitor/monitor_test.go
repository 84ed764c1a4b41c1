package monitor

import (
	"testing"

	"github.com/headsetmon/headsetmon/pkg/config"
	"github.com/headsetmon/headsetmon/pkg/events"
	"github.com/headsetmon/headsetmon/pkg/headset"
	"github.com/headsetmon/headsetmon/pkg/icon"
	"github.com/headsetmon/headsetmon/pkg/utils/ptr"
)

// fakeSource replays scripted poll results.
type fakeSource struct {
	batches []func() ([]headset.Device, error)
	calls   int
}

func (s *fakeSource) Name() string { return "fake" }

func (s *fakeSource) Devices() ([]headset.Device, error) {
	if s.calls >= len(s.batches) {
		return nil, nil
	}
	batch := s.batches[s.calls]
	s.calls++
	return batch()
}

func batch(devs ...headset.Device) func() ([]headset.Device, error) {
	return func() ([]headset.Device, error) { return devs, nil }
}

func failBatch(err error) func() ([]headset.Device, error) {
	return func() ([]headset.Device, error) { return nil, err }
}

type fakePresenter struct {
	tooltips []string
	icons    []int
	menus    [][]string
	selected []int
}

func (p *fakePresenter) SetTooltip(text string) error { p.tooltips = append(p.tooltips, text); return nil }
func (p *fakePresenter) SetIcon(id int) error         { p.icons = append(p.icons, id); return nil }
func (p *fakePresenter) SetMenu(devices []string, selected int) error {
	p.menus = append(p.menus, devices)
	p.selected = append(p.selected, selected)
	return nil
}

type notification struct {
	title    string
	body     string
	critical bool
}

type fakeNotifier struct {
	sent []notification
}

func (n *fakeNotifier) Notify(title, body string, critical bool) error {
	n.sent = append(n.sent, notification{title, body, critical})
	return nil
}

func testConfig(notifications bool) config.Config {
	return config.NewFileFromConfig(&config.RawFileConfig{
		NotificationsEnabled: ptr.To(notifications),
	}, "")
}

func newTestMonitor(src *fakeSource, notifications bool) (*Monitor, *fakePresenter, *fakeNotifier) {
	presenter := &fakePresenter{}
	notifier := &fakeNotifier{}
	m := New(Options{
		Source:    src,
		Presenter: presenter,
		Notifier:  notifier,
		Config:    testConfig(notifications),
	})
	return m, presenter, notifier
}

func headsetAt(level int, status headset.BatteryStatus) headset.Device {
	return headset.Device{
		Product: "HyperX Cloud Flight",
		Battery: headset.BatterySample{Level: level, Status: status},
	}
}

func TestMonitorTickNoDevices(t *testing.T) {
	src := &fakeSource{batches: []func() ([]headset.Device, error){batch()}}
	m, presenter, notifier := newTestMonitor(src, true)

	m.Tick()

	if len(presenter.tooltips) != 1 || presenter.tooltips[0] != NoAdapterTooltip {
		t.Fatalf("tooltips = %v, want [%q]", presenter.tooltips, NoAdapterTooltip)
	}
	if len(presenter.icons) != 1 || presenter.icons[0] != 10 {
		t.Fatalf("icons = %v, want the dark disconnected glyph [10]", presenter.icons)
	}
	if len(presenter.menus) != 0 {
		t.Fatalf("menu rebuilt on a steady empty list: %v", presenter.menus)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("notifications fired with no devices: %v", notifier.sent)
	}

	st := m.Status()
	if st.SelectedIndex != -1 {
		t.Errorf("Status().SelectedIndex = %d, want -1", st.SelectedIndex)
	}
}

func TestMonitorTickRendersSelectedDevice(t *testing.T) {
	src := &fakeSource{batches: []func() ([]headset.Device, error){
		batch(headsetAt(75, headset.BatteryAvailable)),
	}}
	m, presenter, notifier := newTestMonitor(src, true)

	m.Tick()

	if want := "HyperX Cloud Flight: 75%"; presenter.tooltips[len(presenter.tooltips)-1] != want {
		t.Errorf("tooltip = %q, want %q", presenter.tooltips[len(presenter.tooltips)-1], want)
	}
	if want := 40; presenter.icons[len(presenter.icons)-1] != want {
		t.Errorf("icon = %d, want %d", presenter.icons[len(presenter.icons)-1], want)
	}
	// 0 -> 1 devices is a count change, so the menu is rebuilt once.
	if len(presenter.menus) != 1 {
		t.Fatalf("menus = %v, want exactly one rebuild", presenter.menus)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("first sample must not notify, got %v", notifier.sent)
	}
}

func TestMonitorNotifiesOnLowCrossing(t *testing.T) {
	src := &fakeSource{batches: []func() ([]headset.Device, error){
		batch(headsetAt(15, headset.BatteryAvailable)),
		batch(headsetAt(9, headset.BatteryAvailable)),
		batch(headsetAt(9, headset.BatteryAvailable)),
	}}
	m, _, notifier := newTestMonitor(src, true)

	m.Tick()
	m.Tick()
	m.Tick()

	if len(notifier.sent) != 1 {
		t.Fatalf("sent = %v, want exactly one notification", notifier.sent)
	}
	got := notifier.sent[0]
	if got.title != "HyperX Cloud Flight" || got.body != "Battery low (9%)" || got.critical {
		t.Errorf("notification = %+v", got)
	}
}

func TestMonitorDisabledNotificationsStillTrackMemory(t *testing.T) {
	src := &fakeSource{batches: []func() ([]headset.Device, error){
		batch(headsetAt(15, headset.BatteryAvailable)),
		batch(headsetAt(5, headset.BatteryAvailable)),
		batch(headsetAt(15, headset.BatteryAvailable)),
		batch(headsetAt(9, headset.BatteryAvailable)),
	}}
	m, _, notifier := newTestMonitor(src, false)

	m.Tick()
	m.Tick()
	m.Tick()
	if len(notifier.sent) != 0 {
		t.Fatalf("notifications sent while disabled: %v", notifier.sent)
	}

	// Toggle on mid-run, like the tray menu does.
	m.conf.SetNotificationsEnabled(true)
	m.Tick()

	if len(notifier.sent) != 1 || notifier.sent[0].body != "Battery low (9%)" {
		t.Fatalf("sent = %v, want a single low-battery notification", notifier.sent)
	}
}

func TestMonitorTelemetryFailureDegrades(t *testing.T) {
	src := &fakeSource{batches: []func() ([]headset.Device, error){
		batch(headsetAt(50, headset.BatteryAvailable)),
		failBatch(errTelemetry),
	}}
	m, presenter, _ := newTestMonitor(src, true)

	m.Tick()
	m.Tick()

	if got := presenter.tooltips[len(presenter.tooltips)-1]; got != NoAdapterTooltip {
		t.Errorf("tooltip after failed poll = %q, want %q", got, NoAdapterTooltip)
	}
	if st := m.Status(); st.SelectedIndex != -1 {
		t.Errorf("Status().SelectedIndex = %d, want -1 after failed poll", st.SelectedIndex)
	}
}

func TestMonitorNotifiesAfterDeviceReappears(t *testing.T) {
	src := &fakeSource{batches: []func() ([]headset.Device, error){
		batch(headsetAt(15, headset.BatteryAvailable)),
		batch(), // headset powered off for one poll
		batch(headsetAt(9, headset.BatteryAvailable)),
	}}
	m, _, notifier := newTestMonitor(src, true)

	m.Tick()
	m.Tick()
	m.Tick()

	// The crossing happened while the device was absent; it must fire on
	// reappearance because a reconnect resets nothing.
	if len(notifier.sent) != 1 || notifier.sent[0].body != "Battery low (9%)" {
		t.Fatalf("sent = %v, want a single low-battery notification", notifier.sent)
	}
}

func TestMonitorNotifiesAfterTelemetryError(t *testing.T) {
	src := &fakeSource{batches: []func() ([]headset.Device, error){
		batch(headsetAt(15, headset.BatteryAvailable)),
		failBatch(errTelemetry), // transient failure degrades one cycle only
		batch(headsetAt(9, headset.BatteryAvailable)),
	}}
	m, _, notifier := newTestMonitor(src, true)

	m.Tick()
	m.Tick()
	m.Tick()

	if len(notifier.sent) != 1 || notifier.sent[0].body != "Battery low (9%)" {
		t.Fatalf("sent = %v, want a single low-battery notification", notifier.sent)
	}
}

func TestMonitorThresholdsFollowConfig(t *testing.T) {
	src := &fakeSource{batches: []func() ([]headset.Device, error){
		batch(headsetAt(25, headset.BatteryAvailable)),
		batch(headsetAt(18, headset.BatteryAvailable)),
	}}

	raw := &config.RawFileConfig{NotificationsEnabled: ptr.To(true)}
	notifier := &fakeNotifier{}
	m := New(Options{
		Source:    src,
		Presenter: &fakePresenter{},
		Notifier:  notifier,
		Config:    config.NewFileFromConfig(raw, ""),
	})

	m.Tick()

	// Raise the low threshold between polls, as a SIGHUP config reload
	// would. 18% is above the default threshold but below the new one.
	raw.LowBatteryThreshold = ptr.To(20)
	m.Tick()

	if len(notifier.sent) != 1 || notifier.sent[0].body != "Battery low (18%)" {
		t.Fatalf("sent = %v, want a single low-battery notification at 18%%", notifier.sent)
	}
}

var errTelemetry = headsetError("telemetry exploded")

type headsetError string

func (e headsetError) Error() string { return string(e) }

func TestMonitorSelectionClampsAcrossPolls(t *testing.T) {
	src := &fakeSource{batches: []func() ([]headset.Device, error){
		batch(headsetAt(50, headset.BatteryAvailable), headsetAt(80, headset.BatteryAvailable), headsetAt(20, headset.BatteryAvailable)),
		batch(headsetAt(50, headset.BatteryAvailable)),
	}}
	m, _, _ := newTestMonitor(src, true)

	m.Tick()
	if err := m.Select(2); err != nil {
		t.Fatalf("Select(2) failed: %v", err)
	}

	m.Tick()
	if st := m.Status(); st.SelectedIndex != 0 {
		t.Errorf("SelectedIndex = %d, want clamped to 0", st.SelectedIndex)
	}

	if err := m.Select(5); err == nil {
		t.Error("Select(5) with one device should fail")
	}
}

func TestMonitorThemeSampledEachCycle(t *testing.T) {
	src := &fakeSource{batches: []func() ([]headset.Device, error){
		batch(headsetAt(75, headset.BatteryAvailable)),
		batch(headsetAt(75, headset.BatteryAvailable)),
	}}

	theme := icon.Dark
	presenter := &fakePresenter{}
	m := New(Options{
		Source:    src,
		Presenter: presenter,
		Notifier:  &fakeNotifier{},
		Config:    testConfig(true),
		Theme:     func() icon.Theme { return theme },
	})

	m.Tick()
	theme = icon.Light
	m.Tick()

	if presenter.icons[0] != 40 || presenter.icons[1] != 45 {
		t.Errorf("icons = %v, want [40 45] across theme flip", presenter.icons)
	}
}

func TestMonitorPublishesAlertEvents(t *testing.T) {
	src := &fakeSource{batches: []func() ([]headset.Device, error){
		batch(headsetAt(15, headset.BatteryAvailable)),
		batch(headsetAt(9, headset.BatteryAvailable)),
	}}

	hub := events.NewEventHub()
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	m := New(Options{
		Source:    src,
		Presenter: &fakePresenter{},
		Notifier:  &fakeNotifier{},
		Config:    testConfig(true),
		Hub:       hub,
	})

	m.Tick()
	m.Tick()

	var alert *events.BatteryAlertEvent
	for done := false; !done; {
		select {
		case ev := <-sub:
			if ev.Name != events.BatteryAlert {
				continue
			}
			payload, err := events.DecodeAs[events.BatteryAlertEvent](ev)
			if err != nil {
				t.Fatalf("decoding alert: %v", err)
			}
			alert = &payload
			done = true
		default:
			done = true
		}
	}

	if alert == nil {
		t.Fatal("no battery.alert event published")
	}
	if alert.Kind != string(EventLowBattery) || alert.Level != 9 {
		t.Errorf("alert = %+v", alert)
	}
}
