package daemon

import (
	"github.com/godbus/dbus/v5"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	notificationsDest = "org.freedesktop.Notifications"
	notificationsPath = "/org/freedesktop/Notifications"

	// Urgency hint values from the Desktop Notifications Specification.
	urgencyNormal   = byte(1)
	urgencyCritical = byte(2)

	notificationTimeoutMs = int32(10000)
)

// DBusNotifier delivers desktop notifications over the session bus.
type DBusNotifier struct {
	conn *dbus.Conn
}

func NewDBusNotifier() (*DBusNotifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "connecting to session bus")
	}
	return &DBusNotifier{conn: conn}, nil
}

func (n *DBusNotifier) Notify(title, body string, critical bool) error {
	urgency := urgencyNormal
	if critical {
		urgency = urgencyCritical
	}
	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(urgency),
	}

	obj := n.conn.Object(notificationsDest, notificationsPath)
	call := obj.Call(notificationsDest+".Notify", 0,
		"headsetmon",    // app_name
		uint32(0),       // replaces_id
		"audio-headset", // app_icon
		title,
		body,
		[]string{}, // actions
		hints,
		notificationTimeoutMs,
	)
	if call.Err != nil {
		return pkgerrors.Wrap(call.Err, "sending notification")
	}
	return nil
}

// LogNotifier is the fallback when no session bus is reachable, e.g. when
// the daemon runs under a system service manager.
type LogNotifier struct{}

func (LogNotifier) Notify(title, body string, critical bool) error {
	logrus.WithFields(logrus.Fields{
		"title":    title,
		"critical": critical,
	}).Info(body)
	return nil
}
