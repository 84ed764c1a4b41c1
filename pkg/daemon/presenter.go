package daemon

import (
	"github.com/sirupsen/logrus"
)

// logPresenter is the daemon-side render target. The daemon has no tray of
// its own; the GUI process renders from the status API and the event
// stream, so render calls here only leave a debug trace.
type logPresenter struct{}

func (logPresenter) SetTooltip(text string) error {
	logrus.WithField("tooltip", text).Debug("tooltip updated")
	return nil
}

func (logPresenter) SetIcon(id int) error {
	logrus.WithField("iconId", id).Debug("icon updated")
	return nil
}

func (logPresenter) SetMenu(devices []string, selected int) error {
	logrus.WithFields(logrus.Fields{
		"devices":  devices,
		"selected": selected,
	}).Debug("device menu updated")
	return nil
}
