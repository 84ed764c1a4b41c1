package daemon

import (
	"github.com/sirupsen/logrus"

	"github.com/headsetmon/headsetmon/pkg/monitor"
)

// batteryReport returns a scheduler task that logs a battery summary for
// every known device. Useful for long-running sessions where the tray is
// not watched, e.g. to grep charge history out of the journal.
func batteryReport(m *monitor.Monitor) TaskFunc {
	return func() error {
		st := m.Status()

		if len(st.Devices) == 0 {
			logrus.WithField("source", st.Source).Info("battery report: no devices")
			return nil
		}

		for i, d := range st.Devices {
			logrus.WithFields(logrus.Fields{
				"device":   d.Product,
				"level":    d.Battery.Level,
				"status":   d.Battery.Status,
				"selected": i == st.SelectedIndex,
			}).Info("battery report")
		}
		return nil
	}
}
