package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/headsetmon/headsetmon/pkg/config"
	"github.com/headsetmon/headsetmon/pkg/headset"
	"github.com/headsetmon/headsetmon/pkg/monitor"
)

type statusData struct {
	status *monitor.Status
	config *config.RawFileConfig
}

// fetchStatusData gathers all data required for the status command from the daemon.
func fetchStatusData() (*statusData, error) {
	st, err := apiClient.GetStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	conf, err := apiClient.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}

	return &statusData{
		status: st,
		config: conf,
	}, nil
}

func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		GroupID: gBasic,
		Short:   "Get the current status of headsetmon",
		Long:    `Get headset battery levels and the daemon configuration.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := fetchStatusData()
			if err != nil {
				return err
			}

			conf := config.NewFileFromConfig(data.config, "")
			st := data.status

			cmd.Println(bold("Headsets:"))
			if len(st.Devices) == 0 {
				cmd.Println("  No headsets found.")
			}
			for i, d := range st.Devices {
				marker := " "
				if i == st.SelectedIndex {
					marker = "*"
				}
				cmd.Printf("  %s %s\n", marker, deviceLine(d))
			}

			cmd.Println()

			cmd.Println(bold("Tray:"))
			cmd.Printf("  Tooltip: %s\n", bold("%s", st.Tooltip))
			cmd.Printf("  Icon: %s (theme: %s)\n", bold("%d", st.IconID), st.Theme)
			cmd.Printf("  Last update: %s\n", bold("%s", st.UpdatedAt.Format("15:04:05")))

			cmd.Println()

			cmd.Println(bold("Configuration:"))
			cmd.Printf("  Telemetry source: %s\n", bold("%s", st.Source))
			cmd.Printf("  Poll interval: %s\n", bold("%s", conf.PollInterval()))
			cmd.Printf("  Notifications: %s\n", bool2Text(st.NotificationsEnabled))
			cmd.Printf("  Low battery threshold: %s\n", bold("%d%%", conf.LowBatteryThreshold()))
			cmd.Printf("  Critical battery threshold: %s\n", bold("%d%%", conf.CriticalBatteryThreshold()))
			if schedule := conf.ReportSchedule(); schedule != "" {
				cmd.Printf("  Battery report schedule: %s\n", bold("%s", schedule))
			}

			return nil
		},
	}
}

func deviceLine(d headset.Device) string {
	switch d.Battery.Status {
	case headset.BatteryCharging:
		return fmt.Sprintf("%s: %s", d.Product, color.GreenString("%d%% charging", d.Battery.Level))
	case headset.BatteryAvailable:
		if d.Battery.Level >= 0 && d.Battery.Level <= 10 {
			return fmt.Sprintf("%s: %s", d.Product, color.RedString("%d%%", d.Battery.Level))
		}
		return fmt.Sprintf("%s: %s", d.Product, bold("%d%%", d.Battery.Level))
	case headset.BatteryDisconnected:
		return fmt.Sprintf("%s: disconnected", d.Product)
	default:
		return fmt.Sprintf("%s: battery unavailable", d.Product)
	}
}

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
