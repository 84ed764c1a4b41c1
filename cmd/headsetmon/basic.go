package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/headsetmon/headsetmon/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)

			if daemonVersion, err := apiClient.GetVersion(); err == nil {
				if daemonVersion != version.Version {
					cmd.Printf("daemon: %s (version mismatch)\n", daemonVersion)
				}
			}
		},
	}
}

func NewDevicesCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "devices",
		Short:   "List known headsets",
		GroupID: gBasic,
		Long: `List the headsets the daemon saw on its last poll.

The index in the first column is what 'headsetmon select' takes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := apiClient.GetStatus()
			if err != nil {
				return fmt.Errorf("failed to get status: %v", err)
			}

			if len(st.Devices) == 0 {
				cmd.Println("No headsets found.")
				return nil
			}

			for i, d := range st.Devices {
				marker := " "
				if i == st.SelectedIndex {
					marker = "*"
				}
				cmd.Printf("%s %d  %s\n", marker, i, d.String())
			}

			return nil
		},
	}
}

func NewSelectCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "select [index]",
		Short:   "Select which headset the tray shows",
		GroupID: gBasic,
		Long: `Select which headset the tray icon and tooltip track.

The index comes from 'headsetmon devices'. If the selected headset later
disappears, the selection snaps to the nearest remaining one.`,
		RunE: func(_ *cobra.Command, args []string) error {
			index, err := parseIntArg(args, "device index")
			if err != nil {
				return err
			}

			ret, err := apiClient.SetSelected(index)
			if err != nil {
				return fmt.Errorf("failed to select device: %v", err)
			}

			if ret != "" {
				logrus.Debugf("daemon responded: %s", ret)
			}

			logrus.Infof("successfully selected device %d", index)

			return nil
		},
	}
}

func NewNotificationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Short:   "Enable or disable battery notifications",
		GroupID: gBasic,
		Long: `Enable or disable desktop notifications.

When enabled, the daemon notifies on low battery, critical battery, charging
started and full charge. Transition detection keeps running while disabled,
so enabling does not replay stale alerts.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "enable",
			Short: "Enable battery notifications",
			RunE: func(_ *cobra.Command, _ []string) error {
				ret, err := apiClient.SetNotifications(true)
				if err != nil {
					return fmt.Errorf("failed to enable notifications: %v", err)
				}

				if ret != "" {
					logrus.Debugf("daemon responded: %s", ret)
				}

				logrus.Infof("successfully enabled notifications")

				return nil
			},
		},
		&cobra.Command{
			Use:   "disable",
			Short: "Disable battery notifications",
			RunE: func(_ *cobra.Command, _ []string) error {
				ret, err := apiClient.SetNotifications(false)
				if err != nil {
					return fmt.Errorf("failed to disable notifications: %v", err)
				}

				if ret != "" {
					logrus.Debugf("daemon responded: %s", ret)
				}

				logrus.Infof("successfully disabled notifications")

				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Get the current notification setting",
			RunE: func(_ *cobra.Command, _ []string) error {
				st, err := apiClient.GetStatus()
				if err != nil {
					return fmt.Errorf("failed to get status: %v", err)
				}

				if st.NotificationsEnabled {
					logrus.Infof("notifications are enabled")
				} else {
					logrus.Infof("notifications are disabled")
				}

				return nil
			},
		},
	)

	return cmd
}
