package gui

import (
	"github.com/spf13/cobra"
)

func NewGUICommand(unixSocketPath string, groupID string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gui",
		Short:   "Start the headsetmon tray icon",
		GroupID: groupID,
		Long: `Start the headsetmon tray icon.

The tray icon renders the state of the headsetmon daemon. Start the daemon first
(headsetmon daemon) or the icon will show as offline.`,
		Run: func(_ *cobra.Command, _ []string) {
			Run(unixSocketPath)
		},
	}

	return cmd
}
