package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/headsetmon/headsetmon/pkg/daemon"
	"github.com/headsetmon/headsetmon/pkg/version"
)

// NewDaemonCommand .
func NewDaemonCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "daemon",
		Short:   "Run headsetmon daemon in the foreground",
		GroupID: gAdvanced,
		Long: `Run the headsetmon daemon in the foreground.

The daemon polls headset battery telemetry and serves the status API on a
unix socket. It is normally started by a user service manager; running it
in the foreground is useful for debugging.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
			}).Info("headsetmon daemon starting")
			return daemon.Run(configPath, unixSocketPath)
		},
	}
}
