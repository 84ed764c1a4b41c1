// Package version holds build metadata, overridden at link time:
//
//	go build -ldflags "-X github.com/headsetmon/headsetmon/pkg/version.Version=v1.2.3"
package version

var (
	Version   = "dev"
	GitCommit = "unknown"
)
