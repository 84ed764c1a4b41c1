package client

import "errors"

// Sentinel errors the CLI and GUI branch on. Anything else from the client
// is surfaced as-is.
var (
	// ErrDaemonNotRunning means the unix socket does not exist.
	ErrDaemonNotRunning = errors.New("daemon not running")

	// ErrPermissionDenied means the socket exists but is owned by someone
	// else, typically a daemon started as a different user.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound means the daemon answered 404, usually a version skew
	// between client and daemon.
	ErrNotFound = errors.New("404 not found")
)
