// Package version holds build-time version metadata for cmd/relcore.
package version

import (
	"fmt"
	"runtime"
)

// Version, Commit, and Date are set via -ldflags at release build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns a formatted one-line version string.
func Info() string {
	return fmt.Sprintf("relcore %s (commit: %s, built: %s) %s",
		Version, Commit, Date, runtime.Version())
}

// Short returns just the version string.
func Short() string {
	return Version
}
