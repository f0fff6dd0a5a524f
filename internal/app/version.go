package app

import "fmt"

// Build metadata, overridden at link time:
//
//	go build -ldflags "-X github.com/agbru/pisanocalc/internal/app.Version=v1.2.0"
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// VersionString renders the version line printed by --version.
func VersionString() string {
	if Commit == "none" && BuildDate == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate)
}
