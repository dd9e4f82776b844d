// Package buildinfo carries the version stamp injected at link time,
// e.g. -ldflags "-X finstim/internal/buildinfo.Version=v0.3.0".
package buildinfo

import "fmt"

var (
	// Version is the release tag, or "dev" for local builds.
	Version = "dev"
	// Commit is the short VCS revision.
	Commit = "unknown"
	// Date is the build timestamp.
	Date = "unknown"
)

// Short returns a compact identifier for logs: the version when
// stamped, the commit otherwise.
func Short() string {
	if Version != "dev" {
		return Version
	}
	if Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// String returns the full build description.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
