package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/dotflex/dotflex/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/dotflex/dotflex/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/dotflex/dotflex/internal/version.Date={{.Date}}
)

// String formats the build information for the version command
func String() string {
	return fmt.Sprintf("dotflex %s (commit %s, built %s)", Version, Commit, Date)
}
