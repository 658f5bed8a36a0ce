package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/sfo/internal/version.Version=<tag>
	Commit  = "unknown" // -X github.com/arthur-debert/sfo/internal/version.Commit=<sha>
	Date    = "unknown" // -X github.com/arthur-debert/sfo/internal/version.Date=<date>
)

// String formats the build information on one line.
func String() string {
	return fmt.Sprintf("sfo %s (commit %s, built %s)", Version, Commit, Date)
}
