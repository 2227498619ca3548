package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/dotf/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/dotf/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/dotf/internal/version.Date={{.Date}}
)

// String renders the build information as printed by `dotf version`
func String() string {
	return fmt.Sprintf("dotf version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
