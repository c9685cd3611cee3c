package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/cmdcorrect/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/cmdcorrect/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/cmdcorrect/internal/version.Date={{.Date}}
)
