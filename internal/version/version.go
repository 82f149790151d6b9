package version

// Version is the application version, set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/showcase/internal/version.Version=v1.0.0".
var Version = "dev"

// Build metadata, also set through ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String returns the version with the commit when known.
func String() string {
	if GitCommit == "unknown" || GitCommit == "" {
		return Version
	}
	return Version + " (" + GitCommit + ")"
}
