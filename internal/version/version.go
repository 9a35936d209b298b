package version

// Version is the current tubegrab version, overridable at build time via
// -ldflags "-X github.com/tubegrab/tubegrab/internal/version.Version=..."
var Version = "0.2.0"
