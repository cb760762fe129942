package internal

// VersionInfo contains version and Git commit information.
type VersionInfo struct {
	Version string
	Commit  string
}

// Version is overridden at build time via -ldflags.
var Version = &VersionInfo{Version: "0.1.0"}
