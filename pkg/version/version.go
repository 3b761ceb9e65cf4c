// Package version carries build metadata stamped in via -ldflags.
package version

// Set at build time:
//
//	go build -ldflags "-X .../pkg/version.Version=v1.2.3 ..."
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
