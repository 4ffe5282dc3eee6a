// Package version holds the application version string, overridable at build
// time via -ldflags "-X .../internal/version.Version=v1.2.3".
package version

// Version is the application version.
var Version = "dev"
