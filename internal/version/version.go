// Package version carries build identity, overridable via ldflags.
package version

const AppName = "Server Scribe"

var (
	Version   = "dev"
	BuildDate = "unknown"
)
