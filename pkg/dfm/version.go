package dfm

import (
	"fmt"
)

const (
	// VersionMajor represents the current major version.
	VersionMajor = 0
	// VersionMinor represents the current minor version.
	VersionMinor = 1
	// VersionPatch represents the current patch version.
	VersionPatch = 0
)

// Version is the human-readable version string, computed once at startup.
var Version string

func init() {
	Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
}
