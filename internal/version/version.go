// Package version reports the build version of the scriptmeta binary.
package version

import (
	"fmt"
	"strings"
)

// Version is set via ldflags at build time:
// -ldflags "-X github.com/Alia5/scriptmeta/internal/version.Version=x.y.z"
var Version = ""

const devVersion = "0.0.1-dev"

// Get returns the build version without a leading "v", or a dev marker for
// builds without ldflags.
func Get() (string, error) {
	if Version == "" {
		return devVersion, nil
	}
	return normalize(Version)
}

func normalize(v string) (string, error) {
	v = strings.TrimPrefix(v, "v")
	base := strings.SplitN(v, "-", 2)[0]
	if !strings.Contains(base, ".") {
		return "", fmt.Errorf("invalid version format: %s (expected x.y.z)", v)
	}
	return v, nil
}

// String returns Get's result, falling back to the raw value when it is
// malformed.
func String() string {
	v, err := Get()
	if err != nil {
		return Version
	}
	return v
}
