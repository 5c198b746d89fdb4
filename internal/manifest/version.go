package manifest

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CompatibleVersion reports whether a manifest with the given version can
// be consumed by this build: the major version must match the supported
// Version. Minor and patch differences are accepted.
func CompatibleVersion(v string) error {
	have, err := parseSemver(v)
	if err != nil {
		return fmt.Errorf("parsing manifest version %q: %w", v, err)
	}
	want, err := parseSemver(Version)
	if err != nil {
		return fmt.Errorf("parsing supported version %q: %w", Version, err)
	}

	if have.Major() != want.Major() {
		return fmt.Errorf("manifest version %s is not compatible with supported version %s", v, Version)
	}
	return nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}
