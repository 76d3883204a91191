package internal

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

var (
	Branch     = "main"
	Version    = "0.1.0"
	Prerelease = ""
	Metadata   = "dev"
	Commit     = ""
	Date       = ""
)

// FullVersion returns the full semver version string, however it also
// increments the patch version when working on a pre-release. This causes the
// right behavior for semver version comparisons while the next version is
// still unreleased.
func FullVersion() string {
	v, err := semver.NewVersion(Version)
	if err != nil {
		panic(fmt.Sprintf("invalid version %v: %v", Version, err))
	}

	prerelease := v.Prerelease()
	if prerelease == "" {
		prerelease = Prerelease
	}
	metadata := v.Metadata()
	if metadata == "" {
		metadata = Metadata
	}

	if metadata == "dev" {
		*v = v.IncPatch()
	}

	*v, _ = v.SetPrerelease(prerelease)
	*v, _ = v.SetMetadata(metadata)

	return v.String()
}
