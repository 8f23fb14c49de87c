// Package version wraps semantic version range checks and the extraction of
// version numbers from the noisy output real tools print.
package version

import (
	"regexp"

	"github.com/Masterminds/semver/v3"
)

// Tools print versions in inconsistent shapes: "v18.17.1", "git version
// 2.39.2 (Apple Git-143)", "Python 3.11.4". The first parseable x.y[.z]
// substring wins; an optional pre-release or build suffix is kept.
var versionPattern = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z.-]+)?(?:\+[0-9A-Za-z.-]+)?`)

// Satisfies reports whether installed falls inside the required semver range.
// The range supports the standard constraint syntax: carets, tildes,
// comparator sets, hyphen ranges, and pre-release rules.
func Satisfies(installed, requiredRange string) (bool, error) {
	constraint, err := semver.NewConstraint(requiredRange)
	if err != nil {
		return false, err
	}

	v, err := semver.NewVersion(installed)
	if err != nil {
		return false, err
	}

	return constraint.Check(v), nil
}

// Coerce extracts the first parseable semantic version substring from raw
// tool output. The second return is false when no version could be found.
func Coerce(raw string) (string, bool) {
	for _, candidate := range versionPattern.FindAllString(raw, -1) {
		if v, err := semver.NewVersion(candidate); err == nil {
			return v.String(), true
		}
	}
	return "", false
}
