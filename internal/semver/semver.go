// Package semver provides the typed version value used across verso.
// Directory names are parsed into Versions exactly once, at the store's
// scan boundary; everything else passes the typed value around.
package semver

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var versionPattern = regexp.MustCompile(`^([0-9]+)\.([0-9]+)\.([0-9]+)$`)

// Version is a semantic version triple. The canonical string form is
// "major.minor.patch" with no leading prefix character.
type Version struct {
	Major, Minor, Patch int
}

// Parse parses a canonical version string like "1.9.3". Strings with a
// leading "v" or any other decoration are rejected; callers that accept
// user input should Normalize first.
func Parse(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("invalid version %q", s)
	}
	major, err := strconv.Atoi(m[1])
	if err != nil {
		return Version{}, fmt.Errorf("invalid major version: %w", err)
	}
	minor, err := strconv.Atoi(m[2])
	if err != nil {
		return Version{}, fmt.Errorf("invalid minor version: %w", err)
	}
	patch, err := strconv.Atoi(m[3])
	if err != nil {
		return Version{}, fmt.Errorf("invalid patch version: %w", err)
	}
	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

// Normalize strips a single leading "v" or "V" from a user-supplied
// version token and returns the remainder.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 0 && (s[0] == 'v' || s[0] == 'V') {
		return s[1:]
	}
	return s
}

// Valid reports whether s is a canonical version string.
func Valid(s string) bool {
	return versionPattern.MatchString(s)
}

// Compare returns -1, 0 or 1 ordering v against other numerically,
// field by field.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		return compareInt(v.Major, other.Major)
	}
	if v.Minor != other.Minor {
		return compareInt(v.Minor, other.Minor)
	}
	return compareInt(v.Patch, other.Patch)
}

// Less reports whether v orders before other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func compareInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// Sort orders versions ascending in place.
func Sort(versions []Version) {
	sort.Slice(versions, func(i, j int) bool { return versions[i].Less(versions[j]) })
}

// FromNames filters raw names down to the ones that parse as canonical
// versions and returns them sorted ascending. Names that do not match
// the three-integer dotted pattern are dropped silently.
func FromNames(names []string) []Version {
	versions := make([]Version, 0, len(names))
	for _, name := range names {
		v, err := Parse(name)
		if err != nil {
			continue
		}
		versions = append(versions, v)
	}
	Sort(versions)
	return versions
}
