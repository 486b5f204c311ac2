package update

import (
	"fmt"
	"strconv"
	"strings"
)

// CompareVersions compares two dot-separated numeric versions. It returns a
// negative number when v1 is older than v2, zero when equal and a positive
// number when newer. Segments are compared numerically left to right; when
// all shared segments match the version with more segments wins.
func CompareVersions(v1, v2 string) (int, error) {
	parts1, err := splitVersion(v1)
	if err != nil {
		return 0, err
	}
	parts2, err := splitVersion(v2)
	if err != nil {
		return 0, err
	}

	for i := 0; i < len(parts1) && i < len(parts2); i++ {
		if parts1[i] != parts2[i] {
			if parts1[i] < parts2[i] {
				return -1, nil
			}
			return 1, nil
		}
	}
	switch {
	case len(parts1) < len(parts2):
		return -1, nil
	case len(parts1) > len(parts2):
		return 1, nil
	}
	return 0, nil
}

func splitVersion(v string) ([]int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, fmt.Errorf("empty version string")
	}
	segments := strings.Split(v, ".")
	parts := make([]int, 0, len(segments))
	for _, s := range segments {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("invalid version %q: %w", v, err)
		}
		parts = append(parts, n)
	}
	return parts, nil
}
