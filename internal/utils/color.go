package utils

import "strings"

// DefaultCollectionColor is used when a collection is created without a
// usable color code.
const DefaultCollectionColor = "#808080"

// NormalizeHexColor trims and uppercases a hex color string and validates it
// as "#RRGGBB" or "#AARRGGBB". Returns the normalized color and true, or
// ("", false) when the input is not a valid hex color.
// Example: " #dc143c " -> "#DC143C"
func NormalizeHexColor(color string) (string, bool) {
	color = strings.ToUpper(strings.TrimSpace(color))
	if len(color) != 7 && len(color) != 9 {
		return "", false
	}
	if color[0] != '#' {
		return "", false
	}
	for _, c := range color[1:] {
		if (c < '0' || c > '9') && (c < 'A' || c > 'F') {
			return "", false
		}
	}
	return color, true
}

// CollectionColor normalizes a color code for storage, falling back to
// DefaultCollectionColor when the input is blank or invalid.
func CollectionColor(color string) string {
	if normalized, ok := NormalizeHexColor(color); ok {
		return normalized
	}
	return DefaultCollectionColor
}
