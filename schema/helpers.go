package schema

import (
	"strings"
	"unicode"
)

// ShortName formats "Bruno Fernandes" to "B. Fernandes", the way names appear on a team sheet.
// Single-word names such as "Casemiro" are returned unchanged.
func ShortName(name string) string {
	parts := strings.Fields(strings.TrimSpace(name))
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}

	first := []rune(parts[0])
	last := strings.Join(parts[1:], " ")
	if !unicode.IsLetter(first[0]) {
		return strings.Join(parts, " ")
	}
	return string(unicode.ToUpper(first[0])) + ". " + last
}

// NormalizeStatKey maps a loosely formatted column header onto a StatKey.
// "xG_p90", " XG_P90 " and "xg-p90" all map to StatXG.
func NormalizeStatKey(header string) StatKey {
	h := strings.ToLower(strings.TrimSpace(header))
	h = strings.ReplaceAll(h, "-", "_")
	h = strings.ReplaceAll(h, " ", "_")
	return StatKey(h)
}

// IndexOfStat returns the column of stat in stats, or -1.
func IndexOfStat(stats []StatKey, stat StatKey) int {
	for i, s := range stats {
		if s == stat {
			return i
		}
	}
	return -1
}
