package keys

import (
	"sort"
	"strings"
)

// ID produces the canonical reference-data key for a display name or id.
// Behavior: trims, lower-cases, and replaces spaces and dashes with
// underscores, so "Fire Fang", "fire-fang" and " fire_fang " all map to
// "fire_fang".
func ID(name string) string {
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return strings.ToLower(s)
}

// TypeSetKey produces a canonical key for a defender's type combination.
// Empty entries are dropped and the parts are sorted, so the key does not
// depend on the order types were listed in. Suitable as a cache key.
func TypeSetKey(types []string) string {
	parts := make([]string, 0, len(types))
	for _, t := range types {
		s := ID(t)
		if s == "" {
			continue
		}
		parts = append(parts, s)
	}
	sort.Strings(parts)
	return strings.Join(parts, "+")
}

// MatchupKey identifies one attacking type against one defending type
// combination, e.g. "water>fire+rock".
func MatchupKey(attacking string, defending []string) string {
	return ID(attacking) + ">" + TypeSetKey(defending)
}
