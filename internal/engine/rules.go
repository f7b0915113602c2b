package engine

import (
	"sort"

	"entrematch/internal/catalog"
	"entrematch/internal/domain"
)

// BroadMatch unions the rule cells selected by the user's levels.
// The result is sorted by name and may be empty.
func BroadMatch(levels domain.LevelSet, rules catalog.Rules) []string {
	seen := make(map[string]struct{})
	for _, dim := range domain.RuleDimensions {
		for _, sector := range rules[dim][levels.Get(dim)] {
			seen[sector] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// TargetLevel returns the first level, strongest first, whose rule cell for
// dimension lists the sector. Empty when no cell does.
func TargetLevel(dimension, sector string, rules catalog.Rules) domain.Level {
	order := domain.Levels
	if dimension == domain.DimensionLocus {
		order = []domain.Level{domain.LocusInternal, domain.LocusExternal}
	}
	for _, level := range order {
		for _, s := range rules[dimension][level] {
			if s == sector {
				return level
			}
		}
	}
	return ""
}
