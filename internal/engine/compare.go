package engine

import (
	"entrematch/internal/catalog"
	"entrematch/internal/domain"
)

// CompareSectors sets the user's level beside each sector's rule level.
func CompareSectors(sectors []string, levels domain.LevelSet, rules catalog.Rules) []domain.SectorComparison {
	out := make([]domain.SectorComparison, 0, len(sectors))
	for _, s := range sectors {
		cmp := domain.SectorComparison{Sector: s}
		for _, dim := range domain.RuleDimensions {
			user := levels.Get(dim)
			target := TargetLevel(dim, s, rules)
			cmp.Dimensions = append(cmp.Dimensions, domain.DimensionComparison{
				Dimension: dim,
				User:      user,
				Target:    target,
				Match:     target != "" && target == user,
			})
		}
		out = append(out, cmp)
	}
	return out
}

// CompareClusters sets the user's notation beside each cluster's signature.
func CompareClusters(clusters []string, notations domain.NotationSet, cat *catalog.Catalog) []domain.ClusterComparison {
	out := make([]domain.ClusterComparison, 0, len(clusters))
	for _, name := range clusters {
		cl, ok := cat.Cluster(name)
		if !ok {
			continue
		}
		cmp := domain.ClusterComparison{Cluster: name}
		for _, t := range domain.Traits {
			accepted := cl.Accepted(t)
			cmp.Traits = append(cmp.Traits, domain.TraitComparison{
				Trait:    t,
				User:     notations[t],
				Accepted: accepted,
				Match:    acceptsNotation(accepted, notations[t]),
			})
		}
		out = append(out, cmp)
	}
	return out
}
