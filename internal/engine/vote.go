package engine

import (
	"sort"

	"entrematch/internal/catalog"
	"entrematch/internal/domain"
)

// positionWeights are the votes of ranks 1..5; later ranks vote 0.
var positionWeights = []int{5, 4, 3, 2, 1}

// Vote adds each ranked sector's positional weight to every cluster that
// contains it. Weights are returned sorted descending; ties keep catalog order.
func Vote(ranked []string, clusters []catalog.Cluster) []domain.ClusterWeight {
	weights := make([]domain.ClusterWeight, len(clusters))
	for i, cl := range clusters {
		weights[i].Name = cl.Name
	}
	for pos, sector := range ranked {
		if pos >= len(positionWeights) {
			break
		}
		for i, cl := range clusters {
			if cl.HasMember(sector) {
				weights[i].Weight += positionWeights[pos]
			}
		}
	}
	sort.SliceStable(weights, func(i, j int) bool {
		return weights[i].Weight > weights[j].Weight
	})
	return weights
}

// Winners returns every cluster tied at the highest weight. A table with no
// positive weight has no winner.
func Winners(weights []domain.ClusterWeight) []string {
	top := 0
	for _, w := range weights {
		if w.Weight > top {
			top = w.Weight
		}
	}
	if top == 0 {
		return nil
	}
	var out []string
	for _, w := range weights {
		if w.Weight == top {
			out = append(out, w.Name)
		}
	}
	return out
}

// SectorsPerCluster groups the given sectors under each cluster that holds
// them, in catalog order. Clusters without a matched sector are omitted.
func SectorsPerCluster(sectors []string, clusters []catalog.Cluster) []domain.ClusterSectors {
	var out []domain.ClusterSectors
	for _, cl := range clusters {
		var matched []string
		for _, s := range sectors {
			if cl.HasMember(s) {
				matched = append(matched, s)
			}
		}
		if len(matched) > 0 {
			out = append(out, domain.ClusterSectors{Cluster: cl.Name, Sectors: matched})
		}
	}
	return out
}
