package engine

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"entrematch/internal/catalog"
	"entrematch/internal/domain"
)

const personalityTopN = 5

// PersonalityRanking is the symbolic match of the clusters against a notation set.
type PersonalityRanking struct {
	Top    []domain.ScoredName
	Winner string
	Score  float64
}

// ScoreCluster is the fraction of traits whose notation the signature accepts.
func ScoreCluster(notations domain.NotationSet, cl catalog.Cluster) float64 {
	matches := 0
	for _, t := range domain.Traits {
		if acceptsNotation(cl.Accepted(t), notations[t]) {
			matches++
		}
	}
	return float64(matches) / float64(len(domain.Traits))
}

func acceptsNotation(accepted []domain.Notation, n domain.Notation) bool {
	for _, a := range accepted {
		if a == n {
			return true
		}
	}
	return false
}

// NotationVector encodes a notation set in O, C, E, A, N order.
func NotationVector(notations domain.NotationSet) []float64 {
	out := make([]float64, len(domain.Traits))
	for i, t := range domain.Traits {
		out[i] = notations[t].Value()
	}
	return out
}

// SignatureVector encodes a cluster signature; alternatives are averaged.
func SignatureVector(cl catalog.Cluster) []float64 {
	out := make([]float64, len(domain.Traits))
	for i, t := range domain.Traits {
		accepted := cl.Accepted(t)
		if len(accepted) == 0 {
			continue
		}
		values := make([]float64, len(accepted))
		for j, n := range accepted {
			values[j] = n.Value()
		}
		out[i] = mean(values)
	}
	return out
}

// RankClusters scores every cluster, keeps the best five and picks a winner.
// Clusters tied at the top score are separated by the distance between the
// user's notation vector and their signature vector; the first closest wins.
func RankClusters(notations domain.NotationSet, clusters []catalog.Cluster) PersonalityRanking {
	if len(clusters) == 0 {
		return PersonalityRanking{}
	}
	scored := make([]domain.ScoredName, len(clusters))
	byName := make(map[string]catalog.Cluster, len(clusters))
	for i, cl := range clusters {
		scored[i] = domain.ScoredName{Name: cl.Name, Score: ScoreCluster(notations, cl)}
		byName[cl.Name] = cl
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > personalityTopN {
		scored = scored[:personalityTopN]
	}

	ranking := PersonalityRanking{Top: scored, Score: scored[0].Score}
	var tied []string
	for _, s := range scored {
		if s.Score == ranking.Score {
			tied = append(tied, s.Name)
		}
	}
	if len(tied) == 1 {
		ranking.Winner = tied[0]
		return ranking
	}

	user := NotationVector(notations)
	best := math.Inf(1)
	for _, name := range tied {
		d := floats.Distance(user, SignatureVector(byName[name]), 2)
		if d < best {
			best = d
			ranking.Winner = name
		}
	}
	return ranking
}

// BestClusters returns every cluster tied at the highest score, or nothing
// when that score is 0.
func BestClusters(top []domain.ScoredName) []string {
	highest := 0.0
	for _, s := range top {
		if s.Score > highest {
			highest = s.Score
		}
	}
	if highest == 0 {
		return nil
	}
	var out []string
	for _, s := range top {
		if s.Score == highest {
			out = append(out, s.Name)
		}
	}
	return out
}

// ClustersWithSectors lists, for each named cluster, its members found in
// sectors. Members keep catalog order; clusters without a match are omitted.
func ClustersWithSectors(names, sectors []string, cat *catalog.Catalog) []domain.ClusterSectors {
	in := make(map[string]struct{}, len(sectors))
	for _, s := range sectors {
		in[s] = struct{}{}
	}
	var out []domain.ClusterSectors
	for _, name := range names {
		cl, ok := cat.Cluster(name)
		if !ok {
			continue
		}
		var matched []string
		for _, m := range cl.Members {
			if _, ok := in[m]; ok {
				matched = append(matched, m)
			}
		}
		if len(matched) > 0 {
			out = append(out, domain.ClusterSectors{Cluster: name, Sectors: matched})
		}
	}
	return out
}

// Names strips the scores from a scored list.
func Names(scored []domain.ScoredName) []string {
	out := make([]string, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.Name)
	}
	return out
}
