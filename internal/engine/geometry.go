package engine

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"entrematch/internal/catalog"
	"entrematch/internal/domain"
)

var levelCode = map[domain.Level]float64{
	domain.LevelLow:      0,
	domain.LevelMidLow:   1,
	domain.LevelMidHigh:  2,
	domain.LevelHigh:     3,
	domain.LocusExternal: 0,
	domain.LocusInternal: 1,
}

// EncodeLevels returns [SE, INN, NACH, LOC] on the prototype scale.
func EncodeLevels(levels domain.LevelSet) []float64 {
	out := make([]float64, len(domain.RuleDimensions))
	for i, dim := range domain.RuleDimensions {
		out[i] = levelCode[levels.Get(dim)]
	}
	return out
}

// MatchScore is the display percentage for a prototype distance.
func MatchScore(distance float64) int {
	return int(100 / (1 + distance))
}

// RankByDistance orders candidates by Euclidean distance to their prototype.
// Ties keep candidate order. A single candidate is returned at distance 0;
// candidates without a prototype are skipped. best holds every sector tied
// at the minimum distance.
func RankByDistance(candidates []string, user []float64, cat *catalog.Catalog) (ranked []domain.RankedSector, best []string) {
	switch len(candidates) {
	case 0:
		return nil, nil
	case 1:
		return []domain.RankedSector{{Name: candidates[0], Match: MatchScore(0)}}, []string{candidates[0]}
	}

	for _, name := range candidates {
		sector, ok := cat.Sector(name)
		if !ok || len(sector.Prototype) != len(user) {
			continue
		}
		d := floats.Distance(user, sector.Prototype, 2)
		ranked = append(ranked, domain.RankedSector{Name: name, Distance: d, Match: MatchScore(d)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})
	if len(ranked) == 0 {
		return nil, nil
	}
	nearest := ranked[0].Distance
	for _, r := range ranked {
		if math.Abs(r.Distance-nearest) > 1e-9 {
			break
		}
		best = append(best, r.Name)
	}
	return ranked, best
}

// TopSectors returns the names of the first n ranked sectors.
func TopSectors(ranked []domain.RankedSector, n int) []string {
	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]string, 0, n)
	for _, r := range ranked[:n] {
		out = append(out, r.Name)
	}
	return out
}
