package engine

import "entrematch/internal/domain"

// MaxFinalClusters caps a reconciled recommendation.
const MaxFinalClusters = 2

// ReconcileInput feeds one reconciliation run.
type ReconcileInput struct {
	// SectorTrack are the clusters voted from the ranked sectors.
	SectorTrack []string
	// PersonalityTrack are the clusters matched from the notations.
	PersonalityTrack []string
	// Mapping restricts every cluster to the working sectors it holds.
	Mapping []domain.ClusterSectors
	// Coverage are the user's top sectors that should be represented.
	Coverage []string
}

// Reconcile merges both tracks into at most two clusters.
//
// The seed is the intersection of the tracks, or their two leaders when they
// are disjoint; an empty track leaves the other as seed. Seeds without mapped
// sectors are dropped and each one is replaced by the candidate adding the most
// uncovered sectors. One more candidate is added when a coverage sector is
// still missing. Ties go to the earlier candidate, sector track first. When
// nothing survives the seed is returned as is.
func Reconcile(in ReconcileInput) []string {
	sectorSide := dedupe(in.SectorTrack)
	personSide := dedupe(in.PersonalityTrack)

	var seed []string
	switch {
	case len(sectorSide) == 0 && len(personSide) == 0:
		return nil
	case len(sectorSide) == 0:
		seed = personSide
	case len(personSide) == 0:
		seed = sectorSide
	default:
		seed = intersect(sectorSide, personSide)
		if len(seed) == 0 {
			seed = dedupe([]string{sectorSide[0], personSide[0]})
		}
	}

	mapping := make(map[string][]string, len(in.Mapping))
	for _, cs := range in.Mapping {
		if len(cs.Sectors) > 0 {
			mapping[cs.Cluster] = cs.Sectors
		}
	}

	chosen := make([]string, 0, len(seed)+2)
	for _, c := range seed {
		if _, ok := mapping[c]; ok {
			chosen = append(chosen, c)
		}
	}
	dropped := len(seed) - len(chosen)
	pool := dedupe(append(append([]string{}, sectorSide...), personSide...))

	for i := 0; i < dropped; i++ {
		covered := coveredBy(chosen, mapping)
		best := pickCandidate(pool, chosen, mapping, func(sectors []string) int {
			return len(sectors) - countIn(sectors, covered)
		})
		if best == "" {
			break
		}
		chosen = append(chosen, best)
	}

	covered := coveredBy(chosen, mapping)
	missing := make(map[string]struct{})
	for _, s := range in.Coverage {
		if _, ok := covered[s]; !ok {
			missing[s] = struct{}{}
		}
	}
	if len(missing) > 0 {
		best := pickCandidate(pool, chosen, mapping, func(sectors []string) int {
			return countIn(sectors, missing)
		})
		if best != "" {
			chosen = append(chosen, best)
		}
	}

	if len(chosen) == 0 {
		chosen = seed
	}
	if len(chosen) > MaxFinalClusters {
		chosen = chosen[:MaxFinalClusters]
	}
	return append([]string(nil), chosen...)
}

// pickCandidate returns the first pool entry not yet chosen, with mapped
// sectors, that maximises gain. A zero gain still qualifies.
func pickCandidate(pool, chosen []string, mapping map[string][]string, gain func([]string) int) string {
	taken := make(map[string]struct{}, len(chosen))
	for _, c := range chosen {
		taken[c] = struct{}{}
	}
	best, bestGain := "", -1
	for _, c := range pool {
		if _, ok := taken[c]; ok {
			continue
		}
		sectors, ok := mapping[c]
		if !ok {
			continue
		}
		if g := gain(sectors); g > bestGain {
			best, bestGain = c, g
		}
	}
	return best
}

func coveredBy(clusters []string, mapping map[string][]string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, c := range clusters {
		for _, s := range mapping[c] {
			out[s] = struct{}{}
		}
	}
	return out
}

func countIn(values []string, set map[string]struct{}) int {
	n := 0
	for _, v := range values {
		if _, ok := set[v]; ok {
			n++
		}
	}
	return n
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func intersect(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, v := range b {
		inB[v] = struct{}{}
	}
	var out []string
	for _, v := range a {
		if _, ok := inB[v]; ok {
			out = append(out, v)
		}
	}
	return out
}
