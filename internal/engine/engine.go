// Package engine turns questionnaire answers into sector and cluster
// recommendations. Every function is pure; empty outcomes are empty slices.
package engine

import (
	"time"

	"entrematch/internal/catalog"
	"entrematch/internal/domain"
)

const (
	workingSectors = 3
	votingSectors  = 5
	hybridClusters = 3
)

// Engine runs both recommendation methods over one catalog.
type Engine struct {
	cat *catalog.Catalog
}

func New(cat *catalog.Catalog) *Engine {
	return &Engine{cat: cat}
}

func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

// Assess runs the trait, rule, distance and symbolic stages shared by both methods.
func (e *Engine) Assess(sheet domain.AnswerSheet) domain.Assessment {
	entScores, entDone := AggregateEntrepreneur(sheet.Entrepreneurial, e.cat.SectionQuestions(domain.SectionEntrepreneurial))
	perScores, perDone := AggregatePersonality(sheet.Personality, e.cat.SectionQuestions(domain.SectionPersonality))

	levels := CategorizeAll(entScores)
	notations := NotateAll(perScores)
	code := EncodeLevels(levels)
	candidates := BroadMatch(levels, e.cat.Rules)
	ranked, _ := RankByDistance(candidates, code, e.cat)
	personality := RankClusters(notations, e.cat.Clusters)

	return domain.Assessment{
		Entrepreneur:     entScores,
		Personality:      perScores,
		Levels:           levels,
		Notations:        notations,
		EntrepreneurCode: code,
		PersonalityCode:  NotationVector(notations),
		Completeness: map[domain.Section]domain.AnswerCompleteness{
			domain.SectionEntrepreneurial: entDone,
			domain.SectionPersonality:     perDone,
		},
		LowConfidence:     !entDone.Complete() || !perDone.Complete(),
		Candidates:        candidates,
		RankedSectors:     ranked,
		PersonalityRanked: personality.Top,
		PersonalityWinner: personality.Winner,
	}
}

// Single votes over the distance top five and reconciles with every
// personality cluster tied at the best symbolic score.
func (e *Engine) Single(a domain.Assessment) domain.Recommendation {
	top := TopSectors(a.RankedSectors, workingSectors)
	weights := Vote(TopSectors(a.RankedSectors, votingSectors), e.cat.Clusters)
	persona := BestClusters(a.PersonalityRanked)

	rec := domain.Recommendation{
		Method:              domain.MethodSingle,
		TopSectors:          top,
		ClusterWeights:      weights,
		SectorClusters:      Winners(weights),
		SectorMapping:       SectorsPerCluster(top, e.cat.Clusters),
		PersonalityClusters: persona,
		PersonalityAudit:    ClustersWithSectors(Names(a.PersonalityRanked), top, e.cat),
	}
	return e.finish(rec, a)
}

// Hybrid re-ranks the distance top five sectors and the symbolic top three
// clusters against the narrative of the answers, then reconciles. Each
// text ranking falls back to its geometric counterpart when empty.
func (e *Engine) Hybrid(a domain.Assessment, sheet domain.AnswerSheet) domain.Recommendation {
	sectorSim := TFIDFRank(e.narrative(sheet, domain.SectionEntrepreneurial), e.sectorDocuments(TopSectors(a.RankedSectors, votingSectors)), workingSectors)
	top := Names(sectorSim)
	if len(top) == 0 {
		top = TopSectors(a.RankedSectors, workingSectors)
	}
	weights := Vote(top, e.cat.Clusters)

	symbolic := a.PersonalityRanked
	if len(symbolic) > hybridClusters {
		symbolic = symbolic[:hybridClusters]
	}
	clusterSim := TFIDFRank(e.narrative(sheet, domain.SectionPersonality), e.clusterDocuments(Names(symbolic)), hybridClusters)

	var persona []string
	audited := Names(clusterSim)
	switch {
	case len(clusterSim) > 0:
		persona = []string{clusterSim[0].Name}
	case a.PersonalityWinner != "":
		persona = []string{a.PersonalityWinner}
		audited = Names(symbolic)
	}

	rec := domain.Recommendation{
		Method:                domain.MethodHybrid,
		TopSectors:            top,
		SectorSimilarity:      sectorSim,
		ClusterWeights:        weights,
		SectorClusters:        Winners(weights),
		SectorMapping:         SectorsPerCluster(top, e.cat.Clusters),
		PersonalityClusters:   persona,
		PersonalitySimilarity: clusterSim,
		PersonalityAudit:      ClustersWithSectors(audited, top, e.cat),
	}
	return e.finish(rec, a)
}

func (e *Engine) finish(rec domain.Recommendation, a domain.Assessment) domain.Recommendation {
	rec.Clusters = Reconcile(ReconcileInput{
		SectorTrack:      rec.SectorClusters,
		PersonalityTrack: rec.PersonalityClusters,
		Mapping:          rec.SectorMapping,
		Coverage:         rec.TopSectors,
	})
	rec.SectorComparison = CompareSectors(rec.TopSectors, a.Levels, e.cat.Rules)
	rec.ClusterComparison = CompareClusters(rec.Clusters, a.Notations, e.cat)
	return rec
}

// Recommend runs the full pipeline for one answer sheet.
func (e *Engine) Recommend(sheet domain.AnswerSheet, now time.Time) domain.RecommendationSet {
	a := e.Assess(sheet)
	return domain.RecommendationSet{
		ProfileID:  sheet.ProfileID,
		Assessment: a,
		Single:     e.Single(a),
		Hybrid:     e.Hybrid(a, sheet),
		CreatedAt:  now,
	}
}

func (e *Engine) sectorDocuments(names []string) []Document {
	docs := make([]Document, 0, len(names))
	for _, n := range names {
		s, _ := e.cat.Sector(n)
		docs = append(docs, Document{Name: n, Text: s.Description})
	}
	return docs
}

func (e *Engine) clusterDocuments(names []string) []Document {
	docs := make([]Document, 0, len(names))
	for _, n := range names {
		c, _ := e.cat.Cluster(n)
		docs = append(docs, Document{Name: n, Text: c.Description})
	}
	return docs
}

func (e *Engine) narrative(sheet domain.AnswerSheet, section domain.Section) string {
	return Narrate(sheet.Section(section), e.cat.SectionQuestions(section), e.cat.SectionTemplates(section))
}
