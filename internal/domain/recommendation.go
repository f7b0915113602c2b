package domain

import "time"

// Method names one of the two scoring strategies.
type Method string

const (
	MethodSingle Method = "single"
	MethodHybrid Method = "hybrid"
)

// Methods is the fixed presentation order.
var Methods = []Method{MethodSingle, MethodHybrid}

func (m Method) Valid() bool {
	return m == MethodSingle || m == MethodHybrid
}

// RankedSector is a candidate sector with its prototype distance.
// Match is the display score 100/(1+distance).
type RankedSector struct {
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`
	Match    int     `json:"match"`
}

// ScoredName pairs a sector or cluster name with a similarity or match score.
type ScoredName struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

type ClusterWeight struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// ClusterSectors lists the sectors of one cluster that fall in a working set.
type ClusterSectors struct {
	Cluster string   `json:"cluster"`
	Sectors []string `json:"sectors"`
}

type DimensionComparison struct {
	Dimension string `json:"dimension"`
	User      Level  `json:"user"`
	Target    Level  `json:"target,omitempty"`
	Match     bool   `json:"match"`
}

type SectorComparison struct {
	Sector     string                `json:"sector"`
	Dimensions []DimensionComparison `json:"dimensions"`
}

type TraitComparison struct {
	Trait    Trait      `json:"trait"`
	User     Notation   `json:"user"`
	Accepted []Notation `json:"accepted"`
	Match    bool       `json:"match"`
}

type ClusterComparison struct {
	Cluster string            `json:"cluster"`
	Traits  []TraitComparison `json:"traits"`
}

// Assessment is the trait stage output shared by both methods.
type Assessment struct {
	Entrepreneur      EntrepreneurScores             `json:"entrepreneur"`
	Personality       PersonalityScores              `json:"personality"`
	Levels            LevelSet                       `json:"levels"`
	Notations         NotationSet                    `json:"notations"`
	EntrepreneurCode  []float64                      `json:"entrepreneur_code"`
	PersonalityCode   []float64                      `json:"personality_code"`
	Completeness      map[Section]AnswerCompleteness `json:"completeness"`
	LowConfidence     bool                           `json:"low_confidence"`
	Candidates        []string                       `json:"candidates"`
	RankedSectors     []RankedSector                 `json:"ranked_sectors"`
	PersonalityRanked []ScoredName                   `json:"personality_ranked"`
	PersonalityWinner string                         `json:"personality_winner,omitempty"`
}

// Recommendation is the output of one method.
type Recommendation struct {
	Method                Method              `json:"method"`
	TopSectors            []string            `json:"top_sectors"`
	SectorSimilarity      []ScoredName        `json:"sector_similarity,omitempty"`
	ClusterWeights        []ClusterWeight     `json:"cluster_weights"`
	SectorClusters        []string            `json:"sector_clusters"`
	SectorMapping         []ClusterSectors    `json:"sector_mapping"`
	PersonalityClusters   []string            `json:"personality_clusters"`
	PersonalitySimilarity []ScoredName        `json:"personality_similarity,omitempty"`
	PersonalityAudit      []ClusterSectors    `json:"personality_audit"`
	Clusters              []string            `json:"clusters"`
	SectorComparison      []SectorComparison  `json:"sector_comparison"`
	ClusterComparison     []ClusterComparison `json:"cluster_comparison"`
}

// Resolved reports whether the method produced anything to show.
func (r Recommendation) Resolved() bool {
	return len(r.Clusters) > 0 || len(r.TopSectors) > 0
}

// RecommendationSet carries both methods for one profile.
type RecommendationSet struct {
	ProfileID  string         `json:"profile_id"`
	Assessment Assessment     `json:"assessment"`
	Single     Recommendation `json:"single"`
	Hybrid     Recommendation `json:"hybrid"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (s RecommendationSet) ByMethod(m Method) (Recommendation, bool) {
	switch m {
	case MethodSingle:
		return s.Single, true
	case MethodHybrid:
		return s.Hybrid, true
	}
	return Recommendation{}, false
}

// RecommendationSummary is the persisted form of one method's result.
type RecommendationSummary struct {
	ProfileID     string    `json:"profile_id"`
	Method        Method    `json:"method"`
	Clusters      []string  `json:"clusters"`
	Sectors       []string  `json:"sectors"`
	SectorCode    []float32 `json:"sector_code,omitempty"`
	TraitCode     []float32 `json:"trait_code,omitempty"`
	LowConfidence bool      `json:"low_confidence"`
	CreatedAt     time.Time `json:"created_at"`
}

// SimilarProfile is a neighbor found through the stored entrepreneurial code.
type SimilarProfile struct {
	ProfileID string   `json:"profile_id"`
	Distance  float64  `json:"distance"`
	Clusters  []string `json:"clusters"`
}
