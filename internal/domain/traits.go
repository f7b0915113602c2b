package domain

// Entrepreneurial dimensions. Locus is scored from two item groups and
// categorized once, under DimensionLocus.
const (
	DimensionSelfEfficacy    = "self_efficacy"
	DimensionInnovativeness  = "innovativeness"
	DimensionNeedAchievement = "need_achievement"
	DimensionLocInternal     = "loc_internal"
	DimensionLocExternal     = "loc_external"
	DimensionLocus           = "loc"
)

// RuleDimensions is the order in which levels are matched and encoded.
var RuleDimensions = []string{
	DimensionSelfEfficacy,
	DimensionInnovativeness,
	DimensionNeedAchievement,
	DimensionLocus,
}

type Level string

const (
	LevelLow      Level = "low"
	LevelMidLow   Level = "mid-low"
	LevelMidHigh  Level = "mid-high"
	LevelHigh     Level = "high"
	LocusInternal Level = "internal"
	LocusExternal Level = "external"
)

// Levels lists the graded levels from strongest to weakest.
var Levels = []Level{LevelHigh, LevelMidHigh, LevelMidLow, LevelLow}

// Trait is a Big Five factor, keyed by its initial.
type Trait string

const (
	TraitOpenness          Trait = "O"
	TraitConscientiousness Trait = "C"
	TraitExtraversion      Trait = "E"
	TraitAgreeableness     Trait = "A"
	TraitNeuroticism       Trait = "N"
)

// Traits is the fixed O, C, E, A, N order used for vectors.
var Traits = []Trait{
	TraitOpenness,
	TraitConscientiousness,
	TraitExtraversion,
	TraitAgreeableness,
	TraitNeuroticism,
}

func (t Trait) Name() string {
	switch t {
	case TraitOpenness:
		return "openness"
	case TraitConscientiousness:
		return "conscientiousness"
	case TraitExtraversion:
		return "extraversion"
	case TraitAgreeableness:
		return "agreeableness"
	case TraitNeuroticism:
		return "neuroticism"
	}
	return string(t)
}

type Notation string

const (
	NotationVeryLow  Notation = "--"
	NotationLow      Notation = "-"
	NotationNeutral  Notation = "0"
	NotationHigh     Notation = "+"
	NotationVeryHigh Notation = "++"
)

// Value maps a notation onto -2..2. Unknown notations map to 0.
func (n Notation) Value() float64 {
	switch n {
	case NotationVeryLow:
		return -2
	case NotationLow:
		return -1
	case NotationHigh:
		return 1
	case NotationVeryHigh:
		return 2
	}
	return 0
}

// Valid reports whether n is one of the five notations.
func (n Notation) Valid() bool {
	switch n {
	case NotationVeryLow, NotationLow, NotationNeutral, NotationHigh, NotationVeryHigh:
		return true
	}
	return false
}

// EntrepreneurScores are the per-dimension means on the 1..5 scale.
type EntrepreneurScores struct {
	SelfEfficacy    float64 `json:"self_efficacy"`
	Innovativeness  float64 `json:"innovativeness"`
	NeedAchievement float64 `json:"need_achievement"`
	LocInternal     float64 `json:"loc_internal"`
	LocExternal     float64 `json:"loc_external"`
}

// PersonalityScores are the Big Five means after reverse scoring.
type PersonalityScores struct {
	Openness          float64 `json:"openness"`
	Conscientiousness float64 `json:"conscientiousness"`
	Extraversion      float64 `json:"extraversion"`
	Agreeableness     float64 `json:"agreeableness"`
	Neuroticism       float64 `json:"neuroticism"`
}

func (p PersonalityScores) Get(t Trait) float64 {
	switch t {
	case TraitOpenness:
		return p.Openness
	case TraitConscientiousness:
		return p.Conscientiousness
	case TraitExtraversion:
		return p.Extraversion
	case TraitAgreeableness:
		return p.Agreeableness
	case TraitNeuroticism:
		return p.Neuroticism
	}
	return 0
}

// LevelSet is the categorical entrepreneurial profile.
type LevelSet struct {
	SelfEfficacy    Level `json:"self_efficacy"`
	Innovativeness  Level `json:"innovativeness"`
	NeedAchievement Level `json:"need_achievement"`
	Locus           Level `json:"loc"`
}

// Get returns the level for one of RuleDimensions.
func (l LevelSet) Get(dimension string) Level {
	switch dimension {
	case DimensionSelfEfficacy:
		return l.SelfEfficacy
	case DimensionInnovativeness:
		return l.Innovativeness
	case DimensionNeedAchievement:
		return l.NeedAchievement
	case DimensionLocus:
		return l.Locus
	}
	return ""
}

// NotationSet is the symbolic personality profile.
type NotationSet map[Trait]Notation
