package engine

import (
	"gonum.org/v1/gonum/floats"

	"entrematch/internal/catalog"
	"entrematch/internal/domain"
)

// Level thresholds on the 1..5 scale. A score on a boundary takes the upper level.
const (
	midLowFrom  = 2.5
	midHighFrom = 3.5
	highFrom    = 4.25
)

// Notation thresholds.
const (
	veryHighFrom = 4.2
	highNoteFrom = 3.5
	neutralFrom  = 2.5
	lowNoteFrom  = 1.8
)

// Categorize maps a dimension mean onto a level.
func Categorize(score float64) domain.Level {
	switch {
	case score < midLowFrom:
		return domain.LevelLow
	case score < midHighFrom:
		return domain.LevelMidLow
	case score < highFrom:
		return domain.LevelMidHigh
	default:
		return domain.LevelHigh
	}
}

// CategorizeLocus picks the stronger locus; a tie is internal.
func CategorizeLocus(internal, external float64) domain.Level {
	if internal >= external {
		return domain.LocusInternal
	}
	return domain.LocusExternal
}

// Notate maps a trait mean onto its symbolic notation.
func Notate(score float64) domain.Notation {
	switch {
	case score >= veryHighFrom:
		return domain.NotationVeryHigh
	case score >= highNoteFrom:
		return domain.NotationHigh
	case score >= neutralFrom:
		return domain.NotationNeutral
	case score >= lowNoteFrom:
		return domain.NotationLow
	default:
		return domain.NotationVeryLow
	}
}

// ReverseScore flips a reverse-keyed Likert value.
func ReverseScore(v int) int {
	return domain.MinLikert + domain.MaxLikert - v
}

// lookup returns the answer for key, or the neutral value when the key is
// absent or out of range. Defaulted keys are appended to missing.
func lookup(answers domain.Answers, key string, missing *[]string) float64 {
	v, ok := answers[key]
	if !ok || v < domain.MinLikert || v > domain.MaxLikert {
		*missing = append(*missing, key)
		return domain.NeutralLikert
	}
	return float64(v)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Sum(values) / float64(len(values))
}

// AggregateEntrepreneur averages the entrepreneurial answers per dimension.
func AggregateEntrepreneur(answers domain.Answers, questions []catalog.Question) (domain.EntrepreneurScores, domain.AnswerCompleteness) {
	groups := make(map[string][]float64, 5)
	var missing []string
	for _, q := range questions {
		groups[q.Dimension] = append(groups[q.Dimension], lookup(answers, q.Key, &missing))
	}
	scores := domain.EntrepreneurScores{
		SelfEfficacy:    mean(groups[domain.DimensionSelfEfficacy]),
		Innovativeness:  mean(groups[domain.DimensionInnovativeness]),
		NeedAchievement: mean(groups[domain.DimensionNeedAchievement]),
		LocInternal:     mean(groups[domain.DimensionLocInternal]),
		LocExternal:     mean(groups[domain.DimensionLocExternal]),
	}
	return scores, completeness(len(questions), missing)
}

// AggregatePersonality scores the Big Five. Openness is a plain mean; every
// other trait averages the normal and reversed group means, an empty group
// counting as 0.
func AggregatePersonality(answers domain.Answers, questions []catalog.Question) (domain.PersonalityScores, domain.AnswerCompleteness) {
	type groups struct {
		normal, reversed []float64
	}
	byTrait := make(map[domain.Trait]*groups, len(domain.Traits))
	for _, t := range domain.Traits {
		byTrait[t] = &groups{}
	}
	var missing []string
	for _, q := range questions {
		g, ok := byTrait[q.Trait]
		if !ok {
			continue
		}
		v := lookup(answers, q.Key, &missing)
		if q.Reverse {
			g.reversed = append(g.reversed, float64(ReverseScore(int(v))))
			continue
		}
		g.normal = append(g.normal, v)
	}

	score := func(t domain.Trait) float64 {
		g := byTrait[t]
		if t == domain.TraitOpenness {
			return mean(g.normal)
		}
		return (mean(g.normal) + mean(g.reversed)) / 2
	}
	scores := domain.PersonalityScores{
		Openness:          score(domain.TraitOpenness),
		Conscientiousness: score(domain.TraitConscientiousness),
		Extraversion:      score(domain.TraitExtraversion),
		Agreeableness:     score(domain.TraitAgreeableness),
		Neuroticism:       score(domain.TraitNeuroticism),
	}
	return scores, completeness(len(questions), missing)
}

func completeness(expected int, missing []string) domain.AnswerCompleteness {
	return domain.AnswerCompleteness{
		Expected: expected,
		Answered: expected - len(missing),
		Missing:  missing,
	}
}

// CategorizeAll derives the level set from the dimension means.
func CategorizeAll(scores domain.EntrepreneurScores) domain.LevelSet {
	return domain.LevelSet{
		SelfEfficacy:    Categorize(scores.SelfEfficacy),
		Innovativeness:  Categorize(scores.Innovativeness),
		NeedAchievement: Categorize(scores.NeedAchievement),
		Locus:           CategorizeLocus(scores.LocInternal, scores.LocExternal),
	}
}

// NotateAll derives the notation set from the trait means.
func NotateAll(scores domain.PersonalityScores) domain.NotationSet {
	out := make(domain.NotationSet, len(domain.Traits))
	for _, t := range domain.Traits {
		out[t] = Notate(scores.Get(t))
	}
	return out
}
