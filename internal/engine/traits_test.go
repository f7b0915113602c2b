package engine

import (
	"math"
	"testing"

	"entrematch/internal/catalog"
	"entrematch/internal/domain"
)

func TestCategorizeBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  domain.Level
	}{
		{1.0, domain.LevelLow},
		{2.4, domain.LevelLow},
		{2.5, domain.LevelMidLow},
		{3.49, domain.LevelMidLow},
		{3.5, domain.LevelMidHigh},
		{4.24, domain.LevelMidHigh},
		{4.25, domain.LevelHigh},
		{5.0, domain.LevelHigh},
	}
	for _, tc := range cases {
		if got := Categorize(tc.score); got != tc.want {
			t.Fatalf("Categorize(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestCategorizeLocus(t *testing.T) {
	if got := CategorizeLocus(3, 3); got != domain.LocusInternal {
		t.Fatalf("tie should be internal, got %s", got)
	}
	if got := CategorizeLocus(2, 4); got != domain.LocusExternal {
		t.Fatalf("expected external, got %s", got)
	}
}

func TestNotate(t *testing.T) {
	cases := []struct {
		score float64
		want  domain.Notation
	}{
		{5, domain.NotationVeryHigh},
		{4.2, domain.NotationVeryHigh},
		{4.19, domain.NotationHigh},
		{3.5, domain.NotationHigh},
		{2.5, domain.NotationNeutral},
		{1.8, domain.NotationLow},
		{1.79, domain.NotationVeryLow},
		{1, domain.NotationVeryLow},
	}
	for _, tc := range cases {
		if got := Notate(tc.score); got != tc.want {
			t.Fatalf("Notate(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestReverseScore(t *testing.T) {
	if ReverseScore(3) != 3 {
		t.Fatalf("midpoint must be fixed")
	}
	if ReverseScore(1) != 5 || ReverseScore(5) != 1 {
		t.Fatalf("extremes must swap")
	}
	for v := 1; v <= 5; v++ {
		if ReverseScore(ReverseScore(v)) != v {
			t.Fatalf("reverse not involutive for %d", v)
		}
	}
}

func TestAggregateEntrepreneurBounds(t *testing.T) {
	cat := mustCatalog(t)
	questions := cat.SectionQuestions(domain.SectionEntrepreneurial)
	for _, v := range []int{1, 2, 3, 4, 5} {
		answers := fill(questions, func(catalog.Question) int { return v })
		scores, done := AggregateEntrepreneur(answers, questions)
		for _, s := range []float64{scores.SelfEfficacy, scores.Innovativeness, scores.NeedAchievement, scores.LocInternal, scores.LocExternal} {
			if s != float64(v) {
				t.Fatalf("expected every dimension at %d, got %+v", v, scores)
			}
		}
		if !done.Complete() || done.Answered != 24 {
			t.Fatalf("expected complete answers, got %+v", done)
		}
	}
}

func TestAggregateEntrepreneurDefaultsMissing(t *testing.T) {
	cat := mustCatalog(t)
	questions := cat.SectionQuestions(domain.SectionEntrepreneurial)
	answers := domain.Answers{"SE-S1": 5, "INN-CE1": 9}

	scores, done := AggregateEntrepreneur(answers, questions)
	if done.Complete() {
		t.Fatalf("expected incomplete answers")
	}
	if done.Expected != 24 || done.Answered != 1 || len(done.Missing) != 23 {
		t.Fatalf("unexpected completeness: %+v", done)
	}
	if scores.Innovativeness != 3 {
		t.Fatalf("out of range value should default to 3, got %v", scores.Innovativeness)
	}
	if scores.SelfEfficacy <= 3 || scores.SelfEfficacy > 5 {
		t.Fatalf("self efficacy should move above neutral, got %v", scores.SelfEfficacy)
	}
}

func TestAggregatePersonalityReverseItems(t *testing.T) {
	cat := mustCatalog(t)
	questions := cat.SectionQuestions(domain.SectionPersonality)
	// Agree fully with every normal item and disagree with every reversed one.
	answers := fill(questions, func(q catalog.Question) int {
		if q.Reverse {
			return 1
		}
		return 5
	})
	scores, done := AggregatePersonality(answers, questions)
	if !done.Complete() {
		t.Fatalf("expected complete answers, got %+v", done)
	}
	for _, tr := range domain.Traits {
		if scores.Get(tr) != 5 {
			t.Fatalf("expected %s = 5, got %v", tr.Name(), scores.Get(tr))
		}
	}
}

func TestAggregatePersonalityEmptyGroup(t *testing.T) {
	questions := []catalog.Question{
		{Key: "X-1", Trait: domain.TraitConscientiousness, Reverse: true},
		{Key: "O-1", Trait: domain.TraitOpenness},
	}
	scores, _ := AggregatePersonality(domain.Answers{"X-1": 5, "O-1": 4}, questions)
	if math.IsNaN(scores.Conscientiousness) || scores.Conscientiousness != 0.5 {
		t.Fatalf("empty normal group should count as 0, got %v", scores.Conscientiousness)
	}
	if scores.Openness != 4 {
		t.Fatalf("expected openness 4, got %v", scores.Openness)
	}
	if scores.Extraversion != 0 || math.IsNaN(scores.Extraversion) {
		t.Fatalf("trait without items should be 0, got %v", scores.Extraversion)
	}

	// Without reverse items the reversed half still counts, as 0.
	normalOnly := []catalog.Question{
		{Key: "C-1", Trait: domain.TraitConscientiousness},
		{Key: "C-2", Trait: domain.TraitConscientiousness},
	}
	scores, _ = AggregatePersonality(domain.Answers{"C-1": 4, "C-2": 4}, normalOnly)
	if scores.Conscientiousness != 2 {
		t.Fatalf("empty reverse group should count as 0, got %v", scores.Conscientiousness)
	}
}

func mustCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return cat
}

func fill(questions []catalog.Question, value func(catalog.Question) int) domain.Answers {
	out := make(domain.Answers, len(questions))
	for _, q := range questions {
		out[q.Key] = value(q)
	}
	return out
}
