package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"entrematch/internal/catalog"
	"entrematch/internal/domain"
)

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]domain.Profile
	err      error
}

func newFakeProfileRepo(profiles ...domain.Profile) *fakeProfileRepo {
	repo := &fakeProfileRepo{profiles: make(map[string]domain.Profile)}
	for _, p := range profiles {
		repo.profiles[p.ID] = p
	}
	return repo
}

func (f *fakeProfileRepo) Create(_ context.Context, profile domain.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id string) (domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return domain.Profile{}, pgx.ErrNoRows
	}
	return p, nil
}

type fakeAnswerRepo struct {
	mu     sync.Mutex
	sheets map[string]domain.AnswerSheet
	saves  int
	err    error
}

func newFakeAnswerRepo() *fakeAnswerRepo {
	return &fakeAnswerRepo{sheets: make(map[string]domain.AnswerSheet)}
}

func (f *fakeAnswerRepo) SaveSection(_ context.Context, profileID string, section domain.Section, answers domain.Answers, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.saves++
	sheet := f.sheets[profileID]
	sheet.ProfileID = profileID
	switch section {
	case domain.SectionEntrepreneurial:
		sheet.Entrepreneurial = answers
	case domain.SectionPersonality:
		sheet.Personality = answers
	}
	sheet.UpdatedAt = at
	f.sheets[profileID] = sheet
	return nil
}

func (f *fakeAnswerRepo) GetSheet(_ context.Context, profileID string) (domain.AnswerSheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.AnswerSheet{}, f.err
	}
	sheet := f.sheets[profileID]
	sheet.ProfileID = profileID
	return sheet, nil
}

type fakeRecommendationRepo struct {
	mu        sync.Mutex
	summaries map[string][]domain.RecommendationSummary
	similar   []domain.SimilarProfile
	lastK     int
	upserts   int
	err       error
}

func newFakeRecommendationRepo() *fakeRecommendationRepo {
	return &fakeRecommendationRepo{summaries: make(map[string][]domain.RecommendationSummary)}
}

func (f *fakeRecommendationRepo) UpsertAll(_ context.Context, summaries []domain.RecommendationSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	if f.err != nil {
		return f.err
	}
	for _, summary := range summaries {
		f.summaries[summary.ProfileID] = upsertSummary(f.summaries[summary.ProfileID], summary)
	}
	return nil
}

func upsertSummary(list []domain.RecommendationSummary, summary domain.RecommendationSummary) []domain.RecommendationSummary {
	for i := range list {
		if list[i].Method == summary.Method {
			list[i] = summary
			return list
		}
	}
	return append(list, summary)
}

func (f *fakeRecommendationRepo) ListByProfile(_ context.Context, profileID string) ([]domain.RecommendationSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.summaries[profileID], nil
}

func (f *fakeRecommendationRepo) SimilarProfiles(_ context.Context, _ string, k int) ([]domain.SimilarProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastK = k
	return f.similar, nil
}

type fakeFeedbackRepo struct {
	mu    sync.Mutex
	saved []domain.Feedback
}

func (f *fakeFeedbackRepo) SaveAll(_ context.Context, items []domain.Feedback) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, items...)
	return nil
}

func (f *fakeFeedbackRepo) ListByProfile(_ context.Context, profileID string) ([]domain.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Feedback
	for _, item := range f.saved {
		if item.ProfileID == profileID {
			out = append(out, item)
		}
	}
	return out, nil
}

type denyLimiter struct{}

func (denyLimiter) Allow(context.Context, string, domain.Section) bool { return false }

var errStoreDown = errors.New("store down")

func testProfile(id string) domain.Profile {
	return domain.Profile{
		ID:              id,
		Name:            "Sari",
		Role:            "Pelaku UMKM",
		RoleDescription: "Warung kopi",
		Age:             31,
		Gender:          "Perempuan",
		Domicile:        "Bandung",
	}
}

func fillSection(cat *catalog.Catalog, section domain.Section, value func(catalog.Question) int) domain.Answers {
	questions := cat.SectionQuestions(section)
	out := make(domain.Answers, len(questions))
	for _, q := range questions {
		out[q.Key] = value(q)
	}
	return out
}

func mustDefaultCatalog() *catalog.Catalog {
	cat, err := catalog.Default()
	if err != nil {
		panic(err)
	}
	return cat
}
