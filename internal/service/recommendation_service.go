package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"entrematch/internal/domain"
	"entrematch/internal/engine"
	"entrematch/internal/repository"
)

const (
	defaultSimilarProfiles = 5
	maxSimilarProfiles     = 50
)

var (
	ErrNoAnswers           = errors.New("no answers submitted")
	ErrNoRecommendation    = errors.New("no recommendation computed")
	ErrStaleRecommendation = errors.New("answers changed since the last recommendation")
)

// RunResult is a fresh recommendation set. Persisted is false when the
// summaries could not be stored; the set is still valid. Resolved tells,
// per method, whether it produced any cluster or sector.
type RunResult struct {
	Set       domain.RecommendationSet `json:"result"`
	Persisted bool                     `json:"persisted"`
	Resolved  map[domain.Method]bool   `json:"resolved"`
}

type ComparedSector struct {
	Name  string `json:"name"`
	IsNew bool   `json:"is_new"`
}

type MethodView struct {
	Method   domain.Method    `json:"method"`
	Clusters []string         `json:"clusters"`
	Sectors  []ComparedSector `json:"sectors"`
}

// Comparison lines up both methods. Hybrid sectors missing from the single
// list are flagged as new.
type Comparison struct {
	ProfileID     string     `json:"profile_id"`
	Single        MethodView `json:"single"`
	Hybrid        MethodView `json:"hybrid"`
	LowConfidence bool       `json:"low_confidence"`
}

// RecommendationService runs the engine for a stored answer sheet and keeps
// the per-method summaries.
type RecommendationService struct {
	logger   *zap.Logger
	engine   *engine.Engine
	profiles repository.ProfileRepository
	answers  repository.AnswerRepository
	results  repository.RecommendationRepository
	cache    ResultCache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewRecommendationService(
	logger *zap.Logger,
	eng *engine.Engine,
	profiles repository.ProfileRepository,
	answers repository.AnswerRepository,
	results repository.RecommendationRepository,
	cache ResultCache,
	cacheTTL time.Duration,
) *RecommendationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &RecommendationService{
		logger:   logger,
		engine:   eng,
		profiles: profiles,
		answers:  answers,
		results:  results,
		cache:    cache,
		cacheTTL: cacheTTL,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Run computes both methods for the profile, stores the summaries and caches the set.
func (s *RecommendationService) Run(ctx context.Context, profileID string) (RunResult, error) {
	if s == nil || s.engine == nil || s.answers == nil {
		return RunResult{}, errors.New("recommendation service not configured")
	}
	profileID = strings.TrimSpace(profileID)
	if err := s.ensureProfile(ctx, profileID); err != nil {
		return RunResult{}, err
	}

	sheet, err := s.answers.GetSheet(ctx, profileID)
	if err != nil {
		return RunResult{}, fmt.Errorf("load answers: %w", err)
	}
	if len(sheet.Entrepreneurial) == 0 && len(sheet.Personality) == 0 {
		return RunResult{}, ErrNoAnswers
	}
	sheet.ProfileID = profileID

	set := s.engine.Recommend(sheet, s.now())
	if set.Assessment.LowConfidence {
		fields := []zap.Field{zap.String("profile_id", profileID)}
		for section, done := range set.Assessment.Completeness {
			if !done.Complete() {
				fields = append(fields, zap.Strings("missing_"+string(section), done.Missing))
			}
		}
		s.logger.Warn("answers defaulted to neutral", fields...)
	}

	result := RunResult{Set: set, Persisted: true, Resolved: make(map[domain.Method]bool, len(domain.Methods))}
	for _, m := range domain.Methods {
		rec, _ := set.ByMethod(m)
		result.Resolved[m] = rec.Resolved()
	}
	if s.results != nil {
		if err := s.results.UpsertAll(ctx, Summarize(set)); err != nil {
			s.logger.Error("persist recommendation failed",
				zap.String("profile_id", profileID),
				zap.Error(err),
			)
			result.Persisted = false
		}
	} else {
		result.Persisted = false
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, set, s.cacheTTL); err != nil {
			s.logger.Warn("result cache put failed", zap.String("profile_id", profileID), zap.Error(err))
		}
	}

	s.logger.Info("recommendation computed",
		zap.String("profile_id", profileID),
		zap.Strings("single", set.Single.Clusters),
		zap.Strings("hybrid", set.Hybrid.Clusters),
		zap.Bool("persisted", result.Persisted),
	)
	return result, nil
}

// Latest returns the cached full set, if one is still held.
func (s *RecommendationService) Latest(ctx context.Context, profileID string) (domain.RecommendationSet, bool) {
	if s == nil || s.cache == nil {
		return domain.RecommendationSet{}, false
	}
	set, ok, err := s.cache.Get(ctx, strings.TrimSpace(profileID))
	if err != nil {
		s.logger.Warn("result cache get failed", zap.String("profile_id", profileID), zap.Error(err))
		return domain.RecommendationSet{}, false
	}
	return set, ok
}

// Summaries returns the per-method summaries from the cache, or from the
// database on a cache miss. Stored summaries older than the latest answer
// submission are refused.
func (s *RecommendationService) Summaries(ctx context.Context, profileID string) (map[domain.Method]domain.RecommendationSummary, error) {
	profileID = strings.TrimSpace(profileID)
	out := make(map[domain.Method]domain.RecommendationSummary, len(domain.Methods))
	if set, ok := s.Latest(ctx, profileID); ok {
		for _, summary := range Summarize(set) {
			out[summary.Method] = summary
		}
		return out, nil
	}
	if s.results == nil {
		return nil, ErrNoRecommendation
	}
	stored, err := s.results.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("load recommendations: %w", err)
	}
	if len(stored) > 0 && s.answers != nil {
		sheet, err := s.answers.GetSheet(ctx, profileID)
		if err != nil {
			return nil, fmt.Errorf("load answers: %w", err)
		}
		for _, summary := range stored {
			if summary.CreatedAt.Before(sheet.UpdatedAt) {
				return nil, ErrStaleRecommendation
			}
		}
	}
	for _, summary := range stored {
		out[summary.Method] = summary
	}
	if len(out) == 0 {
		return nil, ErrNoRecommendation
	}
	return out, nil
}

func (s *RecommendationService) Compare(ctx context.Context, profileID string) (Comparison, error) {
	summaries, err := s.Summaries(ctx, profileID)
	if err != nil {
		return Comparison{}, err
	}
	single := summaries[domain.MethodSingle]
	hybrid := summaries[domain.MethodHybrid]

	return Comparison{
		ProfileID:     strings.TrimSpace(profileID),
		Single:        methodView(domain.MethodSingle, single, nil),
		Hybrid:        methodView(domain.MethodHybrid, hybrid, single.Sectors),
		LowConfidence: single.LowConfidence || hybrid.LowConfidence,
	}, nil
}

// Similar lists the k profiles whose sector code is nearest to this one's.
func (s *RecommendationService) Similar(ctx context.Context, profileID string, k int) ([]domain.SimilarProfile, error) {
	if s == nil || s.results == nil {
		return nil, errors.New("recommendation service not configured")
	}
	switch {
	case k <= 0:
		k = defaultSimilarProfiles
	case k > maxSimilarProfiles:
		k = maxSimilarProfiles
	}
	profileID = strings.TrimSpace(profileID)
	if err := s.ensureProfile(ctx, profileID); err != nil {
		return nil, err
	}
	similar, err := s.results.SimilarProfiles(ctx, profileID, k)
	if err != nil {
		return nil, fmt.Errorf("similar profiles: %w", err)
	}
	if similar == nil {
		similar = []domain.SimilarProfile{}
	}
	return similar, nil
}

func (s *RecommendationService) ensureProfile(ctx context.Context, profileID string) error {
	if s.profiles == nil {
		return nil
	}
	if _, err := s.profiles.GetByID(ctx, profileID); err != nil {
		if isNoRows(err) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("load profile: %w", err)
	}
	return nil
}

// Summarize reduces a set to one stored summary per method.
func Summarize(set domain.RecommendationSet) []domain.RecommendationSummary {
	out := make([]domain.RecommendationSummary, 0, len(domain.Methods))
	for _, m := range domain.Methods {
		rec, ok := set.ByMethod(m)
		if !ok {
			continue
		}
		out = append(out, domain.RecommendationSummary{
			ProfileID:     set.ProfileID,
			Method:        m,
			Clusters:      append([]string(nil), rec.Clusters...),
			Sectors:       append([]string(nil), rec.TopSectors...),
			SectorCode:    toFloat32(set.Assessment.EntrepreneurCode),
			TraitCode:     toFloat32(set.Assessment.PersonalityCode),
			LowConfidence: set.Assessment.LowConfidence,
			CreatedAt:     set.CreatedAt,
		})
	}
	return out
}

func methodView(method domain.Method, summary domain.RecommendationSummary, baseline []string) MethodView {
	known := make(map[string]struct{}, len(baseline))
	for _, name := range baseline {
		known[name] = struct{}{}
	}
	view := MethodView{
		Method:   method,
		Clusters: summary.Clusters,
		Sectors:  make([]ComparedSector, 0, len(summary.Sectors)),
	}
	if view.Clusters == nil {
		view.Clusters = []string{}
	}
	for _, name := range summary.Sectors {
		_, seen := known[name]
		view.Sectors = append(view.Sectors, ComparedSector{Name: name, IsNew: baseline != nil && !seen})
	}
	return view
}

func toFloat32(values []float64) []float32 {
	out := make([]float32, len(values))
	for i, v := range values {
		out[i] = float32(v)
	}
	return out
}
