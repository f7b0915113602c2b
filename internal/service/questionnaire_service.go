package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"entrematch/internal/catalog"
	"entrematch/internal/domain"
	"entrematch/internal/repository"
)

var (
	ErrInvalidAnswers = errors.New("invalid answers")
	ErrUnknownSection = errors.New("unknown questionnaire section")
	ErrRateLimited    = errors.New("too many submissions")
)

// QuestionnaireService serves the question catalog and stores section answers.
type QuestionnaireService struct {
	logger   *zap.Logger
	cat      *catalog.Catalog
	profiles repository.ProfileRepository
	answers  repository.AnswerRepository
	cache    ResultCache
	limiter  SubmitRateLimiter
	now      func() time.Time
}

func NewQuestionnaireService(
	logger *zap.Logger,
	cat *catalog.Catalog,
	profiles repository.ProfileRepository,
	answers repository.AnswerRepository,
	cache ResultCache,
	limiter SubmitRateLimiter,
) *QuestionnaireService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionnaireService{
		logger:   logger,
		cat:      cat,
		profiles: profiles,
		answers:  answers,
		cache:    cache,
		limiter:  limiter,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Questions returns the questions of one section in catalog order.
func (s *QuestionnaireService) Questions(section domain.Section) ([]catalog.Question, error) {
	if !section.Valid() {
		return nil, ErrUnknownSection
	}
	return s.cat.SectionQuestions(section), nil
}

// SubmitSection replaces the stored answers of a section. Any previously
// computed recommendation for the profile is dropped from the cache.
func (s *QuestionnaireService) SubmitSection(ctx context.Context, profileID string, section domain.Section, answers domain.Answers) error {
	if s == nil || s.answers == nil || s.cat == nil {
		return errors.New("questionnaire service not configured")
	}
	profileID = strings.TrimSpace(profileID)
	if !section.Valid() {
		return ErrUnknownSection
	}
	if err := s.validate(section, answers); err != nil {
		return err
	}
	if s.limiter != nil && !s.limiter.Allow(ctx, profileID, section) {
		return ErrRateLimited
	}
	if s.profiles != nil {
		if _, err := s.profiles.GetByID(ctx, profileID); err != nil {
			if isNoRows(err) {
				return ErrProfileNotFound
			}
			return fmt.Errorf("load profile: %w", err)
		}
	}

	if err := s.answers.SaveSection(ctx, profileID, section, answers.Clone(), s.now()); err != nil {
		return fmt.Errorf("save %s answers: %w", section, err)
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, profileID); err != nil {
			s.logger.Warn("result cache invalidate failed", zap.String("profile_id", profileID), zap.Error(err))
		}
	}
	s.logger.Info("answers saved",
		zap.String("profile_id", profileID),
		zap.String("section", string(section)),
		zap.Int("answered", len(answers)),
	)
	return nil
}

func (s *QuestionnaireService) validate(section domain.Section, answers domain.Answers) error {
	if len(answers) == 0 {
		return fmt.Errorf("%w: no answers", ErrInvalidAnswers)
	}
	for key, value := range answers {
		if !s.cat.HasQuestion(section, key) {
			return fmt.Errorf("%w: unknown question %q", ErrInvalidAnswers, key)
		}
		if value < domain.MinLikert || value > domain.MaxLikert {
			return fmt.Errorf("%w: %s must be between %d and %d", ErrInvalidAnswers, key, domain.MinLikert, domain.MaxLikert)
		}
	}
	return nil
}
