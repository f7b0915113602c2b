package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"entrematch/internal/domain"
	"entrematch/internal/repository"
)

var ErrInvalidFeedback = errors.New("invalid feedback")

// summarySource yields the per-method summaries feedback is checked against.
type summarySource interface {
	Summaries(ctx context.Context, profileID string) (map[domain.Method]domain.RecommendationSummary, error)
}

type FeedbackInput struct {
	Method        domain.Method
	Rating        int
	Comment       string
	ChosenSectors []string
}

// FeedbackService records a respondent's rating of both methods.
type FeedbackService struct {
	logger    *zap.Logger
	feedback  repository.FeedbackRepository
	summaries summarySource
	now       func() time.Time
}

func NewFeedbackService(logger *zap.Logger, feedback repository.FeedbackRepository, summaries summarySource) *FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackService{
		logger:    logger,
		feedback:  feedback,
		summaries: summaries,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates and stores feedback for every method in one write.
// Chosen sectors must come from that method's recommended sectors.
func (s *FeedbackService) Submit(ctx context.Context, profileID string, inputs []FeedbackInput) ([]domain.Feedback, error) {
	if s == nil || s.feedback == nil || s.summaries == nil {
		return nil, errors.New("feedback service not configured")
	}
	profileID = strings.TrimSpace(profileID)

	byMethod := make(map[domain.Method]FeedbackInput, len(inputs))
	for _, in := range inputs {
		if !in.Method.Valid() {
			return nil, fmt.Errorf("%w: unknown method %q", ErrInvalidFeedback, in.Method)
		}
		if _, dup := byMethod[in.Method]; dup {
			return nil, fmt.Errorf("%w: duplicate method %q", ErrInvalidFeedback, in.Method)
		}
		byMethod[in.Method] = in
	}
	for _, m := range domain.Methods {
		if _, ok := byMethod[m]; !ok {
			return nil, fmt.Errorf("%w: missing %s feedback", ErrInvalidFeedback, m)
		}
	}

	summaries, err := s.summaries.Summaries(ctx, profileID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	items := make([]domain.Feedback, 0, len(domain.Methods))
	for _, m := range domain.Methods {
		in := byMethod[m]
		item := domain.Feedback{
			ID:            uuid.NewString(),
			ProfileID:     profileID,
			Method:        m,
			Rating:        in.Rating,
			Comment:       strings.TrimSpace(in.Comment),
			ChosenSectors: dedupeStrings(in.ChosenSectors),
			CreatedAt:     now,
		}
		if err := validateFeedback(item, summaries[m].Sectors); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := s.feedback.SaveAll(ctx, items); err != nil {
		return nil, fmt.Errorf("save feedback: %w", err)
	}
	s.logger.Info("feedback saved",
		zap.String("profile_id", profileID),
		zap.Int("single_rating", items[0].Rating),
		zap.Int("hybrid_rating", items[1].Rating),
	)
	return items, nil
}

func (s *FeedbackService) List(ctx context.Context, profileID string) ([]domain.Feedback, error) {
	if s == nil || s.feedback == nil {
		return nil, errors.New("feedback service not configured")
	}
	items, err := s.feedback.ListByProfile(ctx, strings.TrimSpace(profileID))
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Feedback{}
	}
	return items, nil
}

func validateFeedback(f domain.Feedback, offered []string) error {
	if f.Rating < domain.MinRating || f.Rating > domain.MaxRating {
		return fmt.Errorf("%w: %s rating must be between %d and %d", ErrInvalidFeedback, f.Method, domain.MinRating, domain.MaxRating)
	}
	if f.Comment == "" {
		return fmt.Errorf("%w: %s comment is required", ErrInvalidFeedback, f.Method)
	}
	for _, sector := range f.ChosenSectors {
		if !oneOf(sector, offered) {
			return fmt.Errorf("%w: %q was not recommended by %s", ErrInvalidFeedback, sector, f.Method)
		}
	}
	return nil
}

func dedupeStrings(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
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
