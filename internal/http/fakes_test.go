package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"entrematch/internal/catalog"
	"entrematch/internal/domain"
	"entrematch/internal/engine"
	"entrematch/internal/service"
)

type memoryStore struct {
	mu        sync.Mutex
	profiles  map[string]domain.Profile
	sheets    map[string]domain.AnswerSheet
	summaries map[string][]domain.RecommendationSummary
	feedback  []domain.Feedback
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		profiles:  make(map[string]domain.Profile),
		sheets:    make(map[string]domain.AnswerSheet),
		summaries: make(map[string][]domain.RecommendationSummary),
	}
}

type memoryProfiles struct{ *memoryStore }

func (m memoryProfiles) Create(_ context.Context, p domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.ID] = p
	return nil
}

func (m memoryProfiles) GetByID(_ context.Context, id string) (domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return domain.Profile{}, pgx.ErrNoRows
	}
	return p, nil
}

type memoryAnswers struct{ *memoryStore }

func (m memoryAnswers) SaveSection(_ context.Context, profileID string, section domain.Section, answers domain.Answers, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sheet := m.sheets[profileID]
	if section == domain.SectionEntrepreneurial {
		sheet.Entrepreneurial = answers
	} else {
		sheet.Personality = answers
	}
	sheet.UpdatedAt = at
	m.sheets[profileID] = sheet
	return nil
}

func (m memoryAnswers) GetSheet(_ context.Context, profileID string) (domain.AnswerSheet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sheet := m.sheets[profileID]
	sheet.ProfileID = profileID
	return sheet, nil
}

type memoryRecommendations struct{ *memoryStore }

func (m memoryRecommendations) UpsertAll(_ context.Context, summaries []domain.RecommendationSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range summaries {
		list := m.summaries[s.ProfileID]
		replaced := false
		for i := range list {
			if list[i].Method == s.Method {
				list[i] = s
				replaced = true
			}
		}
		if !replaced {
			list = append(list, s)
		}
		m.summaries[s.ProfileID] = list
	}
	return nil
}

func (m memoryRecommendations) ListByProfile(_ context.Context, profileID string) ([]domain.RecommendationSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.summaries[profileID], nil
}

func (m memoryRecommendations) SimilarProfiles(_ context.Context, profileID string, k int) ([]domain.SimilarProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.SimilarProfile
	for id, list := range m.summaries {
		if id == profileID || len(out) == k {
			continue
		}
		out = append(out, domain.SimilarProfile{ProfileID: id, Clusters: list[0].Clusters})
	}
	return out, nil
}

type memoryFeedback struct{ *memoryStore }

func (m memoryFeedback) SaveAll(_ context.Context, items []domain.Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feedback = append(m.feedback, items...)
	return nil
}

func (m memoryFeedback) ListByProfile(_ context.Context, profileID string) ([]domain.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Feedback
	for _, f := range m.feedback {
		if f.ProfileID == profileID {
			out = append(out, f)
		}
	}
	return out, nil
}

type testApp struct {
	router http.Handler
	store  *memoryStore
	tokens *service.TokenService
	cat    *catalog.Catalog
}

func setupApp(limiter service.SubmitRateLimiter) testApp {
	gin.SetMode(gin.TestMode)
	cat, err := catalog.Default()
	if err != nil {
		panic(err)
	}
	logger := zap.NewNop()
	store := newMemoryStore()
	tokens := service.NewTokenService("secret", time.Hour)
	cache := service.NewMemoryResultCache()

	profiles := service.NewProfileService(logger, memoryProfiles{store}, tokens)
	questionnaire := service.NewQuestionnaireService(logger, cat, memoryProfiles{store}, memoryAnswers{store}, cache, limiter)
	recommendations := service.NewRecommendationService(logger, engine.New(cat), memoryProfiles{store}, memoryAnswers{store}, memoryRecommendations{store}, cache, time.Minute)
	feedback := service.NewFeedbackService(logger, memoryFeedback{store}, recommendations)

	r := NewRouter(logger, tokens,
		NewProfileHandler(logger, profiles),
		NewQuestionnaireHandler(logger, questionnaire),
		NewRecommendationHandler(logger, recommendations),
		NewFeedbackHandler(logger, feedback),
	)
	return testApp{router: r, store: store, tokens: tokens, cat: cat}
}

func performRequest(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(rec *httptest.ResponseRecorder, out any) error {
	return json.Unmarshal(rec.Body.Bytes(), out)
}
