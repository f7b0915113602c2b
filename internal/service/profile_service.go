package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"entrematch/internal/domain"
	"entrematch/internal/repository"
)

// Role categories offered by the intake form.
var ProfileRoles = []string{
	"Calon Wirausahawan",
	"Pelaku UMKM",
	"Pelajar/Mahasiswa",
	"Profesional",
}

var ProfileGenders = []string{"Laki-laki", "Perempuan"}

const (
	minAge        = 1
	maxAge        = 99
	profileIDSize = 8
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidProfile  = errors.New("invalid profile")
)

// ProfileService handles respondent intake.
type ProfileService struct {
	logger   *zap.Logger
	profiles repository.ProfileRepository
	tokens   *TokenService
	newID    func() string
}

func NewProfileService(logger *zap.Logger, profiles repository.ProfileRepository, tokens *TokenService) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{
		logger:   logger,
		profiles: profiles,
		tokens:   tokens,
		newID:    shortID,
	}
}

type CreateProfileInput struct {
	Name            string
	Role            string
	RoleDescription string
	Age             int
	Gender          string
	Domicile        string
}

// Create validates and stores a profile, then issues its access token.
func (s *ProfileService) Create(ctx context.Context, input CreateProfileInput) (domain.Profile, ProfileToken, error) {
	if s == nil || s.profiles == nil {
		return domain.Profile{}, ProfileToken{}, errors.New("profile service not configured")
	}
	profile := domain.Profile{
		Name:            strings.TrimSpace(input.Name),
		Role:            strings.TrimSpace(input.Role),
		RoleDescription: strings.TrimSpace(input.RoleDescription),
		Age:             input.Age,
		Gender:          strings.TrimSpace(input.Gender),
		Domicile:        strings.TrimSpace(input.Domicile),
	}
	if err := validateProfile(profile); err != nil {
		return domain.Profile{}, ProfileToken{}, err
	}
	profile.ID = s.newID()
	profile.CreatedAt = time.Now().UTC()

	if err := s.profiles.Create(ctx, profile); err != nil {
		return domain.Profile{}, ProfileToken{}, fmt.Errorf("create profile: %w", err)
	}
	token, err := s.tokens.Issue(profile.ID)
	if err != nil {
		return domain.Profile{}, ProfileToken{}, fmt.Errorf("issue profile token: %w", err)
	}
	s.logger.Info("profile created", zap.String("profile_id", profile.ID), zap.String("role", profile.Role))
	return profile, token, nil
}

func (s *ProfileService) Get(ctx context.Context, id string) (domain.Profile, error) {
	if s == nil || s.profiles == nil {
		return domain.Profile{}, errors.New("profile service not configured")
	}
	profile, err := s.profiles.GetByID(ctx, strings.TrimSpace(id))
	if isNoRows(err) {
		return domain.Profile{}, ErrProfileNotFound
	}
	if err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

func validateProfile(p domain.Profile) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProfile)
	case !oneOf(p.Role, ProfileRoles):
		return fmt.Errorf("%w: unknown role %q", ErrInvalidProfile, p.Role)
	case p.RoleDescription == "":
		return fmt.Errorf("%w: role description is required", ErrInvalidProfile)
	case p.Age < minAge || p.Age > maxAge:
		return fmt.Errorf("%w: age must be between %d and %d", ErrInvalidProfile, minAge, maxAge)
	case !oneOf(p.Gender, ProfileGenders):
		return fmt.Errorf("%w: unknown gender %q", ErrInvalidProfile, p.Gender)
	case p.Domicile == "":
		return fmt.Errorf("%w: domicile is required", ErrInvalidProfile)
	}
	return nil
}

func oneOf(v string, options []string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func shortID() string {
	return uuid.NewString()[:profileIDSize]
}
