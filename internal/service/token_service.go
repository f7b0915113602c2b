package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService issues and validates the signed tokens that grant access to one profile.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

type ProfileToken struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

type Claims struct {
	ProfileID string `json:"pid"`
	jwt.RegisteredClaims
}

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "entrematch",
	}
}

// Issue signs a token for profileID.
func (s *TokenService) Issue(profileID string) (ProfileToken, error) {
	if s == nil || len(s.secret) == 0 {
		return ProfileToken{}, ErrTokenInvalid
	}
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return ProfileToken{}, ErrTokenInvalid
	}
	now := time.Now().UTC()
	claims := Claims{
		ProfileID: profileID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   profileID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return ProfileToken{}, err
	}
	return ProfileToken{Token: signed, ExpiresIn: int64(s.ttl.Seconds())}, nil
}

// Parse validates a token and returns its claims.
func (s *TokenService) Parse(tokenString string) (Claims, error) {
	if s == nil || len(s.secret) == 0 {
		return Claims{}, ErrTokenInvalid
	}
	if strings.TrimSpace(tokenString) == "" {
		return Claims{}, ErrTokenInvalid
	}
	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if !s.isValidClaims(claims) {
		return Claims{}, ErrTokenInvalid
	}
	return claims, nil
}

func (s *TokenService) isValidClaims(claims Claims) bool {
	if strings.TrimSpace(claims.ProfileID) == "" {
		return false
	}
	if claims.Subject != claims.ProfileID {
		return false
	}
	return strings.TrimSpace(claims.Issuer) == s.issuer
}
