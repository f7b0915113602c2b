package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"entrematch/internal/service"
)

func protectedRouter(tokens *service.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/profiles/:id", ProfileAuthMiddleware(tokens), func(c *gin.Context) {
		claims, ok := GetAuthClaims(c)
		if !ok || claims.ProfileID != c.Param("id") {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.Status(http.StatusOK)
	})
	return r
}

func TestProfileAuthMiddleware_AllowsOwnProfile(t *testing.T) {
	tokens := service.NewTokenService("secret", 15*time.Minute)
	tok, err := tokens.Issue("abcd1234")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/profiles/abcd1234", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	protectedRouter(tokens).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProfileAuthMiddleware_RejectsMissingToken(t *testing.T) {
	tokens := service.NewTokenService("secret", 15*time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/profiles/abcd1234", nil)
	rec := httptest.NewRecorder()
	protectedRouter(tokens).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestProfileAuthMiddleware_RejectsOtherProfile(t *testing.T) {
	tokens := service.NewTokenService("secret", 15*time.Minute)
	tok, err := tokens.Issue("ffff0000")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/profiles/abcd1234", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	protectedRouter(tokens).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestProfileAuthMiddleware_RejectsForeignSecret(t *testing.T) {
	tok, err := service.NewTokenService("other", 15*time.Minute).Issue("abcd1234")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/profiles/abcd1234", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	protectedRouter(service.NewTokenService("secret", 15*time.Minute)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
