package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/musfiqshanta/launchmybiz-backend/internal/auth"
	"github.com/musfiqshanta/launchmybiz-backend/internal/domain"
	"github.com/musfiqshanta/launchmybiz-backend/internal/repository"
)

type fakeAdminRepo struct {
	admin *domain.Admin
	err   error
}

func (f *fakeAdminRepo) GetAdminByEmail(_ context.Context, _ string) (*domain.Admin, error) {
	return f.admin, f.err
}

func (f *fakeAdminRepo) GetAdminByID(_ context.Context, _ string) (*domain.Admin, error) {
	return f.admin, f.err
}

func (f *fakeAdminRepo) UpdateAdminPassword(_ context.Context, _, _ string) error {
	return f.err
}

func TestAdminAuthMiddleware_ValidCookie(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret")
	adminID := primitive.NewObjectID()
	repo := &fakeAdminRepo{admin: &domain.Admin{ID: adminID, Email: "admin@example.com", Role: "admin"}}

	token, err := tokens.Sign(auth.Claims{ID: adminID.Hex(), Email: "admin@example.com", Role: "admin"})
	require.NoError(t, err)

	var seen *domain.Admin
	handler := AdminAuthMiddleware(tokens, repo)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = adminFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "admin@example.com", seen.Email)
}

func TestAdminAuthMiddleware_MissingCookie(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret")
	handler := AdminAuthMiddleware(tokens, &fakeAdminRepo{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuthMiddleware_InvalidToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret")
	handler := AdminAuthMiddleware(tokens, &fakeAdminRepo{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "garbage"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuthMiddleware_UnknownAdmin(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret")
	repo := &fakeAdminRepo{err: repository.ErrAdminNotFound}

	token, err := tokens.Sign(auth.Claims{ID: primitive.NewObjectID().Hex()})
	require.NoError(t, err)

	handler := AdminAuthMiddleware(tokens, repo)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
