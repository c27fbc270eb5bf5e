package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/perfcycle/review-api/internal/auth"
	"github.com/perfcycle/review-api/internal/config"
	"github.com/perfcycle/review-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// stubResolver maps emails to users without a database
type stubResolver struct {
	users map[string]*domain.User
}

func (s *stubResolver) ResolveByEmail(_ context.Context, email string) (*domain.User, error) {
	if user, ok := s.users[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestMiddleware(t *testing.T, users map[string]*domain.User) *auth.Middleware {
	t.Helper()
	cfg := &config.Config{}
	cfg.Auth.DevSecret = devSecret
	cfg.ApiKey.Value = "system-key"
	return auth.NewMiddleware(cfg, &stubResolver{users: users}, zap.NewNop())
}

func echoUserHandler(captured **auth.UserContext) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userCtx, ok := auth.FromContext(r.Context()); ok {
			*captured = userCtx
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_Authenticate(t *testing.T) {
	companyID := uuid.New()
	user := &domain.User{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		CompanyID: companyID,
		Name:      "Alice",
		Email:     "alice@example.com",
		Role:      domain.RoleManager,
		IsActive:  true,
	}
	inactive := &domain.User{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		CompanyID: companyID,
		Name:      "Gone",
		Email:     "gone@example.com",
		Role:      domain.RoleEmployee,
		IsActive:  false,
	}
	mw := newTestMiddleware(t, map[string]*domain.User{
		user.Email:     user,
		inactive.Email: inactive,
	})

	bearer := func(email string) string {
		return "Bearer " + signHMAC(t, jwt.MapClaims{
			"email": email,
			"name":  "Alice",
			"sub":   "s",
			"exp":   time.Now().Add(time.Hour).Unix(),
		}, devSecret)
	}

	t.Run("valid token resolves to the provisioned user", func(t *testing.T) {
		var captured *auth.UserContext
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cycles", nil)
		req.Header.Set("Authorization", bearer(user.Email))
		rec := httptest.NewRecorder()

		mw.Authenticate(echoUserHandler(&captured)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, captured)
		assert.Equal(t, user.ID, captured.UserID)
		assert.Equal(t, companyID, captured.CompanyID)
		assert.Equal(t, domain.RoleManager, captured.Role)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cycles", nil)
		rec := httptest.NewRecorder()

		var captured *auth.UserContext
		mw.Authenticate(echoUserHandler(&captured)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, captured)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cycles", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()

		var captured *auth.UserContext
		mw.Authenticate(echoUserHandler(&captured)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown identity is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cycles", nil)
		req.Header.Set("Authorization", bearer("nobody@example.com"))
		rec := httptest.NewRecorder()

		var captured *auth.UserContext
		mw.Authenticate(echoUserHandler(&captured)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("deactivated account is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cycles", nil)
		req.Header.Set("Authorization", bearer(inactive.Email))
		rec := httptest.NewRecorder()

		var captured *auth.UserContext
		mw.Authenticate(echoUserHandler(&captured)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("api key with company header acts as system admin", func(t *testing.T) {
		var captured *auth.UserContext
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cycles", nil)
		req.Header.Set("x-api-key", "system-key")
		req.Header.Set("X-Company-ID", companyID.String())
		rec := httptest.NewRecorder()

		mw.Authenticate(echoUserHandler(&captured)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, captured)
		assert.Equal(t, uuid.Nil, captured.UserID)
		assert.Equal(t, companyID, captured.CompanyID)
		assert.Equal(t, domain.RoleAdmin, captured.Role)
	})

	t.Run("api key without company header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cycles", nil)
		req.Header.Set("x-api-key", "system-key")
		rec := httptest.NewRecorder()

		var captured *auth.UserContext
		mw.Authenticate(echoUserHandler(&captured)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong api key is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cycles", nil)
		req.Header.Set("x-api-key", "wrong-key")
		req.Header.Set("X-Company-ID", companyID.String())
		rec := httptest.NewRecorder()

		var captured *auth.UserContext
		mw.Authenticate(echoUserHandler(&captured)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestMiddleware_RequireAdmin(t *testing.T) {
	mw := newTestMiddleware(t, nil)

	handler := mw.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/cycles/x", nil)
		ctx := auth.WithUserContext(req.Context(), &auth.UserContext{Role: domain.RoleAdmin})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("employee is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/cycles/x", nil)
		ctx := auth.WithUserContext(req.Context(), &auth.UserContext{Role: domain.RoleEmployee})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no user context is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/cycles/x", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
