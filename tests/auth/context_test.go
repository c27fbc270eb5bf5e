package auth_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/perfcycle/review-api/internal/auth"
	"github.com/perfcycle/review-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContextRoundTrip(t *testing.T) {
	userCtx := &auth.UserContext{
		UserID:      uuid.New(),
		DisplayName: "Alice",
		Email:       "alice@example.com",
		Role:        domain.RoleManager,
		CompanyID:   uuid.New(),
	}

	ctx := auth.WithUserContext(context.Background(), userCtx)

	got, ok := auth.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, userCtx, got)

	_, ok = auth.FromContext(context.Background())
	assert.False(t, ok)
}

func TestMustFromContext(t *testing.T) {
	t.Run("panics without context", func(t *testing.T) {
		assert.Panics(t, func() {
			auth.MustFromContext(context.Background())
		})
	})

	t.Run("returns the stored context", func(t *testing.T) {
		userCtx := &auth.UserContext{UserID: uuid.New()}
		ctx := auth.WithUserContext(context.Background(), userCtx)
		assert.Equal(t, userCtx, auth.MustFromContext(ctx))
	})
}

func TestUserContextRoles(t *testing.T) {
	admin := &auth.UserContext{Role: domain.RoleAdmin}
	manager := &auth.UserContext{Role: domain.RoleManager}
	employee := &auth.UserContext{Role: domain.RoleEmployee}

	assert.True(t, admin.IsAdmin())
	assert.False(t, manager.IsAdmin())
	assert.False(t, employee.IsAdmin())

	assert.True(t, admin.IsManager())
	assert.True(t, manager.IsManager())
	assert.False(t, employee.IsManager())

	assert.True(t, employee.HasRole(domain.RoleEmployee))
	assert.False(t, employee.HasRole(domain.RoleManager))
	assert.True(t, employee.HasAnyRole(domain.RoleManager, domain.RoleEmployee))
	assert.False(t, employee.HasAnyRole(domain.RoleAdmin, domain.RoleManager))
}

func TestGetEffectiveCompanyFilter(t *testing.T) {
	companyA := uuid.New()
	companyB := uuid.New()

	t.Run("no context yields nil uuid", func(t *testing.T) {
		assert.Equal(t, uuid.Nil, auth.GetEffectiveCompanyFilter(context.Background()))
	})

	t.Run("user context supplies the company", func(t *testing.T) {
		ctx := auth.WithUserContext(context.Background(), &auth.UserContext{CompanyID: companyA})
		assert.Equal(t, companyA, auth.GetEffectiveCompanyFilter(ctx))
	})

	t.Run("explicit filter wins over user context", func(t *testing.T) {
		ctx := auth.WithUserContext(context.Background(), &auth.UserContext{CompanyID: companyA})
		ctx = auth.WithCompanyFilter(ctx, &auth.CompanyFilter{CompanyID: companyB})
		assert.Equal(t, companyB, auth.GetEffectiveCompanyFilter(ctx))
	})
}

func TestCanAccessCompany(t *testing.T) {
	companyID := uuid.New()
	userCtx := &auth.UserContext{CompanyID: companyID}

	assert.True(t, userCtx.CanAccessCompany(companyID))
	assert.False(t, userCtx.CanAccessCompany(uuid.New()))
}
