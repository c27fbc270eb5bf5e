package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/perfcycle/review-api/internal/auth"
	"github.com/perfcycle/review-api/internal/domain"
	"github.com/perfcycle/review-api/internal/repository"
	"github.com/perfcycle/review-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTenantTestDB(t *testing.T) *gorm.DB {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestData(t, db)
	})
	return db
}

func TestApplyCompanyFilter(t *testing.T) {
	db := setupTenantTestDB(t)

	companyA := testutil.CreateTestCompany(t, db, "Company A")
	companyB := testutil.CreateTestCompany(t, db, "Company B")

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	cycleA := testutil.CreateTestCycle(t, db, companyA.ID, "A Cycle", domain.CycleStatusDraft, start, end)
	cycleB := testutil.CreateTestCycle(t, db, companyB.ID, "B Cycle", domain.CycleStatusDraft, start, end)

	cycleRepo := repository.NewCycleRepository(db)

	adminA := testutil.CreateTestUser(t, db, companyA.ID, "Admin A", domain.RoleAdmin)
	adminB := testutil.CreateTestUser(t, db, companyB.ID, "Admin B", domain.RoleAdmin)

	ctxA := testutil.TenantContext(companyA.ID, adminA.ID, domain.RoleAdmin)
	ctxB := testutil.TenantContext(companyB.ID, adminB.ID, domain.RoleAdmin)

	t.Run("tenant sees only its own rows", func(t *testing.T) {
		cycles, total, err := cycleRepo.List(ctxA, 1, 50, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, cycles, 1)
		assert.Equal(t, cycleA.ID, cycles[0].ID)
	})

	t.Run("lookup across the tenant boundary misses", func(t *testing.T) {
		_, err := cycleRepo.GetByID(ctxA, cycleB.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		_, err = cycleRepo.GetByID(ctxB, cycleA.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("no user context matches nothing", func(t *testing.T) {
		cycles, total, err := cycleRepo.List(context.Background(), 1, 50, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, cycles)

		_, err = cycleRepo.GetByID(context.Background(), cycleA.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("explicit company filter overrides user context", func(t *testing.T) {
		ctx := auth.WithCompanyFilter(ctxA, &auth.CompanyFilter{CompanyID: companyB.ID})
		cycles, _, err := cycleRepo.List(ctx, 1, 50, nil)
		require.NoError(t, err)
		require.Len(t, cycles, 1)
		assert.Equal(t, cycleB.ID, cycles[0].ID)
	})
}

func TestMustHaveCompanyAccess(t *testing.T) {
	companyID := uuid.New()
	userID := uuid.New()

	t.Run("matching company grants access", func(t *testing.T) {
		ctx := testutil.TenantContext(companyID, userID, domain.RoleEmployee)
		assert.True(t, repository.MustHaveCompanyAccess(ctx, companyID))
	})

	t.Run("different company denies access", func(t *testing.T) {
		ctx := testutil.TenantContext(companyID, userID, domain.RoleEmployee)
		assert.False(t, repository.MustHaveCompanyAccess(ctx, uuid.New()))
	})

	t.Run("missing context denies access even for nil company", func(t *testing.T) {
		assert.False(t, repository.MustHaveCompanyAccess(context.Background(), uuid.Nil))
	})
}
