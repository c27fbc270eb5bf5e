package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/perfcycle/review-api/internal/domain"
	"github.com/perfcycle/review-api/internal/repository"
	"github.com/perfcycle/review-api/internal/service"
	"github.com/perfcycle/review-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupUserServiceTestDB(t *testing.T) *gorm.DB {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestData(t, db) })
	return db
}

func createUserService(db *gorm.DB) *service.UserService {
	return service.NewUserService(
		repository.NewUserRepository(db),
		repository.NewCompanyRepository(db),
		zap.NewNop(),
		db,
	)
}

func TestUserService_Signup(t *testing.T) {
	db := setupUserServiceTestDB(t)
	svc := createUserService(db)

	t.Run("creates company with its first admin", func(t *testing.T) {
		email := testutil.UniqueEmail("founder")
		company, admin, err := svc.Signup(context.Background(), &domain.SignupRequest{
			CompanyName: "Acme Corp",
			AdminName:   "Ada Admin",
			AdminEmail:  email,
		})
		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", company.Name)
		assert.Equal(t, company.ID, admin.CompanyID)
		assert.Equal(t, domain.RoleAdmin, admin.Role)
		assert.Equal(t, email, admin.Email)
		assert.True(t, admin.IsActive)
	})

	t.Run("lowercases the admin email", func(t *testing.T) {
		email := testutil.UniqueEmail("Founder")
		_, admin, err := svc.Signup(context.Background(), &domain.SignupRequest{
			CompanyName: "Mixed Case Corp",
			AdminName:   "Ada Admin",
			AdminEmail:  strings.ToUpper(email),
		})
		require.NoError(t, err)
		assert.Equal(t, strings.ToLower(email), admin.Email)
	})

	t.Run("duplicate email leaves no orphan company", func(t *testing.T) {
		email := testutil.UniqueEmail("dup")
		_, _, err := svc.Signup(context.Background(), &domain.SignupRequest{
			CompanyName: "First Corp",
			AdminName:   "Ada Admin",
			AdminEmail:  email,
		})
		require.NoError(t, err)

		_, _, err = svc.Signup(context.Background(), &domain.SignupRequest{
			CompanyName: "Second Corp",
			AdminName:   "Bob Admin",
			AdminEmail:  email,
		})
		var conflictErr *domain.ConflictError
		require.ErrorAs(t, err, &conflictErr)

		var count int64
		require.NoError(t, db.Model(&domain.Company{}).Where("name = ?", "Second Corp").Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestUserService_Create(t *testing.T) {
	db := setupUserServiceTestDB(t)
	svc := createUserService(db)

	company := testutil.CreateTestCompany(t, db, "People Co")
	admin := testutil.CreateTestUser(t, db, company.ID, "Admin", domain.RoleAdmin)
	ctx := testutil.TenantContext(company.ID, admin.ID, domain.RoleAdmin)

	t.Run("creates an employee with a manager", func(t *testing.T) {
		user, err := svc.Create(ctx, company.ID, &domain.CreateUserRequest{
			Name:      "Eve Employee",
			Email:     testutil.UniqueEmail("eve"),
			Role:      domain.RoleEmployee,
			ManagerID: &admin.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, company.ID, user.CompanyID)
		require.NotNil(t, user.ManagerID)
		assert.Equal(t, admin.ID, *user.ManagerID)
		assert.True(t, user.IsActive)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		email := testutil.UniqueEmail("taken")
		_, err := svc.Create(ctx, company.ID, &domain.CreateUserRequest{
			Name:  "First",
			Email: email,
			Role:  domain.RoleEmployee,
		})
		require.NoError(t, err)

		_, err = svc.Create(ctx, company.ID, &domain.CreateUserRequest{
			Name:  "Second",
			Email: email,
			Role:  domain.RoleEmployee,
		})
		var conflictErr *domain.ConflictError
		assert.ErrorAs(t, err, &conflictErr)
	})

	t.Run("rejects manager from another company", func(t *testing.T) {
		other := testutil.CreateTestCompany(t, db, "Other Co")
		foreignManager := testutil.CreateTestUser(t, db, other.ID, "Foreign Manager", domain.RoleManager)

		_, err := svc.Create(ctx, company.ID, &domain.CreateUserRequest{
			Name:      "Orphan",
			Email:     testutil.UniqueEmail("orphan"),
			Role:      domain.RoleEmployee,
			ManagerID: &foreignManager.ID,
		})
		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Error(), "not in your company")
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := svc.Create(ctx, company.ID, &domain.CreateUserRequest{
			Name:  "Strange",
			Email: testutil.UniqueEmail("strange"),
			Role:  domain.UserRole("OWNER"),
		})
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestUserService_UpdateDeactivate(t *testing.T) {
	db := setupUserServiceTestDB(t)
	svc := createUserService(db)

	company := testutil.CreateTestCompany(t, db, "People Co")
	admin := testutil.CreateTestUser(t, db, company.ID, "Admin", domain.RoleAdmin)
	ctx := testutil.TenantContext(company.ID, admin.ID, domain.RoleAdmin)

	t.Run("update changes role and manager", func(t *testing.T) {
		manager := testutil.CreateTestUser(t, db, company.ID, "Manager", domain.RoleManager)
		employee := testutil.CreateTestUser(t, db, company.ID, "Employee", domain.RoleEmployee)

		updated, err := svc.Update(ctx, employee.ID, &domain.UpdateUserRequest{
			Name:      "Promoted Employee",
			Role:      domain.RoleManager,
			ManagerID: &manager.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "Promoted Employee", updated.Name)
		assert.Equal(t, domain.RoleManager, updated.Role)
		require.NotNil(t, updated.ManagerID)
		assert.Equal(t, manager.ID, *updated.ManagerID)
	})

	t.Run("user cannot be their own manager", func(t *testing.T) {
		employee := testutil.CreateTestUser(t, db, company.ID, "Loop", domain.RoleEmployee)

		_, err := svc.Update(ctx, employee.ID, &domain.UpdateUserRequest{
			Name:      "Loop",
			Role:      domain.RoleEmployee,
			ManagerID: &employee.ID,
		})
		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Error(), "own manager")
	})

	t.Run("deactivate blocked while managing reports", func(t *testing.T) {
		manager := testutil.CreateTestUser(t, db, company.ID, "Busy Manager", domain.RoleManager)
		report := testutil.CreateTestUser(t, db, company.ID, "Report", domain.RoleEmployee)
		require.NoError(t, db.Model(report).Update("manager_id", manager.ID).Error)

		err := svc.Deactivate(ctx, manager.ID)
		var conflictErr *domain.ConflictError
		require.ErrorAs(t, err, &conflictErr)
		assert.Contains(t, conflictErr.Error(), "direct reports")
	})

	t.Run("deactivate disables the account", func(t *testing.T) {
		employee := testutil.CreateTestUser(t, db, company.ID, "Leaver", domain.RoleEmployee)

		require.NoError(t, svc.Deactivate(ctx, employee.ID))

		got, err := svc.GetByID(ctx, employee.ID)
		require.NoError(t, err)
		assert.False(t, got.IsActive)
	})

	t.Run("cross-tenant user looks missing", func(t *testing.T) {
		other := testutil.CreateTestCompany(t, db, "Other Co")
		foreign := testutil.CreateTestUser(t, db, other.ID, "Foreign", domain.RoleEmployee)

		var notFoundErr *domain.NotFoundError
		_, err := svc.GetByID(ctx, foreign.ID)
		assert.ErrorAs(t, err, &notFoundErr)

		err = svc.Deactivate(ctx, foreign.ID)
		assert.ErrorAs(t, err, &notFoundErr)
	})
}
