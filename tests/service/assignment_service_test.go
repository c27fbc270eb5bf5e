package service_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/perfcycle/review-api/internal/domain"
	"github.com/perfcycle/review-api/internal/repository"
	"github.com/perfcycle/review-api/internal/service"
	"github.com/perfcycle/review-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupAssignmentServiceTestDB(t *testing.T) *gorm.DB {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestData(t, db)
	})
	return db
}

func createAssignmentService(db *gorm.DB) *service.AssignmentService {
	logger := zap.NewNop()
	return service.NewAssignmentService(
		repository.NewAssignmentRepository(db),
		repository.NewCycleRepository(db),
		repository.NewUserRepository(db),
		logger,
		db,
	)
}

// validReviewerSet builds 3 peers plus 1 manager, the smallest legal set
func validReviewerSet(manager *domain.User, peers []*domain.User) []domain.AssignmentInput {
	inputs := []domain.AssignmentInput{
		{ReviewerID: manager.ID, ReviewerType: domain.ReviewerTypeManager},
	}
	for _, p := range peers {
		inputs = append(inputs, domain.AssignmentInput{ReviewerID: p.ID, ReviewerType: domain.ReviewerTypePeer})
	}
	return inputs
}

func TestAssignmentService_Upsert(t *testing.T) {
	db := setupAssignmentServiceTestDB(t)
	svc := createAssignmentService(db)

	company := testutil.CreateTestCompany(t, db, "Assign Co")
	admin := testutil.CreateTestUser(t, db, company.ID, "Admin", domain.RoleAdmin)
	ctx := testutil.TenantContext(company.ID, admin.ID, domain.RoleAdmin)

	cycle := testutil.CreateTestCycle(t, db, company.ID, "H1", domain.CycleStatusDraft, date(2026, 1, 1), date(2026, 6, 30))
	employee := testutil.CreateTestUser(t, db, company.ID, "Subject", domain.RoleEmployee)
	manager := testutil.CreateTestUser(t, db, company.ID, "Boss", domain.RoleManager)
	peers := []*domain.User{
		testutil.CreateTestUser(t, db, company.ID, "Peer 1", domain.RoleEmployee),
		testutil.CreateTestUser(t, db, company.ID, "Peer 2", domain.RoleEmployee),
		testutil.CreateTestUser(t, db, company.ID, "Peer 3", domain.RoleEmployee),
		testutil.CreateTestUser(t, db, company.ID, "Peer 4", domain.RoleEmployee),
	}

	t.Run("valid set replaces previous assignments atomically", func(t *testing.T) {
		dtos, err := svc.Upsert(ctx, company.ID, &domain.UpsertAssignmentsRequest{
			ReviewCycleID: cycle.ID,
			EmployeeID:    employee.ID,
			Assignments:   validReviewerSet(manager, peers[:3]),
		})
		require.NoError(t, err)
		assert.Len(t, dtos, 4)

		// Replace with a different peer set; the result is the new set, not a merge
		dtos, err = svc.Upsert(ctx, company.ID, &domain.UpsertAssignmentsRequest{
			ReviewCycleID: cycle.ID,
			EmployeeID:    employee.ID,
			Assignments:   validReviewerSet(manager, peers[1:4]),
		})
		require.NoError(t, err)
		assert.Len(t, dtos, 4)
		for _, dto := range dtos {
			assert.NotEqual(t, peers[0].ID, dto.ReviewerID)
		}
	})

	t.Run("two peers and a manager is rejected", func(t *testing.T) {
		_, err := svc.Upsert(ctx, company.ID, &domain.UpsertAssignmentsRequest{
			ReviewCycleID: cycle.ID,
			EmployeeID:    employee.ID,
			Assignments:   validReviewerSet(manager, peers[:2]),
		})
		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, validation.Message, "3-5")
	})

	t.Run("six peers is rejected", func(t *testing.T) {
		extra := []*domain.User{
			testutil.CreateTestUser(t, db, company.ID, "Peer 5", domain.RoleEmployee),
			testutil.CreateTestUser(t, db, company.ID, "Peer 6", domain.RoleEmployee),
		}
		_, err := svc.Upsert(ctx, company.ID, &domain.UpsertAssignmentsRequest{
			ReviewCycleID: cycle.ID,
			EmployeeID:    employee.ID,
			Assignments:   validReviewerSet(manager, append(append([]*domain.User{}, peers...), extra...)),
		})
		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, validation.Message, "3-5")
	})

	t.Run("missing manager is rejected", func(t *testing.T) {
		inputs := []domain.AssignmentInput{}
		for _, p := range peers[:3] {
			inputs = append(inputs, domain.AssignmentInput{ReviewerID: p.ID, ReviewerType: domain.ReviewerTypePeer})
		}
		_, err := svc.Upsert(ctx, company.ID, &domain.UpsertAssignmentsRequest{
			ReviewCycleID: cycle.ID,
			EmployeeID:    employee.ID,
			Assignments:   inputs,
		})
		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, validation.Message, "MANAGER")
	})

	t.Run("self-review is rejected", func(t *testing.T) {
		inputs := validReviewerSet(manager, peers[:2])
		inputs = append(inputs, domain.AssignmentInput{ReviewerID: employee.ID, ReviewerType: domain.ReviewerTypePeer})
		_, err := svc.Upsert(ctx, company.ID, &domain.UpsertAssignmentsRequest{
			ReviewCycleID: cycle.ID,
			EmployeeID:    employee.ID,
			Assignments:   inputs,
		})
		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, validation.Message, "themselves")
	})

	t.Run("duplicate reviewer edge is rejected", func(t *testing.T) {
		inputs := validReviewerSet(manager, peers[:3])
		inputs = append(inputs, domain.AssignmentInput{ReviewerID: peers[0].ID, ReviewerType: domain.ReviewerTypePeer})
		_, err := svc.Upsert(ctx, company.ID, &domain.UpsertAssignmentsRequest{
			ReviewCycleID: cycle.ID,
			EmployeeID:    employee.ID,
			Assignments:   inputs,
		})
		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, validation.Message, "duplicate")
	})

	t.Run("same person may be manager and peer", func(t *testing.T) {
		inputs := []domain.AssignmentInput{
			{ReviewerID: manager.ID, ReviewerType: domain.ReviewerTypeManager},
			{ReviewerID: manager.ID, ReviewerType: domain.ReviewerTypePeer},
			{ReviewerID: peers[0].ID, ReviewerType: domain.ReviewerTypePeer},
			{ReviewerID: peers[1].ID, ReviewerType: domain.ReviewerTypePeer},
		}
		dtos, err := svc.Upsert(ctx, company.ID, &domain.UpsertAssignmentsRequest{
			ReviewCycleID: cycle.ID,
			EmployeeID:    employee.ID,
			Assignments:   inputs,
		})
		require.NoError(t, err)
		assert.Len(t, dtos, 4)
	})

	t.Run("reviewer from another company is rejected", func(t *testing.T) {
		other := testutil.CreateTestCompany(t, db, "Rival Co")
		outsider := testutil.CreateTestUser(t, db, other.ID, "Outsider", domain.RoleEmployee)

		inputs := validReviewerSet(manager, peers[:2])
		inputs = append(inputs, domain.AssignmentInput{ReviewerID: outsider.ID, ReviewerType: domain.ReviewerTypePeer})
		_, err := svc.Upsert(ctx, company.ID, &domain.UpsertAssignmentsRequest{
			ReviewCycleID: cycle.ID,
			EmployeeID:    employee.ID,
			Assignments:   inputs,
		})
		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, validation.Message, "not in your company")
	})

	t.Run("empty set clears the reviewer list", func(t *testing.T) {
		_, err := svc.Upsert(ctx, company.ID, &domain.UpsertAssignmentsRequest{
			ReviewCycleID: cycle.ID,
			EmployeeID:    employee.ID,
			Assignments:   validReviewerSet(manager, peers[:3]),
		})
		require.NoError(t, err)

		dtos, err := svc.Upsert(ctx, company.ID, &domain.UpsertAssignmentsRequest{
			ReviewCycleID: cycle.ID,
			EmployeeID:    employee.ID,
			Assignments:   []domain.AssignmentInput{},
		})
		require.NoError(t, err)
		assert.Empty(t, dtos)
	})

	t.Run("invalid batch leaves previous assignments untouched", func(t *testing.T) {
		_, err := svc.Upsert(ctx, company.ID, &domain.UpsertAssignmentsRequest{
			ReviewCycleID: cycle.ID,
			EmployeeID:    employee.ID,
			Assignments:   validReviewerSet(manager, peers[:3]),
		})
		require.NoError(t, err)

		_, err = svc.Upsert(ctx, company.ID, &domain.UpsertAssignmentsRequest{
			ReviewCycleID: cycle.ID,
			EmployeeID:    employee.ID,
			Assignments:   validReviewerSet(manager, peers[:1]),
		})
		require.Error(t, err)

		dtos, err := svc.ListForEmployee(ctx, cycle.ID, employee.ID)
		require.NoError(t, err)
		assert.Len(t, dtos, 4)
	})

	t.Run("cycle in another company returns not found", func(t *testing.T) {
		other := testutil.CreateTestCompany(t, db, "Far Co")
		otherAdmin := testutil.CreateTestUser(t, db, other.ID, "Other Admin", domain.RoleAdmin)
		otherCtx := testutil.TenantContext(other.ID, otherAdmin.ID, domain.RoleAdmin)

		_, err := svc.Upsert(otherCtx, other.ID, &domain.UpsertAssignmentsRequest{
			ReviewCycleID: cycle.ID,
			EmployeeID:    employee.ID,
			Assignments:   []domain.AssignmentInput{},
		})
		var notFound *domain.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestAssignmentService_Import(t *testing.T) {
	db := setupAssignmentServiceTestDB(t)
	svc := createAssignmentService(db)

	company := testutil.CreateTestCompany(t, db, "Import Co")
	admin := testutil.CreateTestUser(t, db, company.ID, "Admin", domain.RoleAdmin)
	ctx := testutil.TenantContext(company.ID, admin.ID, domain.RoleAdmin)

	cycle := testutil.CreateTestCycle(t, db, company.ID, "H2", domain.CycleStatusDraft, date(2026, 7, 1), date(2026, 12, 31))

	employee := testutil.CreateTestUser(t, db, company.ID, "Subject", domain.RoleEmployee)
	manager := testutil.CreateTestUser(t, db, company.ID, "Boss", domain.RoleManager)
	peers := []*domain.User{
		testutil.CreateTestUser(t, db, company.ID, "Peer 1", domain.RoleEmployee),
		testutil.CreateTestUser(t, db, company.ID, "Peer 2", domain.RoleEmployee),
		testutil.CreateTestUser(t, db, company.ID, "Peer 3", domain.RoleEmployee),
	}

	rowsFor := func(employeeEmail string) []domain.AssignmentImportRow {
		rows := []domain.AssignmentImportRow{
			{EmployeeEmail: employeeEmail, ReviewerEmail: manager.Email, ReviewerType: domain.ReviewerTypeManager},
		}
		for _, p := range peers {
			rows = append(rows, domain.AssignmentImportRow{
				EmployeeEmail: employeeEmail,
				ReviewerEmail: p.Email,
				ReviewerType:  domain.ReviewerTypePeer,
			})
		}
		return rows
	}

	t.Run("successful import of one employee group", func(t *testing.T) {
		result, err := svc.Import(ctx, company.ID, &domain.ImportAssignmentsRequest{
			ReviewCycleID: cycle.ID,
			Rows:          rowsFor(employee.Email),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Successful)
		assert.Equal(t, 0, result.Failed)
		assert.Empty(t, result.Errors)

		dtos, err := svc.ListForEmployee(ctx, cycle.ID, employee.ID)
		require.NoError(t, err)
		assert.Len(t, dtos, 4)
	})

	t.Run("emails match case-insensitively", func(t *testing.T) {
		upper := make([]domain.AssignmentImportRow, 0)
		for _, row := range rowsFor(employee.Email) {
			row.EmployeeEmail = strings.ToUpper(row.EmployeeEmail)
			row.ReviewerEmail = strings.ToUpper(row.ReviewerEmail)
			upper = append(upper, row)
		}

		result, err := svc.Import(ctx, company.ID, &domain.ImportAssignmentsRequest{
			ReviewCycleID: cycle.ID,
			Rows:          upper,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Successful)
		assert.Equal(t, 0, result.Failed)
	})

	t.Run("partial failure never aborts the batch", func(t *testing.T) {
		second := testutil.CreateTestUser(t, db, company.ID, "Second Subject", domain.RoleEmployee)

		rows := rowsFor(second.Email)
		rows = append(rows, domain.AssignmentImportRow{
			EmployeeEmail: "ghost@example.com",
			ReviewerEmail: manager.Email,
			ReviewerType:  domain.ReviewerTypeManager,
		})

		result, err := svc.Import(ctx, company.ID, &domain.ImportAssignmentsRequest{
			ReviewCycleID: cycle.ID,
			Rows:          rows,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Successful)
		assert.Equal(t, 1, result.Failed)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "ghost@example.com")
	})

	t.Run("group failing validation is reported per employee", func(t *testing.T) {
		third := testutil.CreateTestUser(t, db, company.ID, "Third Subject", domain.RoleEmployee)

		// Only two peer rows: the group fails the 3-5 rule as a whole
		rows := []domain.AssignmentImportRow{
			{EmployeeEmail: third.Email, ReviewerEmail: manager.Email, ReviewerType: domain.ReviewerTypeManager},
			{EmployeeEmail: third.Email, ReviewerEmail: peers[0].Email, ReviewerType: domain.ReviewerTypePeer},
			{EmployeeEmail: third.Email, ReviewerEmail: peers[1].Email, ReviewerType: domain.ReviewerTypePeer},
		}

		result, err := svc.Import(ctx, company.ID, &domain.ImportAssignmentsRequest{
			ReviewCycleID: cycle.ID,
			Rows:          rows,
		})
		require.NoError(t, err)
		assert.Equal(t, 0, result.Successful)
		assert.Equal(t, 1, result.Failed)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "3-5")
	})

	t.Run("unknown cycle returns not found", func(t *testing.T) {
		_, err := svc.Import(ctx, company.ID, &domain.ImportAssignmentsRequest{
			ReviewCycleID: uuid.New(),
			Rows:          rowsFor(employee.Email),
		})
		var notFound *domain.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}
