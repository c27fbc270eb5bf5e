package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

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

func setupScoringServiceTestDB(t *testing.T) *gorm.DB {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestData(t, db)
	})
	return db
}

func createScoringService(db *gorm.DB) *service.ScoringService {
	logger := zap.NewNop()
	return service.NewScoringService(
		repository.NewReviewRepository(db),
		repository.NewCycleRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewUserRepository(db),
		logger,
	)
}

func intPtr(v int) *int {
	return &v
}

// createSubmittedReview inserts a SUBMITTED review with one rating answer
// per (question, rating) pair.
func createSubmittedReview(t *testing.T, db *gorm.DB, cycle *domain.ReviewCycle, employeeID, reviewerID uuid.UUID, reviewType domain.ReviewType, answers map[uuid.UUID]int) *domain.Review {
	now := time.Now().UTC()
	review := &domain.Review{
		ReviewCycleID: cycle.ID,
		CompanyID:     cycle.CompanyID,
		EmployeeID:    employeeID,
		ReviewerID:    reviewerID,
		ReviewType:    reviewType,
		Status:        domain.ReviewStatusSubmitted,
		SubmittedAt:   &now,
	}
	for questionID, rating := range answers {
		review.Answers = append(review.Answers, domain.Answer{
			QuestionID: questionID,
			Rating:     intPtr(rating),
		})
	}
	err := db.Create(review).Error
	require.NoError(t, err)
	return review
}

func TestScoringService_Calculate(t *testing.T) {
	db := setupScoringServiceTestDB(t)
	svc := createScoringService(db)

	company := testutil.CreateTestCompany(t, db, "Scoring Co")
	admin := testutil.CreateTestUser(t, db, company.ID, "Admin", domain.RoleAdmin)
	ctx := testutil.TenantContext(company.ID, admin.ID, domain.RoleAdmin)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	cycle := testutil.CreateTestCycle(t, db, company.ID, "Q1", domain.CycleStatusActive, start, end)

	selfQ := testutil.CreateTestQuestion(t, db, company.ID, domain.ReviewTypeSelf, domain.QuestionKindRating, "Rate yourself", 0)
	managerQ := testutil.CreateTestQuestion(t, db, company.ID, domain.ReviewTypeManager, domain.QuestionKindRating, "Rate this report", 0)
	peerQ := testutil.CreateTestQuestion(t, db, company.ID, domain.ReviewTypePeer, domain.QuestionKindRating, "Rate this colleague", 0)
	testutil.CreateTestQuestion(t, db, company.ID, domain.ReviewTypePeer, domain.QuestionKindText, "Anything else?", 1)

	t.Run("overall is the mean of the three type scores", func(t *testing.T) {
		employee := testutil.CreateTestUser(t, db, company.ID, "Employee B", domain.RoleEmployee)
		manager := testutil.CreateTestUser(t, db, company.ID, "Manager", domain.RoleManager)
		peers := []*domain.User{
			testutil.CreateTestUser(t, db, company.ID, "Peer One", domain.RoleEmployee),
			testutil.CreateTestUser(t, db, company.ID, "Peer Two", domain.RoleEmployee),
			testutil.CreateTestUser(t, db, company.ID, "Peer Three", domain.RoleEmployee),
		}

		createSubmittedReview(t, db, cycle, employee.ID, employee.ID, domain.ReviewTypeSelf, map[uuid.UUID]int{selfQ.ID: 4})
		createSubmittedReview(t, db, cycle, employee.ID, manager.ID, domain.ReviewTypeManager, map[uuid.UUID]int{managerQ.ID: 5})
		createSubmittedReview(t, db, cycle, employee.ID, peers[0].ID, domain.ReviewTypePeer, map[uuid.UUID]int{peerQ.ID: 3})
		createSubmittedReview(t, db, cycle, employee.ID, peers[1].ID, domain.ReviewTypePeer, map[uuid.UUID]int{peerQ.ID: 4})
		createSubmittedReview(t, db, cycle, employee.ID, peers[2].ID, domain.ReviewTypePeer, map[uuid.UUID]int{peerQ.ID: 5})

		score, err := svc.Calculate(ctx, cycle.ID, employee.ID)
		require.NoError(t, err)

		require.NotNil(t, score.SelfScore)
		require.NotNil(t, score.ManagerScore)
		require.NotNil(t, score.PeerScore)
		require.NotNil(t, score.OverallScore)
		assert.InDelta(t, 4.0, *score.SelfScore, 1e-9)
		assert.InDelta(t, 5.0, *score.ManagerScore, 1e-9)
		assert.InDelta(t, 4.0, *score.PeerScore, 1e-9)
		assert.InDelta(t, (4.0+5.0+4.0)/3.0, *score.OverallScore, 1e-9)
		assert.Empty(t, score.Warnings)
		assert.Equal(t, "Employee B", score.EmployeeName)
	})

	t.Run("missing type is null and excluded from the overall mean", func(t *testing.T) {
		employee := testutil.CreateTestUser(t, db, company.ID, "No Peers", domain.RoleEmployee)
		manager := testutil.CreateTestUser(t, db, company.ID, "Manager Two", domain.RoleManager)

		createSubmittedReview(t, db, cycle, employee.ID, employee.ID, domain.ReviewTypeSelf, map[uuid.UUID]int{selfQ.ID: 2})
		createSubmittedReview(t, db, cycle, employee.ID, manager.ID, domain.ReviewTypeManager, map[uuid.UUID]int{managerQ.ID: 4})

		score, err := svc.Calculate(ctx, cycle.ID, employee.ID)
		require.NoError(t, err)

		assert.Nil(t, score.PeerScore)
		require.NotNil(t, score.OverallScore)
		assert.InDelta(t, 3.0, *score.OverallScore, 1e-9)
		assert.Contains(t, score.Warnings, "no submitted peer reviews")
	})

	t.Run("pending reviews are excluded with a warning", func(t *testing.T) {
		employee := testutil.CreateTestUser(t, db, company.ID, "Half Done", domain.RoleEmployee)
		manager := testutil.CreateTestUser(t, db, company.ID, "Manager Three", domain.RoleManager)
		peer := testutil.CreateTestUser(t, db, company.ID, "Slow Peer", domain.RoleEmployee)

		createSubmittedReview(t, db, cycle, employee.ID, manager.ID, domain.ReviewTypeManager, map[uuid.UUID]int{managerQ.ID: 3})

		// Draft peer review with a rating that must not count
		draft := &domain.Review{
			ReviewCycleID: cycle.ID,
			CompanyID:     company.ID,
			EmployeeID:    employee.ID,
			ReviewerID:    peer.ID,
			ReviewType:    domain.ReviewTypePeer,
			Status:        domain.ReviewStatusDraft,
			Answers:       []domain.Answer{{QuestionID: peerQ.ID, Rating: intPtr(1)}},
		}
		require.NoError(t, db.Create(draft).Error)

		score, err := svc.Calculate(ctx, cycle.ID, employee.ID)
		require.NoError(t, err)

		assert.Nil(t, score.PeerScore)
		require.NotNil(t, score.ManagerScore)
		assert.InDelta(t, 3.0, *score.ManagerScore, 1e-9)
		assert.Contains(t, score.Warnings, "1 pending reviews excluded")
	})

	t.Run("breakdown averages per question and excludes missing types", func(t *testing.T) {
		employee := testutil.CreateTestUser(t, db, company.ID, "Detailed", domain.RoleEmployee)
		peerA := testutil.CreateTestUser(t, db, company.ID, "Peer A", domain.RoleEmployee)
		peerB := testutil.CreateTestUser(t, db, company.ID, "Peer B", domain.RoleEmployee)

		createSubmittedReview(t, db, cycle, employee.ID, peerA.ID, domain.ReviewTypePeer, map[uuid.UUID]int{peerQ.ID: 2})
		createSubmittedReview(t, db, cycle, employee.ID, peerB.ID, domain.ReviewTypePeer, map[uuid.UUID]int{peerQ.ID: 5})

		score, err := svc.Calculate(ctx, cycle.ID, employee.ID)
		require.NoError(t, err)

		var peerRow *domain.QuestionScoreDTO
		for i := range score.QuestionBreakdown {
			if score.QuestionBreakdown[i].QuestionID == peerQ.ID {
				peerRow = &score.QuestionBreakdown[i]
			}
			// TEXT questions never appear in the breakdown
			assert.NotEqual(t, "Anything else?", score.QuestionBreakdown[i].QuestionText)
		}
		require.NotNil(t, peerRow)
		assert.Nil(t, peerRow.SelfScore)
		assert.Nil(t, peerRow.ManagerAvg)
		require.NotNil(t, peerRow.PeerAvg)
		assert.InDelta(t, 3.5, *peerRow.PeerAvg, 1e-9)
		require.NotNil(t, peerRow.OverallAvg)
		assert.InDelta(t, 3.5, *peerRow.OverallAvg, 1e-9)
	})

	t.Run("no submitted reviews at all leaves every score null", func(t *testing.T) {
		employee := testutil.CreateTestUser(t, db, company.ID, "Untouched", domain.RoleEmployee)

		score, err := svc.Calculate(ctx, cycle.ID, employee.ID)
		require.NoError(t, err)

		assert.Nil(t, score.SelfScore)
		assert.Nil(t, score.ManagerScore)
		assert.Nil(t, score.PeerScore)
		assert.Nil(t, score.OverallScore)
		assert.Contains(t, score.Warnings, "no submitted self reviews")
		assert.Contains(t, score.Warnings, "no submitted manager reviews")
		assert.Contains(t, score.Warnings, "no submitted peer reviews")
	})

	t.Run("unknown cycle returns not found", func(t *testing.T) {
		employee := testutil.CreateTestUser(t, db, company.ID, "Anyone", domain.RoleEmployee)

		_, err := svc.Calculate(ctx, uuid.New(), employee.ID)
		var notFound *domain.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("unknown employee returns not found", func(t *testing.T) {
		_, err := svc.Calculate(ctx, cycle.ID, uuid.New())
		var notFound *domain.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("cycle in another company is invisible", func(t *testing.T) {
		other := testutil.CreateTestCompany(t, db, "Other Co")
		otherAdmin := testutil.CreateTestUser(t, db, other.ID, "Other Admin", domain.RoleAdmin)
		otherCtx := testutil.TenantContext(other.ID, otherAdmin.ID, domain.RoleAdmin)

		_, err := svc.Calculate(otherCtx, cycle.ID, otherAdmin.ID)
		var notFound *domain.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestScoringService_CalculateAll(t *testing.T) {
	db := setupScoringServiceTestDB(t)
	svc := createScoringService(db)

	company := testutil.CreateTestCompany(t, db, "Batch Co")
	admin := testutil.CreateTestUser(t, db, company.ID, "Admin", domain.RoleAdmin)
	ctx := testutil.TenantContext(company.ID, admin.ID, domain.RoleAdmin)

	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	cycle := testutil.CreateTestCycle(t, db, company.ID, "Q2", domain.CycleStatusActive, start, end)

	selfQ := testutil.CreateTestQuestion(t, db, company.ID, domain.ReviewTypeSelf, domain.QuestionKindRating, "Rate yourself", 0)

	employees := []*domain.User{
		testutil.CreateTestUser(t, db, company.ID, "Emp One", domain.RoleEmployee),
		testutil.CreateTestUser(t, db, company.ID, "Emp Two", domain.RoleEmployee),
	}
	manager := testutil.CreateTestUser(t, db, company.ID, "Mgr", domain.RoleManager)
	_ = manager

	createSubmittedReview(t, db, cycle, employees[0].ID, employees[0].ID, domain.ReviewTypeSelf, map[uuid.UUID]int{selfQ.ID: 5})

	t.Run("returns one row per employee-role user", func(t *testing.T) {
		scores, err := svc.CalculateAll(ctx, cycle.ID)
		require.NoError(t, err)
		assert.Len(t, scores, 2)

		byID := make(map[uuid.UUID]domain.FinalScoreDTO, len(scores))
		for _, s := range scores {
			byID[s.EmployeeID] = s
		}
		require.Contains(t, byID, employees[0].ID)
		require.Contains(t, byID, employees[1].ID)
		require.NotNil(t, byID[employees[0].ID].SelfScore)
		assert.InDelta(t, 5.0, *byID[employees[0].ID].SelfScore, 1e-9)
		assert.Nil(t, byID[employees[1].ID].OverallScore)
	})

	t.Run("unknown cycle returns not found", func(t *testing.T) {
		_, err := svc.CalculateAll(ctx, uuid.New())
		var notFound *domain.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("companies larger than one listing page are fully covered", func(t *testing.T) {
		big := testutil.CreateTestCompany(t, db, "Big Co")
		bigAdmin := testutil.CreateTestUser(t, db, big.ID, "Big Admin", domain.RoleAdmin)
		bigCtx := testutil.TenantContext(big.ID, bigAdmin.ID, domain.RoleAdmin)
		bigCycle := testutil.CreateTestCycle(t, db, big.ID, "Big Q2", domain.CycleStatusActive, start, end)

		headcount := repository.MaxPageSize + 25
		users := make([]domain.User, 0, headcount)
		for i := 0; i < headcount; i++ {
			users = append(users, domain.User{
				CompanyID: big.ID,
				Name:      fmt.Sprintf("Employee %04d", i),
				Email:     testutil.UniqueEmail("big"),
				Role:      domain.RoleEmployee,
				IsActive:  true,
			})
		}
		require.NoError(t, db.CreateInBatches(&users, 100).Error)

		scores, err := svc.CalculateAll(bigCtx, bigCycle.ID)
		require.NoError(t, err)
		assert.Len(t, scores, headcount)
	})

	t.Run("error without tenant context", func(t *testing.T) {
		_, err := svc.CalculateAll(context.Background(), cycle.ID)
		assert.Error(t, err)
	})
}
