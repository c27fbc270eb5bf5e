package service_test

import (
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

func setupReviewServiceTestDB(t *testing.T) *gorm.DB {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestData(t, db)
	})
	return db
}

func createReviewService(db *gorm.DB) *service.ReviewService {
	logger := zap.NewNop()
	return service.NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewAssignmentRepository(db),
		repository.NewCycleRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewUserRepository(db),
		repository.NewNotificationRepository(db),
		logger,
		db,
	)
}

func strPtr(s string) *string {
	return &s
}

func TestReviewService_GetSelfReview(t *testing.T) {
	db := setupReviewServiceTestDB(t)
	svc := createReviewService(db)

	company := testutil.CreateTestCompany(t, db, "Review Co")
	employee := testutil.CreateTestUser(t, db, company.ID, "Worker", domain.RoleEmployee)
	ctx := testutil.TenantContext(company.ID, employee.ID, domain.RoleEmployee)

	cycle := testutil.CreateTestCycle(t, db, company.ID, "Q1", domain.CycleStatusActive, date(2026, 1, 1), date(2026, 3, 31))

	t.Run("first access creates a draft", func(t *testing.T) {
		dto, err := svc.GetSelfReview(ctx, company.ID, employee.ID, cycle.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ReviewStatusDraft, dto.Status)
		assert.Equal(t, domain.ReviewTypeSelf, dto.ReviewType)
		assert.Equal(t, employee.ID, dto.EmployeeID)
		assert.Equal(t, employee.ID, dto.ReviewerID)
	})

	t.Run("second access returns the same review", func(t *testing.T) {
		first, err := svc.GetSelfReview(ctx, company.ID, employee.ID, cycle.ID)
		require.NoError(t, err)
		second, err := svc.GetSelfReview(ctx, company.ID, employee.ID, cycle.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("unknown cycle returns not found", func(t *testing.T) {
		_, err := svc.GetSelfReview(ctx, company.ID, employee.ID, uuid.New())
		var notFound *domain.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestReviewService_StartReview(t *testing.T) {
	db := setupReviewServiceTestDB(t)
	svc := createReviewService(db)

	company := testutil.CreateTestCompany(t, db, "Review Co")
	employee := testutil.CreateTestUser(t, db, company.ID, "Subject", domain.RoleEmployee)
	reviewer := testutil.CreateTestUser(t, db, company.ID, "Peer", domain.RoleEmployee)
	ctx := testutil.TenantContext(company.ID, reviewer.ID, domain.RoleEmployee)

	cycle := testutil.CreateTestCycle(t, db, company.ID, "Q1", domain.CycleStatusActive, date(2026, 1, 1), date(2026, 3, 31))

	assignment := &domain.ReviewerAssignment{
		CompanyID:     company.ID,
		ReviewCycleID: cycle.ID,
		EmployeeID:    employee.ID,
		ReviewerID:    reviewer.ID,
		ReviewerType:  domain.ReviewerTypePeer,
	}
	require.NoError(t, db.Create(assignment).Error)

	t.Run("start review backed by an assignment", func(t *testing.T) {
		dto, err := svc.StartReview(ctx, company.ID, reviewer.ID, &domain.StartReviewRequest{
			ReviewCycleID: cycle.ID,
			EmployeeID:    employee.ID,
			ReviewType:    domain.ReviewTypePeer,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.ReviewStatusDraft, dto.Status)
		assert.Equal(t, domain.ReviewTypePeer, dto.ReviewType)
	})

	t.Run("starting again returns the existing review", func(t *testing.T) {
		first, err := svc.StartReview(ctx, company.ID, reviewer.ID, &domain.StartReviewRequest{
			ReviewCycleID: cycle.ID,
			EmployeeID:    employee.ID,
			ReviewType:    domain.ReviewTypePeer,
		})
		require.NoError(t, err)
		second, err := svc.StartReview(ctx, company.ID, reviewer.ID, &domain.StartReviewRequest{
			ReviewCycleID: cycle.ID,
			EmployeeID:    employee.ID,
			ReviewType:    domain.ReviewTypePeer,
		})
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("no assignment means no review", func(t *testing.T) {
		_, err := svc.StartReview(ctx, company.ID, reviewer.ID, &domain.StartReviewRequest{
			ReviewCycleID: cycle.ID,
			EmployeeID:    employee.ID,
			ReviewType:    domain.ReviewTypeManager,
		})
		var validation *domain.ValidationError
		assert.ErrorAs(t, err, &validation)
	})

	t.Run("SELF type is rejected here", func(t *testing.T) {
		_, err := svc.StartReview(ctx, company.ID, reviewer.ID, &domain.StartReviewRequest{
			ReviewCycleID: cycle.ID,
			EmployeeID:    reviewer.ID,
			ReviewType:    domain.ReviewTypeSelf,
		})
		var validation *domain.ValidationError
		assert.ErrorAs(t, err, &validation)
	})
}

func TestReviewService_UpsertAnswersAndSubmit(t *testing.T) {
	db := setupReviewServiceTestDB(t)
	svc := createReviewService(db)

	company := testutil.CreateTestCompany(t, db, "Review Co")
	employee := testutil.CreateTestUser(t, db, company.ID, "Worker", domain.RoleEmployee)
	ctx := testutil.TenantContext(company.ID, employee.ID, domain.RoleEmployee)

	cycle := testutil.CreateTestCycle(t, db, company.ID, "Q1", domain.CycleStatusActive, date(2026, 1, 1), date(2026, 3, 31))

	ratingQ := testutil.CreateTestQuestion(t, db, company.ID, domain.ReviewTypeSelf, domain.QuestionKindRating, "How did it go?", 0)
	textQ := testutil.CreateTestQuestion(t, db, company.ID, domain.ReviewTypeSelf, domain.QuestionKindText, "Elaborate", 1)
	taskQ := testutil.CreateTestQuestion(t, db, company.ID, domain.ReviewTypeSelf, domain.QuestionKindTaskList, "Goals", 2)
	maxChars := 10
	limitedQ := &domain.Question{
		CompanyID:  company.ID,
		ReviewType: domain.ReviewTypeSelf,
		Kind:       domain.QuestionKindText,
		Text:       "Briefly",
		MaxChars:   &maxChars,
	}
	require.NoError(t, db.Create(limitedQ).Error)

	managerQ := testutil.CreateTestQuestion(t, db, company.ID, domain.ReviewTypeManager, domain.QuestionKindRating, "Manager only", 0)

	review, err := svc.GetSelfReview(ctx, company.ID, employee.ID, cycle.ID)
	require.NoError(t, err)

	t.Run("save mixed answers into a draft", func(t *testing.T) {
		rating := 4
		dto, err := svc.UpsertAnswers(ctx, employee.ID, review.ID, &domain.UpsertAnswersRequest{
			Answers: []domain.AnswerInput{
				{QuestionID: ratingQ.ID, Rating: &rating},
				{QuestionID: textQ.ID, TextAnswer: strPtr("It went fine")},
				{QuestionID: taskQ.ID, TaskList: &domain.TaskList{Tasks: []domain.TaskItem{{Text: "Ship it", Completed: true}}}},
			},
		})
		require.NoError(t, err)
		assert.Len(t, dto.Answers, 3)

		for _, a := range dto.Answers {
			if a.QuestionID == taskQ.ID {
				require.NotNil(t, a.TaskList)
				require.Len(t, a.TaskList.Tasks, 1)
				assert.Equal(t, "Ship it", a.TaskList.Tasks[0].Text)
				assert.True(t, a.TaskList.Tasks[0].Completed)
			}
		}
	})

	t.Run("rewriting an answer replaces it", func(t *testing.T) {
		rating := 2
		dto, err := svc.UpsertAnswers(ctx, employee.ID, review.ID, &domain.UpsertAnswersRequest{
			Answers: []domain.AnswerInput{{QuestionID: ratingQ.ID, Rating: &rating}},
		})
		require.NoError(t, err)

		for _, a := range dto.Answers {
			if a.QuestionID == ratingQ.ID {
				require.NotNil(t, a.Rating)
				assert.Equal(t, 2, *a.Rating)
			}
		}
	})

	t.Run("rating out of range is rejected", func(t *testing.T) {
		rating := 6
		_, err := svc.UpsertAnswers(ctx, employee.ID, review.ID, &domain.UpsertAnswersRequest{
			Answers: []domain.AnswerInput{{QuestionID: ratingQ.ID, Rating: &rating}},
		})
		var validation *domain.ValidationError
		assert.ErrorAs(t, err, &validation)
	})

	t.Run("text over the character limit is rejected", func(t *testing.T) {
		_, err := svc.UpsertAnswers(ctx, employee.ID, review.ID, &domain.UpsertAnswersRequest{
			Answers: []domain.AnswerInput{{QuestionID: limitedQ.ID, TextAnswer: strPtr("this is far too long")}},
		})
		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, validation.Message, "character limit")
	})

	t.Run("question from another review type is rejected", func(t *testing.T) {
		rating := 3
		_, err := svc.UpsertAnswers(ctx, employee.ID, review.ID, &domain.UpsertAnswersRequest{
			Answers: []domain.AnswerInput{{QuestionID: managerQ.ID, Rating: &rating}},
		})
		var validation *domain.ValidationError
		assert.ErrorAs(t, err, &validation)
	})

	t.Run("only the authoring reviewer may write", func(t *testing.T) {
		stranger := testutil.CreateTestUser(t, db, company.ID, "Stranger", domain.RoleEmployee)
		rating := 1
		_, err := svc.UpsertAnswers(ctx, stranger.ID, review.ID, &domain.UpsertAnswersRequest{
			Answers: []domain.AnswerInput{{QuestionID: ratingQ.ID, Rating: &rating}},
		})
		var notFound *domain.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("submit freezes the review", func(t *testing.T) {
		dto, err := svc.Submit(ctx, employee.ID, review.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ReviewStatusSubmitted, dto.Status)
		assert.NotNil(t, dto.SubmittedAt)

		rating := 5
		_, err = svc.UpsertAnswers(ctx, employee.ID, review.ID, &domain.UpsertAnswersRequest{
			Answers: []domain.AnswerInput{{QuestionID: ratingQ.ID, Rating: &rating}},
		})
		var conflict *domain.ConflictError
		assert.ErrorAs(t, err, &conflict)
	})

	t.Run("double submit is a conflict", func(t *testing.T) {
		_, err := svc.Submit(ctx, employee.ID, review.ID)
		var conflict *domain.ConflictError
		assert.ErrorAs(t, err, &conflict)
	})
}

func TestReviewService_SubmitRequiresConfiguredStep(t *testing.T) {
	db := setupReviewServiceTestDB(t)
	svc := createReviewService(db)

	company := testutil.CreateTestCompany(t, db, "Review Co")
	employee := testutil.CreateTestUser(t, db, company.ID, "Subject", domain.RoleEmployee)
	reviewer := testutil.CreateTestUser(t, db, company.ID, "Peer", domain.RoleEmployee)
	ctx := testutil.TenantContext(company.ID, reviewer.ID, domain.RoleEmployee)

	// The cycle only has a SELF step, so peer reviews have no step window.
	cycle := testutil.CreateTestCycle(t, db, company.ID, "Q1", domain.CycleStatusActive, date(2026, 1, 1), date(2026, 3, 31))

	assignment := &domain.ReviewerAssignment{
		CompanyID:     company.ID,
		ReviewCycleID: cycle.ID,
		EmployeeID:    employee.ID,
		ReviewerID:    reviewer.ID,
		ReviewerType:  domain.ReviewerTypePeer,
	}
	require.NoError(t, db.Create(assignment).Error)

	dto, err := svc.StartReview(ctx, company.ID, reviewer.ID, &domain.StartReviewRequest{
		ReviewCycleID: cycle.ID,
		EmployeeID:    employee.ID,
		ReviewType:    domain.ReviewTypePeer,
	})
	require.NoError(t, err)

	t.Run("submit without a matching step is rejected", func(t *testing.T) {
		_, err := svc.Submit(ctx, reviewer.ID, dto.ID)
		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, validation.Message, "workflow step")
	})

	t.Run("submit succeeds once the step is configured", func(t *testing.T) {
		testutil.AddCycleStep(t, db, cycle, domain.ReviewTypePeer)

		submitted, err := svc.Submit(ctx, reviewer.ID, dto.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ReviewStatusSubmitted, submitted.Status)
	})
}

func TestReviewService_ListPending(t *testing.T) {
	db := setupReviewServiceTestDB(t)
	svc := createReviewService(db)

	company := testutil.CreateTestCompany(t, db, "Review Co")
	reviewer := testutil.CreateTestUser(t, db, company.ID, "Busy Peer", domain.RoleEmployee)
	subjects := []*domain.User{
		testutil.CreateTestUser(t, db, company.ID, "Subject A", domain.RoleEmployee),
		testutil.CreateTestUser(t, db, company.ID, "Subject B", domain.RoleEmployee),
	}
	ctx := testutil.TenantContext(company.ID, reviewer.ID, domain.RoleEmployee)

	cycle := testutil.CreateTestCycle(t, db, company.ID, "Q1", domain.CycleStatusActive, date(2026, 1, 1), date(2026, 3, 31))
	testutil.AddCycleStep(t, db, cycle, domain.ReviewTypePeer)

	for _, s := range subjects {
		assignment := &domain.ReviewerAssignment{
			CompanyID:     company.ID,
			ReviewCycleID: cycle.ID,
			EmployeeID:    s.ID,
			ReviewerID:    reviewer.ID,
			ReviewerType:  domain.ReviewerTypePeer,
		}
		require.NoError(t, db.Create(assignment).Error)
	}

	t.Run("all assignments pending before any submission", func(t *testing.T) {
		pending, err := svc.ListPending(ctx, reviewer.ID, cycle.ID)
		require.NoError(t, err)
		assert.Len(t, pending, 2)
	})

	t.Run("submitted review drops off the pending list", func(t *testing.T) {
		dto, err := svc.StartReview(ctx, company.ID, reviewer.ID, &domain.StartReviewRequest{
			ReviewCycleID: cycle.ID,
			EmployeeID:    subjects[0].ID,
			ReviewType:    domain.ReviewTypePeer,
		})
		require.NoError(t, err)

		_, err = svc.Submit(ctx, reviewer.ID, dto.ID)
		require.NoError(t, err)

		pending, err := svc.ListPending(ctx, reviewer.ID, cycle.ID)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, subjects[1].ID, pending[0].EmployeeID)
	})

	t.Run("draft reviews still count as pending", func(t *testing.T) {
		_, err := svc.StartReview(ctx, company.ID, reviewer.ID, &domain.StartReviewRequest{
			ReviewCycleID: cycle.ID,
			EmployeeID:    subjects[1].ID,
			ReviewType:    domain.ReviewTypePeer,
		})
		require.NoError(t, err)

		pending, err := svc.ListPending(ctx, reviewer.ID, cycle.ID)
		require.NoError(t, err)
		assert.Len(t, pending, 1)
	})
}
