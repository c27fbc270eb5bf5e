package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/perfcycle/review-api/internal/domain"
	"github.com/perfcycle/review-api/internal/mapper"
	"github.com/perfcycle/review-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ReviewService struct {
	reviewRepo       *repository.ReviewRepository
	assignmentRepo   *repository.AssignmentRepository
	cycleRepo        *repository.CycleRepository
	questionRepo     *repository.QuestionRepository
	userRepo         *repository.UserRepository
	notificationRepo *repository.NotificationRepository
	logger           *zap.Logger
	db               *gorm.DB
}

func NewReviewService(
	reviewRepo *repository.ReviewRepository,
	assignmentRepo *repository.AssignmentRepository,
	cycleRepo *repository.CycleRepository,
	questionRepo *repository.QuestionRepository,
	userRepo *repository.UserRepository,
	notificationRepo *repository.NotificationRepository,
	logger *zap.Logger,
	db *gorm.DB,
) *ReviewService {
	return &ReviewService{
		reviewRepo:       reviewRepo,
		assignmentRepo:   assignmentRepo,
		cycleRepo:        cycleRepo,
		questionRepo:     questionRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
		db:               db,
	}
}

// GetSelfReview returns the caller's self review for a cycle, creating a
// DRAFT one on first access.
func (s *ReviewService) GetSelfReview(ctx context.Context, companyID, userID, cycleID uuid.UUID) (*domain.ReviewDTO, error) {
	cycle, err := s.cycleRepo.GetByID(ctx, cycleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("review cycle")
		}
		return nil, fmt.Errorf("failed to get review cycle: %w", err)
	}

	review, err := s.reviewRepo.FindOrCreate(ctx, &domain.Review{
		ReviewCycleID: cycle.ID,
		CompanyID:     companyID,
		EmployeeID:    userID,
		ReviewerID:    userID,
		ReviewType:    domain.ReviewTypeSelf,
		Status:        domain.ReviewStatusDraft,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get or create self review: %w", err)
	}

	kinds, err := s.questionKinds(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.ToReviewDTO(review, kinds), nil
}

// StartReview creates (or returns) a manager or peer review. The caller
// must hold a matching reviewer assignment for the target employee.
func (s *ReviewService) StartReview(ctx context.Context, companyID, reviewerID uuid.UUID, req *domain.StartReviewRequest) (*domain.ReviewDTO, error) {
	cycle, err := s.cycleRepo.GetByID(ctx, req.ReviewCycleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("review cycle")
		}
		return nil, fmt.Errorf("failed to get review cycle: %w", err)
	}

	if req.ReviewType == domain.ReviewTypeSelf {
		return nil, domain.NewValidationError("self reviews are created through the self-review endpoint")
	}

	reviewerType := domain.ReviewerType(req.ReviewType)
	if _, err := s.assignmentRepo.Find(ctx, cycle.ID, req.EmployeeID, reviewerID, reviewerType); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewValidationError("no %s assignment exists for this employee and reviewer", req.ReviewType)
		}
		return nil, fmt.Errorf("failed to check assignment: %w", err)
	}

	review, err := s.reviewRepo.FindOrCreate(ctx, &domain.Review{
		ReviewCycleID: cycle.ID,
		CompanyID:     companyID,
		EmployeeID:    req.EmployeeID,
		ReviewerID:    reviewerID,
		ReviewType:    req.ReviewType,
		Status:        domain.ReviewStatusDraft,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get or create review: %w", err)
	}

	kinds, err := s.questionKinds(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.ToReviewDTO(review, kinds), nil
}

// GetByID returns a review with its answers. Only the authoring reviewer
// may read a DRAFT review.
func (s *ReviewService) GetByID(ctx context.Context, callerID, reviewID uuid.UUID) (*domain.ReviewDTO, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("review")
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	if review.Status == domain.ReviewStatusDraft && review.ReviewerID != callerID {
		return nil, domain.NewNotFoundError("review")
	}

	kinds, err := s.questionKinds(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.ToReviewDTO(review, kinds), nil
}

// UpsertAnswers writes a batch of answers into a DRAFT review. SUBMITTED
// reviews are frozen and reject all writes.
func (s *ReviewService) UpsertAnswers(ctx context.Context, callerID, reviewID uuid.UUID, req *domain.UpsertAnswersRequest) (*domain.ReviewDTO, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("review")
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	if review.ReviewerID != callerID {
		return nil, domain.NewNotFoundError("review")
	}
	if review.Status == domain.ReviewStatusSubmitted {
		return nil, domain.NewConflictError("review is SUBMITTED and can no longer be modified")
	}

	questions, err := s.questionRepo.ListByType(ctx, review.ReviewType)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	byID := make(map[uuid.UUID]*domain.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	answers := make([]domain.Answer, 0, len(req.Answers))
	for _, in := range req.Answers {
		question, ok := byID[in.QuestionID]
		if !ok {
			return nil, domain.NewValidationError("question %s does not belong to this review's question set", in.QuestionID)
		}

		answer := domain.Answer{
			ReviewID:   review.ID,
			QuestionID: question.ID,
		}

		switch question.Kind {
		case domain.QuestionKindRating:
			if in.Rating == nil {
				return nil, domain.NewValidationError("question %s requires a rating between 1 and 5", question.ID)
			}
			if *in.Rating < 1 || *in.Rating > 5 {
				return nil, domain.NewValidationError("rating for question %s must be between 1 and 5", question.ID)
			}
			answer.Rating = in.Rating
		case domain.QuestionKindText:
			if in.TextAnswer == nil {
				return nil, domain.NewValidationError("question %s requires a text answer", question.ID)
			}
			if question.MaxChars != nil && utf8.RuneCountInString(*in.TextAnswer) > *question.MaxChars {
				return nil, domain.NewValidationError("answer for question %s exceeds the %d character limit", question.ID, *question.MaxChars)
			}
			answer.TextAnswer = *in.TextAnswer
		case domain.QuestionKindTaskList:
			if in.TaskList == nil {
				return nil, domain.NewValidationError("question %s requires a task list", question.ID)
			}
			encoded, err := in.TaskList.Encode()
			if err != nil {
				return nil, domain.NewValidationError("task list for question %s could not be encoded", question.ID)
			}
			answer.TextAnswer = encoded
		}

		answers = append(answers, answer)
	}

	if err := s.reviewRepo.UpsertAnswers(ctx, answers); err != nil {
		return nil, fmt.Errorf("failed to save answers: %w", err)
	}

	review, err = s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload review: %w", err)
	}

	kinds, err := s.questionKinds(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.ToReviewDTO(review, kinds), nil
}

// Submit marks a review SUBMITTED. The transition is terminal: answers
// freeze and the review starts counting toward scores.
func (s *ReviewService) Submit(ctx context.Context, callerID, reviewID uuid.UUID) (*domain.ReviewDTO, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("review")
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	if review.ReviewerID != callerID {
		return nil, domain.NewNotFoundError("review")
	}
	if review.Status == domain.ReviewStatusSubmitted {
		return nil, domain.NewConflictError("review is already SUBMITTED")
	}

	// Step configs can be replaced while the cycle is DRAFT; a review whose
	// step was removed must not slip into the submitted pool.
	cycle, err := s.cycleRepo.GetByID(ctx, review.ReviewCycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get review cycle: %w", err)
	}
	hasStep := false
	for _, cfg := range cycle.Configs {
		if cfg.ReviewType == review.ReviewType {
			hasStep = true
			break
		}
	}
	if !hasStep {
		return nil, domain.NewValidationError("cycle has no %s workflow step configured, the review cannot be submitted", review.ReviewType)
	}

	now := time.Now().UTC()
	review.Status = domain.ReviewStatusSubmitted
	review.SubmittedAt = &now

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to submit review: %w", err)
	}

	s.logger.Info("review submitted",
		zap.String("review_id", review.ID.String()),
		zap.String("review_type", string(review.ReviewType)),
	)

	s.notifySubmitted(ctx, review)

	kinds, err := s.questionKinds(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.ToReviewDTO(review, kinds), nil
}

// ListPending returns the reviews the caller still owes in a cycle: one
// entry per assignment where the caller is the reviewer and no SUBMITTED
// review exists yet. The self review is not assignment-backed and is
// surfaced through the deadline reminders instead.
func (s *ReviewService) ListPending(ctx context.Context, callerID, cycleID uuid.UUID) ([]domain.AssignmentDTO, error) {
	cycle, err := s.cycleRepo.GetByID(ctx, cycleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("review cycle")
		}
		return nil, fmt.Errorf("failed to get review cycle: %w", err)
	}

	assignments, err := s.assignmentRepo.ListForReviewer(ctx, cycle.ID, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	reviews, err := s.reviewRepo.ListForReviewer(ctx, cycle.ID, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	submitted := make(map[string]bool, len(reviews))
	for _, r := range reviews {
		if r.Status == domain.ReviewStatusSubmitted {
			submitted[r.EmployeeID.String()+"/"+string(r.ReviewType)] = true
		}
	}

	pending := make([]domain.ReviewerAssignment, 0, len(assignments))
	for _, a := range assignments {
		if !submitted[a.EmployeeID.String()+"/"+string(a.ReviewerType)] {
			pending = append(pending, a)
		}
	}

	return mapper.ToAssignmentDTOs(pending), nil
}

func (s *ReviewService) questionKinds(ctx context.Context) (map[string]domain.QuestionKind, error) {
	questions, err := s.questionRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	kinds := make(map[string]domain.QuestionKind, len(questions))
	for _, q := range questions {
		kinds[q.ID.String()] = q.Kind
	}
	return kinds, nil
}

// notifySubmitted tells the reviewed employee a review about them landed.
// Best effort: failure is logged, never returned.
func (s *ReviewService) notifySubmitted(ctx context.Context, review *domain.Review) {
	if s.notificationRepo == nil || review.ReviewType == domain.ReviewTypeSelf {
		return
	}

	entityID := review.ID
	notification := &domain.Notification{
		UserID:     review.EmployeeID,
		CompanyID:  review.CompanyID,
		Type:       string(domain.NotificationTypeReviewSubmitted),
		Title:      "Review submitted",
		Message:    fmt.Sprintf("A %s review about you was submitted.", review.ReviewType),
		EntityID:   &entityID,
		EntityType: "review",
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Warn("failed to create review notification",
			zap.String("review_id", review.ID.String()),
			zap.Error(err),
		)
	}
}
