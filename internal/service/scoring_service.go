package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/perfcycle/review-api/internal/domain"
	"github.com/perfcycle/review-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ScoringService struct {
	reviewRepo   *repository.ReviewRepository
	cycleRepo    *repository.CycleRepository
	questionRepo *repository.QuestionRepository
	userRepo     *repository.UserRepository
	logger       *zap.Logger
}

func NewScoringService(
	reviewRepo *repository.ReviewRepository,
	cycleRepo *repository.CycleRepository,
	questionRepo *repository.QuestionRepository,
	userRepo *repository.UserRepository,
	logger *zap.Logger,
) *ScoringService {
	return &ScoringService{
		reviewRepo:   reviewRepo,
		cycleRepo:    cycleRepo,
		questionRepo: questionRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// Calculate computes the final score for one employee in one cycle.
//
// Only SUBMITTED reviews contribute. Per rating question and review type
// the ratings are averaged, then per type across questions, then the
// overall score is the mean of the non-null type scores. Missing types
// are excluded from the denominator, never treated as zero. All averages
// are unrounded floats.
func (s *ScoringService) Calculate(ctx context.Context, cycleID, employeeID uuid.UUID) (*domain.FinalScoreDTO, error) {
	if _, err := s.cycleRepo.GetByID(ctx, cycleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("review cycle")
		}
		return nil, fmt.Errorf("failed to get review cycle: %w", err)
	}

	employee, err := s.userRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("employee")
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	submitted, err := s.reviewRepo.ListSubmittedForEmployee(ctx, cycleID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load submitted reviews: %w", err)
	}

	allReviews, err := s.reviewRepo.ListForEmployee(ctx, cycleID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}

	result := &domain.FinalScoreDTO{
		EmployeeID:        employee.ID,
		EmployeeName:      employee.Name,
		ReviewCycleID:     cycleID,
		QuestionBreakdown: []domain.QuestionScoreDTO{},
		Warnings:          []string{},
	}

	if pending := len(allReviews) - len(submitted); pending > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%d pending reviews excluded", pending))
	}

	// Rating sums per (question, review type)
	type bucket struct {
		sum   float64
		count int
	}
	buckets := make(map[uuid.UUID]map[domain.ReviewType]*bucket)
	typesSeen := make(map[domain.ReviewType]bool)

	questions, err := s.questionRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	ratingQuestions := make([]domain.Question, 0, len(questions))
	for _, q := range questions {
		if q.Kind == domain.QuestionKindRating {
			ratingQuestions = append(ratingQuestions, q)
		}
	}

	for _, review := range submitted {
		typesSeen[review.ReviewType] = true
		for _, answer := range review.Answers {
			if answer.Rating == nil {
				continue // TEXT and TASK_LIST answers are never scored
			}
			byType, ok := buckets[answer.QuestionID]
			if !ok {
				byType = make(map[domain.ReviewType]*bucket)
				buckets[answer.QuestionID] = byType
			}
			b, ok := byType[review.ReviewType]
			if !ok {
				b = &bucket{}
				byType[review.ReviewType] = b
			}
			b.sum += float64(*answer.Rating)
			b.count++
		}
	}

	// Per-question breakdown with the same null-exclusion rule applied
	// at question granularity
	typeTotals := make(map[domain.ReviewType]*bucket)
	for _, q := range ratingQuestions {
		byType := buckets[q.ID]

		row := domain.QuestionScoreDTO{
			QuestionID:   q.ID,
			QuestionText: q.Text,
		}

		avgFor := func(rt domain.ReviewType) *float64 {
			b, ok := byType[rt]
			if !ok || b.count == 0 {
				return nil
			}
			avg := b.sum / float64(b.count)
			t, ok := typeTotals[rt]
			if !ok {
				t = &bucket{}
				typeTotals[rt] = t
			}
			t.sum += avg
			t.count++
			return &avg
		}

		row.SelfScore = avgFor(domain.ReviewTypeSelf)
		row.ManagerAvg = avgFor(domain.ReviewTypeManager)
		row.PeerAvg = avgFor(domain.ReviewTypePeer)
		row.OverallAvg = meanOfNonNull(row.SelfScore, row.ManagerAvg, row.PeerAvg)

		result.QuestionBreakdown = append(result.QuestionBreakdown, row)
	}

	scoreFor := func(rt domain.ReviewType, label string) *float64 {
		t, ok := typeTotals[rt]
		if !ok || t.count == 0 {
			if !typesSeen[rt] {
				result.Warnings = append(result.Warnings, fmt.Sprintf("no submitted %s reviews", label))
			}
			return nil
		}
		avg := t.sum / float64(t.count)
		return &avg
	}

	result.SelfScore = scoreFor(domain.ReviewTypeSelf, "self")
	result.ManagerScore = scoreFor(domain.ReviewTypeManager, "manager")
	result.PeerScore = scoreFor(domain.ReviewTypePeer, "peer")
	result.OverallScore = meanOfNonNull(result.SelfScore, result.ManagerScore, result.PeerScore)

	return result, nil
}

// CalculateAll runs the per-employee calculation for every EMPLOYEE-role
// user in the company. Individual failures are logged and skipped; one
// bad record never aborts the batch.
func (s *ScoringService) CalculateAll(ctx context.Context, cycleID uuid.UUID) ([]domain.FinalScoreDTO, error) {
	if _, err := s.cycleRepo.GetByID(ctx, cycleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("review cycle")
		}
		return nil, fmt.Errorf("failed to get review cycle: %w", err)
	}

	role := domain.RoleEmployee
	employees, err := s.userRepo.ListAll(ctx, &repository.UserFilters{Role: &role})
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	scores := make([]domain.FinalScoreDTO, 0, len(employees))
	for _, employee := range employees {
		score, err := s.Calculate(ctx, cycleID, employee.ID)
		if err != nil {
			s.logger.Warn("score calculation failed for employee",
				zap.String("cycle_id", cycleID.String()),
				zap.String("employee_id", employee.ID.String()),
				zap.Error(err),
			)
			continue
		}
		scores = append(scores, *score)
	}

	return scores, nil
}

// meanOfNonNull averages the non-nil values; nil when all are nil
func meanOfNonNull(values ...*float64) *float64 {
	sum := 0.0
	count := 0
	for _, v := range values {
		if v != nil {
			sum += *v
			count++
		}
	}
	if count == 0 {
		return nil
	}
	mean := sum / float64(count)
	return &mean
}
