package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/perfcycle/review-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error
}

func (r *ReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	var review domain.Review
	query := r.db.WithContext(ctx).
		Preload("Answers").
		Where("id = ?", id)
	query = ApplyCompanyFilter(ctx, query)
	err := query.First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(review).Error
}

// Find returns the review for one (cycle, employee, reviewer, type) key if it exists
func (r *ReviewRepository) Find(ctx context.Context, cycleID, employeeID, reviewerID uuid.UUID, reviewType domain.ReviewType) (*domain.Review, error) {
	var review domain.Review
	query := r.db.WithContext(ctx).
		Preload("Answers").
		Where("review_cycle_id = ? AND employee_id = ? AND reviewer_id = ? AND review_type = ?",
			cycleID, employeeID, reviewerID, reviewType)
	query = ApplyCompanyFilter(ctx, query)
	err := query.First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// FindOrCreate returns the existing review for the key, creating a DRAFT one
// when none exists. The unique index on the key makes concurrent callers
// converge on a single row.
func (r *ReviewRepository) FindOrCreate(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(review).Error
	if err != nil {
		return nil, err
	}
	return r.Find(ctx, review.ReviewCycleID, review.EmployeeID, review.ReviewerID, review.ReviewType)
}

// ListForReviewer returns the reviews authored by one reviewer in a cycle
func (r *ReviewRepository) ListForReviewer(ctx context.Context, cycleID, reviewerID uuid.UUID) ([]domain.Review, error) {
	var reviews []domain.Review
	query := r.db.WithContext(ctx).
		Preload("Answers").
		Where("review_cycle_id = ? AND reviewer_id = ?", cycleID, reviewerID)
	query = ApplyCompanyFilter(ctx, query)
	err := query.Find(&reviews).Error
	return reviews, err
}

// ListSubmittedForEmployee returns the SUBMITTED reviews about one employee in a cycle.
// Only submitted reviews feed the scoring engine.
func (r *ReviewRepository) ListSubmittedForEmployee(ctx context.Context, cycleID, employeeID uuid.UUID) ([]domain.Review, error) {
	var reviews []domain.Review
	query := r.db.WithContext(ctx).
		Preload("Answers").
		Where("review_cycle_id = ? AND employee_id = ? AND status = ?",
			cycleID, employeeID, domain.ReviewStatusSubmitted)
	query = ApplyCompanyFilter(ctx, query)
	err := query.Find(&reviews).Error
	return reviews, err
}

// ListForEmployee returns all reviews about one employee in a cycle,
// regardless of status
func (r *ReviewRepository) ListForEmployee(ctx context.Context, cycleID, employeeID uuid.UUID) ([]domain.Review, error) {
	var reviews []domain.Review
	query := r.db.WithContext(ctx).
		Where("review_cycle_id = ? AND employee_id = ?", cycleID, employeeID)
	query = ApplyCompanyFilter(ctx, query)
	err := query.Find(&reviews).Error
	return reviews, err
}

// ListForCycle returns all reviews in a cycle
func (r *ReviewRepository) ListForCycle(ctx context.Context, cycleID uuid.UUID) ([]domain.Review, error) {
	var reviews []domain.Review
	query := r.db.WithContext(ctx).
		Where("review_cycle_id = ?", cycleID)
	query = ApplyCompanyFilter(ctx, query)
	err := query.Find(&reviews).Error
	return reviews, err
}

// UpsertAnswers writes a batch of answers inside one transaction. An existing
// answer for the same question is overwritten in place.
func (r *ReviewRepository) UpsertAnswers(ctx context.Context, answers []domain.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "review_id"}, {Name: "question_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "text_answer", "updated_at"}),
		}).Create(&answers).Error
	})
}
