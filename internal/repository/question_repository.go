package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/perfcycle/review-api/internal/domain"
	"gorm.io/gorm"
)

type QuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

func (r *QuestionRepository) Create(ctx context.Context, question *domain.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	var question domain.Question
	query := r.db.WithContext(ctx).Where("id = ?", id)
	query = ApplyCompanyFilter(ctx, query)
	err := query.First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) Update(ctx context.Context, question *domain.Question) error {
	return r.db.WithContext(ctx).Save(question).Error
}

func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := r.db.WithContext(ctx).Where("id = ?", id)
	query = ApplyCompanyFilter(ctx, query)
	return query.Delete(&domain.Question{}).Error
}

// ListByType returns the questions for one review type in display order
func (r *QuestionRepository) ListByType(ctx context.Context, reviewType domain.ReviewType) ([]domain.Question, error) {
	var questions []domain.Question
	query := r.db.WithContext(ctx).Where("review_type = ?", reviewType)
	query = ApplyCompanyFilter(ctx, query)
	err := query.Order("display_order ASC").Find(&questions).Error
	return questions, err
}

// ListAll returns all questions for the caller's company grouped by type order
func (r *QuestionRepository) ListAll(ctx context.Context) ([]domain.Question, error) {
	var questions []domain.Question
	query := r.db.WithContext(ctx).Model(&domain.Question{})
	query = ApplyCompanyFilter(ctx, query)
	err := query.Order("review_type ASC, display_order ASC").Find(&questions).Error
	return questions, err
}

// NextDisplayOrder returns the display order for a newly appended question
func (r *QuestionRepository) NextDisplayOrder(ctx context.Context, reviewType domain.ReviewType) (int, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.Question{}).Where("review_type = ?", reviewType)
	query = ApplyCompanyFilter(ctx, query)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// Reorder rewrites display_order for the given question IDs in one transaction.
// Position in the slice becomes the new order.
func (r *QuestionRepository) Reorder(ctx context.Context, ids []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			query := ApplyCompanyFilter(ctx, tx.Model(&domain.Question{}).Where("id = ?", id))
			if err := query.Update("display_order", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
