package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/perfcycle/review-api/internal/domain"
	"gorm.io/gorm"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// ListForEmployee returns the reviewer set for one employee in one cycle
func (r *AssignmentRepository) ListForEmployee(ctx context.Context, cycleID, employeeID uuid.UUID) ([]domain.ReviewerAssignment, error) {
	var assignments []domain.ReviewerAssignment
	query := r.db.WithContext(ctx).
		Preload("Reviewer").
		Where("review_cycle_id = ? AND employee_id = ?", cycleID, employeeID)
	query = ApplyCompanyFilter(ctx, query)
	err := query.Find(&assignments).Error
	return assignments, err
}

// ListForReviewer returns every assignment where the given user is the reviewer
func (r *AssignmentRepository) ListForReviewer(ctx context.Context, cycleID, reviewerID uuid.UUID) ([]domain.ReviewerAssignment, error) {
	var assignments []domain.ReviewerAssignment
	query := r.db.WithContext(ctx).
		Preload("Employee").
		Where("review_cycle_id = ? AND reviewer_id = ?", cycleID, reviewerID)
	query = ApplyCompanyFilter(ctx, query)
	err := query.Find(&assignments).Error
	return assignments, err
}

// ListForCycle returns every assignment in a cycle
func (r *AssignmentRepository) ListForCycle(ctx context.Context, cycleID uuid.UUID) ([]domain.ReviewerAssignment, error) {
	var assignments []domain.ReviewerAssignment
	query := r.db.WithContext(ctx).
		Where("review_cycle_id = ?", cycleID)
	query = ApplyCompanyFilter(ctx, query)
	err := query.Find(&assignments).Error
	return assignments, err
}

// Find returns a single assignment edge if it exists
func (r *AssignmentRepository) Find(ctx context.Context, cycleID, employeeID, reviewerID uuid.UUID, reviewerType domain.ReviewerType) (*domain.ReviewerAssignment, error) {
	var assignment domain.ReviewerAssignment
	query := r.db.WithContext(ctx).
		Where("review_cycle_id = ? AND employee_id = ? AND reviewer_id = ? AND reviewer_type = ?",
			cycleID, employeeID, reviewerID, reviewerType)
	query = ApplyCompanyFilter(ctx, query)
	err := query.First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ReplaceForEmployee swaps the full reviewer set for one employee in one
// transaction. The old set is fully removed before the new one is written,
// so a failed validation earlier in the service leaves nothing half-applied.
func (r *AssignmentRepository) ReplaceForEmployee(ctx context.Context, cycleID, employeeID uuid.UUID, assignments []domain.ReviewerAssignment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("review_cycle_id = ? AND employee_id = ?", cycleID, employeeID).
			Delete(&domain.ReviewerAssignment{}).Error; err != nil {
			return err
		}
		if len(assignments) == 0 {
			return nil
		}
		return tx.Create(&assignments).Error
	})
}
