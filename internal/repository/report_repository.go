package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/perfcycle/review-api/internal/domain"
	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, report *domain.ScoreReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ScoreReport, error) {
	var report domain.ScoreReport
	query := r.db.WithContext(ctx).Where("id = ?", id)
	query = ApplyCompanyFilter(ctx, query)
	err := query.First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ListForCycle returns the exported reports of a cycle, newest first
func (r *ReportRepository) ListForCycle(ctx context.Context, cycleID uuid.UUID) ([]domain.ScoreReport, error) {
	var reports []domain.ScoreReport
	query := r.db.WithContext(ctx).Where("review_cycle_id = ?", cycleID)
	query = ApplyCompanyFilter(ctx, query)
	err := query.Order("created_at DESC").Find(&reports).Error
	return reports, err
}

func (r *ReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := r.db.WithContext(ctx).Where("id = ?", id)
	query = ApplyCompanyFilter(ctx, query)
	return query.Delete(&domain.ScoreReport{}).Error
}
