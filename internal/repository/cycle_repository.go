package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/perfcycle/review-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CycleFilters contains filter options for listing review cycles
type CycleFilters struct {
	Status *domain.CycleStatus
}

type CycleRepository struct {
	db *gorm.DB
}

func NewCycleRepository(db *gorm.DB) *CycleRepository {
	return &CycleRepository{db: db}
}

func (r *CycleRepository) Create(ctx context.Context, cycle *domain.ReviewCycle) error {
	return r.db.WithContext(ctx).Create(cycle).Error
}

func (r *CycleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewCycle, error) {
	var cycle domain.ReviewCycle
	query := r.db.WithContext(ctx).
		Preload("Configs", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_number ASC")
		}).
		Where("id = ?", id)
	query = ApplyCompanyFilter(ctx, query)
	err := query.First(&cycle).Error
	if err != nil {
		return nil, err
	}
	return &cycle, nil
}

func (r *CycleRepository) Update(ctx context.Context, cycle *domain.ReviewCycle) error {
	// Omit associations so config changes only go through ReplaceConfigs
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(cycle).Error
}

func (r *CycleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := r.db.WithContext(ctx).Where("id = ?", id)
	query = ApplyCompanyFilter(ctx, query)
	return query.Delete(&domain.ReviewCycle{}).Error
}

func (r *CycleRepository) List(ctx context.Context, page, pageSize int, filters *CycleFilters) ([]domain.ReviewCycle, int64, error) {
	var cycles []domain.ReviewCycle
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.ReviewCycle{}).
		Preload("Configs", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_number ASC")
		})
	query = ApplyCompanyFilter(ctx, query)

	if filters != nil && filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("start_date DESC").Offset(offset).Limit(pageSize).Find(&cycles).Error

	return cycles, total, err
}

// ListActive returns all ACTIVE cycles for the caller's company
func (r *CycleRepository) ListActive(ctx context.Context) ([]domain.ReviewCycle, error) {
	var cycles []domain.ReviewCycle
	query := r.db.WithContext(ctx).
		Preload("Configs", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_number ASC")
		}).
		Where("status = ?", domain.CycleStatusActive)
	query = ApplyCompanyFilter(ctx, query)
	err := query.Find(&cycles).Error
	return cycles, err
}

// ListActiveAllCompanies returns ACTIVE cycles across every tenant.
// Only for background jobs, which have no request context.
func (r *CycleRepository) ListActiveAllCompanies(ctx context.Context) ([]domain.ReviewCycle, error) {
	var cycles []domain.ReviewCycle
	err := r.db.WithContext(ctx).
		Preload("Configs", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_number ASC")
		}).
		Where("status = ?", domain.CycleStatusActive).
		Find(&cycles).Error
	return cycles, err
}

// ReplaceConfigs deletes and recreates the workflow steps of a cycle in one transaction
func (r *CycleRepository) ReplaceConfigs(ctx context.Context, cycleID uuid.UUID, configs []domain.ReviewConfig) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_cycle_id = ?", cycleID).Delete(&domain.ReviewConfig{}).Error; err != nil {
			return err
		}
		for i := range configs {
			configs[i].ReviewCycleID = cycleID
		}
		return tx.Create(&configs).Error
	})
}
