package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/perfcycle/review-api/internal/domain"
	"gorm.io/gorm"
)

// UserFilters contains filter options for listing users
type UserFilters struct {
	Role        *domain.UserRole
	ManagerID   *uuid.UUID
	IsActive    *bool
	SearchQuery *string
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := r.db.WithContext(ctx).Where("id = ?", id)
	query = ApplyCompanyFilter(ctx, query)
	err := query.First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail looks up a user by email across all tenants. Used by the
// authentication middleware before any tenant context exists; everything
// else should go through GetByEmailInCompany.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmailInCompany looks up a user by email within the caller's company
func (r *UserRepository) GetByEmailInCompany(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := r.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(email))
	query = ApplyCompanyFilter(ctx, query)
	err := query.First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *UserRepository) List(ctx context.Context, page, pageSize int, filters *UserFilters) ([]domain.User, int64, error) {
	var users []domain.User
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.User{})
	query = ApplyCompanyFilter(ctx, query)

	if filters != nil {
		if filters.Role != nil {
			query = query.Where("role = ?", *filters.Role)
		}
		if filters.ManagerID != nil {
			query = query.Where("manager_id = ?", *filters.ManagerID)
		}
		if filters.IsActive != nil {
			query = query.Where("is_active = ?", *filters.IsActive)
		}
		if filters.SearchQuery != nil && *filters.SearchQuery != "" {
			search := "%" + strings.ToLower(*filters.SearchQuery) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", search, search)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("name ASC").Offset(offset).Limit(pageSize).Find(&users).Error

	return users, total, err
}

// ListAll returns every user matching the filters within the caller's
// company, without pagination. Batch paths (score calculation, notification
// fan-out, reminders) use this so companies larger than a page are not
// silently truncated.
func (r *UserRepository) ListAll(ctx context.Context, filters *UserFilters) ([]domain.User, error) {
	var users []domain.User

	query := r.db.WithContext(ctx).Model(&domain.User{})
	query = ApplyCompanyFilter(ctx, query)

	if filters != nil {
		if filters.Role != nil {
			query = query.Where("role = ?", *filters.Role)
		}
		if filters.ManagerID != nil {
			query = query.Where("manager_id = ?", *filters.ManagerID)
		}
		if filters.IsActive != nil {
			query = query.Where("is_active = ?", *filters.IsActive)
		}
	}

	err := query.Order("name ASC").Find(&users).Error
	return users, err
}

// ListByIDs returns the users matching the given IDs within the caller's company
func (r *UserRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error) {
	var users []domain.User
	query := r.db.WithContext(ctx).Where("id IN ?", ids)
	query = ApplyCompanyFilter(ctx, query)
	err := query.Find(&users).Error
	return users, err
}

// ListReports returns the active users managed by the given user
func (r *UserRepository) ListReports(ctx context.Context, managerID uuid.UUID) ([]domain.User, error) {
	var users []domain.User
	query := r.db.WithContext(ctx).
		Where("manager_id = ?", managerID).
		Where("is_active = ?", true)
	query = ApplyCompanyFilter(ctx, query)
	err := query.Order("name ASC").Find(&users).Error
	return users, err
}

// GetByExternalID looks up a user by the HR directory identifier
func (r *UserRepository) GetByExternalID(ctx context.Context, companyID uuid.UUID, externalID string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND external_id = ?", companyID, externalID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListExternallyManaged returns all users in a company that originate from
// the HR directory. Used by the background sync, which runs outside any
// tenant context, so the company is passed explicitly.
func (r *UserRepository) ListExternallyManaged(ctx context.Context, companyID uuid.UUID) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND external_id <> ''", companyID).
		Find(&users).Error
	return users, err
}
