package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/perfcycle/review-api/internal/domain"
	"github.com/perfcycle/review-api/internal/mapper"
	"github.com/perfcycle/review-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo    *repository.UserRepository
	companyRepo *repository.CompanyRepository
	logger      *zap.Logger
	db          *gorm.DB
}

func NewUserService(
	userRepo *repository.UserRepository,
	companyRepo *repository.CompanyRepository,
	logger *zap.Logger,
	db *gorm.DB,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		logger:      logger,
		db:          db,
	}
}

// ResolveByEmail implements auth.UserResolver for the authentication
// middleware. Lookup is global - the resolved user carries the tenant.
func (s *UserService) ResolveByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

// Signup provisions a new company together with its first admin user,
// transactionally - a company never exists without an admin.
func (s *UserService) Signup(ctx context.Context, req *domain.SignupRequest) (*domain.CompanyDTO, *domain.UserDTO, error) {
	company := &domain.Company{Name: req.CompanyName}
	admin := &domain.User{
		Name:     req.AdminName,
		Email:    strings.ToLower(req.AdminEmail),
		Role:     domain.RoleAdmin,
		IsActive: true,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(company).Error; err != nil {
			return err
		}
		admin.CompanyID = company.ID
		return tx.Create(admin).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, domain.NewConflictError("a user with email %s already exists", req.AdminEmail)
		}
		return nil, nil, fmt.Errorf("failed to sign up company: %w", err)
	}

	s.logger.Info("company signed up",
		zap.String("company_id", company.ID.String()),
		zap.String("admin_email", admin.Email),
	)

	return mapper.ToCompanyDTO(company), mapper.ToUserDTO(admin), nil
}

func (s *UserService) Create(ctx context.Context, companyID uuid.UUID, req *domain.CreateUserRequest) (*domain.UserDTO, error) {
	if !req.Role.IsValid() {
		return nil, domain.NewValidationError("unknown role %q", req.Role)
	}

	if req.ManagerID != nil {
		if _, err := s.userRepo.GetByID(ctx, *req.ManagerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.NewValidationError("manager %s is not in your company", *req.ManagerID)
			}
			return nil, fmt.Errorf("failed to verify manager: %w", err)
		}
	}

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, domain.NewConflictError("a user with email %s already exists", req.Email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	user := &domain.User{
		CompanyID: companyID,
		Name:      req.Name,
		Email:     strings.ToLower(req.Email),
		Role:      req.Role,
		ManagerID: req.ManagerID,
		IsActive:  true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return mapper.ToUserDTO(user), nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserDTO, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return mapper.ToUserDTO(user), nil
}

func (s *UserService) List(ctx context.Context, page, pageSize int, filters *repository.UserFilters) ([]domain.UserDTO, int64, error) {
	users, total, err := s.userRepo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return mapper.ToUserDTOs(users), total, nil
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateUserRequest) (*domain.UserDTO, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !req.Role.IsValid() {
		return nil, domain.NewValidationError("unknown role %q", req.Role)
	}
	if req.ManagerID != nil {
		if *req.ManagerID == user.ID {
			return nil, domain.NewValidationError("a user cannot be their own manager")
		}
		if _, err := s.userRepo.GetByID(ctx, *req.ManagerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.NewValidationError("manager %s is not in your company", *req.ManagerID)
			}
			return nil, fmt.Errorf("failed to verify manager: %w", err)
		}
	}

	user.Name = req.Name
	user.Role = req.Role
	user.ManagerID = req.ManagerID
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return mapper.ToUserDTO(user), nil
}

// Deactivate disables a user's account. Blocked while the user still has
// active direct reports - reassign them first.
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewNotFoundError("user")
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	reports, err := s.userRepo.ListReports(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to check direct reports: %w", err)
	}
	if len(reports) > 0 {
		return domain.NewConflictError("user still manages %d direct reports, reassign them first", len(reports))
	}

	user.IsActive = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	s.logger.Info("user deactivated", zap.String("user_id", user.ID.String()))
	return nil
}

// GetCompany returns the caller's company record
func (s *UserService) GetCompany(ctx context.Context, companyID uuid.UUID) (*domain.CompanyDTO, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("company")
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return mapper.ToCompanyDTO(company), nil
}
