package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/perfcycle/review-api/internal/domain"
	"github.com/perfcycle/review-api/internal/mapper"
	"github.com/perfcycle/review-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Cycle transition rules: DRAFT -> ACTIVE -> COMPLETED, no way back
var validCycleTransitions = map[domain.CycleStatus][]domain.CycleStatus{
	domain.CycleStatusDraft:     {domain.CycleStatusActive},
	domain.CycleStatusActive:    {domain.CycleStatusCompleted},
	domain.CycleStatusCompleted: {}, // Terminal state
}

const maxWorkflowSteps = 3

type CycleService struct {
	cycleRepo        *repository.CycleRepository
	userRepo         *repository.UserRepository
	notificationRepo *repository.NotificationRepository
	logger           *zap.Logger
	db               *gorm.DB
}

func NewCycleService(
	cycleRepo *repository.CycleRepository,
	userRepo *repository.UserRepository,
	notificationRepo *repository.NotificationRepository,
	logger *zap.Logger,
	db *gorm.DB,
) *CycleService {
	return &CycleService{
		cycleRepo:        cycleRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
		db:               db,
	}
}

func (s *CycleService) Create(ctx context.Context, companyID uuid.UUID, req *domain.CreateCycleRequest) (*domain.CycleDTO, error) {
	configs, err := buildConfigs(req.StartDate, req.EndDate, req.ReviewConfigs)
	if err != nil {
		return nil, err
	}

	cycle := &domain.ReviewCycle{
		CompanyID: companyID,
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    domain.CycleStatusDraft,
		Configs:   configs,
	}

	if err := s.cycleRepo.Create(ctx, cycle); err != nil {
		return nil, fmt.Errorf("failed to create review cycle: %w", err)
	}

	s.logger.Info("review cycle created",
		zap.String("cycle_id", cycle.ID.String()),
		zap.String("name", cycle.Name),
	)

	return mapper.ToCycleDTO(cycle), nil
}

func (s *CycleService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CycleDTO, error) {
	cycle, err := s.cycleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("review cycle")
		}
		return nil, fmt.Errorf("failed to get review cycle: %w", err)
	}
	return mapper.ToCycleDTO(cycle), nil
}

func (s *CycleService) List(ctx context.Context, page, pageSize int, status *domain.CycleStatus) ([]domain.CycleDTO, int64, error) {
	cycles, total, err := s.cycleRepo.List(ctx, page, pageSize, &repository.CycleFilters{Status: status})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list review cycles: %w", err)
	}
	return mapper.ToCycleDTOs(cycles), total, nil
}

// Update changes a cycle's name and window. Only DRAFT cycles can change.
func (s *CycleService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateCycleRequest) (*domain.CycleDTO, error) {
	cycle, err := s.cycleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("review cycle")
		}
		return nil, fmt.Errorf("failed to get review cycle: %w", err)
	}

	if cycle.Status != domain.CycleStatusDraft {
		return nil, domain.NewConflictError("cycle in status %s cannot be modified, only DRAFT cycles can change", cycle.Status)
	}

	if !req.EndDate.After(req.StartDate) {
		return nil, domain.NewValidationError("cycle end date must be after start date")
	}

	// Existing steps must still fit the new window
	for _, cfg := range cycle.Configs {
		if cfg.StartDate.Before(req.StartDate) || cfg.EndDate.After(req.EndDate) {
			return nil, domain.NewValidationError("workflow step %d window falls outside the new cycle window", cfg.StepNumber)
		}
	}

	cycle.Name = req.Name
	cycle.StartDate = req.StartDate
	cycle.EndDate = req.EndDate

	if err := s.cycleRepo.Update(ctx, cycle); err != nil {
		return nil, fmt.Errorf("failed to update review cycle: %w", err)
	}

	return mapper.ToCycleDTO(cycle), nil
}

// ReplaceConfigs swaps the full workflow step set of a DRAFT cycle
func (s *CycleService) ReplaceConfigs(ctx context.Context, id uuid.UUID, req *domain.ReplaceConfigsRequest) (*domain.CycleDTO, error) {
	cycle, err := s.cycleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("review cycle")
		}
		return nil, fmt.Errorf("failed to get review cycle: %w", err)
	}

	if cycle.Status != domain.CycleStatusDraft {
		return nil, domain.NewConflictError("cycle in status %s cannot be modified, only DRAFT cycles can change", cycle.Status)
	}

	configs, err := buildConfigs(cycle.StartDate, cycle.EndDate, req.ReviewConfigs)
	if err != nil {
		return nil, err
	}

	if err := s.cycleRepo.ReplaceConfigs(ctx, id, configs); err != nil {
		return nil, fmt.Errorf("failed to replace workflow steps: %w", err)
	}

	cycle, err = s.cycleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload review cycle: %w", err)
	}
	return mapper.ToCycleDTO(cycle), nil
}

// Activate moves a DRAFT cycle to ACTIVE. Only one cycle per company may
// be ACTIVE at a time.
func (s *CycleService) Activate(ctx context.Context, id uuid.UUID) (*domain.CycleDTO, error) {
	cycle, err := s.cycleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("review cycle")
		}
		return nil, fmt.Errorf("failed to get review cycle: %w", err)
	}

	if err := s.checkTransition(cycle.Status, domain.CycleStatusActive); err != nil {
		return nil, err
	}

	if len(cycle.Configs) == 0 {
		return nil, domain.NewValidationError("cycle has no workflow steps configured, add at least one before activation")
	}

	// Overlap test uses closed intervals: ranges sharing one endpoint collide
	active, err := s.cycleRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active cycles: %w", err)
	}
	for _, other := range active {
		if other.ID == cycle.ID {
			continue
		}
		if !other.StartDate.After(cycle.EndDate) && !other.EndDate.Before(cycle.StartDate) {
			return nil, domain.NewConflictError("cycle dates overlap the ACTIVE cycle %q (%s - %s)",
				other.Name, other.StartDate.Format("2006-01-02"), other.EndDate.Format("2006-01-02"))
		}
	}

	cycle.Status = domain.CycleStatusActive
	if err := s.cycleRepo.Update(ctx, cycle); err != nil {
		return nil, fmt.Errorf("failed to activate review cycle: %w", err)
	}

	s.logger.Info("review cycle activated", zap.String("cycle_id", cycle.ID.String()))

	s.notifyCycleStarted(ctx, cycle)

	return mapper.ToCycleDTO(cycle), nil
}

// Complete moves an ACTIVE cycle to COMPLETED
func (s *CycleService) Complete(ctx context.Context, id uuid.UUID) (*domain.CycleDTO, error) {
	cycle, err := s.cycleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("review cycle")
		}
		return nil, fmt.Errorf("failed to get review cycle: %w", err)
	}

	if err := s.checkTransition(cycle.Status, domain.CycleStatusCompleted); err != nil {
		return nil, err
	}

	cycle.Status = domain.CycleStatusCompleted
	if err := s.cycleRepo.Update(ctx, cycle); err != nil {
		return nil, fmt.Errorf("failed to complete review cycle: %w", err)
	}

	s.logger.Info("review cycle completed", zap.String("cycle_id", cycle.ID.String()))

	return mapper.ToCycleDTO(cycle), nil
}

// Delete removes a DRAFT cycle
func (s *CycleService) Delete(ctx context.Context, id uuid.UUID) error {
	cycle, err := s.cycleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewNotFoundError("review cycle")
		}
		return fmt.Errorf("failed to get review cycle: %w", err)
	}

	if cycle.Status != domain.CycleStatusDraft {
		return domain.NewConflictError("cycle in status %s cannot be deleted, only DRAFT cycles can be removed", cycle.Status)
	}

	if err := s.cycleRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete review cycle: %w", err)
	}
	return nil
}

func (s *CycleService) checkTransition(from, to domain.CycleStatus) error {
	for _, allowed := range validCycleTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return domain.NewConflictError("invalid cycle transition from %s to %s", from, to)
}

// notifyCycleStarted fans out a best-effort notification to every active
// user in the company. Failures are logged and swallowed - notification
// delivery never blocks activation.
func (s *CycleService) notifyCycleStarted(ctx context.Context, cycle *domain.ReviewCycle) {
	if s.notificationRepo == nil || s.userRepo == nil {
		return
	}

	active := true
	users, err := s.userRepo.ListAll(ctx, &repository.UserFilters{IsActive: &active})
	if err != nil {
		s.logger.Warn("failed to load users for cycle notifications",
			zap.String("cycle_id", cycle.ID.String()),
			zap.Error(err),
		)
		return
	}

	notifications := make([]domain.Notification, 0, len(users))
	for _, u := range users {
		entityID := cycle.ID
		notifications = append(notifications, domain.Notification{
			UserID:     u.ID,
			CompanyID:  cycle.CompanyID,
			Type:       string(domain.NotificationTypeCycleStarted),
			Title:      "Review cycle started",
			Message:    fmt.Sprintf("The review cycle %q is now active.", cycle.Name),
			EntityID:   &entityID,
			EntityType: "review_cycle",
		})
	}

	if err := s.notificationRepo.CreateBatch(ctx, notifications); err != nil {
		s.logger.Warn("failed to create cycle notifications",
			zap.String("cycle_id", cycle.ID.String()),
			zap.Error(err),
		)
	}
}

// buildConfigs validates workflow steps against the cycle window and
// returns them normalized with sequential step numbers.
func buildConfigs(cycleStart, cycleEnd time.Time, inputs []domain.ReviewConfigInput) ([]domain.ReviewConfig, error) {
	if len(inputs) < 1 || len(inputs) > maxWorkflowSteps {
		return nil, domain.NewValidationError("a cycle must have between 1 and %d workflow steps", maxWorkflowSteps)
	}
	if !cycleEnd.After(cycleStart) {
		return nil, domain.NewValidationError("cycle end date must be after start date")
	}

	selfSteps := 0
	configs := make([]domain.ReviewConfig, 0, len(inputs))
	for i, in := range inputs {
		if !in.ReviewType.IsValid() {
			return nil, domain.NewValidationError("unknown review type %q in workflow step %d", in.ReviewType, i)
		}
		if in.ReviewType == domain.ReviewTypeSelf {
			selfSteps++
			if selfSteps > 1 {
				return nil, domain.NewValidationError("Only one Self Review step is allowed per cycle")
			}
		}
		if !in.EndDate.After(in.StartDate) {
			return nil, domain.NewValidationError("workflow step %d end date must be after its start date", i)
		}
		if in.StartDate.Before(cycleStart) || in.EndDate.After(cycleEnd) {
			return nil, domain.NewValidationError("workflow step %d window must lie within the cycle window", i)
		}
		configs = append(configs, domain.ReviewConfig{
			StepNumber: i,
			ReviewType: in.ReviewType,
			StartDate:  in.StartDate,
			EndDate:    in.EndDate,
		})
	}
	return configs, nil
}
