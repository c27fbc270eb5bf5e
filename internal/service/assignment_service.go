package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/perfcycle/review-api/internal/domain"
	"github.com/perfcycle/review-api/internal/mapper"
	"github.com/perfcycle/review-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Peer reviewer count bounds, applied whenever peers are assigned at all
const (
	minPeerReviewers = 3
	maxPeerReviewers = 5
)

type AssignmentService struct {
	assignmentRepo *repository.AssignmentRepository
	cycleRepo      *repository.CycleRepository
	userRepo       *repository.UserRepository
	logger         *zap.Logger
	db             *gorm.DB
}

func NewAssignmentService(
	assignmentRepo *repository.AssignmentRepository,
	cycleRepo *repository.CycleRepository,
	userRepo *repository.UserRepository,
	logger *zap.Logger,
	db *gorm.DB,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		cycleRepo:      cycleRepo,
		userRepo:       userRepo,
		logger:         logger,
		db:             db,
	}
}

// ListForEmployee returns the reviewer set for one employee in one cycle
func (s *AssignmentService) ListForEmployee(ctx context.Context, cycleID, employeeID uuid.UUID) ([]domain.AssignmentDTO, error) {
	if _, err := s.cycleRepo.GetByID(ctx, cycleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("review cycle")
		}
		return nil, fmt.Errorf("failed to get review cycle: %w", err)
	}

	assignments, err := s.assignmentRepo.ListForEmployee(ctx, cycleID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return mapper.ToAssignmentDTOs(assignments), nil
}

// Upsert replaces the full reviewer set for one employee in one cycle.
// The whole batch is validated before anything is written; an invalid
// batch leaves the previous assignments untouched.
func (s *AssignmentService) Upsert(ctx context.Context, companyID uuid.UUID, req *domain.UpsertAssignmentsRequest) ([]domain.AssignmentDTO, error) {
	cycle, err := s.cycleRepo.GetByID(ctx, req.ReviewCycleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("review cycle")
		}
		return nil, fmt.Errorf("failed to get review cycle: %w", err)
	}

	employee, err := s.userRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("employee")
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	if err := s.validateBatch(ctx, employee.ID, req.Assignments); err != nil {
		return nil, err
	}

	assignments := make([]domain.ReviewerAssignment, 0, len(req.Assignments))
	for _, in := range req.Assignments {
		assignments = append(assignments, domain.ReviewerAssignment{
			CompanyID:     companyID,
			ReviewCycleID: cycle.ID,
			EmployeeID:    employee.ID,
			ReviewerID:    in.ReviewerID,
			ReviewerType:  in.ReviewerType,
		})
	}

	if err := s.assignmentRepo.ReplaceForEmployee(ctx, cycle.ID, employee.ID, assignments); err != nil {
		return nil, fmt.Errorf("failed to replace assignments: %w", err)
	}

	s.logger.Info("reviewer assignments replaced",
		zap.String("cycle_id", cycle.ID.String()),
		zap.String("employee_id", employee.ID.String()),
		zap.Int("count", len(assignments)),
	)

	stored, err := s.assignmentRepo.ListForEmployee(ctx, cycle.ID, employee.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload assignments: %w", err)
	}
	return mapper.ToAssignmentDTOs(stored), nil
}

// validateBatch checks the reviewer-set rules:
// no self-review, no duplicate edges, and for a non-empty set 3-5 PEER
// entries plus at least one MANAGER.
// An empty set is allowed - it clears the employee's reviewers.
func (s *AssignmentService) validateBatch(ctx context.Context, employeeID uuid.UUID, inputs []domain.AssignmentInput) error {
	if len(inputs) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(inputs))
	peerCount := 0
	managerCount := 0
	reviewerIDs := make([]uuid.UUID, 0, len(inputs))

	for _, in := range inputs {
		if !in.ReviewerType.IsValid() {
			return domain.NewValidationError("unknown reviewer type %q", in.ReviewerType)
		}
		if in.ReviewerID == employeeID {
			return domain.NewValidationError("an employee cannot review themselves")
		}
		key := in.ReviewerID.String() + "/" + string(in.ReviewerType)
		if seen[key] {
			return domain.NewValidationError("duplicate assignment for reviewer %s as %s", in.ReviewerID, in.ReviewerType)
		}
		seen[key] = true

		switch in.ReviewerType {
		case domain.ReviewerTypePeer:
			peerCount++
		case domain.ReviewerTypeManager:
			managerCount++
		}
		reviewerIDs = append(reviewerIDs, in.ReviewerID)
	}

	if peerCount < minPeerReviewers || peerCount > maxPeerReviewers {
		return domain.NewValidationError("each employee must have %d-%d peer reviewers, got %d", minPeerReviewers, maxPeerReviewers, peerCount)
	}
	if managerCount < 1 {
		return domain.NewValidationError("a non-empty reviewer set must include at least one MANAGER reviewer")
	}

	// All reviewers must exist in the caller's company
	users, err := s.userRepo.ListByIDs(ctx, reviewerIDs)
	if err != nil {
		return fmt.Errorf("failed to verify reviewers: %w", err)
	}
	found := make(map[uuid.UUID]bool, len(users))
	for _, u := range users {
		found[u.ID] = true
	}
	for _, id := range reviewerIDs {
		if !found[id] {
			return domain.NewValidationError("reviewer %s is not in your company", id)
		}
	}

	return nil
}

// Import processes an email-addressed batch of assignment rows. Rows are
// resolved to user IDs (case-insensitive email match), grouped by employee,
// and each group goes through the same full-replace upsert. Failures are
// collected per group and never abort the batch.
func (s *AssignmentService) Import(ctx context.Context, companyID uuid.UUID, req *domain.ImportAssignmentsRequest) (*domain.ImportResultDTO, error) {
	cycle, err := s.cycleRepo.GetByID(ctx, req.ReviewCycleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("review cycle")
		}
		return nil, fmt.Errorf("failed to get review cycle: %w", err)
	}

	result := &domain.ImportResultDTO{Errors: []string{}}

	type group struct {
		email       string
		assignments []domain.AssignmentInput
	}
	groups := make(map[uuid.UUID]*group)
	order := make([]uuid.UUID, 0)

	for _, row := range req.Rows {
		if !row.ReviewerType.IsValid() {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: unknown reviewer type %q", row.EmployeeEmail, row.ReviewerType))
			continue
		}

		employee, err := s.userRepo.GetByEmailInCompany(ctx, row.EmployeeEmail)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: employee not found", row.EmployeeEmail))
			continue
		}
		reviewer, err := s.userRepo.GetByEmailInCompany(ctx, row.ReviewerEmail)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: reviewer %s not found", row.EmployeeEmail, row.ReviewerEmail))
			continue
		}

		g, ok := groups[employee.ID]
		if !ok {
			g = &group{email: row.EmployeeEmail}
			groups[employee.ID] = g
			order = append(order, employee.ID)
		}
		g.assignments = append(g.assignments, domain.AssignmentInput{
			ReviewerID:   reviewer.ID,
			ReviewerType: row.ReviewerType,
		})
	}

	for _, employeeID := range order {
		g := groups[employeeID]
		_, err := s.Upsert(ctx, companyID, &domain.UpsertAssignmentsRequest{
			ReviewCycleID: cycle.ID,
			EmployeeID:    employeeID,
			Assignments:   g.assignments,
		})
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", g.email, err))
			continue
		}
		result.Successful++
	}

	s.logger.Info("assignment import finished",
		zap.String("cycle_id", cycle.ID.String()),
		zap.Int("successful", result.Successful),
		zap.Int("failed", result.Failed),
	)

	return result, nil
}
