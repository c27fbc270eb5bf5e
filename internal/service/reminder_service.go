package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/perfcycle/review-api/internal/auth"
	"github.com/perfcycle/review-api/internal/domain"
	"github.com/perfcycle/review-api/internal/repository"
	"go.uber.org/zap"
)

// ReminderService sends step-deadline reminders for active cycles.
// A reviewer gets one reminder per step whose window closes within the
// configured lead time and for which they still have unsubmitted reviews.
type ReminderService struct {
	cycleRepo        *repository.CycleRepository
	assignmentRepo   *repository.AssignmentRepository
	reviewRepo       *repository.ReviewRepository
	userRepo         *repository.UserRepository
	notificationRepo *repository.NotificationRepository
	logger           *zap.Logger
}

func NewReminderService(
	cycleRepo *repository.CycleRepository,
	assignmentRepo *repository.AssignmentRepository,
	reviewRepo *repository.ReviewRepository,
	userRepo *repository.UserRepository,
	notificationRepo *repository.NotificationRepository,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		cycleRepo:        cycleRepo,
		assignmentRepo:   assignmentRepo,
		reviewRepo:       reviewRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// SendStepDeadlineReminders scans all active cycles across companies and
// notifies reviewers with outstanding work on steps closing within leadDays.
// Returns the number of reminders created. A failure in one cycle never
// aborts the scan.
func (s *ReminderService) SendStepDeadlineReminders(ctx context.Context, leadDays int) (notified int, err error) {
	cycles, err := s.cycleRepo.ListActiveAllCompanies(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active cycles: %w", err)
	}

	now := time.Now().UTC()
	windowEnd := now.AddDate(0, 0, leadDays)

	for i := range cycles {
		cycle := &cycles[i]
		// Tenant-scoped repositories read the company from the context;
		// the scheduler has no caller, so scope each cycle explicitly.
		cycleCtx := auth.WithUserContext(ctx, &auth.UserContext{
			Role:      domain.RoleAdmin,
			CompanyID: cycle.CompanyID,
		})

		sent, cycleErr := s.remindForCycle(cycleCtx, cycle, now, windowEnd)
		notified += sent
		if cycleErr != nil {
			s.logger.Error("deadline reminders failed for cycle",
				zap.String("cycle_id", cycle.ID.String()),
				zap.Error(cycleErr),
			)
		}
	}

	return notified, nil
}

func (s *ReminderService) remindForCycle(ctx context.Context, cycle *domain.ReviewCycle, now, windowEnd time.Time) (int, error) {
	var closing []domain.ReviewConfig
	for _, cfg := range cycle.Configs {
		if cfg.EndDate.Before(now) || cfg.EndDate.After(windowEnd) {
			continue
		}
		closing = append(closing, cfg)
	}
	if len(closing) == 0 {
		return 0, nil
	}

	reviews, err := s.reviewRepo.ListForCycle(ctx, cycle.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	submitted := make(map[string]bool, len(reviews))
	for _, review := range reviews {
		if review.Status == domain.ReviewStatusSubmitted {
			submitted[reviewKey(review.ReviewerID, review.EmployeeID, review.ReviewType)] = true
		}
	}

	assignments, err := s.assignmentRepo.ListForCycle(ctx, cycle.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to list assignments: %w", err)
	}

	var notifications []domain.Notification
	remindedReviewers := make(map[string]bool)

	for _, cfg := range closing {
		daysLeft := int(cfg.EndDate.Sub(now).Hours() / 24)

		if cfg.ReviewType == domain.ReviewTypeSelf {
			pending, selfErr := s.pendingSelfReviewers(ctx, cycle, submitted)
			if selfErr != nil {
				return 0, selfErr
			}
			for _, userID := range pending {
				key := userID.String() + "/" + string(cfg.ReviewType)
				if remindedReviewers[key] {
					continue
				}
				remindedReviewers[key] = true
				notifications = append(notifications, s.buildReminder(cycle, userID, cfg, daysLeft, 1))
			}
			continue
		}

		// MANAGER and PEER steps remind the assigned reviewers
		pendingCount := make(map[uuid.UUID]int)
		for _, a := range assignments {
			if string(a.ReviewerType) != string(cfg.ReviewType) {
				continue
			}
			if submitted[reviewKey(a.ReviewerID, a.EmployeeID, domain.ReviewType(a.ReviewerType))] {
				continue
			}
			pendingCount[a.ReviewerID]++
		}

		for reviewerID, count := range pendingCount {
			key := reviewerID.String() + "/" + string(cfg.ReviewType)
			if remindedReviewers[key] {
				continue
			}
			remindedReviewers[key] = true
			notifications = append(notifications, s.buildReminder(cycle, reviewerID, cfg, daysLeft, count))
		}
	}

	if len(notifications) == 0 {
		return 0, nil
	}
	if err := s.notificationRepo.CreateBatch(ctx, notifications); err != nil {
		return 0, fmt.Errorf("failed to create reminder notifications: %w", err)
	}
	return len(notifications), nil
}

// pendingSelfReviewers returns active users who have not submitted their
// self review for the cycle.
func (s *ReminderService) pendingSelfReviewers(ctx context.Context, cycle *domain.ReviewCycle, submitted map[string]bool) ([]uuid.UUID, error) {
	active := true
	users, err := s.userRepo.ListAll(ctx, &repository.UserFilters{IsActive: &active})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	var pending []uuid.UUID
	for _, user := range users {
		if submitted[reviewKey(user.ID, user.ID, domain.ReviewTypeSelf)] {
			continue
		}
		pending = append(pending, user.ID)
	}
	return pending, nil
}

func (s *ReminderService) buildReminder(cycle *domain.ReviewCycle, userID uuid.UUID, cfg domain.ReviewConfig, daysLeft, pendingCount int) domain.Notification {
	entityID := cycle.ID
	var message string
	switch {
	case daysLeft <= 0:
		message = fmt.Sprintf("The %s step of %q closes today. You have %d pending review(s).", cfg.ReviewType, cycle.Name, pendingCount)
	default:
		message = fmt.Sprintf("The %s step of %q closes in %d day(s). You have %d pending review(s).", cfg.ReviewType, cycle.Name, daysLeft, pendingCount)
	}
	return domain.Notification{
		UserID:     userID,
		CompanyID:  cycle.CompanyID,
		Type:       string(domain.NotificationTypeStepDeadline),
		Title:      "Review deadline approaching",
		Message:    message,
		EntityID:   &entityID,
		EntityType: "review_cycle",
	}
}

func reviewKey(reviewerID, employeeID uuid.UUID, reviewType domain.ReviewType) string {
	return reviewerID.String() + "/" + employeeID.String() + "/" + string(reviewType)
}
