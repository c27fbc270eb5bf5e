package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/perfcycle/review-api/internal/directory"
	"github.com/perfcycle/review-api/internal/domain"
	"github.com/perfcycle/review-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DirectorySyncService mirrors the HR directory employee feed into the
// review database. For each company linked to a directory dataset it
// upserts users by external ID, rebuilds reporting lines, and deactivates
// employees missing from the feed. A failure in one company never aborts
// the sync for the others.
type DirectorySyncService struct {
	client      *directory.Client
	companyRepo *repository.CompanyRepository
	userRepo    *repository.UserRepository
	logger      *zap.Logger
}

func NewDirectorySyncService(
	client *directory.Client,
	companyRepo *repository.CompanyRepository,
	userRepo *repository.UserRepository,
	logger *zap.Logger,
) *DirectorySyncService {
	return &DirectorySyncService{
		client:      client,
		companyRepo: companyRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// SyncAllCompanies syncs every company with a directory code.
// Returns the total number of employees synced and failed across companies.
func (s *DirectorySyncService) SyncAllCompanies(ctx context.Context) (synced int, failed int, err error) {
	if !s.client.IsEnabled() {
		return 0, 0, fmt.Errorf("directory client not enabled")
	}

	companies, err := s.companyRepo.ListDirectorySynced(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list directory companies: %w", err)
	}

	for i := range companies {
		companySynced, companyFailed, syncErr := s.SyncCompany(ctx, &companies[i])
		synced += companySynced
		failed += companyFailed
		if syncErr != nil {
			s.logger.Error("directory sync failed for company",
				zap.String("company_id", companies[i].ID.String()),
				zap.String("directory_code", companies[i].DirectoryCode),
				zap.Error(syncErr),
			)
		}
	}

	return synced, failed, nil
}

// SyncCompany syncs a single company's employees from the directory feed.
func (s *DirectorySyncService) SyncCompany(ctx context.Context, company *domain.Company) (synced int, failed int, err error) {
	records, err := s.client.ListEmployees(ctx, company.DirectoryCode)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to fetch employee feed: %w", err)
	}

	existing, err := s.userRepo.ListExternallyManaged(ctx, company.ID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list existing users: %w", err)
	}
	byExternalID := make(map[string]*domain.User, len(existing))
	for i := range existing {
		byExternalID[existing[i].ExternalID] = &existing[i]
	}

	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		if rec.ExternalID == "" || rec.Email == "" {
			failed++
			s.logger.Warn("skipping directory record with missing identity",
				zap.String("company_id", company.ID.String()),
				zap.String("external_id", rec.ExternalID),
			)
			continue
		}
		seen[rec.ExternalID] = true

		if upsertErr := s.upsertEmployee(ctx, company, rec, byExternalID); upsertErr != nil {
			failed++
			s.logger.Warn("failed to upsert directory employee",
				zap.String("company_id", company.ID.String()),
				zap.String("external_id", rec.ExternalID),
				zap.Error(upsertErr),
			)
			continue
		}
		synced++
	}

	// Reporting lines are rebuilt after all employees exist, so a manager
	// appearing later in the feed than their report still resolves.
	for _, rec := range records {
		if !seen[rec.ExternalID] {
			continue
		}
		if linkErr := s.linkManager(ctx, rec, byExternalID); linkErr != nil {
			s.logger.Warn("failed to link manager",
				zap.String("external_id", rec.ExternalID),
				zap.String("manager_external_id", rec.ManagerExternalID),
				zap.Error(linkErr),
			)
		}
	}

	// Employees no longer in the feed are deactivated, never deleted;
	// their historical reviews stay intact.
	for externalID, user := range byExternalID {
		if seen[externalID] || !user.IsActive {
			continue
		}
		user.IsActive = false
		if updateErr := s.userRepo.Update(ctx, user); updateErr != nil {
			s.logger.Warn("failed to deactivate departed employee",
				zap.String("user_id", user.ID.String()),
				zap.Error(updateErr),
			)
			continue
		}
		s.logger.Info("deactivated departed employee",
			zap.String("user_id", user.ID.String()),
			zap.String("company_id", company.ID.String()),
		)
	}

	return synced, failed, nil
}

func (s *DirectorySyncService) upsertEmployee(ctx context.Context, company *domain.Company, rec directory.EmployeeRecord, byExternalID map[string]*domain.User) error {
	if user, ok := byExternalID[rec.ExternalID]; ok {
		changed := false
		if user.Name != rec.Name && rec.Name != "" {
			user.Name = rec.Name
			changed = true
		}
		if !strings.EqualFold(user.Email, rec.Email) {
			user.Email = rec.Email
			changed = true
		}
		if user.IsActive != rec.Active {
			user.IsActive = rec.Active
			changed = true
		}
		if !changed {
			return nil
		}
		return s.userRepo.Update(ctx, user)
	}

	// A manually created account with the same email gets adopted by the
	// directory instead of colliding on the unique email index.
	adopted, err := s.userRepo.GetByEmail(ctx, rec.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if adopted != nil {
		if adopted.CompanyID != company.ID {
			return fmt.Errorf("email %s already belongs to another company", rec.Email)
		}
		adopted.ExternalID = rec.ExternalID
		if rec.Name != "" {
			adopted.Name = rec.Name
		}
		adopted.IsActive = rec.Active
		if err := s.userRepo.Update(ctx, adopted); err != nil {
			return err
		}
		byExternalID[rec.ExternalID] = adopted
		return nil
	}

	user := &domain.User{
		CompanyID:  company.ID,
		Name:       rec.Name,
		Email:      rec.Email,
		Role:       domain.RoleEmployee,
		ExternalID: rec.ExternalID,
		IsActive:   rec.Active,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}
	byExternalID[rec.ExternalID] = user
	return nil
}

func (s *DirectorySyncService) linkManager(ctx context.Context, rec directory.EmployeeRecord, byExternalID map[string]*domain.User) error {
	user, ok := byExternalID[rec.ExternalID]
	if !ok {
		return nil
	}

	if rec.ManagerExternalID == "" {
		if user.ManagerID == nil {
			return nil
		}
		user.ManagerID = nil
		return s.userRepo.Update(ctx, user)
	}

	manager, ok := byExternalID[rec.ManagerExternalID]
	if !ok {
		return fmt.Errorf("manager %s not found in feed", rec.ManagerExternalID)
	}
	if manager.ID == user.ID {
		return fmt.Errorf("employee %s reports to themselves", rec.ExternalID)
	}

	changed := false
	if user.ManagerID == nil || *user.ManagerID != manager.ID {
		managerID := manager.ID
		user.ManagerID = &managerID
		changed = true
	}
	if changed {
		if err := s.userRepo.Update(ctx, user); err != nil {
			return err
		}
	}

	// Having reports promotes an employee to manager; admins keep their role.
	if manager.Role == domain.RoleEmployee {
		manager.Role = domain.RoleManager
		if err := s.userRepo.Update(ctx, manager); err != nil {
			return err
		}
	}
	return nil
}
