package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/perfcycle/review-api/internal/domain"
	"github.com/perfcycle/review-api/internal/mapper"
	"github.com/perfcycle/review-api/internal/repository"
	"github.com/perfcycle/review-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReportService exports cycle score reports as CSV files into the
// configured storage backend (local disk or blob storage) and keeps an
// archive record per export.
type ReportService struct {
	reportRepo       *repository.ReportRepository
	cycleRepo        *repository.CycleRepository
	notificationRepo *repository.NotificationRepository
	scoring          *ScoringService
	store            storage.Storage
	logger           *zap.Logger
}

func NewReportService(
	reportRepo *repository.ReportRepository,
	cycleRepo *repository.CycleRepository,
	notificationRepo *repository.NotificationRepository,
	scoring *ScoringService,
	store storage.Storage,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		reportRepo:       reportRepo,
		cycleRepo:        cycleRepo,
		notificationRepo: notificationRepo,
		scoring:          scoring,
		store:            store,
		logger:           logger,
	}
}

// Export computes all scores for a cycle, writes them as CSV to storage,
// and records the export. Employees with a computed overall score get a
// best-effort "score available" notification.
func (s *ReportService) Export(ctx context.Context, companyID, cycleID, generatedByID uuid.UUID) (*domain.ScoreReportDTO, error) {
	cycle, err := s.cycleRepo.GetByID(ctx, cycleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("review cycle")
		}
		return nil, fmt.Errorf("failed to get review cycle: %w", err)
	}

	scores, err := s.scoring.CalculateAll(ctx, cycleID)
	if err != nil {
		return nil, err
	}

	data, err := renderScoresCSV(scores)
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	filename := fmt.Sprintf("scores-%s-%s.csv", cycle.Name, time.Now().UTC().Format("20060102-150405"))
	storagePath, size, err := s.store.Upload(ctx, filename, "text/csv", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}

	report := &domain.ScoreReport{
		CompanyID:     companyID,
		ReviewCycleID: cycle.ID,
		Filename:      filename,
		StoragePath:   storagePath,
		Size:          size,
		GeneratedByID: generatedByID,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		// The blob is orphaned if the record fails; remove it
		if delErr := s.store.Delete(ctx, storagePath); delErr != nil {
			s.logger.Warn("failed to clean up orphaned report file",
				zap.String("storage_path", storagePath),
				zap.Error(delErr),
			)
		}
		return nil, fmt.Errorf("failed to record report: %w", err)
	}

	s.logger.Info("score report exported",
		zap.String("cycle_id", cycle.ID.String()),
		zap.String("storage_path", storagePath),
		zap.Int64("size", size),
	)

	s.notifyScoresAvailable(ctx, cycle, scores)

	return mapper.ToScoreReportDTO(report), nil
}

// List returns the archived exports for a cycle
func (s *ReportService) List(ctx context.Context, cycleID uuid.UUID) ([]domain.ScoreReportDTO, error) {
	if _, err := s.cycleRepo.GetByID(ctx, cycleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("review cycle")
		}
		return nil, fmt.Errorf("failed to get review cycle: %w", err)
	}

	reports, err := s.reportRepo.ListForCycle(ctx, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	dtos := make([]domain.ScoreReportDTO, len(reports))
	for i := range reports {
		dtos[i] = *mapper.ToScoreReportDTO(&reports[i])
	}
	return dtos, nil
}

// Download streams an archived report
func (s *ReportService) Download(ctx context.Context, reportID uuid.UUID) (io.ReadCloser, *domain.ScoreReportDTO, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.NewNotFoundError("score report")
		}
		return nil, nil, fmt.Errorf("failed to get report: %w", err)
	}

	reader, err := s.store.Download(ctx, report.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open report file: %w", err)
	}
	return reader, mapper.ToScoreReportDTO(report), nil
}

// Delete removes an archived report and its stored file
func (s *ReportService) Delete(ctx context.Context, reportID uuid.UUID) error {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewNotFoundError("score report")
		}
		return fmt.Errorf("failed to get report: %w", err)
	}

	if err := s.reportRepo.Delete(ctx, report.ID); err != nil {
		return fmt.Errorf("failed to delete report record: %w", err)
	}
	if err := s.store.Delete(ctx, report.StoragePath); err != nil {
		s.logger.Warn("failed to delete report file",
			zap.String("storage_path", report.StoragePath),
			zap.Error(err),
		)
	}
	return nil
}

func renderScoresCSV(scores []domain.FinalScoreDTO) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"employee_id", "employee_name", "self_score", "manager_score", "peer_score", "overall_score", "warnings"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, score := range scores {
		row := []string{
			score.EmployeeID.String(),
			score.EmployeeName,
			formatScore(score.SelfScore),
			formatScore(score.ManagerScore),
			formatScore(score.PeerScore),
			formatScore(score.OverallScore),
			strconv.Itoa(len(score.Warnings)),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatScore(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func (s *ReportService) notifyScoresAvailable(ctx context.Context, cycle *domain.ReviewCycle, scores []domain.FinalScoreDTO) {
	if s.notificationRepo == nil {
		return
	}

	notifications := make([]domain.Notification, 0, len(scores))
	for _, score := range scores {
		if score.OverallScore == nil {
			continue
		}
		entityID := cycle.ID
		notifications = append(notifications, domain.Notification{
			UserID:     score.EmployeeID,
			CompanyID:  cycle.CompanyID,
			Type:       string(domain.NotificationTypeScoreAvailable),
			Title:      "Performance score available",
			Message:    fmt.Sprintf("Your performance score for %q is available.", cycle.Name),
			EntityID:   &entityID,
			EntityType: "review_cycle",
		})
	}

	if err := s.notificationRepo.CreateBatch(ctx, notifications); err != nil {
		s.logger.Warn("failed to create score notifications",
			zap.String("cycle_id", cycle.ID.String()),
			zap.Error(err),
		)
	}
}
