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

type QuestionService struct {
	questionRepo *repository.QuestionRepository
	logger       *zap.Logger
}

func NewQuestionService(questionRepo *repository.QuestionRepository, logger *zap.Logger) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		logger:       logger,
	}
}

func (s *QuestionService) Create(ctx context.Context, companyID uuid.UUID, req *domain.CreateQuestionRequest) (*domain.QuestionDTO, error) {
	if !req.ReviewType.IsValid() {
		return nil, domain.NewValidationError("unknown review type %q", req.ReviewType)
	}
	if !req.Kind.IsValid() {
		return nil, domain.NewValidationError("unknown question kind %q", req.Kind)
	}
	if req.MaxChars != nil && req.Kind != domain.QuestionKindText {
		return nil, domain.NewValidationError("maxChars only applies to TEXT questions")
	}

	order, err := s.questionRepo.NextDisplayOrder(ctx, req.ReviewType)
	if err != nil {
		return nil, fmt.Errorf("failed to determine question order: %w", err)
	}

	question := &domain.Question{
		CompanyID:    companyID,
		ReviewType:   req.ReviewType,
		Kind:         req.Kind,
		Text:         req.Text,
		MaxChars:     req.MaxChars,
		DisplayOrder: order,
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	return mapper.ToQuestionDTO(question), nil
}

func (s *QuestionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuestionDTO, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("question")
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return mapper.ToQuestionDTO(question), nil
}

// ListByType returns a company's questions for one review type in display order
func (s *QuestionService) ListByType(ctx context.Context, reviewType domain.ReviewType) ([]domain.QuestionDTO, error) {
	if !reviewType.IsValid() {
		return nil, domain.NewValidationError("unknown review type %q", reviewType)
	}
	questions, err := s.questionRepo.ListByType(ctx, reviewType)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return mapper.ToQuestionDTOs(questions), nil
}

func (s *QuestionService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateQuestionRequest) (*domain.QuestionDTO, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("question")
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	if req.MaxChars != nil && question.Kind != domain.QuestionKindText {
		return nil, domain.NewValidationError("maxChars only applies to TEXT questions")
	}

	question.Text = req.Text
	question.MaxChars = req.MaxChars

	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	return mapper.ToQuestionDTO(question), nil
}

func (s *QuestionService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.questionRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewNotFoundError("question")
		}
		return fmt.Errorf("failed to get question: %w", err)
	}

	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	return nil
}

// Reorder rewrites the display order for one review type. The request must
// list every question of that type exactly once; afterwards the order is
// dense 0..n-1 in the submitted sequence.
func (s *QuestionService) Reorder(ctx context.Context, req *domain.ReorderQuestionsRequest) ([]domain.QuestionDTO, error) {
	if !req.ReviewType.IsValid() {
		return nil, domain.NewValidationError("unknown review type %q", req.ReviewType)
	}

	existing, err := s.questionRepo.ListByType(ctx, req.ReviewType)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	if len(req.QuestionIDs) != len(existing) {
		return nil, domain.NewValidationError("reorder must include all %d questions of type %s", len(existing), req.ReviewType)
	}
	known := make(map[uuid.UUID]bool, len(existing))
	for _, q := range existing {
		known[q.ID] = true
	}
	seen := make(map[uuid.UUID]bool, len(req.QuestionIDs))
	for _, id := range req.QuestionIDs {
		if !known[id] {
			return nil, domain.NewValidationError("question %s does not belong to type %s", id, req.ReviewType)
		}
		if seen[id] {
			return nil, domain.NewValidationError("question %s appears more than once", id)
		}
		seen[id] = true
	}

	if err := s.questionRepo.Reorder(ctx, req.QuestionIDs); err != nil {
		return nil, fmt.Errorf("failed to reorder questions: %w", err)
	}

	questions, err := s.questionRepo.ListByType(ctx, req.ReviewType)
	if err != nil {
		return nil, fmt.Errorf("failed to reload questions: %w", err)
	}
	return mapper.ToQuestionDTOs(questions), nil
}
