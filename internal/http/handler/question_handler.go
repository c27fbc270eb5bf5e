package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/perfcycle/review-api/internal/auth"
	"github.com/perfcycle/review-api/internal/domain"
	"github.com/perfcycle/review-api/internal/service"
	"go.uber.org/zap"
)

// QuestionHandler handles HTTP requests for the question bank
type QuestionHandler struct {
	questionService *service.QuestionService
	logger          *zap.Logger
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(questionService *service.QuestionService, logger *zap.Logger) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		logger:          logger,
	}
}

// Create godoc
// @Summary Create a question
// @Description Adds a question to the company's question bank. New questions are appended to their review type's display order.
// @Tags Questions
// @Accept json
// @Produce json
// @Param request body domain.CreateQuestionRequest true "Question to create"
// @Success 201 {object} domain.QuestionDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /questions [post]
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req domain.CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	question, err := h.questionService.Create(r.Context(), userCtx.CompanyID, &req)
	if err != nil {
		h.logger.Error("failed to create question", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, question)
}

// GetByID godoc
// @Summary Get a question
// @Tags Questions
// @Produce json
// @Param id path string true "Question ID" format(uuid)
// @Success 200 {object} domain.QuestionDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /questions/{id} [get]
func (h *QuestionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid question ID format")
		return
	}

	question, err := h.questionService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, question)
}

// ListByType godoc
// @Summary List questions for a review type
// @Description Returns the questions of one review type in display order
// @Tags Questions
// @Produce json
// @Param reviewType query string true "Review type" Enums(SELF, MANAGER, PEER)
// @Success 200 {array} domain.QuestionDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /questions [get]
func (h *QuestionHandler) ListByType(w http.ResponseWriter, r *http.Request) {
	reviewType := domain.ReviewType(r.URL.Query().Get("reviewType"))
	if !reviewType.IsValid() {
		respondWithError(w, http.StatusBadRequest, "reviewType must be one of SELF, MANAGER, PEER")
		return
	}

	questions, err := h.questionService.ListByType(r.Context(), reviewType)
	if err != nil {
		h.logger.Error("failed to list questions", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, questions)
}

// Update godoc
// @Summary Update a question
// @Description Updates a question's text and character limit
// @Tags Questions
// @Accept json
// @Produce json
// @Param id path string true "Question ID" format(uuid)
// @Param request body domain.UpdateQuestionRequest true "Fields to update"
// @Success 200 {object} domain.QuestionDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /questions/{id} [put]
func (h *QuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid question ID format")
		return
	}

	var req domain.UpdateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	question, err := h.questionService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, question)
}

// Delete godoc
// @Summary Delete a question
// @Tags Questions
// @Produce json
// @Param id path string true "Question ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /questions/{id} [delete]
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid question ID format")
		return
	}

	if err := h.questionService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reorder godoc
// @Summary Reorder questions
// @Description Rewrites the display order for one review type. The ID list must contain every question of that type exactly once.
// @Tags Questions
// @Accept json
// @Produce json
// @Param request body domain.ReorderQuestionsRequest true "New question order"
// @Success 200 {array} domain.QuestionDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /questions/reorder [put]
func (h *QuestionHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req domain.ReorderQuestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	questions, err := h.questionService.Reorder(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, questions)
}
