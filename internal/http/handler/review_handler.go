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

// ReviewHandler handles HTTP requests for reviews and answers
type ReviewHandler struct {
	reviewService *service.ReviewService
	logger        *zap.Logger
}

// NewReviewHandler creates a new ReviewHandler instance
func NewReviewHandler(reviewService *service.ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger,
	}
}

// GetSelfReview godoc
// @Summary Get or create the caller's self review
// @Description Returns the caller's self review for a cycle, creating a DRAFT on first access
// @Tags Reviews
// @Produce json
// @Param id path string true "Cycle ID" format(uuid)
// @Success 200 {object} domain.ReviewDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /cycles/{id}/self-review [get]
func (h *ReviewHandler) GetSelfReview(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	cycleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid cycle ID format")
		return
	}

	review, err := h.reviewService.GetSelfReview(r.Context(), userCtx.CompanyID, userCtx.UserID, cycleID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, review)
}

// Start godoc
// @Summary Start a manager or peer review
// @Description Creates a DRAFT review for an employee the caller is assigned to review, or returns the existing one
// @Tags Reviews
// @Accept json
// @Produce json
// @Param request body domain.StartReviewRequest true "Review to start"
// @Success 200 {object} domain.ReviewDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /reviews [post]
func (h *ReviewHandler) Start(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req domain.StartReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	review, err := h.reviewService.StartReview(r.Context(), userCtx.CompanyID, userCtx.UserID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, review)
}

// GetByID godoc
// @Summary Get a review
// @Description Returns a review with its answers. Draft reviews are visible only to their author.
// @Tags Reviews
// @Produce json
// @Param id path string true "Review ID" format(uuid)
// @Success 200 {object} domain.ReviewDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /reviews/{id} [get]
func (h *ReviewHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid review ID format")
		return
	}

	review, err := h.reviewService.GetByID(r.Context(), userCtx.UserID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, review)
}

// UpsertAnswers godoc
// @Summary Save answers on a draft review
// @Description Writes a batch of answers into a DRAFT review owned by the caller. Submitted reviews are immutable.
// @Tags Reviews
// @Accept json
// @Produce json
// @Param id path string true "Review ID" format(uuid)
// @Param request body domain.UpsertAnswersRequest true "Answers"
// @Success 200 {object} domain.ReviewDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /reviews/{id}/answers [put]
func (h *ReviewHandler) UpsertAnswers(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid review ID format")
		return
	}

	var req domain.UpsertAnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	review, err := h.reviewService.UpsertAnswers(r.Context(), userCtx.UserID, id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, review)
}

// Submit godoc
// @Summary Submit a review
// @Description Finalizes a DRAFT review. Submission is terminal; the review can no longer be modified.
// @Tags Reviews
// @Produce json
// @Param id path string true "Review ID" format(uuid)
// @Success 200 {object} domain.ReviewDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /reviews/{id}/submit [post]
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid review ID format")
		return
	}

	review, err := h.reviewService.Submit(r.Context(), userCtx.UserID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, review)
}

// ListPending godoc
// @Summary List the caller's pending reviews
// @Description Returns the caller's assignments in a cycle that have no submitted review yet
// @Tags Reviews
// @Produce json
// @Param id path string true "Cycle ID" format(uuid)
// @Success 200 {array} domain.AssignmentDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /cycles/{id}/pending-reviews [get]
func (h *ReviewHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	cycleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid cycle ID format")
		return
	}

	pending, err := h.reviewService.ListPending(r.Context(), userCtx.UserID, cycleID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, pending)
}
