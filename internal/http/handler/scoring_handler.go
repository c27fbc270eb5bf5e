package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/perfcycle/review-api/internal/service"
	"go.uber.org/zap"
)

// ScoringHandler handles HTTP requests for score calculation
type ScoringHandler struct {
	scoringService *service.ScoringService
	logger         *zap.Logger
}

// NewScoringHandler creates a new ScoringHandler instance
func NewScoringHandler(scoringService *service.ScoringService, logger *zap.Logger) *ScoringHandler {
	return &ScoringHandler{
		scoringService: scoringService,
		logger:         logger,
	}
}

// Calculate godoc
// @Summary Calculate an employee's score
// @Description Computes the final score for one employee in a cycle from submitted reviews only. Missing review types yield null scores with a warning, never zeros.
// @Tags Scores
// @Produce json
// @Param id path string true "Cycle ID" format(uuid)
// @Param employeeId path string true "Employee ID" format(uuid)
// @Success 200 {object} domain.FinalScoreDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /cycles/{id}/scores/{employeeId} [get]
func (h *ScoringHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	cycleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid cycle ID format")
		return
	}
	employeeID, err := uuid.Parse(chi.URLParam(r, "employeeId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	score, err := h.scoringService.Calculate(r.Context(), cycleID, employeeID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, score)
}

// CalculateAll godoc
// @Summary Calculate scores for all employees
// @Description Computes final scores for every employee in a cycle. Individual failures are skipped, not fatal.
// @Tags Scores
// @Produce json
// @Param id path string true "Cycle ID" format(uuid)
// @Success 200 {array} domain.FinalScoreDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /cycles/{id}/scores [get]
func (h *ScoringHandler) CalculateAll(w http.ResponseWriter, r *http.Request) {
	cycleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid cycle ID format")
		return
	}

	scores, err := h.scoringService.CalculateAll(r.Context(), cycleID)
	if err != nil {
		h.logger.Error("failed to calculate cycle scores", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, scores)
}
