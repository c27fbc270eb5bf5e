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

// CycleHandler handles HTTP requests for review cycles
type CycleHandler struct {
	cycleService *service.CycleService
	logger       *zap.Logger
}

// NewCycleHandler creates a new CycleHandler instance
func NewCycleHandler(cycleService *service.CycleService, logger *zap.Logger) *CycleHandler {
	return &CycleHandler{
		cycleService: cycleService,
		logger:       logger,
	}
}

// Create godoc
// @Summary Create a review cycle
// @Description Creates a DRAFT cycle with 1-3 workflow steps. Each step window must lie inside the cycle window, and at most one step may be a SELF step.
// @Tags Cycles
// @Accept json
// @Produce json
// @Param request body domain.CreateCycleRequest true "Cycle to create"
// @Success 201 {object} domain.CycleDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /cycles [post]
func (h *CycleHandler) Create(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req domain.CreateCycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	cycle, err := h.cycleService.Create(r.Context(), userCtx.CompanyID, &req)
	if err != nil {
		h.logger.Error("failed to create cycle", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, cycle)
}

// GetByID godoc
// @Summary Get a review cycle
// @Tags Cycles
// @Produce json
// @Param id path string true "Cycle ID" format(uuid)
// @Success 200 {object} domain.CycleDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /cycles/{id} [get]
func (h *CycleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid cycle ID format")
		return
	}

	cycle, err := h.cycleService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cycle)
}

// List godoc
// @Summary List review cycles
// @Tags Cycles
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param status query string false "Filter by status" Enums(DRAFT, ACTIVE, COMPLETED)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.CycleDTO}
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /cycles [get]
func (h *CycleHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	var status *domain.CycleStatus
	if v := r.URL.Query().Get("status"); v != "" {
		cycleStatus := domain.CycleStatus(v)
		if !cycleStatus.IsValid() {
			respondWithError(w, http.StatusBadRequest, "status must be one of DRAFT, ACTIVE, COMPLETED")
			return
		}
		status = &cycleStatus
	}

	cycles, total, err := h.cycleService.List(r.Context(), page, pageSize, status)
	if err != nil {
		h.logger.Error("failed to list cycles", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, domain.PaginatedResponse{
		Data:       cycles,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	})
}

// Update godoc
// @Summary Update a review cycle
// @Description Updates a DRAFT cycle's name and date window. Non-DRAFT cycles are immutable.
// @Tags Cycles
// @Accept json
// @Produce json
// @Param id path string true "Cycle ID" format(uuid)
// @Param request body domain.UpdateCycleRequest true "Fields to update"
// @Success 200 {object} domain.CycleDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /cycles/{id} [put]
func (h *CycleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid cycle ID format")
		return
	}

	var req domain.UpdateCycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	cycle, err := h.cycleService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cycle)
}

// ReplaceConfigs godoc
// @Summary Replace a cycle's workflow steps
// @Description Replaces the full step set of a DRAFT cycle
// @Tags Cycles
// @Accept json
// @Produce json
// @Param id path string true "Cycle ID" format(uuid)
// @Param request body domain.ReplaceConfigsRequest true "New workflow steps"
// @Success 200 {object} domain.CycleDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /cycles/{id}/configs [put]
func (h *CycleHandler) ReplaceConfigs(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid cycle ID format")
		return
	}

	var req domain.ReplaceConfigsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	cycle, err := h.cycleService.ReplaceConfigs(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cycle)
}

// Activate godoc
// @Summary Activate a review cycle
// @Description Moves a DRAFT cycle to ACTIVE. Fails if the cycle has no steps or its date range overlaps another ACTIVE cycle.
// @Tags Cycles
// @Produce json
// @Param id path string true "Cycle ID" format(uuid)
// @Success 200 {object} domain.CycleDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /cycles/{id}/activate [post]
func (h *CycleHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid cycle ID format")
		return
	}

	cycle, err := h.cycleService.Activate(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cycle)
}

// Complete godoc
// @Summary Complete a review cycle
// @Description Moves an ACTIVE cycle to COMPLETED
// @Tags Cycles
// @Produce json
// @Param id path string true "Cycle ID" format(uuid)
// @Success 200 {object} domain.CycleDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /cycles/{id}/complete [post]
func (h *CycleHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid cycle ID format")
		return
	}

	cycle, err := h.cycleService.Complete(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cycle)
}

// Delete godoc
// @Summary Delete a review cycle
// @Description Removes a DRAFT cycle. Non-DRAFT cycles cannot be deleted.
// @Tags Cycles
// @Produce json
// @Param id path string true "Cycle ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /cycles/{id} [delete]
func (h *CycleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid cycle ID format")
		return
	}

	if err := h.cycleService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
