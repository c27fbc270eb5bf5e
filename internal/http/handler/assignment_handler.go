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

// AssignmentHandler handles HTTP requests for reviewer assignments
type AssignmentHandler struct {
	assignmentService *service.AssignmentService
	logger            *zap.Logger
}

// NewAssignmentHandler creates a new AssignmentHandler instance
func NewAssignmentHandler(assignmentService *service.AssignmentService, logger *zap.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		logger:            logger,
	}
}

// ListForEmployee godoc
// @Summary List an employee's reviewers
// @Description Returns the reviewer set assigned to one employee in a cycle
// @Tags Assignments
// @Produce json
// @Param id path string true "Cycle ID" format(uuid)
// @Param employeeId path string true "Employee ID" format(uuid)
// @Success 200 {array} domain.AssignmentDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /cycles/{id}/assignments/{employeeId} [get]
func (h *AssignmentHandler) ListForEmployee(w http.ResponseWriter, r *http.Request) {
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

	assignments, err := h.assignmentService.ListForEmployee(r.Context(), cycleID, employeeID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, assignments)
}

// Upsert godoc
// @Summary Replace an employee's reviewer set
// @Description Atomically replaces the full reviewer set for one employee in a cycle. A non-empty set needs 3-5 peer reviewers and at least one manager reviewer; an empty set clears the assignments.
// @Tags Assignments
// @Accept json
// @Produce json
// @Param request body domain.UpsertAssignmentsRequest true "Reviewer set"
// @Success 200 {array} domain.AssignmentDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /assignments [put]
func (h *AssignmentHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req domain.UpsertAssignmentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	assignments, err := h.assignmentService.Upsert(r.Context(), userCtx.CompanyID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, assignments)
}

// Import godoc
// @Summary Bulk import assignments
// @Description Imports email-addressed assignment rows. Rows are grouped by employee and each group is applied as one atomic replace. Failures are collected per row and never abort the batch.
// @Tags Assignments
// @Accept json
// @Produce json
// @Param request body domain.ImportAssignmentsRequest true "Import rows"
// @Success 200 {object} domain.ImportResultDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /assignments/import [post]
func (h *AssignmentHandler) Import(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req domain.ImportAssignmentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.assignmentService.Import(r.Context(), userCtx.CompanyID, &req)
	if err != nil {
		h.logger.Error("assignment import failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
