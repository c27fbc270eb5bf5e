package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/perfcycle/review-api/internal/auth"
	"github.com/perfcycle/review-api/internal/service"
	"go.uber.org/zap"
)

// ReportHandler handles HTTP requests for score report exports
type ReportHandler struct {
	reportService *service.ReportService
	logger        *zap.Logger
}

// NewReportHandler creates a new ReportHandler instance
func NewReportHandler(reportService *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// Export godoc
// @Summary Export cycle scores as CSV
// @Description Computes all scores for a cycle, stores the CSV in the report archive, and returns the archive record
// @Tags Reports
// @Produce json
// @Param id path string true "Cycle ID" format(uuid)
// @Success 201 {object} domain.ScoreReportDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /cycles/{id}/reports [post]
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
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

	report, err := h.reportService.Export(r.Context(), userCtx.CompanyID, cycleID, userCtx.UserID)
	if err != nil {
		h.logger.Error("report export failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, report)
}

// List godoc
// @Summary List archived reports for a cycle
// @Tags Reports
// @Produce json
// @Param id path string true "Cycle ID" format(uuid)
// @Success 200 {array} domain.ScoreReportDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /cycles/{id}/reports [get]
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	cycleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid cycle ID format")
		return
	}

	reports, err := h.reportService.List(r.Context(), cycleID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, reports)
}

// Download godoc
// @Summary Download an archived report
// @Tags Reports
// @Produce text/csv
// @Param id path string true "Report ID" format(uuid)
// @Success 200 {file} file
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /reports/{id}/download [get]
func (h *ReportHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid report ID format")
		return
	}

	reader, report, err := h.reportService.Download(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename+`"`)
	if report.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(report.Size, 10))
	}
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Warn("report download interrupted",
			zap.String("report_id", id.String()),
			zap.Error(err),
		)
	}
}

// Delete godoc
// @Summary Delete an archived report
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /reports/{id} [delete]
func (h *ReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid report ID format")
		return
	}

	if err := h.reportService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
