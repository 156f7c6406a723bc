package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Vikesh2608/EagleReach/database"
	"github.com/Vikesh2608/EagleReach/models"
	"github.com/Vikesh2608/EagleReach/services"
	"github.com/Vikesh2608/EagleReach/shared/utils"
)

// ReportHandler handles HTTP requests for citizen reports
type ReportHandler struct {
	service *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// available reports whether the reports subsystem is usable (database connected)
func (h *ReportHandler) available(w http.ResponseWriter) bool {
	if h.service == nil {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Report filing not available - database not connected")
		return false
	}
	return true
}

// CreateReport handles POST /api/reports
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	var req models.CreateReportRequest
	if err := utils.ParseJSONRequest(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	report, err := h.service.CreateReport(r.Context(), &req)
	if err != nil {
		if services.IsValidationError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create report")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, models.NewReportResponse(report))
}

// GetReport handles GET /api/reports/{id}
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	id := chi.URLParam(r, "id")

	report, err := h.service.GetReport(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrReportNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Report not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve report")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.NewReportResponse(report))
}

// ListReports handles GET /api/reports
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	// Parse query parameters
	status := r.URL.Query().Get("status")
	category := r.URL.Query().Get("category")
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	filters := &database.ReportFilters{
		Limit:  100, // default
		Offset: 0,   // default
	}

	if status != "" {
		filters.Status = &status
	}
	if category != "" {
		filters.Category = &category
	}
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 1000 {
			filters.Limit = l
		}
	}
	if offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filters.Offset = o
		}
	}

	reports, total, err := h.service.ListReports(r.Context(), filters)
	if err != nil {
		if services.IsValidationError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reports")
		return
	}

	response := models.ListReportsResponse{
		Reports: make([]models.ReportResponse, len(reports)),
		Total:   total,
	}
	for i := range reports {
		response.Reports[i] = models.NewReportResponse(&reports[i])
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

// UpdateReportStatus handles PATCH /api/reports/{id}
func (h *ReportHandler) UpdateReportStatus(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	id := chi.URLParam(r, "id")

	var req models.UpdateReportStatusRequest
	if err := utils.ParseJSONRequest(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	report, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrReportNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Report not found")
		case services.IsValidationError(err):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update report")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.NewReportResponse(report))
}
