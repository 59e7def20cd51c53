package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/Thenukee/JobMarket-sub000/internal/services/auth"
	reportsvc "github.com/Thenukee/JobMarket-sub000/internal/services/reports"
	"github.com/Thenukee/JobMarket-sub000/internal/transport/http/dto"
	httperrors "github.com/Thenukee/JobMarket-sub000/internal/transport/http/errors"
)

type ReportHandler struct {
	service *reportsvc.Service
}

func NewReportHandler(service *reportsvc.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

// Create accepts reports from anyone, signed in or not. A signed-in reporter
// can still ask to stay anonymous.
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "REPORT_SERVICE_UNAVAILABLE", "report service is unavailable")
		return
	}

	var req dto.CreateReportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	var reporterID *int64
	if identity, ok := authsvc.IdentityFromContext(r.Context()); ok && !req.Anonymous {
		id := identity.AccountID
		reporterID = &id
	}

	report, err := h.service.Create(r.Context(), reportsvc.CreateInput{
		ContentType: req.ContentType,
		ContentID:   req.ContentID,
		Reason:      req.Reason,
		Details:     req.Details,
		ReporterID:  reporterID,
	})
	if err != nil {
		if errors.Is(err, reportsvc.ErrInvalidInput) {
			writeBadRequest(w, "VALIDATION_ERROR", "report input is invalid")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "report creation failed")
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.NewReportResponse(report))
}

func (h *ReportHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "REPORT_SERVICE_UNAVAILABLE", "report service is unavailable")
		return
	}

	reports, err := h.service.ListPending(r.Context(), 100)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "could not list pending reports")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewReportListResponse(reports))
}
