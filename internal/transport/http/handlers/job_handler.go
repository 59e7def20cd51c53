package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/Thenukee/JobMarket-sub000/internal/services/auth"
	jobsvc "github.com/Thenukee/JobMarket-sub000/internal/services/jobs"
	"github.com/Thenukee/JobMarket-sub000/internal/transport/http/dto"
	httperrors "github.com/Thenukee/JobMarket-sub000/internal/transport/http/errors"
)

type JobHandler struct {
	service     *jobsvc.Service
	pageSize    int
	maxPageSize int
}

func NewJobHandler(service *jobsvc.Service, pageSize, maxPageSize int) *JobHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	if maxPageSize <= 0 {
		maxPageSize = 100
	}
	return &JobHandler{service: service, pageSize: pageSize, maxPageSize: maxPageSize}
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireEmployer(w, r)
	if !ok {
		return
	}
	if h.service == nil {
		writeInternal(w, "JOB_SERVICE_UNAVAILABLE", "job service is unavailable")
		return
	}

	var req dto.JobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	job, err := h.service.Create(r.Context(), identity.AccountID, jobsvc.CreateInput{
		Title:        req.Title,
		Location:     req.Location,
		Type:         req.Type,
		Category:     req.Category,
		Description:  req.Description,
		Requirements: req.Requirements,
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		Remote:       req.Remote,
		SourceIP:     r.RemoteAddr,
	})
	if err != nil {
		handleJobError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.NewJobResponse(job))
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireEmployer(w, r)
	if !ok {
		return
	}
	jobID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.JobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	job, err := h.service.Update(r.Context(), identity.AccountID, jobID, jobsvc.UpdateInput{
		Title:        req.Title,
		Location:     req.Location,
		Type:         req.Type,
		Category:     req.Category,
		Description:  req.Description,
		Requirements: req.Requirements,
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		Remote:       req.Remote,
		SourceIP:     r.RemoteAddr,
	})
	if err != nil {
		handleJobError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewJobResponse(job))
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireEmployer(w, r)
	if !ok {
		return
	}
	jobID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), identity.AccountID, jobID, r.RemoteAddr); err != nil {
		handleJobError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.LogoutResponse{OK: true})
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "JOB_SERVICE_UNAVAILABLE", "job service is unavailable")
		return
	}
	jobID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	job, err := h.service.Get(r.Context(), jobID)
	if err != nil {
		handleJobError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewJobResponse(job))
}

func (h *JobHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireEmployer(w, r)
	if !ok {
		return
	}

	jobs, err := h.service.ListOwn(r.Context(), identity.AccountID)
	if err != nil {
		handleJobError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewJobListResponse(jobs))
}

func (h *JobHandler) Search(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "JOB_SERVICE_UNAVAILABLE", "job service is unavailable")
		return
	}

	query := r.URL.Query()
	input := jobsvc.SearchInput{
		Category: query.Get("category"),
		Type:     query.Get("type"),
		Location: query.Get("location"),
		Limit:    h.pageLimit(query.Get("limit")),
		Offset:   parseOffset(query.Get("offset")),
	}
	if raw := query.Get("remote"); raw != "" {
		remote := raw == "true" || raw == "1"
		input.Remote = &remote
	}

	jobs, err := h.service.Search(r.Context(), input)
	if err != nil {
		handleJobError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewJobListResponse(jobs))
}

func (h *JobHandler) pageLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return h.pageSize
	}
	if limit > h.maxPageSize {
		return h.maxPageSize
	}
	return limit
}

func parseOffset(raw string) int {
	offset, err := strconv.Atoi(raw)
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeBadRequest(w, "INVALID_ID", "path id must be a positive integer")
		return 0, false
	}
	return id, true
}

func requireEmployer(w http.ResponseWriter, r *http.Request) (authsvc.Identity, bool) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return authsvc.Identity{}, false
	}
	if identity.Role != "employer" {
		writeForbidden(w, "EMPLOYER_ONLY", "employer role required")
		return authsvc.Identity{}, false
	}
	return identity, true
}

func handleJobError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, jobsvc.ErrJobNotFound):
		writeNotFound(w, "JOB_NOT_FOUND", "job listing not found")
	case errors.Is(err, jobsvc.ErrNotOwner):
		writeForbidden(w, "NOT_OWNER", "job listing belongs to another employer")
	case errors.Is(err, jobsvc.ErrInvalidInput):
		writeBadRequest(w, "VALIDATION_ERROR", "job listing input is invalid")
	default:
		writeInternal(w, "INTERNAL_ERROR", "job operation failed")
	}
}
