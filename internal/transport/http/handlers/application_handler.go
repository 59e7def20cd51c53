package handlers

import (
	"errors"
	"net/http"

	appsvc "github.com/Thenukee/JobMarket-sub000/internal/services/applications"
	authsvc "github.com/Thenukee/JobMarket-sub000/internal/services/auth"
	mediasvc "github.com/Thenukee/JobMarket-sub000/internal/services/media"
	"github.com/Thenukee/JobMarket-sub000/internal/transport/http/dto"
	httperrors "github.com/Thenukee/JobMarket-sub000/internal/transport/http/errors"
)

type ApplicationHandler struct {
	service *appsvc.Service
	media   *mediasvc.Service
}

func NewApplicationHandler(service *appsvc.Service, media *mediasvc.Service) *ApplicationHandler {
	return &ApplicationHandler{service: service, media: media}
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireSeeker(w, r)
	if !ok {
		return
	}
	if h.service == nil {
		writeInternal(w, "APPLICATION_SERVICE_UNAVAILABLE", "application service is unavailable")
		return
	}

	var req dto.ApplyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	app, err := h.service.Apply(r.Context(), identity.AccountID, req.JobID, req.ResumeKey, r.RemoteAddr)
	if err != nil {
		handleApplicationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.NewApplicationResponse(app))
}

func (h *ApplicationHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireSeeker(w, r)
	if !ok {
		return
	}
	appID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Withdraw(r.Context(), identity.AccountID, appID, r.RemoteAddr); err != nil {
		handleApplicationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.LogoutResponse{OK: true})
}

func (h *ApplicationHandler) AttachResume(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireSeeker(w, r)
	if !ok {
		return
	}
	appID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.AttachResumeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.service.AttachResume(r.Context(), identity.AccountID, appID, req.ResumeKey); err != nil {
		handleApplicationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.LogoutResponse{OK: true})
}

func (h *ApplicationHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireEmployer(w, r)
	if !ok {
		return
	}
	appID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.ApplicationStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	app, err := h.service.SetStatus(r.Context(), identity.AccountID, appID, req.Status, r.RemoteAddr)
	if err != nil {
		handleApplicationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewApplicationResponse(app))
}

func (h *ApplicationHandler) ListForJob(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireEmployer(w, r)
	if !ok {
		return
	}
	jobID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	apps, err := h.service.ListForJob(r.Context(), identity.AccountID, jobID)
	if err != nil {
		handleApplicationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewApplicationListResponse(apps))
}

func (h *ApplicationHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireSeeker(w, r)
	if !ok {
		return
	}

	apps, err := h.service.ListOwn(r.Context(), identity.AccountID)
	if err != nil {
		handleApplicationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewApplicationListResponse(apps))
}

// ResumeLink gives the listing's employer a short-lived download URL for an
// applicant's resume.
func (h *ApplicationHandler) ResumeLink(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireEmployer(w, r)
	if !ok {
		return
	}
	if h.media == nil {
		writeInternal(w, "MEDIA_SERVICE_UNAVAILABLE", "media service is unavailable")
		return
	}
	appID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	key, err := h.service.ResumeKeyFor(r.Context(), identity.AccountID, appID)
	if err != nil {
		handleApplicationError(w, err)
		return
	}

	url, err := h.media.PresignDownload(r.Context(), key)
	if err != nil {
		if errors.Is(err, mediasvc.ErrInvalidInput) {
			writeNotFound(w, "RESUME_NOT_FOUND", "application has no resume attached")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "could not presign resume link")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ResumeLinkResponse{URL: url})
}

func requireSeeker(w http.ResponseWriter, r *http.Request) (authsvc.Identity, bool) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return authsvc.Identity{}, false
	}
	if identity.Role != "seeker" {
		writeForbidden(w, "SEEKER_ONLY", "seeker role required")
		return authsvc.Identity{}, false
	}
	return identity, true
}

func handleApplicationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appsvc.ErrJobNotFound):
		writeNotFound(w, "JOB_NOT_FOUND", "job listing not found")
	case errors.Is(err, appsvc.ErrApplicationNotFound):
		writeNotFound(w, "APPLICATION_NOT_FOUND", "application not found")
	case errors.Is(err, appsvc.ErrResumeNotAttached):
		writeNotFound(w, "RESUME_NOT_FOUND", "application has no resume attached")
	case errors.Is(err, appsvc.ErrJobNotActive):
		writeConflict(w, "JOB_NOT_ACTIVE", "job listing is not accepting applications")
	case errors.Is(err, appsvc.ErrAlreadyApplied):
		writeConflict(w, "ALREADY_APPLIED", "application already exists for this listing")
	case errors.Is(err, appsvc.ErrNotOwner):
		writeForbidden(w, "NOT_OWNER", "listing belongs to another employer")
	case errors.Is(err, appsvc.ErrNotApplicant):
		writeForbidden(w, "NOT_APPLICANT", "application belongs to another seeker")
	case errors.Is(err, appsvc.ErrInvalidInput):
		writeBadRequest(w, "VALIDATION_ERROR", "application input is invalid")
	default:
		writeInternal(w, "INTERNAL_ERROR", "application operation failed")
	}
}
