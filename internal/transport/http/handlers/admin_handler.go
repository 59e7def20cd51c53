package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/enums"
	accountsvc "github.com/Thenukee/JobMarket-sub000/internal/services/accounts"
	activitysvc "github.com/Thenukee/JobMarket-sub000/internal/services/activity"
	authsvc "github.com/Thenukee/JobMarket-sub000/internal/services/auth"
	modsvc "github.com/Thenukee/JobMarket-sub000/internal/services/moderation"
	"github.com/Thenukee/JobMarket-sub000/internal/transport/http/dto"
	httperrors "github.com/Thenukee/JobMarket-sub000/internal/transport/http/errors"
)

// AdminHandler is the moderation console: bulk status changes, bulk deletes,
// account listing and the activity log. Every route behind it is admin-gated
// at the router, and the moderation service re-checks the role anyway.
type AdminHandler struct {
	moderation *modsvc.Service
	accounts   *accountsvc.Service
	activity   *activitysvc.Service
	dev        bool
}

func NewAdminHandler(moderation *modsvc.Service, accounts *accountsvc.Service, activity *activitysvc.Service, dev bool) *AdminHandler {
	return &AdminHandler{
		moderation: moderation,
		accounts:   accounts,
		activity:   activity,
		dev:        dev,
	}
}

// Transition changes a single entity's status. It is the one-row variant of
// BulkAction and goes through the same workflow underneath.
func (h *AdminHandler) Transition(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.moderation == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	var req dto.TransitionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if req.ID <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "id must be positive")
		return
	}

	result, err := h.moderation.Transition(r.Context(), identity, modsvc.TransitionRequest{
		Kind:      enums.EntityKind(req.EntityType),
		IDs:       []int64{req.ID},
		NewStatus: req.Status,
		Notes:     req.Notes,
		SourceIP:  r.RemoteAddr,
	})
	if err != nil {
		h.handleModerationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.BulkActionResponse{
		EntityType: string(result.Kind),
		Status:     result.Status,
		Affected:   result.Affected,
	})
}

func (h *AdminHandler) BulkAction(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.moderation == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	var req dto.BulkActionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	kind := enums.EntityKind(req.EntityType)

	if req.Operation == "delete" {
		result, err := h.moderation.Delete(r.Context(), identity, modsvc.DeleteRequest{
			Kind:     kind,
			IDs:      req.IDs,
			SourceIP: r.RemoteAddr,
		})
		if err != nil {
			h.handleModerationError(w, err)
			return
		}
		httperrors.Write(w, http.StatusOK, dto.BulkActionResponse{
			EntityType: string(result.Kind),
			Affected:   result.Affected,
		})
		return
	}

	status := req.Status
	if status == "" && req.Operation != "" {
		mapped, ok := modsvc.OperationStatus(kind, req.Operation)
		if !ok {
			writeBadRequest(w, "INVALID_OPERATION", "operation is not valid for this entity type")
			return
		}
		status = mapped
	}

	result, err := h.moderation.Transition(r.Context(), identity, modsvc.TransitionRequest{
		Kind:      kind,
		IDs:       req.IDs,
		NewStatus: status,
		Notes:     req.Notes,
		SourceIP:  r.RemoteAddr,
	})
	if err != nil {
		h.handleModerationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.BulkActionResponse{
		EntityType: string(result.Kind),
		Status:     result.Status,
		Affected:   result.Affected,
	})
}

func (h *AdminHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	if h.accounts == nil {
		writeInternal(w, "ACCOUNT_SERVICE_UNAVAILABLE", "account service is unavailable")
		return
	}

	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))
	offset, _ := strconv.Atoi(query.Get("offset"))

	items, err := h.accounts.List(r.Context(), accountsvc.ListInput{
		Role:   query.Get("role"),
		Status: query.Get("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		if errors.Is(err, accountsvc.ErrInvalidInput) {
			writeBadRequest(w, "VALIDATION_ERROR", "account filter is invalid")
			return
		}
		h.writeInternalDetail(w, "INTERNAL_ERROR", "could not list accounts", err)
		return
	}

	resp := dto.AccountListResponse{Items: make([]dto.AccountResponse, 0, len(items))}
	for _, account := range items {
		resp.Items = append(resp.Items, dto.NewAccountResponse(account))
	}
	httperrors.Write(w, http.StatusOK, resp)
}

func (h *AdminHandler) ActivityLog(w http.ResponseWriter, r *http.Request) {
	if h.activity == nil {
		writeInternal(w, "ACTIVITY_SERVICE_UNAVAILABLE", "activity service is unavailable")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.activity.ListRecent(r.Context(), limit)
	if err != nil {
		h.writeInternalDetail(w, "INTERNAL_ERROR", "could not list activity log", err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewActivityListResponse(entries))
}

func (h *AdminHandler) ClearActivityLog(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.activity == nil {
		writeInternal(w, "ACTIVITY_SERVICE_UNAVAILABLE", "activity service is unavailable")
		return
	}

	cleared, err := h.activity.Clear(r.Context())
	if err != nil {
		h.writeInternalDetail(w, "INTERNAL_ERROR", "could not clear activity log", err)
		return
	}

	// The purge itself is the first entry of the fresh log.
	actorID := identity.AccountID
	_ = h.activity.Record(r.Context(), &actorID, enums.AuditActionClearActivityLog,
		"Cleared the activity log", r.RemoteAddr)

	httperrors.Write(w, http.StatusOK, dto.ClearActivityResponse{Cleared: cleared})
}

func (h *AdminHandler) handleModerationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, modsvc.ErrUnauthorized):
		writeForbidden(w, "ADMIN_ONLY", "admin role required")
	case errors.Is(err, modsvc.ErrInvalidKind):
		writeBadRequest(w, "INVALID_ENTITY_TYPE", "unknown entity type")
	case errors.Is(err, modsvc.ErrInvalidStatus):
		writeBadRequest(w, "INVALID_STATUS", "status is not valid for this entity type")
	case errors.Is(err, modsvc.ErrNoValidTargets):
		writeBadRequest(w, "NO_VALID_TARGETS", "no valid targets after filtering")
	case errors.Is(err, modsvc.ErrInvalidTarget):
		writeNotFound(w, "INVALID_TARGET", "target ids do not resolve to existing rows")
	default:
		h.writeInternalDetail(w, "INTERNAL_ERROR", "moderation operation failed", err)
	}
}

func (h *AdminHandler) writeInternalDetail(w http.ResponseWriter, code, message string, err error) {
	apiErr := httperrors.APIError{Code: code, Message: message}
	if h.dev && err != nil {
		apiErr.Detail = err.Error()
	}
	httperrors.Write(w, http.StatusInternalServerError, apiErr)
}
