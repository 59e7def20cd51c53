package handlers

import (
	"errors"
	"net/http"

	accountsvc "github.com/Thenukee/JobMarket-sub000/internal/services/accounts"
	authsvc "github.com/Thenukee/JobMarket-sub000/internal/services/auth"
	"github.com/Thenukee/JobMarket-sub000/internal/transport/http/dto"
	httperrors "github.com/Thenukee/JobMarket-sub000/internal/transport/http/errors"
)

type AccountHandler struct {
	service *accountsvc.Service
}

func NewAccountHandler(service *accountsvc.Service) *AccountHandler {
	return &AccountHandler{service: service}
}

func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "ACCOUNT_SERVICE_UNAVAILABLE", "account service is unavailable")
		return
	}

	account, err := h.service.Get(r.Context(), identity.AccountID)
	if err != nil {
		handleAccountError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewAccountResponse(account))
}

func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "ACCOUNT_SERVICE_UNAVAILABLE", "account service is unavailable")
		return
	}

	var req dto.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	account, err := h.service.UpdateProfile(r.Context(), identity.AccountID, accountsvc.UpdateProfileInput{
		DisplayName: req.DisplayName,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		handleAccountError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewAccountResponse(account))
}

func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "ACCOUNT_SERVICE_UNAVAILABLE", "account service is unavailable")
		return
	}

	var req dto.ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.service.ChangePassword(r.Context(), identity.AccountID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, accountsvc.ErrWrongPassword):
			writeForbidden(w, "WRONG_PASSWORD", "current password does not match")
		default:
			handleAccountError(w, err)
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.LogoutResponse{OK: true})
}

func handleAccountError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accountsvc.ErrAccountNotFound):
		writeNotFound(w, "ACCOUNT_NOT_FOUND", "account not found")
	case errors.Is(err, accountsvc.ErrInvalidInput):
		writeBadRequest(w, "VALIDATION_ERROR", "account input is invalid")
	default:
		writeInternal(w, "INTERNAL_ERROR", "account operation failed")
	}
}
