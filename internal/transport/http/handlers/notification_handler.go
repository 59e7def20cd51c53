package handlers

import (
	"net/http"

	authsvc "github.com/Thenukee/JobMarket-sub000/internal/services/auth"
	notifsvc "github.com/Thenukee/JobMarket-sub000/internal/services/notifications"
	"github.com/Thenukee/JobMarket-sub000/internal/transport/http/dto"
	httperrors "github.com/Thenukee/JobMarket-sub000/internal/transport/http/errors"
)

type NotificationHandler struct {
	service *notifsvc.Service
}

func NewNotificationHandler(service *notifsvc.Service) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) ListUnread(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "NOTIFICATION_SERVICE_UNAVAILABLE", "notification service is unavailable")
		return
	}

	notifications, err := h.service.ListUnread(r.Context(), identity.AccountID, 50)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "could not list notifications")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewNotificationListResponse(notifications))
}

// MarkRead flips one notification; the recipient check lives in the query so
// one account can never touch another's rows.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "NOTIFICATION_SERVICE_UNAVAILABLE", "notification service is unavailable")
		return
	}
	notificationID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	marked, err := h.service.MarkRead(r.Context(), notificationID, identity.AccountID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "could not mark notification as read")
		return
	}
	if !marked {
		writeNotFound(w, "NOTIFICATION_NOT_FOUND", "notification not found")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MarkReadResponse{OK: true})
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "NOTIFICATION_SERVICE_UNAVAILABLE", "notification service is unavailable")
		return
	}

	count, err := h.service.CountUnread(r.Context(), identity.AccountID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "could not count notifications")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.UnreadCountResponse{Count: count})
}
