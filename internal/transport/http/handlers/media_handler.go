package handlers

import (
	"errors"
	"net/http"

	mediasvc "github.com/Thenukee/JobMarket-sub000/internal/services/media"
	"github.com/Thenukee/JobMarket-sub000/internal/transport/http/dto"
	httperrors "github.com/Thenukee/JobMarket-sub000/internal/transport/http/errors"
)

type MediaHandler struct {
	service *mediasvc.Service
}

func NewMediaHandler(service *mediasvc.Service) *MediaHandler {
	return &MediaHandler{service: service}
}

// ResumeUpload mints a presigned PUT URL; the client uploads directly to
// object storage and then attaches the returned key to an application.
func (h *MediaHandler) ResumeUpload(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireSeeker(w, r); !ok {
		return
	}
	if h.service == nil {
		writeInternal(w, "MEDIA_SERVICE_UNAVAILABLE", "media service is unavailable")
		return
	}

	var req dto.PresignUploadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	ticket, err := h.service.PresignUpload(r.Context(), req.Filename)
	if err != nil {
		if errors.Is(err, mediasvc.ErrInvalidInput) {
			writeBadRequest(w, "VALIDATION_ERROR", "unsupported resume file type")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "could not presign resume upload")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.PresignUploadResponse{
		Key:       ticket.Key,
		UploadURL: ticket.UploadURL,
	})
}
