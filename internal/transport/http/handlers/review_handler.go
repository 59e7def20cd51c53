package handlers

import (
	"errors"
	"net/http"

	reviewsvc "github.com/Thenukee/JobMarket-sub000/internal/services/reviews"
	"github.com/Thenukee/JobMarket-sub000/internal/transport/http/dto"
	httperrors "github.com/Thenukee/JobMarket-sub000/internal/transport/http/errors"
)

type ReviewHandler struct {
	service *reviewsvc.Service
}

func NewReviewHandler(service *reviewsvc.Service) *ReviewHandler {
	return &ReviewHandler{service: service}
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireSeeker(w, r)
	if !ok {
		return
	}
	if h.service == nil {
		writeInternal(w, "REVIEW_SERVICE_UNAVAILABLE", "review service is unavailable")
		return
	}

	var req dto.CreateReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	review, err := h.service.Create(r.Context(), identity.AccountID, reviewsvc.CreateInput{
		EmployerID: req.EmployerID,
		Rating:     req.Rating,
		Title:      req.Title,
		Content:    req.Content,
		SourceIP:   r.RemoteAddr,
	})
	if err != nil {
		switch {
		case errors.Is(err, reviewsvc.ErrEmployerNotFound):
			writeNotFound(w, "EMPLOYER_NOT_FOUND", "employer not found")
		case errors.Is(err, reviewsvc.ErrSelfReview):
			writeForbidden(w, "SELF_REVIEW", "cannot review own company")
		case errors.Is(err, reviewsvc.ErrInvalidInput):
			writeBadRequest(w, "VALIDATION_ERROR", "review input is invalid")
		default:
			writeInternal(w, "INTERNAL_ERROR", "review creation failed")
		}
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.NewReviewResponse(review))
}

// ListForEmployer is the public surface: approved reviews only.
func (h *ReviewHandler) ListForEmployer(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "REVIEW_SERVICE_UNAVAILABLE", "review service is unavailable")
		return
	}
	employerID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	reviews, err := h.service.ListApproved(r.Context(), employerID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "could not list reviews")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewReviewListResponse(reviews))
}

func (h *ReviewHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "REVIEW_SERVICE_UNAVAILABLE", "review service is unavailable")
		return
	}

	reviews, err := h.service.ListPending(r.Context(), 100)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "could not list pending reviews")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewReviewListResponse(reviews))
}
