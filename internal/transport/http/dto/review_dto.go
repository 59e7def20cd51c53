package dto

import (
	"time"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/model"
)

type CreateReviewRequest struct {
	EmployerID int64  `json:"employer_id"`
	Rating     int    `json:"rating"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}

type ReviewResponse struct {
	ID         int64     `json:"id"`
	EmployerID int64     `json:"employer_id"`
	AuthorID   int64     `json:"author_id"`
	Rating     int       `json:"rating"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewReviewResponse(review model.EmployerReview) ReviewResponse {
	return ReviewResponse{
		ID:         review.ID,
		EmployerID: review.EmployerID,
		AuthorID:   review.AuthorID,
		Rating:     review.Rating,
		Title:      review.Title,
		Content:    review.Content,
		Status:     string(review.Status),
		CreatedAt:  review.CreatedAt,
	}
}

type ReviewListResponse struct {
	Items []ReviewResponse `json:"items"`
}

func NewReviewListResponse(reviews []model.EmployerReview) ReviewListResponse {
	items := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, NewReviewResponse(review))
	}
	return ReviewListResponse{Items: items}
}
