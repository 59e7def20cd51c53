package model

import (
	"time"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/enums"
)

type EmployerReview struct {
	ID              int64              `json:"id"`
	EmployerID      int64              `json:"employer_id"`
	AuthorID        int64              `json:"author_id"`
	Rating          int                `json:"rating"`
	Title           string             `json:"title"`
	Content         string             `json:"content"`
	Status          enums.ReviewStatus `json:"status"`
	ModerationNotes *string            `json:"moderation_notes,omitempty"`
	ModeratedBy     *int64             `json:"moderated_by,omitempty"`
	ModeratedAt     *time.Time         `json:"moderated_at,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}
