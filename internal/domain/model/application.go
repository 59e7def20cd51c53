package model

import (
	"time"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/enums"
)

type Application struct {
	ID        int64                   `json:"id"`
	JobID     int64                   `json:"job_id"`
	SeekerID  int64                   `json:"seeker_id"`
	Status    enums.ApplicationStatus `json:"status"`
	ResumeKey *string                 `json:"resume_key,omitempty"`
	AppliedAt time.Time               `json:"applied_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}
