package dto

import (
	"time"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/model"
)

type ApplyRequest struct {
	JobID     int64   `json:"job_id"`
	ResumeKey *string `json:"resume_key,omitempty"`
}

type ApplicationStatusRequest struct {
	Status string `json:"status"`
}

type AttachResumeRequest struct {
	ResumeKey string `json:"resume_key"`
}

type ApplicationResponse struct {
	ID        int64     `json:"id"`
	JobID     int64     `json:"job_id"`
	SeekerID  int64     `json:"seeker_id"`
	Status    string    `json:"status"`
	HasResume bool      `json:"has_resume"`
	AppliedAt time.Time `json:"applied_at"`
}

func NewApplicationResponse(app model.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:        app.ID,
		JobID:     app.JobID,
		SeekerID:  app.SeekerID,
		Status:    string(app.Status),
		HasResume: app.ResumeKey != nil,
		AppliedAt: app.AppliedAt,
	}
}

type ApplicationListResponse struct {
	Items []ApplicationResponse `json:"items"`
}

func NewApplicationListResponse(apps []model.Application) ApplicationListResponse {
	items := make([]ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		items = append(items, NewApplicationResponse(app))
	}
	return ApplicationListResponse{Items: items}
}

type ResumeLinkResponse struct {
	URL string `json:"url"`
}
