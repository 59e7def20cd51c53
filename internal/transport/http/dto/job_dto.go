package dto

import (
	"time"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/model"
)

type JobRequest struct {
	Title        string `json:"title"`
	Location     string `json:"location"`
	Type         string `json:"type"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	SalaryMin    *int64 `json:"salary_min,omitempty"`
	SalaryMax    *int64 `json:"salary_max,omitempty"`
	Remote       bool   `json:"remote"`
}

type JobResponse struct {
	ID           int64      `json:"id"`
	EmployerID   int64      `json:"employer_id"`
	Title        string     `json:"title"`
	Location     string     `json:"location"`
	Type         string     `json:"type"`
	Category     string     `json:"category"`
	Description  string     `json:"description"`
	Requirements string     `json:"requirements"`
	SalaryMin    *int64     `json:"salary_min,omitempty"`
	SalaryMax    *int64     `json:"salary_max,omitempty"`
	Remote       bool       `json:"remote"`
	Status       string     `json:"status"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func NewJobResponse(job model.JobListing) JobResponse {
	return JobResponse{
		ID:           job.ID,
		EmployerID:   job.EmployerID,
		Title:        job.Title,
		Location:     job.Location,
		Type:         job.Type,
		Category:     job.Category,
		Description:  job.Description,
		Requirements: job.Requirements,
		SalaryMin:    job.SalaryMin,
		SalaryMax:    job.SalaryMax,
		Remote:       job.Remote,
		Status:       string(job.Status),
		ExpiresAt:    job.ExpiresAt,
		CreatedAt:    job.CreatedAt,
	}
}

type JobListResponse struct {
	Items []JobResponse `json:"items"`
}

func NewJobListResponse(jobs []model.JobListing) JobListResponse {
	items := make([]JobResponse, 0, len(jobs))
	for _, job := range jobs {
		items = append(items, NewJobResponse(job))
	}
	return JobListResponse{Items: items}
}
