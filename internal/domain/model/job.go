package model

import (
	"time"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/enums"
)

type JobListing struct {
	ID           int64           `json:"id"`
	EmployerID   int64           `json:"employer_id"`
	Title        string          `json:"title"`
	Location     string          `json:"location"`
	Type         string          `json:"type"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Requirements string          `json:"requirements"`
	SalaryMin    *int64          `json:"salary_min,omitempty"`
	SalaryMax    *int64          `json:"salary_max,omitempty"`
	Remote       bool            `json:"remote"`
	Status       enums.JobStatus `json:"status"`
	ExpiresAt    *time.Time      `json:"expires_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
