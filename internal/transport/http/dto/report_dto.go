package dto

import (
	"time"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/model"
)

type CreateReportRequest struct {
	ContentType string `json:"content_type"`
	ContentID   int64  `json:"content_id"`
	Reason      string `json:"reason"`
	Details     string `json:"details,omitempty"`
	Anonymous   bool   `json:"anonymous,omitempty"`
}

type ReportResponse struct {
	ID          int64     `json:"id"`
	ContentType string    `json:"content_type"`
	ContentID   int64     `json:"content_id"`
	Reason      string    `json:"reason"`
	Details     string    `json:"details,omitempty"`
	ReporterID  *int64    `json:"reporter_id,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewReportResponse(report model.ReportedContent) ReportResponse {
	return ReportResponse{
		ID:          report.ID,
		ContentType: string(report.ContentType),
		ContentID:   report.ContentID,
		Reason:      report.Reason,
		Details:     report.Details,
		ReporterID:  report.ReporterID,
		Status:      string(report.Status),
		CreatedAt:   report.CreatedAt,
	}
}

type ReportListResponse struct {
	Items []ReportResponse `json:"items"`
}

func NewReportListResponse(reports []model.ReportedContent) ReportListResponse {
	items := make([]ReportResponse, 0, len(reports))
	for _, report := range reports {
		items = append(items, NewReportResponse(report))
	}
	return ReportListResponse{Items: items}
}
