package model

import (
	"time"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/enums"
)

// ReportedContent references its target by (ContentType, ContentID), not by a
// hard foreign key: the reported row may be gone by the time an admin looks.
type ReportedContent struct {
	ID          int64                   `json:"id"`
	ContentType enums.ReportContentType `json:"content_type"`
	ContentID   int64                   `json:"content_id"`
	Reason      string                  `json:"reason"`
	Details     string                  `json:"details"`
	ReporterID  *int64                  `json:"reporter_id,omitempty"`
	Status      enums.ReportStatus      `json:"status"`
	ResolvedBy  *int64                  `json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time              `json:"resolved_at,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
}
