package dto

import (
	"time"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/model"
)

type ActivityEntryResponse struct {
	ID        int64     `json:"id"`
	ActorID   *int64    `json:"actor_id,omitempty"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	SourceIP  string    `json:"source_ip"`
	CreatedAt time.Time `json:"created_at"`
}

type ActivityListResponse struct {
	Items []ActivityEntryResponse `json:"items"`
}

func NewActivityListResponse(entries []model.ActivityLogEntry) ActivityListResponse {
	items := make([]ActivityEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, ActivityEntryResponse{
			ID:        entry.ID,
			ActorID:   entry.ActorID,
			Action:    string(entry.Action),
			Details:   entry.Details,
			SourceIP:  entry.SourceIP,
			CreatedAt: entry.CreatedAt,
		})
	}
	return ActivityListResponse{Items: items}
}

type ClearActivityResponse struct {
	Cleared int64 `json:"cleared"`
}
