package dto

import (
	"time"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/model"
)

type NotificationResponse struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Link      *string   `json:"link,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationListResponse struct {
	Items []NotificationResponse `json:"items"`
}

func NewNotificationListResponse(notifications []model.Notification) NotificationListResponse {
	items := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, NotificationResponse{
			ID:        n.ID,
			Type:      string(n.Type),
			Message:   n.Message,
			Link:      n.Link,
			CreatedAt: n.CreatedAt,
		})
	}
	return NotificationListResponse{Items: items}
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}

type MarkReadResponse struct {
	OK bool `json:"ok"`
}
