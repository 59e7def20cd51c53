package model

import (
	"time"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/enums"
)

type Notification struct {
	ID          int64                  `json:"id"`
	RecipientID int64                  `json:"recipient_id"`
	Type        enums.NotificationType `json:"type"`
	Message     string                 `json:"message"`
	Link        *string                `json:"link,omitempty"`
	Read        bool                   `json:"read"`
	CreatedAt   time.Time              `json:"created_at"`
}
