package model

import (
	"time"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/enums"
)

// ActivityLogEntry is append-only. A nil ActorID means the system itself acted.
type ActivityLogEntry struct {
	ID        int64             `json:"id"`
	ActorID   *int64            `json:"actor_id,omitempty"`
	Action    enums.AuditAction `json:"action"`
	Details   string            `json:"details"`
	SourceIP  string            `json:"source_ip"`
	CreatedAt time.Time         `json:"created_at"`
}
