package notifications

import (
	"context"
	"fmt"
	"strings"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/enums"
	"github.com/Thenukee/JobMarket-sub000/internal/domain/model"
)

type Repo interface {
	Insert(ctx context.Context, recipientID int64, ntype, message string, link *string) error
	ListUnread(ctx context.Context, recipientID int64, limit int) ([]model.Notification, error)
	MarkRead(ctx context.Context, id, recipientID int64) (bool, error)
	CountUnread(ctx context.Context, recipientID int64) (int, error)
}

// Service is the notification outbox consumed by the bell/dropdown UI.
type Service struct {
	repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Enqueue(ctx context.Context, recipientID int64, ntype enums.NotificationType, message string, link *string) error {
	if s.repo == nil {
		return fmt.Errorf("notification repo is not configured")
	}
	if recipientID <= 0 || strings.TrimSpace(message) == "" {
		return fmt.Errorf("invalid notification payload")
	}
	return s.repo.Insert(ctx, recipientID, string(ntype), message, link)
}

func (s *Service) ListUnread(ctx context.Context, recipientID int64, limit int) ([]model.Notification, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("notification repo is not configured")
	}
	return s.repo.ListUnread(ctx, recipientID, limit)
}

// MarkRead reports whether a row was flipped; false means the notification
// does not exist or belongs to someone else.
func (s *Service) MarkRead(ctx context.Context, id, recipientID int64) (bool, error) {
	if s.repo == nil {
		return false, fmt.Errorf("notification repo is not configured")
	}
	return s.repo.MarkRead(ctx, id, recipientID)
}

func (s *Service) CountUnread(ctx context.Context, recipientID int64) (int, error) {
	if s.repo == nil {
		return 0, fmt.Errorf("notification repo is not configured")
	}
	return s.repo.CountUnread(ctx, recipientID)
}
