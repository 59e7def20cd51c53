package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/enums"
	"github.com/Thenukee/JobMarket-sub000/internal/domain/model"
)

type Repo interface {
	Insert(ctx context.Context, entry model.ActivityLogEntry) error
	ListRecent(ctx context.Context, limit int) ([]model.ActivityLogEntry, error)
	Clear(ctx context.Context) (int64, error)
}

// Service is the audit log. Record is best-effort by contract: callers that
// have already committed their primary write must not roll back because an
// audit insert failed.
type Service struct {
	repo Repo
	now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) Record(ctx context.Context, actorID *int64, action enums.AuditAction, details, sourceIP string) error {
	if s.repo == nil {
		return nil
	}
	if action == "" {
		return fmt.Errorf("audit action is required")
	}

	entry := model.ActivityLogEntry{
		ActorID:   actorID,
		Action:    action,
		Details:   details,
		SourceIP:  sourceIP,
		CreatedAt: s.now().UTC(),
	}
	return s.repo.Insert(ctx, entry)
}

func (s *Service) ListRecent(ctx context.Context, limit int) ([]model.ActivityLogEntry, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("activity repo is not configured")
	}
	return s.repo.ListRecent(ctx, limit)
}

func (s *Service) Clear(ctx context.Context) (int64, error) {
	if s.repo == nil {
		return 0, fmt.Errorf("activity repo is not configured")
	}
	return s.repo.Clear(ctx)
}
