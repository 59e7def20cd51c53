package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/enums"
	"github.com/Thenukee/JobMarket-sub000/internal/domain/model"
)

var ErrInvalidInput = errors.New("invalid report input")

type Store interface {
	Create(ctx context.Context, contentType string, contentID int64, reason, details string, reporterID *int64) (model.ReportedContent, error)
	ListByStatus(ctx context.Context, status string, limit int) ([]model.ReportedContent, error)
}

// Service files reports against content. reporterID nil means anonymous.
// Resolution is a moderation concern and does not live here.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

type CreateInput struct {
	ContentType string
	ContentID   int64
	Reason      string
	Details     string
	ReporterID  *int64
}

func (s *Service) Create(ctx context.Context, input CreateInput) (model.ReportedContent, error) {
	if !enums.ValidReportContentType(input.ContentType) {
		return model.ReportedContent{}, fmt.Errorf("%w: content type %q", ErrInvalidInput, input.ContentType)
	}
	if input.ContentID <= 0 {
		return model.ReportedContent{}, fmt.Errorf("%w: content id", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Reason) == "" {
		return model.ReportedContent{}, fmt.Errorf("%w: reason", ErrInvalidInput)
	}

	report, err := s.store.Create(ctx, input.ContentType, input.ContentID, input.Reason, input.Details, input.ReporterID)
	if err != nil {
		return model.ReportedContent{}, fmt.Errorf("create report: %w", err)
	}
	return report, nil
}

func (s *Service) ListPending(ctx context.Context, limit int) ([]model.ReportedContent, error) {
	items, err := s.store.ListByStatus(ctx, string(enums.ReportStatusPending), limit)
	if err != nil {
		return nil, fmt.Errorf("list pending reports: %w", err)
	}
	return items, nil
}
