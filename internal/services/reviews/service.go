package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/enums"
	"github.com/Thenukee/JobMarket-sub000/internal/domain/model"
	pgrepo "github.com/Thenukee/JobMarket-sub000/internal/repo/postgres"
)

var (
	ErrInvalidInput     = errors.New("invalid review input")
	ErrEmployerNotFound = errors.New("employer not found")
	ErrSelfReview       = errors.New("cannot review own company")
)

type Store interface {
	Create(ctx context.Context, employerID, authorID int64, rating int, title, content string) (model.EmployerReview, error)
	ListForEmployer(ctx context.Context, employerID int64, status string) ([]model.EmployerReview, error)
	ListByStatus(ctx context.Context, status string, limit int) ([]model.EmployerReview, error)
}

type AccountStore interface {
	GetByID(ctx context.Context, id int64) (model.Account, error)
}

type AuditRecorder interface {
	Record(ctx context.Context, actorID *int64, action enums.AuditAction, details, sourceIP string) error
}

// Service accepts reviews into the moderation queue. Everything enters as
// pending; only approved reviews are publicly listed.
type Service struct {
	store    Store
	accounts AccountStore
	audit    AuditRecorder
}

func NewService(store Store, accounts AccountStore, audit AuditRecorder) *Service {
	return &Service{store: store, accounts: accounts, audit: audit}
}

type CreateInput struct {
	EmployerID int64
	Rating     int
	Title      string
	Content    string
	SourceIP   string
}

func (s *Service) Create(ctx context.Context, authorID int64, input CreateInput) (model.EmployerReview, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return model.EmployerReview{}, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}
	title := strings.TrimSpace(input.Title)
	if title == "" || len(title) > 200 {
		return model.EmployerReview{}, fmt.Errorf("%w: title", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Content) == "" {
		return model.EmployerReview{}, fmt.Errorf("%w: content", ErrInvalidInput)
	}
	if input.EmployerID == authorID {
		return model.EmployerReview{}, ErrSelfReview
	}

	employer, err := s.accounts.GetByID(ctx, input.EmployerID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrAccountNotFound) {
			return model.EmployerReview{}, ErrEmployerNotFound
		}
		return model.EmployerReview{}, fmt.Errorf("load employer: %w", err)
	}
	if employer.Role != enums.RoleEmployer {
		return model.EmployerReview{}, ErrEmployerNotFound
	}

	review, err := s.store.Create(ctx, input.EmployerID, authorID, input.Rating, title, input.Content)
	if err != nil {
		return model.EmployerReview{}, fmt.Errorf("create review: %w", err)
	}

	if s.audit != nil {
		_ = s.audit.Record(ctx, &authorID, enums.AuditActionCreate,
			fmt.Sprintf("Submitted review #%d for employer #%d", review.ID, input.EmployerID), input.SourceIP)
	}
	return review, nil
}

// ListApproved is the public view of an employer's reviews.
func (s *Service) ListApproved(ctx context.Context, employerID int64) ([]model.EmployerReview, error) {
	items, err := s.store.ListForEmployer(ctx, employerID, string(enums.ReviewStatusApproved))
	if err != nil {
		return nil, fmt.Errorf("list approved reviews: %w", err)
	}
	return items, nil
}

// ListPending feeds the moderation queue.
func (s *Service) ListPending(ctx context.Context, limit int) ([]model.EmployerReview, error) {
	items, err := s.store.ListByStatus(ctx, string(enums.ReviewStatusPending), limit)
	if err != nil {
		return nil, fmt.Errorf("list pending reviews: %w", err)
	}
	return items, nil
}
