package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/enums"
	"github.com/Thenukee/JobMarket-sub000/internal/domain/model"
	pgrepo "github.com/Thenukee/JobMarket-sub000/internal/repo/postgres"
)

var (
	ErrInvalidInput = errors.New("invalid job listing input")
	ErrJobNotFound  = errors.New("job listing not found")
	ErrNotOwner     = errors.New("job listing belongs to another employer")
)

type Store interface {
	Create(ctx context.Context, job model.JobListing) (model.JobListing, error)
	GetByID(ctx context.Context, id int64) (model.JobListing, error)
	Update(ctx context.Context, job model.JobListing) error
	DeleteCascade(ctx context.Context, ids []int64) (int64, error)
	ListByEmployer(ctx context.Context, employerID int64) ([]model.JobListing, error)
	Search(ctx context.Context, filter pgrepo.JobFilter) ([]model.JobListing, error)
}

type AuditRecorder interface {
	Record(ctx context.Context, actorID *int64, action enums.AuditAction, details, sourceIP string) error
}

// Service owns the employer-facing lifecycle of listings. New listings start
// pending and become visible only after moderation flips them to active.
type Service struct {
	store           Store
	audit           AuditRecorder
	listingLifetime time.Duration
	now             func() time.Time
}

func NewService(store Store, audit AuditRecorder, listingLifetime time.Duration) *Service {
	if listingLifetime <= 0 {
		listingLifetime = 30 * 24 * time.Hour
	}
	return &Service{
		store:           store,
		audit:           audit,
		listingLifetime: listingLifetime,
		now:             time.Now,
	}
}

type CreateInput struct {
	Title        string
	Location     string
	Type         string
	Category     string
	Description  string
	Requirements string
	SalaryMin    *int64
	SalaryMax    *int64
	Remote       bool
	SourceIP     string
}

func (s *Service) Create(ctx context.Context, employerID int64, input CreateInput) (model.JobListing, error) {
	if err := validateListing(input.Title, input.Description, input.SalaryMin, input.SalaryMax); err != nil {
		return model.JobListing{}, err
	}

	expiresAt := s.now().Add(s.listingLifetime)
	job, err := s.store.Create(ctx, model.JobListing{
		EmployerID:   employerID,
		Title:        strings.TrimSpace(input.Title),
		Location:     strings.TrimSpace(input.Location),
		Type:         input.Type,
		Category:     input.Category,
		Description:  input.Description,
		Requirements: input.Requirements,
		SalaryMin:    input.SalaryMin,
		SalaryMax:    input.SalaryMax,
		Remote:       input.Remote,
		Status:       enums.JobStatusPending,
		ExpiresAt:    &expiresAt,
	})
	if err != nil {
		return model.JobListing{}, fmt.Errorf("create job listing: %w", err)
	}

	s.recordAudit(ctx, employerID, enums.AuditActionCreate,
		fmt.Sprintf("Created job listing #%d '%s'", job.ID, job.Title), input.SourceIP)
	return job, nil
}

type UpdateInput struct {
	Title        string
	Location     string
	Type         string
	Category     string
	Description  string
	Requirements string
	SalaryMin    *int64
	SalaryMax    *int64
	Remote       bool
	SourceIP     string
}

func (s *Service) Update(ctx context.Context, employerID, jobID int64, input UpdateInput) (model.JobListing, error) {
	if err := validateListing(input.Title, input.Description, input.SalaryMin, input.SalaryMax); err != nil {
		return model.JobListing{}, err
	}

	job, err := s.ownedListing(ctx, employerID, jobID)
	if err != nil {
		return model.JobListing{}, err
	}

	job.Title = strings.TrimSpace(input.Title)
	job.Location = strings.TrimSpace(input.Location)
	job.Type = input.Type
	job.Category = input.Category
	job.Description = input.Description
	job.Requirements = input.Requirements
	job.SalaryMin = input.SalaryMin
	job.SalaryMax = input.SalaryMax
	job.Remote = input.Remote

	if err := s.store.Update(ctx, job); err != nil {
		return model.JobListing{}, fmt.Errorf("update job listing: %w", err)
	}

	s.recordAudit(ctx, employerID, enums.AuditActionUpdate,
		fmt.Sprintf("Updated job listing #%d", job.ID), input.SourceIP)
	return s.Get(ctx, jobID)
}

func (s *Service) Delete(ctx context.Context, employerID, jobID int64, sourceIP string) error {
	if _, err := s.ownedListing(ctx, employerID, jobID); err != nil {
		return err
	}

	affected, err := s.store.DeleteCascade(ctx, []int64{jobID})
	if err != nil {
		return fmt.Errorf("delete job listing: %w", err)
	}
	if affected == 0 {
		return ErrJobNotFound
	}

	s.recordAudit(ctx, employerID, enums.AuditActionDelete,
		fmt.Sprintf("Deleted job listing #%d", jobID), sourceIP)
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (model.JobListing, error) {
	job, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgrepo.ErrJobNotFound) {
			return model.JobListing{}, ErrJobNotFound
		}
		return model.JobListing{}, fmt.Errorf("get job listing: %w", err)
	}
	return job, nil
}

func (s *Service) ListOwn(ctx context.Context, employerID int64) ([]model.JobListing, error) {
	items, err := s.store.ListByEmployer(ctx, employerID)
	if err != nil {
		return nil, fmt.Errorf("list employer listings: %w", err)
	}
	return items, nil
}

type SearchInput struct {
	Category string
	Type     string
	Location string
	Remote   *bool
	Limit    int
	Offset   int
}

func (s *Service) Search(ctx context.Context, input SearchInput) ([]model.JobListing, error) {
	items, err := s.store.Search(ctx, pgrepo.JobFilter{
		Category: input.Category,
		Type:     input.Type,
		Location: input.Location,
		Remote:   input.Remote,
		Limit:    input.Limit,
		Offset:   input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("search job listings: %w", err)
	}
	return items, nil
}

func (s *Service) ownedListing(ctx context.Context, employerID, jobID int64) (model.JobListing, error) {
	job, err := s.Get(ctx, jobID)
	if err != nil {
		return model.JobListing{}, err
	}
	if job.EmployerID != employerID {
		return model.JobListing{}, ErrNotOwner
	}
	return job, nil
}

func (s *Service) recordAudit(ctx context.Context, actorID int64, action enums.AuditAction, details, sourceIP string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, &actorID, action, details, sourceIP)
}

func validateListing(title, description string, salaryMin, salaryMax *int64) error {
	if strings.TrimSpace(title) == "" || len(title) > 200 {
		return fmt.Errorf("%w: title", ErrInvalidInput)
	}
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("%w: description", ErrInvalidInput)
	}
	if salaryMin != nil && *salaryMin < 0 {
		return fmt.Errorf("%w: salary_min is negative", ErrInvalidInput)
	}
	if salaryMax != nil && *salaryMax < 0 {
		return fmt.Errorf("%w: salary_max is negative", ErrInvalidInput)
	}
	if salaryMin != nil && salaryMax != nil && *salaryMin > *salaryMax {
		return fmt.Errorf("%w: salary_min exceeds salary_max", ErrInvalidInput)
	}
	return nil
}
