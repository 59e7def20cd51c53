package applications

import (
	"context"
	"errors"
	"fmt"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/enums"
	"github.com/Thenukee/JobMarket-sub000/internal/domain/model"
	pgrepo "github.com/Thenukee/JobMarket-sub000/internal/repo/postgres"
)

var (
	ErrInvalidInput        = errors.New("invalid application input")
	ErrJobNotFound         = errors.New("job listing not found")
	ErrJobNotActive        = errors.New("job listing is not accepting applications")
	ErrAlreadyApplied      = errors.New("already applied to this listing")
	ErrApplicationNotFound = errors.New("application not found")
	ErrNotOwner            = errors.New("application belongs to another listing owner")
	ErrNotApplicant        = errors.New("application belongs to another seeker")
	ErrResumeNotAttached   = errors.New("application has no resume")
)

type Store interface {
	Create(ctx context.Context, jobID, seekerID int64, resumeKey *string) (model.Application, error)
	GetByID(ctx context.Context, id int64) (model.Application, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	SetResumeKey(ctx context.Context, id int64, resumeKey string) error
	ListByJob(ctx context.Context, jobID int64) ([]model.Application, error)
	ListBySeeker(ctx context.Context, seekerID int64) ([]model.Application, error)
}

type JobStore interface {
	GetByID(ctx context.Context, id int64) (model.JobListing, error)
}

type AuditRecorder interface {
	Record(ctx context.Context, actorID *int64, action enums.AuditAction, details, sourceIP string) error
}

type Outbox interface {
	Enqueue(ctx context.Context, recipientID int64, ntype enums.NotificationType, message string, link *string) error
}

type Service struct {
	store  Store
	jobs   JobStore
	audit  AuditRecorder
	outbox Outbox
}

func NewService(store Store, jobs JobStore, audit AuditRecorder, outbox Outbox) *Service {
	return &Service{store: store, jobs: jobs, audit: audit, outbox: outbox}
}

// Apply files an application against an active listing and tells the
// employer. A seeker gets one application per listing.
func (s *Service) Apply(ctx context.Context, seekerID, jobID int64, resumeKey *string, sourceIP string) (model.Application, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrJobNotFound) {
			return model.Application{}, ErrJobNotFound
		}
		return model.Application{}, fmt.Errorf("load job listing: %w", err)
	}
	if job.Status != enums.JobStatusActive {
		return model.Application{}, ErrJobNotActive
	}

	app, err := s.store.Create(ctx, jobID, seekerID, resumeKey)
	if err != nil {
		if errors.Is(err, pgrepo.ErrAlreadyApplied) {
			return model.Application{}, ErrAlreadyApplied
		}
		return model.Application{}, fmt.Errorf("create application: %w", err)
	}

	s.recordAudit(ctx, seekerID, enums.AuditActionCreate,
		fmt.Sprintf("Applied to job listing #%d", jobID), sourceIP)
	s.enqueue(ctx, job.EmployerID, enums.NotificationTypeApplicationNew,
		fmt.Sprintf("New application for %q", job.Title))
	return app, nil
}

func (s *Service) AttachResume(ctx context.Context, seekerID, applicationID int64, resumeKey string) error {
	app, err := s.get(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.SeekerID != seekerID {
		return ErrNotApplicant
	}
	if resumeKey == "" {
		return fmt.Errorf("%w: resume key", ErrInvalidInput)
	}
	if err := s.store.SetResumeKey(ctx, applicationID, resumeKey); err != nil {
		return fmt.Errorf("attach resume: %w", err)
	}
	return nil
}

func (s *Service) Withdraw(ctx context.Context, seekerID, applicationID int64, sourceIP string) error {
	app, err := s.get(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.SeekerID != seekerID {
		return ErrNotApplicant
	}

	if err := s.store.UpdateStatus(ctx, applicationID, string(enums.ApplicationStatusWithdrawn)); err != nil {
		return fmt.Errorf("withdraw application: %w", err)
	}
	s.recordAudit(ctx, seekerID, enums.AuditActionApplicationStatus,
		fmt.Sprintf("Withdrew application #%d", applicationID), sourceIP)
	return nil
}

// SetStatus lets the listing's employer move an application through
// review. The seeker hears about every change.
func (s *Service) SetStatus(ctx context.Context, employerID, applicationID int64, status, sourceIP string) (model.Application, error) {
	if !enums.ValidApplicationStatus(status) {
		return model.Application{}, fmt.Errorf("%w: status %q", ErrInvalidInput, status)
	}

	app, err := s.get(ctx, applicationID)
	if err != nil {
		return model.Application{}, err
	}
	job, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return model.Application{}, fmt.Errorf("load job listing: %w", err)
	}
	if job.EmployerID != employerID {
		return model.Application{}, ErrNotOwner
	}

	if err := s.store.UpdateStatus(ctx, applicationID, status); err != nil {
		return model.Application{}, fmt.Errorf("update application status: %w", err)
	}

	s.recordAudit(ctx, employerID, enums.AuditActionApplicationStatus,
		fmt.Sprintf("Updated application #%d status to '%s'", applicationID, status), sourceIP)
	s.enqueue(ctx, app.SeekerID, enums.NotificationTypeApplicationStatus,
		fmt.Sprintf("Your application for %q is now: %s", job.Title, status))

	return s.get(ctx, applicationID)
}

func (s *Service) ListForJob(ctx context.Context, employerID, jobID int64) ([]model.Application, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("load job listing: %w", err)
	}
	if job.EmployerID != employerID {
		return nil, ErrNotOwner
	}

	items, err := s.store.ListByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return items, nil
}

// ResumeKeyFor returns the stored resume key once the caller is confirmed as
// the listing's employer.
func (s *Service) ResumeKeyFor(ctx context.Context, employerID, applicationID int64) (string, error) {
	app, err := s.get(ctx, applicationID)
	if err != nil {
		return "", err
	}
	job, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return "", fmt.Errorf("load job listing: %w", err)
	}
	if job.EmployerID != employerID {
		return "", ErrNotOwner
	}
	if app.ResumeKey == nil || *app.ResumeKey == "" {
		return "", ErrResumeNotAttached
	}
	return *app.ResumeKey, nil
}

func (s *Service) ListOwn(ctx context.Context, seekerID int64) ([]model.Application, error) {
	items, err := s.store.ListBySeeker(ctx, seekerID)
	if err != nil {
		return nil, fmt.Errorf("list own applications: %w", err)
	}
	return items, nil
}

func (s *Service) get(ctx context.Context, id int64) (model.Application, error) {
	app, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgrepo.ErrApplicationNotFound) {
			return model.Application{}, ErrApplicationNotFound
		}
		return model.Application{}, fmt.Errorf("get application: %w", err)
	}
	return app, nil
}

func (s *Service) recordAudit(ctx context.Context, actorID int64, action enums.AuditAction, details, sourceIP string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, &actorID, action, details, sourceIP)
}

func (s *Service) enqueue(ctx context.Context, recipientID int64, ntype enums.NotificationType, message string) {
	if s.outbox == nil {
		return
	}
	_ = s.outbox.Enqueue(ctx, recipientID, ntype, message, nil)
}
