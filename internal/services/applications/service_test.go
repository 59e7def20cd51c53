package applications

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/enums"
	"github.com/Thenukee/JobMarket-sub000/internal/domain/model"
	pgrepo "github.com/Thenukee/JobMarket-sub000/internal/repo/postgres"
)

type fakeAppStore struct {
	nextID int64
	byID   map[int64]model.Application
}

func newFakeAppStore() *fakeAppStore {
	return &fakeAppStore{nextID: 1, byID: map[int64]model.Application{}}
}

func (f *fakeAppStore) Create(_ context.Context, jobID, seekerID int64, resumeKey *string) (model.Application, error) {
	for _, app := range f.byID {
		if app.JobID == jobID && app.SeekerID == seekerID {
			return model.Application{}, pgrepo.ErrAlreadyApplied
		}
	}
	app := model.Application{
		ID:        f.nextID,
		JobID:     jobID,
		SeekerID:  seekerID,
		Status:    enums.ApplicationStatusPending,
		ResumeKey: resumeKey,
	}
	f.nextID++
	f.byID[app.ID] = app
	return app, nil
}

func (f *fakeAppStore) GetByID(_ context.Context, id int64) (model.Application, error) {
	app, ok := f.byID[id]
	if !ok {
		return model.Application{}, pgrepo.ErrApplicationNotFound
	}
	return app, nil
}

func (f *fakeAppStore) UpdateStatus(_ context.Context, id int64, status string) error {
	app, ok := f.byID[id]
	if !ok {
		return pgrepo.ErrApplicationNotFound
	}
	app.Status = enums.ApplicationStatus(status)
	f.byID[id] = app
	return nil
}

func (f *fakeAppStore) SetResumeKey(_ context.Context, id int64, resumeKey string) error {
	app, ok := f.byID[id]
	if !ok {
		return pgrepo.ErrApplicationNotFound
	}
	app.ResumeKey = &resumeKey
	f.byID[id] = app
	return nil
}

func (f *fakeAppStore) ListByJob(_ context.Context, jobID int64) ([]model.Application, error) {
	var out []model.Application
	for _, app := range f.byID {
		if app.JobID == jobID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (f *fakeAppStore) ListBySeeker(_ context.Context, seekerID int64) ([]model.Application, error) {
	var out []model.Application
	for _, app := range f.byID {
		if app.SeekerID == seekerID {
			out = append(out, app)
		}
	}
	return out, nil
}

type fakeJobStore struct {
	byID map[int64]model.JobListing
}

func (f *fakeJobStore) GetByID(_ context.Context, id int64) (model.JobListing, error) {
	job, ok := f.byID[id]
	if !ok {
		return model.JobListing{}, pgrepo.ErrJobNotFound
	}
	return job, nil
}

type sent struct {
	recipientID int64
	ntype       enums.NotificationType
	message     string
}

type fakeOutbox struct {
	sent []sent
}

func (f *fakeOutbox) Enqueue(_ context.Context, recipientID int64, ntype enums.NotificationType, message string, _ *string) error {
	f.sent = append(f.sent, sent{recipientID: recipientID, ntype: ntype, message: message})
	return nil
}

type fixture struct {
	svc    *Service
	store  *fakeAppStore
	jobs   *fakeJobStore
	outbox *fakeOutbox
}

func newFixture() *fixture {
	f := &fixture{
		store: newFakeAppStore(),
		jobs: &fakeJobStore{byID: map[int64]model.JobListing{
			1: {ID: 1, EmployerID: 10, Title: "Backend Engineer", Status: enums.JobStatusActive},
			2: {ID: 2, EmployerID: 10, Title: "Old Role", Status: enums.JobStatusExpired},
		}},
		outbox: &fakeOutbox{},
	}
	f.svc = NewService(f.store, f.jobs, nil, f.outbox)
	return f
}

func TestApplyNotifiesEmployer(t *testing.T) {
	f := newFixture()

	app, err := f.svc.Apply(context.Background(), 30, 1, nil, "127.0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Status != enums.ApplicationStatusPending {
		t.Fatalf("expected pending application, got %q", app.Status)
	}
	if len(f.outbox.sent) != 1 {
		t.Fatalf("expected one notification, got %d", len(f.outbox.sent))
	}
	got := f.outbox.sent[0]
	if got.recipientID != 10 || got.ntype != enums.NotificationTypeApplicationNew {
		t.Fatalf("unexpected notification %+v", got)
	}
	if !strings.Contains(got.message, "Backend Engineer") {
		t.Fatalf("unexpected notification text %q", got.message)
	}
}

func TestApplyRejectsDuplicate(t *testing.T) {
	f := newFixture()

	if _, err := f.svc.Apply(context.Background(), 30, 1, nil, ""); err != nil {
		t.Fatalf("first apply failed: %v", err)
	}
	if _, err := f.svc.Apply(context.Background(), 30, 1, nil, ""); !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestApplyRejectsInactiveListing(t *testing.T) {
	f := newFixture()

	if _, err := f.svc.Apply(context.Background(), 30, 2, nil, ""); !errors.Is(err, ErrJobNotActive) {
		t.Fatalf("expected ErrJobNotActive, got %v", err)
	}
	if len(f.outbox.sent) != 0 {
		t.Fatal("expected no notification for rejected application")
	}
}

func TestSetStatusNotifiesSeeker(t *testing.T) {
	f := newFixture()

	app, err := f.svc.Apply(context.Background(), 30, 1, nil, "")
	if err != nil {
		t.Fatalf("seed application: %v", err)
	}
	f.outbox.sent = nil

	updated, err := f.svc.SetStatus(context.Background(), 10, app.ID, "shortlisted", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != enums.ApplicationStatusShortlisted {
		t.Fatalf("expected shortlisted, got %q", updated.Status)
	}
	if len(f.outbox.sent) != 1 {
		t.Fatalf("expected one seeker notification, got %d", len(f.outbox.sent))
	}
	got := f.outbox.sent[0]
	if got.recipientID != 30 || got.ntype != enums.NotificationTypeApplicationStatus {
		t.Fatalf("unexpected notification %+v", got)
	}
}

func TestSetStatusRejectsForeignEmployer(t *testing.T) {
	f := newFixture()

	app, err := f.svc.Apply(context.Background(), 30, 1, nil, "")
	if err != nil {
		t.Fatalf("seed application: %v", err)
	}

	if _, err := f.svc.SetStatus(context.Background(), 99, app.ID, "rejected", ""); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestWithdrawOnlyByApplicant(t *testing.T) {
	f := newFixture()

	app, err := f.svc.Apply(context.Background(), 30, 1, nil, "")
	if err != nil {
		t.Fatalf("seed application: %v", err)
	}

	if err := f.svc.Withdraw(context.Background(), 31, app.ID, ""); !errors.Is(err, ErrNotApplicant) {
		t.Fatalf("expected ErrNotApplicant, got %v", err)
	}
	if err := f.svc.Withdraw(context.Background(), 30, app.ID, ""); err != nil {
		t.Fatalf("applicant withdraw failed: %v", err)
	}

	got, err := f.store.GetByID(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("reload application: %v", err)
	}
	if got.Status != enums.ApplicationStatusWithdrawn {
		t.Fatalf("expected withdrawn, got %q", got.Status)
	}
}
