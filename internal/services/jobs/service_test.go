package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/enums"
	"github.com/Thenukee/JobMarket-sub000/internal/domain/model"
	pgrepo "github.com/Thenukee/JobMarket-sub000/internal/repo/postgres"
)

type fakeJobStore struct {
	nextID  int64
	byID    map[int64]model.JobListing
	deleted [][]int64
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{nextID: 1, byID: map[int64]model.JobListing{}}
}

func (f *fakeJobStore) Create(_ context.Context, job model.JobListing) (model.JobListing, error) {
	job.ID = f.nextID
	f.nextID++
	f.byID[job.ID] = job
	return job, nil
}

func (f *fakeJobStore) GetByID(_ context.Context, id int64) (model.JobListing, error) {
	job, ok := f.byID[id]
	if !ok {
		return model.JobListing{}, pgrepo.ErrJobNotFound
	}
	return job, nil
}

func (f *fakeJobStore) Update(_ context.Context, job model.JobListing) error {
	if _, ok := f.byID[job.ID]; !ok {
		return pgrepo.ErrJobNotFound
	}
	f.byID[job.ID] = job
	return nil
}

func (f *fakeJobStore) DeleteCascade(_ context.Context, ids []int64) (int64, error) {
	f.deleted = append(f.deleted, ids)
	var n int64
	for _, id := range ids {
		if _, ok := f.byID[id]; ok {
			delete(f.byID, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeJobStore) ListByEmployer(_ context.Context, employerID int64) ([]model.JobListing, error) {
	var out []model.JobListing
	for _, job := range f.byID {
		if job.EmployerID == employerID {
			out = append(out, job)
		}
	}
	return out, nil
}

func (f *fakeJobStore) Search(_ context.Context, _ pgrepo.JobFilter) ([]model.JobListing, error) {
	var out []model.JobListing
	for _, job := range f.byID {
		if job.Status == enums.JobStatusActive {
			out = append(out, job)
		}
	}
	return out, nil
}

type recordedAudit struct {
	action  enums.AuditAction
	details string
}

type fakeAudit struct {
	entries []recordedAudit
}

func (f *fakeAudit) Record(_ context.Context, _ *int64, action enums.AuditAction, details, _ string) error {
	f.entries = append(f.entries, recordedAudit{action: action, details: details})
	return nil
}

func int64Ptr(v int64) *int64 { return &v }

func validCreateInput() CreateInput {
	return CreateInput{
		Title:       "Backend Engineer",
		Location:    "Berlin",
		Type:        "full_time",
		Category:    "engineering",
		Description: "Build the platform.",
	}
}

func TestCreateStartsPendingWithExpiry(t *testing.T) {
	store := newFakeJobStore()
	audit := &fakeAudit{}
	svc := NewService(store, audit, 30*24*time.Hour)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	job, err := svc.Create(context.Background(), 10, validCreateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Status != enums.JobStatusPending {
		t.Fatalf("expected pending status, got %q", job.Status)
	}
	if job.ExpiresAt == nil || !job.ExpiresAt.Equal(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected expiry %v", job.ExpiresAt)
	}
	if len(audit.entries) != 1 || audit.entries[0].action != enums.AuditActionCreate {
		t.Fatalf("expected one create audit entry, got %+v", audit.entries)
	}
}

func TestCreateRejectsInvertedSalaryRange(t *testing.T) {
	svc := NewService(newFakeJobStore(), nil, 0)

	input := validCreateInput()
	input.SalaryMin = int64Ptr(90000)
	input.SalaryMax = int64Ptr(60000)

	_, err := svc.Create(context.Background(), 10, input)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateRequiresOwnership(t *testing.T) {
	store := newFakeJobStore()
	svc := NewService(store, nil, 0)

	job, err := svc.Create(context.Background(), 10, validCreateInput())
	if err != nil {
		t.Fatalf("seed listing: %v", err)
	}

	input := UpdateInput{Title: "Edited", Description: "still a job"}
	if _, err := svc.Update(context.Background(), 11, job.ID, input); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	updated, err := svc.Update(context.Background(), 10, job.ID, input)
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Title != "Edited" {
		t.Fatalf("expected updated title, got %q", updated.Title)
	}
}

func TestDeleteCascadesAndAudits(t *testing.T) {
	store := newFakeJobStore()
	audit := &fakeAudit{}
	svc := NewService(store, audit, 0)

	job, err := svc.Create(context.Background(), 10, validCreateInput())
	if err != nil {
		t.Fatalf("seed listing: %v", err)
	}
	audit.entries = nil

	if err := svc.Delete(context.Background(), 10, job.ID, "127.0.0.1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(store.deleted) != 1 {
		t.Fatalf("expected one cascade call, got %d", len(store.deleted))
	}
	if len(audit.entries) != 1 || audit.entries[0].action != enums.AuditActionDelete {
		t.Fatalf("expected one delete audit entry, got %+v", audit.entries)
	}
	if _, err := svc.Get(context.Background(), job.ID); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected listing gone, got %v", err)
	}
}
