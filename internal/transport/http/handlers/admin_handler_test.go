package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/enums"
	pgrepo "github.com/Thenukee/JobMarket-sub000/internal/repo/postgres"
	authsvc "github.com/Thenukee/JobMarket-sub000/internal/services/auth"
	modsvc "github.com/Thenukee/JobMarket-sub000/internal/services/moderation"
	"github.com/Thenukee/JobMarket-sub000/internal/transport/http/dto"
)

type jobStoreStub struct {
	updated  [][]int64
	status   string
	affected int64
}

func (s *jobStoreStub) UpdateStatusBulk(_ context.Context, ids []int64, status string) (int64, error) {
	s.updated = append(s.updated, ids)
	s.status = status
	return s.affected, nil
}

func (s *jobStoreStub) OwnersFor(_ context.Context, ids []int64) ([]pgrepo.JobOwner, error) {
	owners := make([]pgrepo.JobOwner, 0, len(ids))
	for _, id := range ids {
		owners = append(owners, pgrepo.JobOwner{ID: id, Title: "Listing", EmployerID: 10})
	}
	return owners, nil
}

func (s *jobStoreStub) DeleteCascade(_ context.Context, ids []int64) (int64, error) {
	return int64(len(ids)), nil
}

type auditStub struct {
	entries []string
}

func (s *auditStub) Record(_ context.Context, _ *int64, _ enums.AuditAction, details, _ string) error {
	s.entries = append(s.entries, details)
	return nil
}

type outboxStub struct {
	sent int
}

func (s *outboxStub) Enqueue(_ context.Context, _ int64, _ enums.NotificationType, _ string, _ *string) error {
	s.sent++
	return nil
}

func newModerationService(jobStore *jobStoreStub, audit *auditStub, outbox *outboxStub) *modsvc.Service {
	return modsvc.NewService(modsvc.Dependencies{
		Jobs:   jobStore,
		Audit:  audit,
		Outbox: outbox,
	})
}

func adminRequest(body string, role string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/admin/moderation/bulk", strings.NewReader(body))
	return req.WithContext(authsvc.WithIdentity(req.Context(), authsvc.Identity{
		AccountID: 1,
		SID:       "sid-1",
		Role:      role,
	}))
}

func TestAdminTransitionSingleJob(t *testing.T) {
	jobStore := &jobStoreStub{affected: 1}
	audit := &auditStub{}
	outbox := &outboxStub{}
	handler := NewAdminHandler(newModerationService(jobStore, audit, outbox), nil, nil, false)

	rr := httptest.NewRecorder()
	handler.Transition(rr, adminRequest(`{"entity_type":"job","id":7,"status":"rejected"}`, "admin"))

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d body %s", rr.Code, rr.Body.String())
	}
	if jobStore.status != "rejected" {
		t.Fatalf("expected status rejected written, got %q", jobStore.status)
	}
	if len(audit.entries) != 1 || audit.entries[0] != "Updated job listing #7 status to 'rejected'" {
		t.Fatalf("unexpected audit entries %v", audit.entries)
	}
	if outbox.sent != 1 {
		t.Fatalf("expected one employer notification, got %d", outbox.sent)
	}
}

func TestAdminTransitionRequiresPositiveID(t *testing.T) {
	handler := NewAdminHandler(newModerationService(&jobStoreStub{}, &auditStub{}, &outboxStub{}), nil, nil, false)

	rr := httptest.NewRecorder()
	handler.Transition(rr, adminRequest(`{"entity_type":"job","id":0,"status":"active"}`, "admin"))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestAdminBulkActionApprovesJobs(t *testing.T) {
	jobStore := &jobStoreStub{affected: 3}
	audit := &auditStub{}
	outbox := &outboxStub{}
	handler := NewAdminHandler(newModerationService(jobStore, audit, outbox), nil, nil, false)

	rr := httptest.NewRecorder()
	handler.BulkAction(rr, adminRequest(`{"entity_type":"job","ids":[1,2,3],"operation":"approve"}`, "admin"))

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d body %s", rr.Code, rr.Body.String())
	}

	var resp dto.BulkActionResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Affected != 3 || resp.Status != "active" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if jobStore.status != "active" {
		t.Fatalf("expected bulk write with status active, got %q", jobStore.status)
	}
	if len(audit.entries) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(audit.entries))
	}
	if outbox.sent != 3 {
		t.Fatalf("expected 3 notifications, got %d", outbox.sent)
	}
}

func TestAdminBulkActionRejectsNonAdmin(t *testing.T) {
	jobStore := &jobStoreStub{affected: 1}
	handler := NewAdminHandler(newModerationService(jobStore, &auditStub{}, &outboxStub{}), nil, nil, false)

	rr := httptest.NewRecorder()
	handler.BulkAction(rr, adminRequest(`{"entity_type":"job","ids":[1],"operation":"approve"}`, "employer"))

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
	if len(jobStore.updated) != 0 {
		t.Fatal("expected no writes for non-admin caller")
	}
}

func TestAdminBulkActionRejectsUnknownOperation(t *testing.T) {
	handler := NewAdminHandler(newModerationService(&jobStoreStub{}, &auditStub{}, &outboxStub{}), nil, nil, false)

	rr := httptest.NewRecorder()
	handler.BulkAction(rr, adminRequest(`{"entity_type":"job","ids":[1],"operation":"resolve"}`, "admin"))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestAdminBulkActionExplicitStatus(t *testing.T) {
	jobStore := &jobStoreStub{affected: 2}
	handler := NewAdminHandler(newModerationService(jobStore, &auditStub{}, &outboxStub{}), nil, nil, false)

	rr := httptest.NewRecorder()
	handler.BulkAction(rr, adminRequest(`{"entity_type":"job","ids":[4,5],"status":"inactive"}`, "admin"))

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d body %s", rr.Code, rr.Body.String())
	}
	if jobStore.status != "inactive" {
		t.Fatalf("expected status inactive written, got %q", jobStore.status)
	}
}

func TestAdminBulkActionDelete(t *testing.T) {
	jobStore := &jobStoreStub{}
	audit := &auditStub{}
	outbox := &outboxStub{}
	handler := NewAdminHandler(newModerationService(jobStore, audit, outbox), nil, nil, false)

	rr := httptest.NewRecorder()
	handler.BulkAction(rr, adminRequest(`{"entity_type":"job","ids":[12],"operation":"delete"}`, "admin"))

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d body %s", rr.Code, rr.Body.String())
	}
	if outbox.sent != 0 {
		t.Fatalf("expected no notifications on delete, got %d", outbox.sent)
	}
	if len(audit.entries) != 1 || audit.entries[0] != "Deleted job listing #12" {
		t.Fatalf("unexpected audit entries %v", audit.entries)
	}
}

func TestAdminBulkActionMissingTargets(t *testing.T) {
	jobStore := &jobStoreStub{affected: 0}
	handler := NewAdminHandler(newModerationService(jobStore, &auditStub{}, &outboxStub{}), nil, nil, false)

	rr := httptest.NewRecorder()
	handler.BulkAction(rr, adminRequest(`{"entity_type":"job","ids":[404],"operation":"approve"}`, "admin"))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unmatched targets, got %d", rr.Code)
	}
}
