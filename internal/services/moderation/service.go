package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/enums"
	pgrepo "github.com/Thenukee/JobMarket-sub000/internal/repo/postgres"
	authsvc "github.com/Thenukee/JobMarket-sub000/internal/services/auth"
)

var (
	ErrUnauthorized   = errors.New("acting account is not an admin")
	ErrInvalidKind    = errors.New("unknown entity kind")
	ErrInvalidStatus  = errors.New("status is not valid for this entity kind")
	ErrNoValidTargets = errors.New("no valid targets after filtering")
	ErrInvalidTarget  = errors.New("target ids do not resolve to existing rows")
)

type AccountStatusStore interface {
	UpdateStatusBulk(ctx context.Context, ids []int64, status string) (int64, error)
	DeleteCascade(ctx context.Context, ids []int64) (int64, error)
}

type JobStatusStore interface {
	UpdateStatusBulk(ctx context.Context, ids []int64, status string) (int64, error)
	OwnersFor(ctx context.Context, ids []int64) ([]pgrepo.JobOwner, error)
	DeleteCascade(ctx context.Context, ids []int64) (int64, error)
}

type ReviewStatusStore interface {
	UpdateStatusBulk(ctx context.Context, ids []int64, status string, moderatorID int64, notes *string) (int64, error)
	PartiesFor(ctx context.Context, ids []int64) ([]pgrepo.ReviewParties, error)
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
}

type ReportStatusStore interface {
	UpdateStatusBulk(ctx context.Context, ids []int64, status string, resolverID int64) (int64, error)
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
}

type AuditRecorder interface {
	Record(ctx context.Context, actorID *int64, action enums.AuditAction, details, sourceIP string) error
}

type Outbox interface {
	Enqueue(ctx context.Context, recipientID int64, ntype enums.NotificationType, message string, link *string) error
}

type ErrorSink interface {
	Insert(ctx context.Context, source, message, detail string) error
}

// Service applies status transitions to accounts, job listings, reviews and
// reports as one unit of validate, persist, audit, notify. It holds no state
// between calls; the bulk UPDATE is the only write the outcome depends on.
//
// Ordering inside one call is fixed: status write, then audit, then
// notifications. Audit and notifications are best-effort; once the status
// write commits, their failures are logged and swallowed.
type Service struct {
	accounts AccountStatusStore
	jobs     JobStatusStore
	reviews  ReviewStatusStore
	reports  ReportStatusStore
	audit    AuditRecorder
	outbox   Outbox
	errlog   ErrorSink
	logger   *zap.Logger
}

type Dependencies struct {
	Accounts AccountStatusStore
	Jobs     JobStatusStore
	Reviews  ReviewStatusStore
	Reports  ReportStatusStore
	Audit    AuditRecorder
	Outbox   Outbox
	ErrorLog ErrorSink
	Logger   *zap.Logger
}

func NewService(deps Dependencies) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		accounts: deps.Accounts,
		jobs:     deps.Jobs,
		reviews:  deps.Reviews,
		reports:  deps.Reports,
		audit:    deps.Audit,
		outbox:   deps.Outbox,
		errlog:   deps.ErrorLog,
		logger:   logger,
	}
}

type TransitionRequest struct {
	Kind      enums.EntityKind
	IDs       []int64
	NewStatus string
	Notes     *string
	SourceIP  string
}

type DeleteRequest struct {
	Kind     enums.EntityKind
	IDs      []int64
	SourceIP string
}

type TransitionResult struct {
	Kind     enums.EntityKind
	Status   string
	Affected int64
}

// Transition validates and applies one status change across the id set.
// Validation failures happen before any write; on success exactly one audit
// entry is recorded and the kind's natural recipients are notified. There is
// no forbidden-transition matrix: any enum member may follow any other, and
// re-applying the current status still audits and notifies.
func (s *Service) Transition(ctx context.Context, identity authsvc.Identity, req TransitionRequest) (TransitionResult, error) {
	if identity.Role != string(enums.RoleAdmin) {
		return TransitionResult{}, ErrUnauthorized
	}
	if !enums.ValidEntityKind(string(req.Kind)) {
		return TransitionResult{}, ErrInvalidKind
	}
	if !enums.ValidStatusFor(req.Kind, req.NewStatus) {
		return TransitionResult{}, ErrInvalidStatus
	}

	ids := req.IDs
	if req.Kind == enums.EntityKindAccount {
		ids = excludeID(ids, identity.AccountID)
	}
	if len(ids) == 0 {
		return TransitionResult{}, ErrNoValidTargets
	}

	affected, err := s.applyStatus(ctx, identity.AccountID, req.Kind, ids, req.NewStatus, req.Notes)
	if err != nil {
		s.recordError(ctx, "moderation.transition", err)
		return TransitionResult{}, fmt.Errorf("apply %s status: %w", req.Kind, err)
	}
	if affected == 0 {
		return TransitionResult{}, ErrInvalidTarget
	}

	action := enums.AuditActionBulkStatusChange
	if len(ids) == 1 {
		action = enums.AuditActionStatusChange
	}
	s.recordAudit(ctx, identity.AccountID, action, req.SourceIP, transitionAuditDetails(req.Kind, ids, req.NewStatus))
	s.notifyTransition(ctx, req.Kind, ids, req.NewStatus)

	return TransitionResult{Kind: req.Kind, Status: req.NewStatus, Affected: affected}, nil
}

// Delete removes entities outright, cascading dependent rows. One audit
// entry, no notifications.
func (s *Service) Delete(ctx context.Context, identity authsvc.Identity, req DeleteRequest) (TransitionResult, error) {
	if identity.Role != string(enums.RoleAdmin) {
		return TransitionResult{}, ErrUnauthorized
	}
	if !enums.ValidEntityKind(string(req.Kind)) {
		return TransitionResult{}, ErrInvalidKind
	}

	ids := req.IDs
	if req.Kind == enums.EntityKindAccount {
		ids = excludeID(ids, identity.AccountID)
	}
	if len(ids) == 0 {
		return TransitionResult{}, ErrNoValidTargets
	}

	var (
		affected int64
		err      error
	)
	switch req.Kind {
	case enums.EntityKindAccount:
		affected, err = s.accounts.DeleteCascade(ctx, ids)
	case enums.EntityKindJob:
		affected, err = s.jobs.DeleteCascade(ctx, ids)
	case enums.EntityKindReview:
		affected, err = s.reviews.DeleteByIDs(ctx, ids)
	case enums.EntityKindReport:
		affected, err = s.reports.DeleteByIDs(ctx, ids)
	}
	if err != nil {
		s.recordError(ctx, "moderation.delete", err)
		return TransitionResult{}, fmt.Errorf("delete %s entities: %w", req.Kind, err)
	}
	if affected == 0 {
		return TransitionResult{}, ErrInvalidTarget
	}

	s.recordAudit(ctx, identity.AccountID, enums.AuditActionDelete, req.SourceIP, deleteAuditDetails(req.Kind, ids))

	return TransitionResult{Kind: req.Kind, Affected: affected}, nil
}

// OperationStatus maps a bulk-operation verb to the status it means for the
// given kind. Delete is not a status and is handled by Delete.
func OperationStatus(kind enums.EntityKind, operation string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(operation)) {
	case "approve":
		switch kind {
		case enums.EntityKindAccount, enums.EntityKindJob:
			return "active", true
		case enums.EntityKindReview:
			return "approved", true
		}
	case "reject":
		switch kind {
		case enums.EntityKindJob:
			return "rejected", true
		case enums.EntityKindReview:
			return "rejected", true
		}
	case "activate":
		switch kind {
		case enums.EntityKindAccount, enums.EntityKindJob:
			return "active", true
		}
	case "deactivate":
		switch kind {
		case enums.EntityKindAccount, enums.EntityKindJob:
			return "inactive", true
		}
	case "suspend":
		if kind == enums.EntityKindAccount {
			return "suspended", true
		}
	case "resolve":
		if kind == enums.EntityKindReport {
			return "resolved", true
		}
	}
	return "", false
}

func (s *Service) applyStatus(ctx context.Context, actorID int64, kind enums.EntityKind, ids []int64, status string, notes *string) (int64, error) {
	switch kind {
	case enums.EntityKindAccount:
		return s.accounts.UpdateStatusBulk(ctx, ids, status)
	case enums.EntityKindJob:
		return s.jobs.UpdateStatusBulk(ctx, ids, status)
	case enums.EntityKindReview:
		return s.reviews.UpdateStatusBulk(ctx, ids, status, actorID, notes)
	case enums.EntityKindReport:
		return s.reports.UpdateStatusBulk(ctx, ids, status, actorID)
	}
	return 0, ErrInvalidKind
}

func (s *Service) notifyTransition(ctx context.Context, kind enums.EntityKind, ids []int64, status string) {
	switch kind {
	case enums.EntityKindAccount:
		for _, id := range ids {
			message := fmt.Sprintf("Your account status has been updated to: %s", status)
			s.enqueue(ctx, id, enums.NotificationTypeAccountStatus, message)
		}
	case enums.EntityKindJob:
		owners, err := s.jobs.OwnersFor(ctx, ids)
		if err != nil {
			s.logger.Warn("resolve job owners for notification", zap.Error(err))
			return
		}
		for _, owner := range owners {
			s.enqueue(ctx, owner.EmployerID, enums.NotificationTypeJobStatus, jobStatusMessage(owner.Title, status))
		}
	case enums.EntityKindReview:
		parties, err := s.reviews.PartiesFor(ctx, ids)
		if err != nil {
			s.logger.Warn("resolve review parties for notification", zap.Error(err))
			return
		}
		for _, p := range parties {
			employerMsg := fmt.Sprintf("A review about your company (%q) has been %s", p.Title, status)
			authorMsg := fmt.Sprintf("Your review %q has been %s", p.Title, status)
			s.enqueue(ctx, p.EmployerID, enums.NotificationTypeReviewReceived, employerMsg)
			s.enqueue(ctx, p.AuthorID, enums.NotificationTypeReviewStatus, authorMsg)
		}
	case enums.EntityKindReport:
		// Resolving a report is an internal signal; nobody is notified.
	}
}

func (s *Service) enqueue(ctx context.Context, recipientID int64, ntype enums.NotificationType, message string) {
	if s.outbox == nil {
		return
	}
	if err := s.outbox.Enqueue(ctx, recipientID, ntype, message, nil); err != nil {
		s.logger.Warn("enqueue moderation notification",
			zap.Int64("recipient_id", recipientID),
			zap.Error(err),
		)
	}
}

func (s *Service) recordAudit(ctx context.Context, actorID int64, action enums.AuditAction, sourceIP, details string) {
	if s.audit == nil {
		return
	}

	if err := s.audit.Record(ctx, &actorID, action, details, sourceIP); err != nil {
		s.logger.Warn("record moderation audit entry", zap.Error(err))
	}
}

func (s *Service) recordError(ctx context.Context, source string, cause error) {
	s.logger.Error("moderation persistence failure", zap.String("source", source), zap.Error(cause))
	if s.errlog == nil {
		return
	}
	if err := s.errlog.Insert(ctx, source, "moderation write failed", cause.Error()); err != nil {
		s.logger.Warn("record moderation error entry", zap.Error(err))
	}
}

func transitionAuditDetails(kind enums.EntityKind, ids []int64, status string) string {
	if len(ids) == 1 {
		return fmt.Sprintf("Updated %s #%d status to '%s'", kindSingular(kind), ids[0], status)
	}
	return fmt.Sprintf("Bulk updated status to '%s' for %d %s", status, len(ids), kindPlural(kind))
}

func deleteAuditDetails(kind enums.EntityKind, ids []int64) string {
	if len(ids) == 1 {
		return fmt.Sprintf("Deleted %s #%d", kindSingular(kind), ids[0])
	}
	return fmt.Sprintf("Deleted %d %s", len(ids), kindPlural(kind))
}

func kindSingular(kind enums.EntityKind) string {
	switch kind {
	case enums.EntityKindAccount:
		return "account"
	case enums.EntityKindJob:
		return "job listing"
	case enums.EntityKindReview:
		return "review"
	case enums.EntityKindReport:
		return "report"
	}
	return string(kind)
}

func kindPlural(kind enums.EntityKind) string {
	switch kind {
	case enums.EntityKindAccount:
		return "accounts"
	case enums.EntityKindJob:
		return "job listings"
	case enums.EntityKindReview:
		return "reviews"
	case enums.EntityKindReport:
		return "reports"
	}
	return string(kind)
}

func excludeID(ids []int64, exclude int64) []int64 {
	filtered := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == exclude {
			continue
		}
		filtered = append(filtered, id)
	}
	return filtered
}

func jobStatusMessage(title, status string) string {
	switch status {
	case "active":
		return fmt.Sprintf("Your job listing %q has been approved", title)
	case "rejected":
		return fmt.Sprintf("Your job listing %q has been rejected", title)
	default:
		return fmt.Sprintf("Your job listing %q status has been updated to: %s", title, status)
	}
}
