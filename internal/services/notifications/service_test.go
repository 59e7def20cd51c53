package notifications

import (
	"context"
	"testing"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/enums"
	"github.com/Thenukee/JobMarket-sub000/internal/domain/model"
)

// fakeNotificationRepo mirrors the SQL contract: MarkRead flips a row only
// when both the id and the recipient match.
type fakeNotificationRepo struct {
	rows   []model.Notification
	nextID int64
}

func (f *fakeNotificationRepo) Insert(_ context.Context, recipientID int64, ntype, message string, link *string) error {
	f.nextID++
	f.rows = append(f.rows, model.Notification{
		ID:          f.nextID,
		RecipientID: recipientID,
		Type:        enums.NotificationType(ntype),
		Message:     message,
		Link:        link,
	})
	return nil
}

func (f *fakeNotificationRepo) ListUnread(_ context.Context, recipientID int64, limit int) ([]model.Notification, error) {
	var out []model.Notification
	for _, row := range f.rows {
		if row.RecipientID == recipientID && !row.Read {
			out = append(out, row)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id, recipientID int64) (bool, error) {
	for i, row := range f.rows {
		if row.ID == id && row.RecipientID == recipientID && !row.Read {
			f.rows[i].Read = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, recipientID int64) (int, error) {
	count := 0
	for _, row := range f.rows {
		if row.RecipientID == recipientID && !row.Read {
			count++
		}
	}
	return count, nil
}

func seededService(t *testing.T) (*Service, *fakeNotificationRepo) {
	t.Helper()
	repo := &fakeNotificationRepo{}
	service := NewService(repo)

	ctx := context.Background()
	if err := service.Enqueue(ctx, 1, enums.NotificationTypeApplicationNew, "New application for \"Backend Engineer\"", nil); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if err := service.Enqueue(ctx, 2, enums.NotificationTypeApplicationStatus, "Your application for \"Backend Engineer\" is now: accepted", nil); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	return service, repo
}

func TestMarkReadFlipsOnlyOwnRow(t *testing.T) {
	service, repo := seededService(t)
	ctx := context.Background()

	// Recipient 2 cannot flip recipient 1's notification.
	flipped, err := service.MarkRead(ctx, repo.rows[0].ID, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flipped {
		t.Fatal("foreign recipient flipped another account's notification")
	}
	if repo.rows[0].Read {
		t.Fatal("row was marked read by a foreign recipient")
	}

	flipped, err = service.MarkRead(ctx, repo.rows[0].ID, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !flipped {
		t.Fatal("owner could not mark own notification read")
	}

	// The other recipient's row is untouched.
	if repo.rows[1].Read {
		t.Fatal("unrelated recipient's row was flipped")
	}
	count, err := service.CountUnread(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected recipient 2 to still have 1 unread, got %d", count)
	}
}

func TestMarkReadUnknownIDReportsFalse(t *testing.T) {
	service, _ := seededService(t)

	flipped, err := service.MarkRead(context.Background(), 404, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flipped {
		t.Fatal("expected false for a missing notification id")
	}
}

func TestListUnreadExcludesReadRows(t *testing.T) {
	service, repo := seededService(t)
	ctx := context.Background()

	if _, err := service.MarkRead(ctx, repo.rows[0].ID, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	unread, err := service.ListUnread(ctx, 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(unread) != 0 {
		t.Fatalf("expected no unread rows for recipient 1, got %d", len(unread))
	}
}

func TestEnqueueRejectsBlankMessage(t *testing.T) {
	service := NewService(&fakeNotificationRepo{})

	if err := service.Enqueue(context.Background(), 1, enums.NotificationTypeAccountStatus, "   ", nil); err == nil {
		t.Fatal("expected error for blank message")
	}
	if err := service.Enqueue(context.Background(), 0, enums.NotificationTypeAccountStatus, "hello", nil); err == nil {
		t.Fatal("expected error for non-positive recipient")
	}
}
