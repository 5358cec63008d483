package notification

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/deliverysla-backend/internal/data/repos/testutil"
	types "github.com/yungbote/deliverysla-backend/internal/domain"
)

func TestNotificationRepo_PendingAndMark(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := testutil.DBC(tx)

	repo := NewNotificationRepo(db, testutil.Logger(t))

	first := &types.Notification{Title: "one", Template: "mail/deliverable-sla.html"}
	types.ApplyRecipient(first, types.ToUser{UserID: 7})
	second := &types.Notification{Title: "two", Template: "mail/new-order.html"}
	types.ApplyRecipient(second, types.ToRole{RoleID: 2, OrderID: 9})
	done := &types.Notification{Title: "done"}
	types.ApplyRecipient(done, types.ToUser{UserID: 7})
	stamp := time.Now().UTC()
	done.ModifiedAt = &stamp

	for _, n := range []*types.Notification{first, second, done} {
		testutil.SeedNotification(t, ctx, tx, n)
	}

	pending, err := repo.ListPending(dbc)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(pending) != 2 || pending[0].ID != first.ID || pending[1].ID != second.ID {
		t.Fatalf("ListPending: want=[%d %d] got=%d rows", first.ID, second.ID, len(pending))
	}
	if r, ok := pending[1].Recipient().(types.ToRole); !ok || r.RoleID != 2 || r.OrderID != 9 {
		t.Fatalf("Recipient: want=role:2/order:9 got=%v", pending[1].Recipient())
	}

	ok, err := repo.MarkDispatched(dbc, first.ID, "JOB_SEND_MAILS", time.Now().UTC())
	if err != nil || !ok {
		t.Fatalf("MarkDispatched: ok=%v err=%v", ok, err)
	}
	again, err := repo.MarkDispatched(dbc, first.ID, "JOB_SEND_MAILS", time.Now().UTC())
	if err != nil || again {
		t.Fatalf("MarkDispatched twice: want=false got=%v err=%v", again, err)
	}

	pending, err = repo.ListPending(dbc)
	if err != nil || len(pending) != 1 || pending[0].ID != second.ID {
		t.Fatalf("ListPending after mark: err=%v len=%d", err, len(pending))
	}
	row, err := repo.GetByID(dbc, first.ID)
	if err != nil || row == nil || row.ModifiedBy == nil || *row.ModifiedBy != "JOB_SEND_MAILS" {
		t.Fatalf("GetByID after mark: row=%v err=%v", row, err)
	}
}

func TestNotificationRepo_Retention(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := testutil.DBC(tx)

	now := time.Now().UTC()
	old := now.Add(-6 * 24 * time.Hour)
	fresh := now.Add(-time.Hour)
	longGone := now.Add(-8 * 24 * time.Hour)

	oldRow := testutil.SeedNotification(t, ctx, tx, &types.Notification{Title: "old", Audit: types.Audit{CreatedAt: &old}})
	freshRow := testutil.SeedNotification(t, ctx, tx, &types.Notification{Title: "fresh", Audit: types.Audit{CreatedAt: &fresh}})
	purgeRow := testutil.SeedNotification(t, ctx, tx, &types.Notification{Title: "purge", Audit: types.Audit{CreatedAt: &longGone, DeletedAt: &longGone}})

	repo := NewNotificationRepo(db, testutil.Logger(t))

	n, err := repo.SoftDeleteCreatedBefore(dbc, now.Add(-5*24*time.Hour), "JOB_NOTIFICATIONS_CLEANUP", now)
	if err != nil || n != 1 {
		t.Fatalf("SoftDeleteCreatedBefore: want=1 got=%d err=%v", n, err)
	}
	row, _ := repo.GetByID(dbc, oldRow.ID)
	if row == nil || row.DeletedAt == nil || row.DeletedBy == nil || *row.DeletedBy != "JOB_NOTIFICATIONS_CLEANUP" {
		t.Fatalf("SoftDeleteCreatedBefore: old row not expired: %+v", row)
	}
	if row, _ := repo.GetByID(dbc, freshRow.ID); row == nil || row.DeletedAt != nil {
		t.Fatalf("SoftDeleteCreatedBefore: fresh row expired")
	}

	purged, err := repo.PurgeDeletedBefore(dbc, now.Add(-7*24*time.Hour))
	if err != nil || purged != 1 {
		t.Fatalf("PurgeDeletedBefore: want=1 got=%d err=%v", purged, err)
	}
	if row, _ := repo.GetByID(dbc, purgeRow.ID); row != nil {
		t.Fatalf("PurgeDeletedBefore: row %d still present", purgeRow.ID)
	}
	if row, _ := repo.GetByID(dbc, oldRow.ID); row == nil {
		t.Fatalf("PurgeDeletedBefore: removed recently expired row")
	}
}

func TestNotificationRepo_RetentionCutoffIsInclusive(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := testutil.DBC(tx)

	cutoff := time.Date(2024, time.March, 1, 6, 0, 0, 0, time.UTC)
	after := cutoff.Add(time.Second)
	atCutoff := testutil.SeedNotification(t, ctx, tx, &types.Notification{Title: "at", Audit: types.Audit{CreatedAt: &cutoff}})
	justAfter := testutil.SeedNotification(t, ctx, tx, &types.Notification{Title: "after", Audit: types.Audit{CreatedAt: &after}})

	repo := NewNotificationRepo(db, testutil.Logger(t))
	n, err := repo.SoftDeleteCreatedBefore(dbc, cutoff, "JOB_NOTIFICATIONS_CLEANUP", cutoff)
	if err != nil || n != 1 {
		t.Fatalf("SoftDeleteCreatedBefore: want=1 got=%d err=%v", n, err)
	}
	if row, _ := repo.GetByID(dbc, atCutoff.ID); row == nil || row.DeletedAt == nil {
		t.Fatalf("SoftDeleteCreatedBefore: row created at cutoff not expired")
	}
	if row, _ := repo.GetByID(dbc, justAfter.ID); row == nil || row.DeletedAt != nil {
		t.Fatalf("SoftDeleteCreatedBefore: row created after cutoff expired")
	}

	// atCutoff now carries deleted_at == cutoff.
	purged, err := repo.PurgeDeletedBefore(dbc, cutoff)
	if err != nil || purged != 1 {
		t.Fatalf("PurgeDeletedBefore: want=1 got=%d err=%v", purged, err)
	}
	if row, _ := repo.GetByID(dbc, atCutoff.ID); row != nil {
		t.Fatalf("PurgeDeletedBefore: row deleted at cutoff still present")
	}
}

func TestNotificationRepo_ListInbox(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := testutil.DBC(tx)

	mine := &types.Notification{Title: "mine"}
	types.ApplyRecipient(mine, types.ToUser{UserID: 1})
	theirs := &types.Notification{Title: "theirs"}
	types.ApplyRecipient(theirs, types.ToUser{UserID: 2})
	roleHit := &types.Notification{Title: "role hit"}
	types.ApplyRecipient(roleHit, types.ToRole{RoleID: 5, OrderID: 10})
	roleOtherOrder := &types.Notification{Title: "role other order"}
	types.ApplyRecipient(roleOtherOrder, types.ToRole{RoleID: 5, OrderID: 11})
	roleExternal := &types.Notification{Title: "role external", External: true}
	types.ApplyRecipient(roleExternal, types.ToRole{RoleID: 5, OrderID: 10})
	now := time.Now().UTC()
	dismissed := &types.Notification{Title: "dismissed", Audit: types.Audit{DeletedAt: &now}}
	types.ApplyRecipient(dismissed, types.ToUser{UserID: 1})

	for _, n := range []*types.Notification{mine, theirs, roleHit, roleOtherOrder, roleExternal, dismissed} {
		testutil.SeedNotification(t, ctx, tx, n)
	}

	repo := NewNotificationRepo(db, testutil.Logger(t))
	got, err := repo.ListInbox(dbc, InboxQuery{UserID: 1, RoleID: 5, OrderIDs: []int64{10}})
	if err != nil {
		t.Fatalf("ListInbox: %v", err)
	}
	seen := map[int64]bool{}
	for _, n := range got {
		seen[n.ID] = true
	}
	if len(got) != 2 || !seen[mine.ID] || !seen[roleHit.ID] {
		t.Fatalf("ListInbox: want={%d,%d} got=%v", mine.ID, roleHit.ID, seen)
	}

	ok, err := repo.SoftDelete(dbc, mine.ID, "user:1", now)
	if err != nil || !ok {
		t.Fatalf("SoftDelete: ok=%v err=%v", ok, err)
	}
	got, err = repo.ListInbox(dbc, InboxQuery{UserID: 1})
	if err != nil || len(got) != 0 {
		t.Fatalf("ListInbox after dismiss: len=%d err=%v", len(got), err)
	}
}
