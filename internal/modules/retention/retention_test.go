package retention

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/deliverysla-backend/internal/data/repos"
	"github.com/yungbote/deliverysla-backend/internal/data/repos/testutil"
	types "github.com/yungbote/deliverysla-backend/internal/domain"
	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
)

var now = time.Date(2024, time.March, 8, 6, 0, 0, 0, time.UTC)

func TestPurgeHistory(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	log := testutil.Logger(t)
	execs := repos.NewSchedulerJobExecutionRepo(db, log)
	notes := repos.NewNotificationRepo(db, log)
	dbc := dbctx.New(ctx)

	for _, age := range []time.Duration{2 * time.Hour, 23 * time.Hour, 25 * time.Hour, 72 * time.Hour} {
		require.NoError(t, execs.Create(dbc, &types.SchedulerJobExecution{
			JobID: "send_mails", Status: types.ExecutionExecuted, RunTime: now.Add(-age),
		}))
	}

	deletedAt := func(d time.Duration) *time.Time { v := now.Add(-d); return &v }
	live := &types.Notification{Title: "live"}
	recent := &types.Notification{Title: "recently deleted"}
	recent.DeletedAt = deletedAt(6 * 24 * time.Hour)
	old := &types.Notification{Title: "old"}
	old.DeletedAt = deletedAt(8 * 24 * time.Hour)
	for _, n := range []*types.Notification{live, recent, old} {
		types.ApplyRecipient(n, types.ToUser{UserID: 1})
		testutil.SeedNotification(t, ctx, db, n)
	}

	svc := NewService(execs, notes, log, nil).WithClock(func() time.Time { return now })
	res := svc.PurgeHistory(ctx)
	require.Equal(t, Result{ExecutionsDeleted: 2, NotificationsPurged: 1}, res)

	var remaining []*types.Notification
	require.NoError(t, db.Order("id ASC").Find(&remaining).Error)
	require.Len(t, remaining, 2)
	require.Equal(t, live.ID, remaining[0].ID)
	require.Equal(t, recent.ID, remaining[1].ID)

	left, err := execs.ListByJob(dbc, "send_mails", 0)
	require.NoError(t, err)
	require.Len(t, left, 2)
}

func TestExpireNotifications(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	log := testutil.Logger(t)
	notes := repos.NewNotificationRepo(db, log)

	mk := func(title string, age time.Duration, deleted bool) *types.Notification {
		n := &types.Notification{Title: title, Audit: types.CreatedAudit("JOB_SLA", now.Add(-age))}
		if deleted {
			at := now.Add(-time.Hour)
			by := "someone"
			n.DeletedAt, n.DeletedBy = &at, &by
		}
		types.ApplyRecipient(n, types.ToUser{UserID: 1})
		return testutil.SeedNotification(t, ctx, db, n)
	}
	fresh := mk("fresh", 4*24*time.Hour, false)
	stale := mk("stale", 6*24*time.Hour, false)
	gone := mk("already deleted", 9*24*time.Hour, true)

	svc := NewService(repos.NewSchedulerJobExecutionRepo(db, log), notes, log, nil).WithClock(func() time.Time { return now })
	res := svc.ExpireNotifications(ctx)
	require.Equal(t, Result{NotificationsExpired: 1}, res)

	load := func(id int64) *types.Notification {
		var n types.Notification
		require.NoError(t, db.Where("id = ?", id).First(&n).Error)
		return &n
	}
	require.Nil(t, load(fresh.ID).DeletedAt)

	s := load(stale.ID)
	require.NotNil(t, s.DeletedAt)
	require.Equal(t, DeletedByNotificationsCleanup, *s.DeletedBy)

	g := load(gone.ID)
	require.Equal(t, "someone", *g.DeletedBy)
}

func TestPurgeHistory_ErrorsAreSwallowed(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	svc := NewService(repos.NewSchedulerJobExecutionRepo(db, log), repos.NewNotificationRepo(db, log), log, nil)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	res := svc.PurgeHistory(context.Background())
	require.Equal(t, 2, res.Errors)
	res = svc.ExpireNotifications(context.Background())
	require.Equal(t, 1, res.Errors)
}
