package retention

import (
	"context"
	"time"

	"github.com/yungbote/deliverysla-backend/internal/data/repos"
	"github.com/yungbote/deliverysla-backend/internal/observability"
	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

const DeletedByNotificationsCleanup = "JOB_NOTIFICATIONS_CLEANUP"

const (
	ExecutionMaxAge         = 24 * time.Hour
	DeletedNotificationsAge = 7 * 24 * time.Hour
	NotificationMaxAge      = 5 * 24 * time.Hour
)

type Result struct {
	ExecutionsDeleted    int64
	NotificationsPurged  int64
	NotificationsExpired int64
	Errors               int
}

// Service runs the retention sweeps. Every sweep is best-effort: failures are
// logged and counted, never returned.
type Service struct {
	log           *logger.Logger
	executions    repos.SchedulerJobExecutionRepo
	notifications repos.NotificationRepo
	metrics       *observability.Metrics
	now           func() time.Time
}

func NewService(executions repos.SchedulerJobExecutionRepo, notifications repos.NotificationRepo, baseLog *logger.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		log:           baseLog.With("service", "RetentionService"),
		executions:    executions,
		notifications: notifications,
		metrics:       metrics,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// PurgeHistory drops execution history older than a day and hard-deletes
// notifications soft-deleted more than a week ago.
func (s *Service) PurgeHistory(ctx context.Context) Result {
	var res Result
	dbc := dbctx.New(ctx)
	now := s.now()

	n, err := s.executions.DeleteBefore(dbc, now.Add(-ExecutionMaxAge))
	if err != nil {
		res.Errors++
		s.log.Error("Purge job executions failed", "error", err)
	} else {
		res.ExecutionsDeleted = n
		s.metrics.AddRetention("scheduler_job_execution", "delete", n)
	}

	n, err = s.notifications.PurgeDeletedBefore(dbc, now.Add(-DeletedNotificationsAge))
	if err != nil {
		res.Errors++
		s.log.Error("Purge deleted notifications failed", "error", err)
	} else {
		res.NotificationsPurged = n
		s.metrics.AddRetention("notification", "delete", n)
	}

	s.log.Info("History purged",
		"executions", res.ExecutionsDeleted,
		"notifications", res.NotificationsPurged,
		"errors", res.Errors,
	)
	return res
}

// ExpireNotifications soft-deletes notifications older than five days.
func (s *Service) ExpireNotifications(ctx context.Context) Result {
	var res Result
	now := s.now()
	n, err := s.notifications.SoftDeleteCreatedBefore(dbctx.New(ctx), now.Add(-NotificationMaxAge), DeletedByNotificationsCleanup, now)
	if err != nil {
		res.Errors++
		s.log.Error("Expire notifications failed", "error", err)
		return res
	}
	res.NotificationsExpired = n
	s.metrics.AddRetention("notification", "soft_delete", n)
	s.log.Info("Notifications expired", "count", n)
	return res
}
