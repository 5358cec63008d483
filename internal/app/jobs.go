package app

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/deliverysla-backend/internal/jobs/pipeline/notifications_cleanup"
	"github.com/yungbote/deliverysla-backend/internal/jobs/pipeline/purge_data"
	"github.com/yungbote/deliverysla-backend/internal/jobs/pipeline/send_mails"
	"github.com/yungbote/deliverysla-backend/internal/jobs/pipeline/update_client_sla"
	"github.com/yungbote/deliverysla-backend/internal/jobs/pipeline/update_deliverable_versions"
	"github.com/yungbote/deliverysla-backend/internal/jobs/pipeline/update_sla"
	"github.com/yungbote/deliverysla-backend/internal/jobs/runtime"
	"github.com/yungbote/deliverysla-backend/internal/jobs/scheduler"
	"github.com/yungbote/deliverysla-backend/internal/observability"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

func wireRegistry(log *logger.Logger, s Services) (*runtime.Registry, error) {
	reg := runtime.NewRegistry()
	for _, h := range []runtime.Handler{
		send_mails.New(log, s.Dispatcher),
		update_sla.New(log, s.DeliverablePass),
		update_client_sla.New(log, s.ClientPass),
		update_deliverable_versions.New(log, s.Rollover),
		purge_data.New(log, s.Retention),
		notifications_cleanup.New(log, s.Retention),
	} {
		if err := reg.Register(h); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// wireScheduler registers every scheduled job on a new host. Any registration
// error is returned; the host is not started.
func wireScheduler(ctx context.Context, cfg Config, log *logger.Logger, db *gorm.DB, r Repos, reg *runtime.Registry, metrics *observability.Metrics) (*scheduler.Host, error) {
	log.Info("Wiring scheduler...")
	specs, err := scheduler.LoadSchedule(cfg.Scheduler.ScheduleFile)
	if err != nil {
		return nil, err
	}

	host := scheduler.New(scheduler.Config{Location: cfg.Location()}, scheduler.Deps{
		DB:         db,
		Jobs:       r.SchedulerJob,
		Executions: r.SchedulerJobExec,
		Log:        log,
		Metrics:    metrics,
	})
	for _, spec := range specs {
		h, ok := reg.Get(spec.ID)
		if !ok {
			return nil, fmt.Errorf("no handler for job %s", spec.ID)
		}
		if err := host.RegisterJob(ctx, spec, h); err != nil {
			return nil, err
		}
	}
	return host, nil
}
