package app

import (
	"gorm.io/gorm"

	apphttp "github.com/yungbote/deliverysla-backend/internal/http"
	httpH "github.com/yungbote/deliverysla-backend/internal/http/handlers"
	"github.com/yungbote/deliverysla-backend/internal/jobs/scheduler"
	"github.com/yungbote/deliverysla-backend/internal/observability"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

type Handlers struct {
	Health       *httpH.HealthHandler
	Job          *httpH.JobHandler
	Notification *httpH.NotificationHandler
}

// wireHandlers builds the ops handlers. runner may be nil, in which case
// manual runs over HTTP answer 503.
func wireHandlers(log *logger.Logger, db *gorm.DB, r Repos, s Services, runner httpH.JobRunner) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:       httpH.NewHealthHandler(db),
		Job:          httpH.NewJobHandler(r.SchedulerJob, r.SchedulerJobExec, runner),
		Notification: httpH.NewNotificationHandler(s.Inbox),
	}
}

func wireServer(cfg Config, log *logger.Logger, metrics *observability.Metrics, h Handlers) *apphttp.Server {
	var serviceName string
	if cfg.OpenTelemetry.Enabled {
		serviceName = cfg.OpenTelemetry.ServiceName
	}
	return apphttp.NewServer(cfg.HTTPAddr, apphttp.RouterConfig{
		Log:                 log,
		Metrics:             metrics,
		ServiceName:         serviceName,
		CORSOrigins:         cfg.CORSOrigins,
		HealthHandler:       h.Health,
		JobHandler:          h.Job,
		NotificationHandler: h.Notification,
	})
}

// jobRunner keeps a nil host from becoming a non-nil interface.
func jobRunner(h *scheduler.Host) httpH.JobRunner {
	if h == nil {
		return nil
	}
	return h
}
