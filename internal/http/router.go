package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/deliverysla-backend/internal/http/handlers"
	httpMW "github.com/yungbote/deliverysla-backend/internal/http/middleware"
	"github.com/yungbote/deliverysla-backend/internal/observability"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics
	// ServiceName names the server spans. Empty disables request tracing.
	ServiceName string
	// CORSOrigins enables CORS for the listed origins.
	CORSOrigins []string

	HealthHandler       *httpH.HealthHandler
	JobHandler          *httpH.JobHandler
	NotificationHandler *httpH.NotificationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	if len(cfg.CORSOrigins) > 0 {
		r.Use(httpMW.CORS(cfg.CORSOrigins))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log, "/healthz", "/metrics"))
	r.Use(httpMW.Metrics(cfg.Metrics))

	// Ops
	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.HealthCheck)
	}
	r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))

	if cfg.JobHandler != nil {
		r.GET("/jobs", cfg.JobHandler.ListJobs)
		r.GET("/jobs/:id/executions", cfg.JobHandler.ListExecutions)
		r.POST("/jobs/:id/run", cfg.JobHandler.RunJob)
	}

	api := r.Group("/api")
	{
		if cfg.NotificationHandler != nil {
			api.GET("/users/:id/notifications", cfg.NotificationHandler.ListForUser)
			api.PATCH("/notifications/:id", cfg.NotificationHandler.Dismiss)
		}
	}

	return r
}
