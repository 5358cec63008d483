package app

import (
	"context"
	"fmt"

	"github.com/yungbote/deliverysla-backend/internal/modules/notify"
	"github.com/yungbote/deliverysla-backend/internal/modules/retention"
	"github.com/yungbote/deliverysla-backend/internal/modules/sla"
	"github.com/yungbote/deliverysla-backend/internal/modules/versioning"
	"github.com/yungbote/deliverysla-backend/internal/observability"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
	"github.com/yungbote/deliverysla-backend/internal/platform/badge"
	"github.com/yungbote/deliverysla-backend/internal/platform/filestore"
	"github.com/yungbote/deliverysla-backend/internal/platform/mail"
	"github.com/yungbote/deliverysla-backend/internal/platform/render"
	"github.com/yungbote/deliverysla-backend/internal/services"
)

type Services struct {
	DeliverablePass *sla.DeliverablePass
	ClientPass      *sla.ClientPass
	Rollover        *versioning.DocumentDeliveryRollover
	Dispatcher      *notify.Dispatcher
	Retention       *retention.Service
	Inbox           services.InboxService

	files  filestore.Store
	images filestore.Store
}

func (s Services) close(log *logger.Logger) {
	for _, st := range []filestore.Store{s.files, s.images} {
		if st == nil {
			continue
		}
		if err := st.Close(); err != nil {
			log.Warn("Closing file store failed", "error", err)
		}
	}
}

func wireServices(ctx context.Context, cfg Config, log *logger.Logger, r Repos, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")
	var out Services

	renderer, err := render.New()
	if err != nil {
		return out, fmt.Errorf("init renderer: %w", err)
	}
	badges, err := badge.New(log, cfg.Files.BadgeFontPath)
	if err != nil {
		return out, fmt.Errorf("init badge renderer: %w", err)
	}
	transport, err := mail.New(cfg.MailConfig(), log)
	if err != nil {
		return out, fmt.Errorf("init mail transport: %w", err)
	}
	if out.files, err = filestore.New(ctx, cfg.FileStoreConfig(), log); err != nil {
		return out, fmt.Errorf("init file store: %w", err)
	}
	if out.images, err = filestore.New(ctx, cfg.ImageStoreConfig(), log); err != nil {
		out.close(log)
		return out, fmt.Errorf("init image store: %w", err)
	}

	loc := cfg.Location()
	emitter := notify.NewEmitter(r.Notification, log, metrics)
	passDeps := sla.Deps{
		Log:          log,
		Deliverables: r.Deliverable,
		Files:        r.DeliverableFile,
		Statuses:     r.Status,
		Orders:       r.Order,
		Users:        r.User,
		Profiles:     r.SlaProfile,
		ClientSlas:   r.ClientSla,
		Calendar:     sla.NewCalendar(r.NonBusinessDay),
		Emitter:      emitter,
		Metrics:      metrics,
		Location:     loc,
	}
	out.DeliverablePass = sla.NewDeliverablePass(passDeps)
	out.ClientPass = sla.NewClientPass(passDeps)

	versions := versioning.NewService(r.DeliverableFile, log, metrics)
	out.Rollover = versioning.NewDocumentDeliveryRollover(versions, r.Deliverable, log, loc)

	out.Dispatcher = notify.NewDispatcher(notify.DispatcherDeps{
		Log:           log,
		Notifications: r.Notification,
		Users:         r.User,
		Orders:        r.Order,
		Profiles:      r.SlaProfile,
		Renderer:      renderer,
		Transport:     transport,
		Images:        out.images,
		Files:         out.files,
		Badges:        badges,
		Metrics:       metrics,
		From:          cfg.Mail.From,
	})
	out.Retention = retention.NewService(r.SchedulerJobExec, r.Notification, log, metrics)
	out.Inbox = services.NewInboxService(log, r.User, r.Order, r.UserOrder, r.Notification)
	return out, nil
}
