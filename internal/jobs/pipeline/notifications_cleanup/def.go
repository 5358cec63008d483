package notifications_cleanup

import (
	"context"

	"github.com/yungbote/deliverysla-backend/internal/modules/retention"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

type Expirer interface {
	ExpireNotifications(ctx context.Context) retention.Result
}

type Pipeline struct {
	log     *logger.Logger
	expirer Expirer
}

func New(baseLog *logger.Logger, expirer Expirer) *Pipeline {
	return &Pipeline{
		log:     baseLog.With("job", "notifications_cleanup"),
		expirer: expirer,
	}
}

func (p *Pipeline) Type() string { return "notifications_cleanup" }
