package send_mails

import (
	"context"

	"github.com/yungbote/deliverysla-backend/internal/modules/notify"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

type Dispatcher interface {
	Run(ctx context.Context) (notify.DispatchResult, error)
}

type Pipeline struct {
	log        *logger.Logger
	dispatcher Dispatcher
}

func New(baseLog *logger.Logger, dispatcher Dispatcher) *Pipeline {
	return &Pipeline{
		log:        baseLog.With("job", "send_mails"),
		dispatcher: dispatcher,
	}
}

func (p *Pipeline) Type() string { return "send_mails" }
