package update_client_sla

import (
	"context"

	"github.com/yungbote/deliverysla-backend/internal/modules/sla"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

// Pass is satisfied by *sla.ClientPass.
type Pass interface {
	Run(ctx context.Context) (sla.PassResult, error)
}

type Pipeline struct {
	log  *logger.Logger
	pass Pass
}

func New(baseLog *logger.Logger, pass Pass) *Pipeline {
	return &Pipeline{
		log:  baseLog.With("job", "update_client_sla"),
		pass: pass,
	}
}

func (p *Pipeline) Type() string { return "update_client_sla" }
