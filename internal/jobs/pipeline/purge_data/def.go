package purge_data

import (
	"context"

	"github.com/yungbote/deliverysla-backend/internal/modules/retention"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

type Purger interface {
	PurgeHistory(ctx context.Context) retention.Result
}

type Pipeline struct {
	log    *logger.Logger
	purger Purger
}

func New(baseLog *logger.Logger, purger Purger) *Pipeline {
	return &Pipeline{
		log:    baseLog.With("job", "purge_data"),
		purger: purger,
	}
}

func (p *Pipeline) Type() string { return "purge_data" }
