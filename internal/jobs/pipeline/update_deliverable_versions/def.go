package update_deliverable_versions

import (
	"context"

	"github.com/yungbote/deliverysla-backend/internal/modules/versioning"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

type Rollover interface {
	Run(ctx context.Context) (versioning.RolloverResult, error)
}

type Pipeline struct {
	log      *logger.Logger
	rollover Rollover
}

func New(baseLog *logger.Logger, rollover Rollover) *Pipeline {
	return &Pipeline{
		log:      baseLog.With("job", "update_deliverable_versions"),
		rollover: rollover,
	}
}

func (p *Pipeline) Type() string { return "update_deliverable_versions" }
