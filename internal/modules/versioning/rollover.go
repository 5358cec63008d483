package versioning

import (
	"context"
	"fmt"
	"time"

	"github.com/yungbote/deliverysla-backend/internal/data/repos"
	types "github.com/yungbote/deliverysla-backend/internal/domain"
	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

type RolloverResult struct {
	Candidates int
	Created    int
	Skipped    int
	Failed     int
}

// DocumentDeliveryRollover bumps the major version of every open deliverable
// whose sprint had its document delivery date yesterday.
type DocumentDeliveryRollover struct {
	svc          *Service
	deliverables repos.DeliverableRepo
	log          *logger.Logger
	location     *time.Location
	now          func() time.Time
}

func NewDocumentDeliveryRollover(svc *Service, deliverables repos.DeliverableRepo, baseLog *logger.Logger, location *time.Location) *DocumentDeliveryRollover {
	if location == nil {
		location = time.UTC
	}
	return &DocumentDeliveryRollover{
		svc:          svc,
		deliverables: deliverables,
		log:          baseLog.With("service", "DocumentDeliveryRollover"),
		location:     location,
		now:          time.Now,
	}
}

// WithClock overrides the run date source.
func (r *DocumentDeliveryRollover) WithClock(now func() time.Time) *DocumentDeliveryRollover {
	r.now = now
	return r
}

func (r *DocumentDeliveryRollover) Run(ctx context.Context) (RolloverResult, error) {
	var res RolloverResult
	dbc := dbctx.New(ctx)

	today := r.now().In(r.location)
	y, m, d := today.Date()
	yesterday := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)

	due, err := r.deliverables.ListOpenDueForDocumentDelivery(dbc, yesterday)
	if err != nil {
		return res, fmt.Errorf("list deliverables due %s: %w", yesterday.Format(time.DateOnly), err)
	}
	res.Candidates = len(due)

	for _, dl := range due {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		created, err := r.rollOne(dbc, dl)
		switch {
		case err != nil:
			res.Failed++
			r.log.Error("document delivery rollover failed", "deliverable_id", dl.ID, "error", err)
		case created:
			res.Created++
		default:
			res.Skipped++
		}
	}
	r.log.Info("document delivery rollover finished",
		"date", yesterday.Format(time.DateOnly), "candidates", res.Candidates,
		"created", res.Created, "skipped", res.Skipped, "failed", res.Failed)
	return res, nil
}

func (r *DocumentDeliveryRollover) rollOne(dbc dbctx.Context, d *types.Deliverable) (created bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			created, err = false, fmt.Errorf("panic: %v", rec)
		}
	}()
	cur, err := r.svc.CurrentFile(dbc, d.ID)
	if err != nil {
		return false, err
	}
	if cur == nil {
		r.log.Debug("deliverable has no active file; nothing to roll over", "deliverable_id", d.ID)
		return false, nil
	}
	if _, err := r.svc.Rollover(dbc, cur); err != nil {
		return false, err
	}
	return true, nil
}
