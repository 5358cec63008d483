package sla

import (
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/deliverysla-backend/internal/data/repos"
	types "github.com/yungbote/deliverysla-backend/internal/domain"
	"github.com/yungbote/deliverysla-backend/internal/modules/notify"
	"github.com/yungbote/deliverysla-backend/internal/observability"
	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

const (
	ModifiedByDeliverablePass = "JOB_SLA"
	ModifiedByClientPass      = "JOB_SLA_CLIENT"

	noStatusName = "NO STATUS"
)

// PassResult summarizes one pass over its candidates.
type PassResult struct {
	Candidates int
	Updated    int
	Notified   int
	Skipped    int
	Failed     int
}

type itemOutcome int

const (
	outcomeNone itemOutcome = iota
	outcomeSkipped
	outcomeUpdated
	outcomeNotified
	outcomeNotifiedOnly
)

func (r *PassResult) add(o itemOutcome) {
	switch o {
	case outcomeSkipped:
		r.Skipped++
	case outcomeUpdated:
		r.Updated++
	case outcomeNotified:
		r.Updated++
		r.Notified++
	case outcomeNotifiedOnly:
		r.Notified++
	}
}

type Deps struct {
	Log *logger.Logger

	Deliverables repos.DeliverableRepo
	Files        repos.DeliverableFileRepo
	Statuses     repos.DeliverableStatusRepo
	Orders       repos.OrderRepo
	Users        repos.UserRepo
	Profiles     repos.SlaProfileRepo
	ClientSlas   repos.ClientSlaRepo

	Calendar *Calendar
	Emitter  notify.Emitter
	Metrics  *observability.Metrics

	// Location fixes the civil date used as "today". Defaults to UTC.
	Location *time.Location
	Now      func() time.Time
}

func (d Deps) today() time.Time {
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}

// isolate runs fn and converts a panic into an error, so one bad row cannot
// abort a pass.
func isolate(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

func payload(title string, deliverableID int64, deliverableName, orderName string, elapsed int, color Color) map[string]any {
	return map[string]any{
		"title":            title,
		"deliverable_id":   deliverableID,
		"deliverable_name": deliverableName,
		"order_name":       orderName,
		"days_elapsed":     elapsed,
		"color":            string(color),
	}
}

func (d Deps) statusNames(dbc dbctx.Context, rows []*types.Deliverable) (map[int64]string, error) {
	seen := map[int64]bool{}
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		if !seen[r.StatusID] {
			seen[r.StatusID] = true
			ids = append(ids, r.StatusID)
		}
	}
	names, err := d.Statuses.GetNames(dbc, ids)
	if err != nil {
		return nil, fmt.Errorf("load status names: %w", err)
	}
	return names, nil
}

// statusTitle is the notification title for a deliverable in statusID.
func statusTitle(names map[int64]string, statusID int64) string {
	name := strings.TrimSpace(names[statusID])
	if name == "" {
		name = noStatusName
	}
	return "A deliverable reached status: " + strings.ToUpper(name)
}
