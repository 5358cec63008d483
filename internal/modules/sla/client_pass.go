package sla

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yungbote/deliverysla-backend/internal/data/repos"
	types "github.com/yungbote/deliverysla-backend/internal/domain"
	"github.com/yungbote/deliverysla-backend/internal/modules/notify"
	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/deliverysla-backend/internal/pkg/errors"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

// ClientPass measures how long deliverables have waited on the client and
// notifies a client contact once the wait turns yellow or red.
type ClientPass struct {
	deps Deps
	log  *logger.Logger
}

func NewClientPass(deps Deps) *ClientPass {
	return &ClientPass{deps: deps, log: deps.Log.With("service", "ClientSlaPass")}
}

func (p *ClientPass) Run(ctx context.Context) (PassResult, error) {
	var res PassResult
	dbc := dbctx.New(ctx)

	candidates, err := p.deps.Deliverables.ListAwaitingClient(dbc)
	if err != nil {
		return res, fmt.Errorf("list deliverables awaiting client: %w", err)
	}
	res.Candidates = len(candidates)
	if len(candidates) == 0 {
		return res, nil
	}

	holidays, err := p.deps.Calendar.LoadHolidays(dbc)
	if err != nil {
		return res, err
	}
	orderNames, err := p.orderNames(dbc, candidates)
	if err != nil {
		return res, err
	}
	deliverables := make([]*types.Deliverable, 0, len(candidates))
	for _, c := range candidates {
		deliverables = append(deliverables, c.Deliverable)
	}
	statuses, err := p.deps.statusNames(dbc, deliverables)
	if err != nil {
		return res, err
	}

	asOf := p.deps.today()
	for _, c := range candidates {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		var outcome itemOutcome
		err := isolate(func() error {
			var ierr error
			outcome, ierr = p.evaluateOne(dbc, c, orderNames[c.Deliverable.OrderID], statuses, holidays, asOf)
			return ierr
		})
		if err != nil {
			res.Failed++
			p.log.Error("client sla evaluation failed", "deliverable_id", c.Deliverable.ID, "client_id", c.ClientID, "error", err)
			continue
		}
		res.add(outcome)
	}
	p.log.Info("client sla pass finished",
		"candidates", res.Candidates, "updated", res.Updated, "notified", res.Notified,
		"skipped", res.Skipped, "failed", res.Failed)
	return res, nil
}

func (p *ClientPass) evaluateOne(dbc dbctx.Context, c repos.ClientCandidate, orderName string, statuses map[int64]string, holidays Holidays, asOf time.Time) (itemOutcome, error) {
	d := c.Deliverable

	contact, err := p.deps.Users.FirstActiveForClient(dbc, c.ClientID)
	if err != nil {
		return outcomeNone, fmt.Errorf("load client contact: %w", err)
	}
	if contact == nil {
		p.log.Warn("client has no active user; skipping", "deliverable_id", d.ID, "client_id", c.ClientID)
		return outcomeSkipped, nil
	}

	thresholds, err := p.thresholds(dbc, c.ClientID)
	if err != nil {
		if errors.Is(err, apperr.ErrNoSlaProfile) {
			p.log.Error("no client sla profile and no default; skipping", "deliverable_id", d.ID, "client_id", c.ClientID)
			return outcomeSkipped, nil
		}
		return outcomeNone, err
	}

	if d.StartDate == nil {
		p.log.Warn("deliverable awaiting client has no start date; skipping", "deliverable_id", d.ID)
		return outcomeSkipped, nil
	}

	elapsed := ElapsedBusinessDays(d.StartDate, asOf, holidays)
	color := Evaluate(elapsed, thresholds)
	p.deps.Metrics.IncSlaEvaluation("client", string(color))
	if !color.Notifies() {
		return outcomeSkipped, nil
	}

	outcome := outcomeNotified
	current, err := p.deps.Files.GetCurrent(dbc, d.ID)
	if err != nil {
		return outcomeNone, fmt.Errorf("load current file: %w", err)
	}
	if current == nil {
		p.log.Warn("deliverable awaiting client has no current file; notifying anyway", "deliverable_id", d.ID)
		outcome = outcomeNotifiedOnly
	} else if err := p.deps.Files.UpdateClientSla(dbc, current.ID, string(color), ModifiedByClientPass, asOf.UTC()); err != nil {
		return outcomeNone, fmt.Errorf("update client sla: %w", err)
	}

	title := statusTitle(statuses, d.StatusID)
	orderID := d.OrderID
	_, err = p.deps.Emitter.Emit(dbc, notify.EmitRequest{
		Recipient: types.ToUser{UserID: contact.ID},
		Title:     title,
		Text:      fmt.Sprintf("Deliverable: %s", d.Name),
		Template:  notify.TemplateClientSla,
		Payload:   payload(title, d.ID, d.Name, orderName, elapsed, color),
		OrderID:   &orderID,
		External:  contact.IsExternal,
		By:        ModifiedByClientPass,
	})
	if err != nil {
		return outcomeNone, fmt.Errorf("emit notification: %w", err)
	}
	return outcome, nil
}

// thresholds returns the client's own profile, else the default profile.
func (p *ClientPass) thresholds(dbc dbctx.Context, clientID int64) (Thresholds, error) {
	row, err := p.deps.ClientSlas.GetByClientID(dbc, clientID)
	if err != nil {
		return Thresholds{}, fmt.Errorf("load client sla: %w", err)
	}
	if row == nil {
		row, err = p.deps.ClientSlas.GetByID(dbc, types.DefaultClientSlaID)
		if err != nil {
			return Thresholds{}, fmt.Errorf("load default client sla: %w", err)
		}
	}
	if row == nil {
		return Thresholds{}, apperr.ErrNoSlaProfile
	}
	return Thresholds{Green: row.GreenDays, Yellow: row.YellowDays, Red: row.RedDays}, nil
}

func (p *ClientPass) orderNames(dbc dbctx.Context, rows []repos.ClientCandidate) (map[int64]string, error) {
	seen := map[int64]bool{}
	ids := make([]int64, 0, len(rows))
	for _, c := range rows {
		if !seen[c.Deliverable.OrderID] {
			seen[c.Deliverable.OrderID] = true
			ids = append(ids, c.Deliverable.OrderID)
		}
	}
	orders, err := p.deps.Orders.GetByIDs(dbc, ids)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	out := make(map[int64]string, len(orders))
	for _, o := range orders {
		out[o.ID] = o.Name
	}
	return out, nil
}
