package sla

import (
	"context"
	"fmt"
	"time"

	types "github.com/yungbote/deliverysla-backend/internal/domain"
	"github.com/yungbote/deliverysla-backend/internal/modules/notify"
	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

// DeliverablePass recomputes the internal SLA color of every open deliverable
// and notifies the responsible user when it is not green.
type DeliverablePass struct {
	deps Deps
	log  *logger.Logger
}

func NewDeliverablePass(deps Deps) *DeliverablePass {
	return &DeliverablePass{deps: deps, log: deps.Log.With("service", "DeliverableSlaPass")}
}

func (p *DeliverablePass) Run(ctx context.Context) (PassResult, error) {
	var res PassResult
	dbc := dbctx.New(ctx)

	candidates, err := p.deps.Deliverables.ListSlaCandidates(dbc)
	if err != nil {
		return res, fmt.Errorf("list sla candidates: %w", err)
	}
	res.Candidates = len(candidates)
	if len(candidates) == 0 {
		return res, nil
	}

	holidays, err := p.deps.Calendar.LoadHolidays(dbc)
	if err != nil {
		return res, err
	}
	orders, err := p.ordersByID(dbc, candidates)
	if err != nil {
		return res, err
	}
	profiles, err := p.profilesByID(dbc, candidates)
	if err != nil {
		return res, err
	}
	statuses, err := p.deps.statusNames(dbc, candidates)
	if err != nil {
		return res, err
	}

	asOf := p.deps.today()
	for _, d := range candidates {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		var outcome itemOutcome
		err := isolate(func() error {
			var ierr error
			outcome, ierr = p.evaluateOne(dbc, d, orders[d.OrderID], profiles, statuses, holidays, asOf)
			return ierr
		})
		if err != nil {
			res.Failed++
			p.log.Error("deliverable sla evaluation failed", "deliverable_id", d.ID, "error", err)
			continue
		}
		res.add(outcome)
	}
	p.log.Info("deliverable sla pass finished",
		"candidates", res.Candidates, "updated", res.Updated, "notified", res.Notified,
		"skipped", res.Skipped, "failed", res.Failed)
	return res, nil
}

func (p *DeliverablePass) evaluateOne(dbc dbctx.Context, d *types.Deliverable, order *types.Order, profiles map[int64]*types.SlaProfile, statuses map[int64]string, holidays Holidays, asOf time.Time) (itemOutcome, error) {
	if d.StartDate == nil {
		p.log.Debug("deliverable has no start date; sla not computable", "deliverable_id", d.ID)
		return outcomeSkipped, nil
	}
	var profile *types.SlaProfile
	if d.SlaProfileID != nil {
		profile = profiles[*d.SlaProfileID]
	}
	if profile == nil {
		p.log.Warn("deliverable has no sla profile; skipping", "deliverable_id", d.ID, "sla_profile_id", d.SlaProfileID)
		return outcomeSkipped, nil
	}

	if d.ResponsibleUserID == nil {
		p.log.Warn("deliverable has no responsible user; skipping", "deliverable_id", d.ID)
		return outcomeSkipped, nil
	}

	elapsed := ElapsedBusinessDays(d.StartDate, asOf, holidays)
	color := Evaluate(elapsed, Thresholds{Green: profile.GreenDays, Yellow: profile.YellowDays, Red: profile.RedDays})
	p.deps.Metrics.IncSlaEvaluation("deliverable", string(color))
	if color == Unset {
		p.log.Debug("deliverable sla in threshold gap; color left unchanged", "deliverable_id", d.ID, "elapsed", elapsed)
		return outcomeSkipped, nil
	}

	if err := p.deps.Deliverables.UpdateSlaColor(dbc, d.ID, string(color), ModifiedByDeliverablePass, asOf.UTC()); err != nil {
		return outcomeNone, fmt.Errorf("update sla color: %w", err)
	}
	if !color.Notifies() {
		return outcomeUpdated, nil
	}

	orderName := ""
	if order != nil {
		orderName = order.Name
	}
	title := statusTitle(statuses, d.StatusID)
	orderID := d.OrderID
	_, err := p.deps.Emitter.Emit(dbc, notify.EmitRequest{
		Recipient: types.ToUser{UserID: *d.ResponsibleUserID},
		Title:     title,
		Text:      fmt.Sprintf("Deliverable: %s", d.Name),
		Template:  notify.TemplateDeliverableSla,
		Payload:   payload(title, d.ID, d.Name, orderName, elapsed, color),
		OrderID:   &orderID,
		By:        ModifiedByDeliverablePass,
	})
	if err != nil {
		return outcomeNone, fmt.Errorf("emit notification: %w", err)
	}
	return outcomeNotified, nil
}

func (p *DeliverablePass) ordersByID(dbc dbctx.Context, rows []*types.Deliverable) (map[int64]*types.Order, error) {
	seen := map[int64]bool{}
	ids := make([]int64, 0, len(rows))
	for _, d := range rows {
		if !seen[d.OrderID] {
			seen[d.OrderID] = true
			ids = append(ids, d.OrderID)
		}
	}
	orders, err := p.deps.Orders.GetByIDs(dbc, ids)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	out := make(map[int64]*types.Order, len(orders))
	for _, o := range orders {
		out[o.ID] = o
	}
	return out, nil
}

func (p *DeliverablePass) profilesByID(dbc dbctx.Context, rows []*types.Deliverable) (map[int64]*types.SlaProfile, error) {
	seen := map[int64]bool{}
	ids := make([]int64, 0, len(rows))
	for _, d := range rows {
		if d.SlaProfileID != nil && !seen[*d.SlaProfileID] {
			seen[*d.SlaProfileID] = true
			ids = append(ids, *d.SlaProfileID)
		}
	}
	profiles, err := p.deps.Profiles.GetByIDs(dbc, ids)
	if err != nil {
		return nil, fmt.Errorf("load sla profiles: %w", err)
	}
	out := make(map[int64]*types.SlaProfile, len(profiles))
	for _, pr := range profiles {
		out[pr.ID] = pr
	}
	return out, nil
}
