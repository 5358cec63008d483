package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/deliverysla-backend/internal/data/repos"
	types "github.com/yungbote/deliverysla-backend/internal/domain"
	"github.com/yungbote/deliverysla-backend/internal/observability"
	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/deliverysla-backend/internal/pkg/errors"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
	"github.com/yungbote/deliverysla-backend/internal/platform/badge"
	"github.com/yungbote/deliverysla-backend/internal/platform/filestore"
	"github.com/yungbote/deliverysla-backend/internal/platform/mail"
	"github.com/yungbote/deliverysla-backend/internal/platform/render"
)

const ModifiedByDispatcher = "JOB_SEND_MAILS"

// Dispatch outcomes, also used as metric labels.
const (
	OutcomeSent         = "sent"
	OutcomeNoRecipients = "no_recipients"
	OutcomeFailed       = "failed"
)

type DispatchResult struct {
	Pending      int
	Sent         int
	NoRecipients int
	Failed       int
	Marked       int
	MarkFailed   int
}

type DispatcherDeps struct {
	Log *logger.Logger

	Notifications repos.NotificationRepo
	Users         repos.UserRepo
	Orders        repos.OrderRepo
	Profiles      repos.SlaProfileRepo

	Renderer  render.Renderer
	Transport mail.Transport
	// Images holds the static inline images, keyed by file name.
	Images filestore.Store
	// Files holds the SLA profile documents attached to new-order mails.
	Files   filestore.Store
	Badges  badge.Renderer
	Metrics *observability.Metrics

	From string
	Now  func() time.Time
}

// Dispatcher sends every pending notification once and marks it dispatched
// whether or not the send succeeded.
type Dispatcher struct {
	deps DispatcherDeps
	log  *logger.Logger
}

func NewDispatcher(deps DispatcherDeps) *Dispatcher {
	if deps.Now == nil {
		deps.Now = func() time.Time { return time.Now().UTC() }
	}
	return &Dispatcher{deps: deps, log: deps.Log.With("service", "NotificationDispatcher")}
}

func (d *Dispatcher) Run(ctx context.Context) (DispatchResult, error) {
	var res DispatchResult
	dbc := dbctx.New(ctx)

	pending, err := d.deps.Notifications.ListPending(dbc)
	if err != nil {
		return res, fmt.Errorf("list pending notifications: %w", err)
	}
	res.Pending = len(pending)

	for _, n := range pending {
		if ctx.Err() != nil {
			break
		}
		outcome, err := d.dispatchSafe(ctx, n)
		if err != nil {
			d.log.Error("Notification dispatch failed", "notification_id", n.ID, "template", n.Template, "error", err)
		}
		switch outcome {
		case OutcomeSent:
			res.Sent++
		case OutcomeNoRecipients:
			res.NoRecipients++
		default:
			res.Failed++
		}
		d.deps.Metrics.IncNotificationDispatched(outcome)

		marked, err := d.deps.Notifications.MarkDispatched(dbc, n.ID, ModifiedByDispatcher, d.deps.Now())
		switch {
		case err != nil:
			res.MarkFailed++
			d.log.Error("Notification mark failed", "notification_id", n.ID, "error", err)
		case marked:
			res.Marked++
		default:
			d.log.Warn("Notification already marked", "notification_id", n.ID)
		}
	}

	d.log.Info("Dispatch finished",
		"pending", res.Pending,
		"sent", res.Sent,
		"no_recipients", res.NoRecipients,
		"failed", res.Failed,
		"mark_failed", res.MarkFailed,
	)
	return res, nil
}

func (d *Dispatcher) dispatchSafe(ctx context.Context, n *types.Notification) (outcome string, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome, err = OutcomeFailed, fmt.Errorf("panic: %v", r)
		}
	}()
	return d.dispatchOne(ctx, n)
}

func (d *Dispatcher) dispatchOne(ctx context.Context, n *types.Notification) (string, error) {
	dbc := dbctx.New(ctx)

	to, err := d.recipients(dbc, n)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("resolve recipients: %w", err)
	}
	if len(to) == 0 {
		d.log.Debug("Notification has no recipients", "notification_id", n.ID)
		return OutcomeNoRecipients, nil
	}

	data := map[string]any{}
	if len(n.Payload) > 0 {
		if err := json.Unmarshal(n.Payload, &data); err != nil {
			return OutcomeFailed, fmt.Errorf("decode payload: %w", err)
		}
	}

	body, err := d.deps.Renderer.Render(n.Template, data)
	if err != nil {
		return OutcomeFailed, err
	}
	images, err := d.inlineImages(ctx, n.Template, data)
	if err != nil {
		return OutcomeFailed, err
	}
	attachments, err := d.attachments(dbc, n)
	if err != nil {
		return OutcomeFailed, err
	}

	msg := mail.Message{
		From:         d.deps.From,
		To:           to,
		Subject:      n.Title,
		HTML:         body,
		InlineImages: images,
		Attachments:  attachments,
	}
	if err := d.deps.Transport.Send(ctx, msg); err != nil {
		return OutcomeFailed, fmt.Errorf("send: %w", err)
	}
	return OutcomeSent, nil
}

func (d *Dispatcher) recipients(dbc dbctx.Context, n *types.Notification) ([]string, error) {
	switch r := n.Recipient().(type) {
	case types.ToUser:
		u, err := d.deps.Users.GetByID(dbc, r.UserID)
		if err != nil || u == nil {
			return nil, err
		}
		return emails([]*types.User{u}), nil
	case types.ToRole:
		users, err := d.deps.Users.ListRoleMembersForOrder(dbc, r.RoleID, r.OrderID, n.External)
		if err != nil {
			return nil, err
		}
		return emails(users), nil
	default:
		return nil, nil
	}
}

func emails(users []*types.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		if e := strings.TrimSpace(u.Email); e != "" {
			out = append(out, e)
		}
	}
	return out
}

func (d *Dispatcher) inlineImages(ctx context.Context, template string, data map[string]any) ([]mail.InlineImage, error) {
	names := imagesFor(template)
	out := make([]mail.InlineImage, 0, len(names)+1)
	for _, name := range names {
		f, err := d.deps.Images.Open(ctx, name)
		if errors.Is(err, apperr.ErrNotFound) {
			d.log.Warn("Static mail image missing; sending without it", "image", name, "template", template)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("image %s: %w", name, err)
		}
		out = append(out, mail.InlineImage{ContentID: name, Filename: name, ContentType: f.ContentType, Data: f.Data})
	}
	if badgeTemplates[template] && d.deps.Badges != nil {
		color, _ := data["color"].(string)
		png, err := d.deps.Badges.Render(color, intValue(data["days_elapsed"]))
		if err != nil {
			return nil, fmt.Errorf("badge: %w", err)
		}
		out = append(out, mail.InlineImage{ContentID: ImageSlaBadge, Filename: ImageSlaBadge, ContentType: "image/png", Data: png})
	}
	return out, nil
}

// attachments returns the initial deliverable guides for new-order mails;
// other templates carry none.
func (d *Dispatcher) attachments(dbc dbctx.Context, n *types.Notification) ([]mail.Attachment, error) {
	if n.Template != TemplateNewOrder {
		return nil, nil
	}
	clientID := int64(types.DefaultClientID)
	if n.OrderID != nil {
		id, ok, err := d.deps.Orders.ClientIDForOrder(dbc, *n.OrderID)
		if err != nil {
			return nil, fmt.Errorf("order client: %w", err)
		}
		if ok {
			clientID = id
		}
	}
	profiles, err := d.deps.Profiles.ListInitialForClient(dbc, clientID)
	if err != nil {
		return nil, fmt.Errorf("initial profiles: %w", err)
	}
	if len(profiles) == 0 && clientID != types.DefaultClientID {
		if profiles, err = d.deps.Profiles.ListInitialForClient(dbc, types.DefaultClientID); err != nil {
			return nil, fmt.Errorf("default initial profiles: %w", err)
		}
	}

	out := make([]mail.Attachment, 0, len(profiles))
	for _, p := range profiles {
		if strings.TrimSpace(p.Path) == "" {
			continue
		}
		f, err := d.deps.Files.Open(dbc.Ctx, p.Path)
		if err != nil {
			return nil, fmt.Errorf("attachment %s: %w", p.Path, err)
		}
		out = append(out, mail.Attachment{Filename: f.Name, ContentType: f.ContentType, Data: f.Data})
	}
	return out, nil
}

func intValue(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case json.Number:
		i, _ := n.Int64()
		return int(i)
	default:
		return 0
	}
}
