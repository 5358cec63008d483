package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/yungbote/deliverysla-backend/internal/data/repos"
	types "github.com/yungbote/deliverysla-backend/internal/domain"
	"github.com/yungbote/deliverysla-backend/internal/observability"
	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/deliverysla-backend/internal/pkg/errors"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

type EmitRequest struct {
	Recipient types.Recipient
	Title     string
	Text      string
	Template  string
	Payload   map[string]any
	OrderID   *int64
	External  bool
	By        string
}

// Emitter persists notifications for later dispatch. It does not validate the
// template id or the payload shape.
type Emitter interface {
	Emit(dbc dbctx.Context, req EmitRequest) (*types.Notification, error)
}

type emitter struct {
	repo    repos.NotificationRepo
	log     *logger.Logger
	metrics *observability.Metrics
	now     func() time.Time
}

func NewEmitter(repo repos.NotificationRepo, baseLog *logger.Logger, metrics *observability.Metrics) Emitter {
	return &emitter{
		repo:    repo,
		log:     baseLog.With("service", "NotificationEmitter"),
		metrics: metrics,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (e *emitter) Emit(dbc dbctx.Context, req EmitRequest) (*types.Notification, error) {
	if req.Recipient == nil {
		return nil, fmt.Errorf("emit %q: %w", req.Template, apperr.ErrNoRecipient)
	}
	payload := req.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("emit %q: encode payload: %w", req.Template, err)
	}

	n := &types.Notification{
		OrderID:  req.OrderID,
		External: req.External,
		Title:    req.Title,
		Text:     req.Text,
		Template: req.Template,
		Payload:  datatypes.JSON(raw),
		Audit:    types.CreatedAudit(req.By, e.now()),
	}
	types.ApplyRecipient(n, req.Recipient)

	if _, err := e.repo.Create(dbc, []*types.Notification{n}); err != nil {
		return nil, fmt.Errorf("emit %q to %s: %w", req.Template, req.Recipient, err)
	}
	e.metrics.IncNotificationEmitted(req.Template)
	e.log.Debug("notification emitted", "id", n.ID, "template", n.Template, "to", req.Recipient.String())
	return n, nil
}
