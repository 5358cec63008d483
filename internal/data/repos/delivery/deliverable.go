package delivery

import (
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/deliverysla-backend/internal/domain"
	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

// ClientCandidate is a deliverable awaiting the client, with the client that
// owns its order.
type ClientCandidate struct {
	Deliverable *types.Deliverable
	ClientID    int64
}

type DeliverableRepo interface {
	Create(dbc dbctx.Context, rows []*types.Deliverable) ([]*types.Deliverable, error)
	GetByID(dbc dbctx.Context, id int64) (*types.Deliverable, error)
	ListSlaCandidates(dbc dbctx.Context) ([]*types.Deliverable, error)
	ListAwaitingClient(dbc dbctx.Context) ([]ClientCandidate, error)
	ListOpenDueForDocumentDelivery(dbc dbctx.Context, day time.Time) ([]*types.Deliverable, error)
	UpdateSlaColor(dbc dbctx.Context, id int64, color string, by string, at time.Time) error
}

type deliverableRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDeliverableRepo(db *gorm.DB, baseLog *logger.Logger) DeliverableRepo {
	return &deliverableRepo{db: db, log: baseLog.With("repo", "DeliverableRepo")}
}

func (r *deliverableRepo) Create(dbc dbctx.Context, rows []*types.Deliverable) ([]*types.Deliverable, error) {
	if len(rows) == 0 {
		return []*types.Deliverable{}, nil
	}
	if err := dbc.Conn(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *deliverableRepo) GetByID(dbc dbctx.Context, id int64) (*types.Deliverable, error) {
	var d types.Deliverable
	if err := dbc.Conn(r.db).
		Where("id = ?", id).
		Limit(1).
		Find(&d).Error; err != nil {
		return nil, err
	}
	if d.ID == 0 {
		return nil, nil
	}
	return &d, nil
}

// ListSlaCandidates returns open, non-deleted deliverables whose responsible
// user is active and not deleted.
func (r *deliverableRepo) ListSlaCandidates(dbc dbctx.Context) ([]*types.Deliverable, error) {
	conn := dbc.Conn(r.db)
	activeUsers := conn.Session(&gorm.Session{NewDB: true}).
		Model(&types.User{}).
		Select("id").
		Where("is_active = ? AND deleted_at IS NULL", true)

	var out []*types.Deliverable
	if err := conn.
		Where("status_id < ? AND deleted_at IS NULL", types.StatusClosedFrom).
		Where("responsible_user_id IN (?)", activeUsers).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListAwaitingClient returns non-deleted deliverables at the awaiting-client
// status whose order resolves to a client.
func (r *deliverableRepo) ListAwaitingClient(dbc dbctx.Context) ([]ClientCandidate, error) {
	conn := dbc.Conn(r.db)

	var links []struct {
		DeliverableID int64
		ClientID      int64
	}
	if err := conn.
		Table("deliverable").
		Select("deliverable.id AS deliverable_id, contract.client_id AS client_id").
		Joins("JOIN service_order ON service_order.id = deliverable.order_id").
		Joins("JOIN project ON project.id = service_order.project_id").
		Joins("JOIN contract ON contract.id = project.contract_id").
		Where("deliverable.status_id = ? AND deliverable.deleted_at IS NULL", types.StatusAwaitingClient).
		Order("deliverable.id ASC").
		Scan(&links).Error; err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return []ClientCandidate{}, nil
	}

	ids := make([]int64, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.DeliverableID)
	}
	var rows []*types.Deliverable
	if err := conn.Session(&gorm.Session{NewDB: true}).
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[int64]*types.Deliverable, len(rows))
	for _, d := range rows {
		byID[d.ID] = d
	}

	out := make([]ClientCandidate, 0, len(links))
	for _, l := range links {
		if d := byID[l.DeliverableID]; d != nil {
			out = append(out, ClientCandidate{Deliverable: d, ClientID: l.ClientID})
		}
	}
	return out, nil
}

// ListOpenDueForDocumentDelivery returns open, non-deleted deliverables linked
// to a non-deleted sprint whose document delivery date falls on day.
func (r *deliverableRepo) ListOpenDueForDocumentDelivery(dbc dbctx.Context, day time.Time) ([]*types.Deliverable, error) {
	conn := dbc.Conn(r.db)
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	sprints := conn.Session(&gorm.Session{NewDB: true}).
		Model(&types.Sprint{}).
		Select("id").
		Where("document_delivery_date >= ? AND document_delivery_date < ? AND deleted_at IS NULL", start, end)
	linked := conn.Session(&gorm.Session{NewDB: true}).
		Model(&types.DeliverableSprint{}).
		Select("deliverable_id").
		Where("sprint_id IN (?) AND deleted_at IS NULL", sprints)

	var out []*types.Deliverable
	if err := conn.
		Where("id IN (?)", linked).
		Where("status_id < ? AND deleted_at IS NULL", types.StatusClosedFrom).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *deliverableRepo) UpdateSlaColor(dbc dbctx.Context, id int64, color string, by string, at time.Time) error {
	return dbc.Conn(r.db).
		Model(&types.Deliverable{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"sla_color":   color,
			"modified_by": by,
			"modified_at": at,
		}).Error
}
