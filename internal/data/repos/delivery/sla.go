package delivery

import (
	"gorm.io/gorm"

	types "github.com/yungbote/deliverysla-backend/internal/domain"
	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

type SlaProfileRepo interface {
	Create(dbc dbctx.Context, rows []*types.SlaProfile) ([]*types.SlaProfile, error)
	GetByIDs(dbc dbctx.Context, ids []int64) ([]*types.SlaProfile, error)
	ListInitialForClient(dbc dbctx.Context, clientID int64) ([]*types.SlaProfile, error)
}

type slaProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSlaProfileRepo(db *gorm.DB, baseLog *logger.Logger) SlaProfileRepo {
	return &slaProfileRepo{db: db, log: baseLog.With("repo", "SlaProfileRepo")}
}

func (r *slaProfileRepo) Create(dbc dbctx.Context, rows []*types.SlaProfile) ([]*types.SlaProfile, error) {
	if len(rows) == 0 {
		return []*types.SlaProfile{}, nil
	}
	if err := dbc.Conn(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *slaProfileRepo) GetByIDs(dbc dbctx.Context, ids []int64) ([]*types.SlaProfile, error) {
	var out []*types.SlaProfile
	if len(ids) == 0 {
		return out, nil
	}
	if err := dbc.Conn(r.db).
		Where("id IN ? AND deleted_at IS NULL", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListInitialForClient returns the client's initial-deliverable profiles, the
// documents attached to a new-order mail.
func (r *slaProfileRepo) ListInitialForClient(dbc dbctx.Context, clientID int64) ([]*types.SlaProfile, error) {
	var out []*types.SlaProfile
	if err := dbc.Conn(r.db).
		Where("client_id = ? AND initial_deliverable = ? AND deleted_at IS NULL", clientID, true).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type ClientSlaRepo interface {
	Create(dbc dbctx.Context, rows []*types.ClientSla) ([]*types.ClientSla, error)
	GetByID(dbc dbctx.Context, id int64) (*types.ClientSla, error)
	GetByClientID(dbc dbctx.Context, clientID int64) (*types.ClientSla, error)
}

type clientSlaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClientSlaRepo(db *gorm.DB, baseLog *logger.Logger) ClientSlaRepo {
	return &clientSlaRepo{db: db, log: baseLog.With("repo", "ClientSlaRepo")}
}

func (r *clientSlaRepo) Create(dbc dbctx.Context, rows []*types.ClientSla) ([]*types.ClientSla, error) {
	if len(rows) == 0 {
		return []*types.ClientSla{}, nil
	}
	if err := dbc.Conn(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *clientSlaRepo) GetByID(dbc dbctx.Context, id int64) (*types.ClientSla, error) {
	return r.first(dbc, "id = ? AND deleted_at IS NULL", id)
}

func (r *clientSlaRepo) GetByClientID(dbc dbctx.Context, clientID int64) (*types.ClientSla, error) {
	return r.first(dbc, "client_id = ? AND deleted_at IS NULL", clientID)
}

func (r *clientSlaRepo) first(dbc dbctx.Context, where string, arg int64) (*types.ClientSla, error) {
	var row types.ClientSla
	if err := dbc.Conn(r.db).
		Where(where, arg).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, nil
	}
	return &row, nil
}
