package delivery

import (
	"gorm.io/gorm"

	types "github.com/yungbote/deliverysla-backend/internal/domain"
	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

type DeliverableStatusRepo interface {
	Create(dbc dbctx.Context, rows []*types.DeliverableStatus) ([]*types.DeliverableStatus, error)
	GetNames(dbc dbctx.Context, ids []int64) (map[int64]string, error)
}

type deliverableStatusRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDeliverableStatusRepo(db *gorm.DB, baseLog *logger.Logger) DeliverableStatusRepo {
	return &deliverableStatusRepo{db: db, log: baseLog.With("repo", "DeliverableStatusRepo")}
}

func (r *deliverableStatusRepo) Create(dbc dbctx.Context, rows []*types.DeliverableStatus) ([]*types.DeliverableStatus, error) {
	if len(rows) == 0 {
		return []*types.DeliverableStatus{}, nil
	}
	if err := dbc.Conn(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetNames maps status id to catalog name. Unknown ids are absent.
func (r *deliverableStatusRepo) GetNames(dbc dbctx.Context, ids []int64) (map[int64]string, error) {
	out := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []*types.DeliverableStatus
	if err := dbc.Conn(r.db).
		Select("id", "name").
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, s := range rows {
		out[s.ID] = s.Name
	}
	return out, nil
}
