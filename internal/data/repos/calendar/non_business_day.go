package calendar

import (
	"gorm.io/gorm"

	types "github.com/yungbote/deliverysla-backend/internal/domain"
	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

type NonBusinessDayRepo interface {
	Create(dbc dbctx.Context, days []*types.NonBusinessDay) ([]*types.NonBusinessDay, error)
	ListActive(dbc dbctx.Context) ([]*types.NonBusinessDay, error)
}

type nonBusinessDayRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNonBusinessDayRepo(db *gorm.DB, baseLog *logger.Logger) NonBusinessDayRepo {
	return &nonBusinessDayRepo{db: db, log: baseLog.With("repo", "NonBusinessDayRepo")}
}

func (r *nonBusinessDayRepo) Create(dbc dbctx.Context, days []*types.NonBusinessDay) ([]*types.NonBusinessDay, error) {
	if len(days) == 0 {
		return []*types.NonBusinessDay{}, nil
	}
	if err := dbc.Conn(r.db).Create(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (r *nonBusinessDayRepo) ListActive(dbc dbctx.Context) ([]*types.NonBusinessDay, error) {
	var out []*types.NonBusinessDay
	if err := dbc.Conn(r.db).
		Where("deleted_at IS NULL").
		Order("date ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
