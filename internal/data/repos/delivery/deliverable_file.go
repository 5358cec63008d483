package delivery

import (
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/deliverysla-backend/internal/domain"
	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

type DeliverableFileRepo interface {
	Create(dbc dbctx.Context, files []*types.DeliverableFile) ([]*types.DeliverableFile, error)
	GetCurrent(dbc dbctx.Context, deliverableID int64) (*types.DeliverableFile, error)
	ListByDeliverable(dbc dbctx.Context, deliverableID int64) ([]*types.DeliverableFile, error)
	UpdateClientSla(dbc dbctx.Context, id int64, color string, by string, at time.Time) error
}

type deliverableFileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDeliverableFileRepo(db *gorm.DB, baseLog *logger.Logger) DeliverableFileRepo {
	return &deliverableFileRepo{db: db, log: baseLog.With("repo", "DeliverableFileRepo")}
}

func (r *deliverableFileRepo) Create(dbc dbctx.Context, files []*types.DeliverableFile) ([]*types.DeliverableFile, error) {
	if len(files) == 0 {
		return []*types.DeliverableFile{}, nil
	}
	if err := dbc.Conn(r.db).Create(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

// GetCurrent returns the non-deleted file with the highest (major, minor),
// or nil when the deliverable has none.
func (r *deliverableFileRepo) GetCurrent(dbc dbctx.Context, deliverableID int64) (*types.DeliverableFile, error) {
	var f types.DeliverableFile
	if err := dbc.Conn(r.db).
		Where("deliverable_id = ? AND deleted_at IS NULL", deliverableID).
		Order("major_version DESC").
		Order("minor_version DESC").
		Order("id DESC").
		Limit(1).
		Find(&f).Error; err != nil {
		return nil, err
	}
	if f.ID == 0 {
		return nil, nil
	}
	return &f, nil
}

func (r *deliverableFileRepo) ListByDeliverable(dbc dbctx.Context, deliverableID int64) ([]*types.DeliverableFile, error) {
	var out []*types.DeliverableFile
	if err := dbc.Conn(r.db).
		Where("deliverable_id = ?", deliverableID).
		Order("major_version ASC").
		Order("minor_version ASC").
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *deliverableFileRepo) UpdateClientSla(dbc dbctx.Context, id int64, color string, by string, at time.Time) error {
	return dbc.Conn(r.db).
		Model(&types.DeliverableFile{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"client_sla":  color,
			"modified_by": by,
			"modified_at": at,
		}).Error
}
