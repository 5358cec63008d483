package notification

import (
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/deliverysla-backend/internal/domain"
	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

// InboxQuery selects what one user can see: rows addressed to the user, plus
// role rows for RoleID whose order is one of OrderIDs and whose external flag
// matches External.
type InboxQuery struct {
	UserID   int64
	RoleID   int64
	OrderIDs []int64
	External bool
	Limit    int
}

type NotificationRepo interface {
	Create(dbc dbctx.Context, rows []*types.Notification) ([]*types.Notification, error)
	GetByID(dbc dbctx.Context, id int64) (*types.Notification, error)
	ListPending(dbc dbctx.Context) ([]*types.Notification, error)
	MarkDispatched(dbc dbctx.Context, id int64, by string, at time.Time) (bool, error)
	ListInbox(dbc dbctx.Context, q InboxQuery) ([]*types.Notification, error)
	SoftDelete(dbc dbctx.Context, id int64, by string, at time.Time) (bool, error)
	SoftDeleteCreatedBefore(dbc dbctx.Context, cutoff time.Time, by string, at time.Time) (int64, error)
	PurgeDeletedBefore(dbc dbctx.Context, cutoff time.Time) (int64, error)
}

type notificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
	return &notificationRepo{db: db, log: baseLog.With("repo", "NotificationRepo")}
}

func (r *notificationRepo) Create(dbc dbctx.Context, rows []*types.Notification) ([]*types.Notification, error) {
	if len(rows) == 0 {
		return []*types.Notification{}, nil
	}
	if err := dbc.Conn(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *notificationRepo) GetByID(dbc dbctx.Context, id int64) (*types.Notification, error) {
	var n types.Notification
	if err := dbc.Conn(r.db).
		Where("id = ?", id).
		Limit(1).
		Find(&n).Error; err != nil {
		return nil, err
	}
	if n.ID == 0 {
		return nil, nil
	}
	return &n, nil
}

// ListPending returns every notification not yet dispatched, oldest first.
func (r *notificationRepo) ListPending(dbc dbctx.Context) ([]*types.Notification, error) {
	var out []*types.Notification
	if err := dbc.Conn(r.db).
		Where("modified_at IS NULL").
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// MarkDispatched stamps the row as dispatched. The update only matches rows
// still pending, so the null -> non-null transition happens once; the bool
// reports whether this call made it.
func (r *notificationRepo) MarkDispatched(dbc dbctx.Context, id int64, by string, at time.Time) (bool, error) {
	res := dbc.Conn(r.db).
		Model(&types.Notification{}).
		Where("id = ? AND modified_at IS NULL", id).
		UpdateColumns(map[string]interface{}{
			"modified_by": by,
			"modified_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *notificationRepo) ListInbox(dbc dbctx.Context, q InboxQuery) ([]*types.Notification, error) {
	conn := dbc.Conn(r.db)
	visible := conn.Session(&gorm.Session{NewDB: true}).Where("user_id = ?", q.UserID)
	if q.RoleID > 0 && len(q.OrderIDs) > 0 {
		visible = visible.Or("role_id = ? AND order_id IN ? AND external = ?", q.RoleID, q.OrderIDs, q.External)
	}

	stmt := conn.
		Where("deleted_at IS NULL").
		Where(visible).
		Order("created_at DESC").
		Order("id DESC")
	if q.Limit > 0 {
		stmt = stmt.Limit(q.Limit)
	}
	var out []*types.Notification
	if err := stmt.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *notificationRepo) SoftDelete(dbc dbctx.Context, id int64, by string, at time.Time) (bool, error) {
	res := dbc.Conn(r.db).
		Model(&types.Notification{}).
		Where("id = ? AND deleted_at IS NULL", id).
		UpdateColumns(map[string]interface{}{
			"deleted_by": by,
			"deleted_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SoftDeleteCreatedBefore expires live notifications created at or before cutoff.
func (r *notificationRepo) SoftDeleteCreatedBefore(dbc dbctx.Context, cutoff time.Time, by string, at time.Time) (int64, error) {
	res := dbc.Conn(r.db).
		Model(&types.Notification{}).
		Where("created_at <= ? AND deleted_at IS NULL", cutoff).
		UpdateColumns(map[string]interface{}{
			"deleted_by": by,
			"deleted_at": at,
		})
	return res.RowsAffected, res.Error
}

// PurgeDeletedBefore hard-deletes notifications soft-deleted at or before cutoff.
func (r *notificationRepo) PurgeDeletedBefore(dbc dbctx.Context, cutoff time.Time) (int64, error) {
	res := dbc.Conn(r.db).
		Where("deleted_at IS NOT NULL AND deleted_at <= ?", cutoff).
		Delete(&types.Notification{})
	return res.RowsAffected, res.Error
}
