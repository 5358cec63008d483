package identity

import (
	"gorm.io/gorm"

	types "github.com/yungbote/deliverysla-backend/internal/domain"
	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

type UserRepo interface {
	Create(dbc dbctx.Context, users []*types.User) ([]*types.User, error)
	GetByID(dbc dbctx.Context, id int64) (*types.User, error)
	GetByIDs(dbc dbctx.Context, ids []int64) ([]*types.User, error)
	FirstActiveForClient(dbc dbctx.Context, clientID int64) (*types.User, error)
	ListRoleMembersForOrder(dbc dbctx.Context, roleID, orderID int64, external bool) ([]*types.User, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) Create(dbc dbctx.Context, users []*types.User) ([]*types.User, error) {
	if len(users) == 0 {
		return []*types.User{}, nil
	}
	if err := dbc.Conn(r.db).Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) GetByID(dbc dbctx.Context, id int64) (*types.User, error) {
	if id <= 0 {
		return nil, nil
	}
	var u types.User
	if err := dbc.Conn(r.db).
		Where("id = ? AND deleted_at IS NULL", id).
		Limit(1).
		Find(&u).Error; err != nil {
		return nil, err
	}
	if u.ID == 0 {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) GetByIDs(dbc dbctx.Context, ids []int64) ([]*types.User, error) {
	var out []*types.User
	if len(ids) == 0 {
		return out, nil
	}
	if err := dbc.Conn(r.db).
		Where("id IN ? AND deleted_at IS NULL", ids).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FirstActiveForClient returns the lowest-id active user of the client.
func (r *userRepo) FirstActiveForClient(dbc dbctx.Context, clientID int64) (*types.User, error) {
	var u types.User
	if err := dbc.Conn(r.db).
		Where("client_id = ? AND is_active = ? AND deleted_at IS NULL", clientID, true).
		Order("id ASC").
		Limit(1).
		Find(&u).Error; err != nil {
		return nil, err
	}
	if u.ID == 0 {
		return nil, nil
	}
	return &u, nil
}

// ListRoleMembersForOrder returns users holding roleID who are linked to
// orderID and whose external flag equals external.
func (r *userRepo) ListRoleMembersForOrder(dbc dbctx.Context, roleID, orderID int64, external bool) ([]*types.User, error) {
	conn := dbc.Conn(r.db)
	linked := conn.Session(&gorm.Session{NewDB: true}).
		Model(&types.UserOrder{}).
		Select("user_id").
		Where("order_id = ? AND deleted_at IS NULL", orderID)

	var out []*types.User
	if err := conn.
		Where("role_id = ? AND is_external = ? AND deleted_at IS NULL", roleID, external).
		Where("id IN (?)", linked).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
