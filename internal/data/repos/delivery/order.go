package delivery

import (
	"gorm.io/gorm"

	types "github.com/yungbote/deliverysla-backend/internal/domain"
	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

type OrderRepo interface {
	Create(dbc dbctx.Context, orders []*types.Order) ([]*types.Order, error)
	GetByIDs(dbc dbctx.Context, ids []int64) ([]*types.Order, error)
	ClientIDForOrder(dbc dbctx.Context, orderID int64) (int64, bool, error)
	ListIDsForClient(dbc dbctx.Context, clientID int64) ([]int64, error)
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	return &orderRepo{db: db, log: baseLog.With("repo", "OrderRepo")}
}

func (r *orderRepo) Create(dbc dbctx.Context, orders []*types.Order) ([]*types.Order, error) {
	if len(orders) == 0 {
		return []*types.Order{}, nil
	}
	if err := dbc.Conn(r.db).Create(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepo) GetByIDs(dbc dbctx.Context, ids []int64) ([]*types.Order, error) {
	var out []*types.Order
	if len(ids) == 0 {
		return out, nil
	}
	if err := dbc.Conn(r.db).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ClientIDForOrder resolves order -> project -> contract -> client. The bool
// is false when any link in the chain is missing.
func (r *orderRepo) ClientIDForOrder(dbc dbctx.Context, orderID int64) (int64, bool, error) {
	var rows []struct {
		ClientID int64
	}
	err := dbc.Conn(r.db).
		Table("service_order").
		Select("contract.client_id AS client_id").
		Joins("JOIN project ON project.id = service_order.project_id").
		Joins("JOIN contract ON contract.id = project.contract_id").
		Where("service_order.id = ?", orderID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return 0, false, err
	}
	if len(rows) == 0 || rows[0].ClientID == 0 {
		return 0, false, nil
	}
	return rows[0].ClientID, true, nil
}

func (r *orderRepo) ListIDsForClient(dbc dbctx.Context, clientID int64) ([]int64, error) {
	var ids []int64
	err := dbc.Conn(r.db).
		Table("service_order").
		Joins("JOIN project ON project.id = service_order.project_id").
		Joins("JOIN contract ON contract.id = project.contract_id").
		Where("contract.client_id = ? AND service_order.deleted_at IS NULL", clientID).
		Order("service_order.id ASC").
		Pluck("service_order.id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

type UserOrderRepo interface {
	Create(dbc dbctx.Context, links []*types.UserOrder) ([]*types.UserOrder, error)
	ListOrderIDsForUser(dbc dbctx.Context, userID int64) ([]int64, error)
}

type userOrderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserOrderRepo(db *gorm.DB, baseLog *logger.Logger) UserOrderRepo {
	return &userOrderRepo{db: db, log: baseLog.With("repo", "UserOrderRepo")}
}

func (r *userOrderRepo) Create(dbc dbctx.Context, links []*types.UserOrder) ([]*types.UserOrder, error) {
	if len(links) == 0 {
		return []*types.UserOrder{}, nil
	}
	if err := dbc.Conn(r.db).Create(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *userOrderRepo) ListOrderIDsForUser(dbc dbctx.Context, userID int64) ([]int64, error) {
	var ids []int64
	if err := dbc.Conn(r.db).
		Model(&types.UserOrder{}).
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Order("order_id ASC").
		Pluck("order_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
