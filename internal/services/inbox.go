package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/yungbote/deliverysla-backend/internal/data/repos"
	types "github.com/yungbote/deliverysla-backend/internal/domain"
	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/deliverysla-backend/internal/pkg/errors"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

const defaultInboxLimit = 200

// InboxService is the user-facing view over notifications: what a user sees
// in the bell menu and how they dismiss an entry.
type InboxService interface {
	List(dbc dbctx.Context, userID int64) ([]*types.Notification, error)
	Dismiss(dbc dbctx.Context, notificationID, byUserID int64) error
}

type inboxService struct {
	log           *logger.Logger
	users         repos.UserRepo
	orders        repos.OrderRepo
	userOrders    repos.UserOrderRepo
	notifications repos.NotificationRepo
	now           func() time.Time
}

func NewInboxService(log *logger.Logger, users repos.UserRepo, orders repos.OrderRepo, userOrders repos.UserOrderRepo, notifications repos.NotificationRepo) InboxService {
	return &inboxService{
		log:           log.With("service", "InboxService"),
		users:         users,
		orders:        orders,
		userOrders:    userOrders,
		notifications: notifications,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// List returns the live notifications addressed to the user plus the role
// notifications for the user's role on orders they can see: orders they are
// linked to for internal users, orders of their client for external users.
func (s *inboxService) List(dbc dbctx.Context, userID int64) ([]*types.Notification, error) {
	u, err := s.users.GetByID(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user %d", apperr.ErrNotFound, userID)
	}

	var orderIDs []int64
	switch {
	case !u.IsExternal:
		orderIDs, err = s.userOrders.ListOrderIDsForUser(dbc, u.ID)
	case u.ClientID != nil:
		orderIDs, err = s.orders.ListIDsForClient(dbc, *u.ClientID)
	}
	if err != nil {
		return nil, fmt.Errorf("visible orders: %w", err)
	}

	return s.notifications.ListInbox(dbc, repos.InboxQuery{
		UserID:   u.ID,
		RoleID:   u.RoleID,
		OrderIDs: orderIDs,
		External: u.IsExternal,
		Limit:    defaultInboxLimit,
	})
}

// Dismiss soft-deletes a live notification on behalf of byUserID.
func (s *inboxService) Dismiss(dbc dbctx.Context, notificationID, byUserID int64) error {
	ok, err := s.notifications.SoftDelete(dbc, notificationID, strconv.FormatInt(byUserID, 10), s.now())
	if err != nil {
		return fmt.Errorf("dismiss notification %d: %w", notificationID, err)
	}
	if !ok {
		return fmt.Errorf("%w: notification %d", apperr.ErrNotFound, notificationID)
	}
	s.log.Debug("Notification dismissed", "notification_id", notificationID, "user_id", byUserID)
	return nil
}
