package repos

import (
	"github.com/yungbote/deliverysla-backend/internal/data/repos/calendar"
	"github.com/yungbote/deliverysla-backend/internal/data/repos/delivery"
	"github.com/yungbote/deliverysla-backend/internal/data/repos/identity"
	"github.com/yungbote/deliverysla-backend/internal/data/repos/notification"
	"github.com/yungbote/deliverysla-backend/internal/data/repos/scheduling"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
	"gorm.io/gorm"
)

type UserRepo = identity.UserRepo

type OrderRepo = delivery.OrderRepo
type UserOrderRepo = delivery.UserOrderRepo
type DeliverableRepo = delivery.DeliverableRepo
type DeliverableStatusRepo = delivery.DeliverableStatusRepo
type DeliverableFileRepo = delivery.DeliverableFileRepo
type SlaProfileRepo = delivery.SlaProfileRepo
type ClientSlaRepo = delivery.ClientSlaRepo
type ClientCandidate = delivery.ClientCandidate

type NonBusinessDayRepo = calendar.NonBusinessDayRepo

type NotificationRepo = notification.NotificationRepo
type InboxQuery = notification.InboxQuery

type SchedulerJobRepo = scheduling.SchedulerJobRepo
type SchedulerJobExecutionRepo = scheduling.SchedulerJobExecutionRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return identity.NewUserRepo(db, baseLog)
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	return delivery.NewOrderRepo(db, baseLog)
}
func NewUserOrderRepo(db *gorm.DB, baseLog *logger.Logger) UserOrderRepo {
	return delivery.NewUserOrderRepo(db, baseLog)
}
func NewDeliverableRepo(db *gorm.DB, baseLog *logger.Logger) DeliverableRepo {
	return delivery.NewDeliverableRepo(db, baseLog)
}
func NewDeliverableStatusRepo(db *gorm.DB, baseLog *logger.Logger) DeliverableStatusRepo {
	return delivery.NewDeliverableStatusRepo(db, baseLog)
}
func NewDeliverableFileRepo(db *gorm.DB, baseLog *logger.Logger) DeliverableFileRepo {
	return delivery.NewDeliverableFileRepo(db, baseLog)
}
func NewSlaProfileRepo(db *gorm.DB, baseLog *logger.Logger) SlaProfileRepo {
	return delivery.NewSlaProfileRepo(db, baseLog)
}
func NewClientSlaRepo(db *gorm.DB, baseLog *logger.Logger) ClientSlaRepo {
	return delivery.NewClientSlaRepo(db, baseLog)
}

func NewNonBusinessDayRepo(db *gorm.DB, baseLog *logger.Logger) NonBusinessDayRepo {
	return calendar.NewNonBusinessDayRepo(db, baseLog)
}

func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
	return notification.NewNotificationRepo(db, baseLog)
}

func NewSchedulerJobRepo(db *gorm.DB, baseLog *logger.Logger) SchedulerJobRepo {
	return scheduling.NewSchedulerJobRepo(db, baseLog)
}
func NewSchedulerJobExecutionRepo(db *gorm.DB, baseLog *logger.Logger) SchedulerJobExecutionRepo {
	return scheduling.NewSchedulerJobExecutionRepo(db, baseLog)
}
