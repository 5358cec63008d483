package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/deliverysla-backend/internal/data/repos"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

type Repos struct {
	User             repos.UserRepo
	Order            repos.OrderRepo
	UserOrder        repos.UserOrderRepo
	Deliverable      repos.DeliverableRepo
	DeliverableFile  repos.DeliverableFileRepo
	Status           repos.DeliverableStatusRepo
	SlaProfile       repos.SlaProfileRepo
	ClientSla        repos.ClientSlaRepo
	NonBusinessDay   repos.NonBusinessDayRepo
	Notification     repos.NotificationRepo
	SchedulerJob     repos.SchedulerJobRepo
	SchedulerJobExec repos.SchedulerJobExecutionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:             repos.NewUserRepo(db, log),
		Order:            repos.NewOrderRepo(db, log),
		UserOrder:        repos.NewUserOrderRepo(db, log),
		Deliverable:      repos.NewDeliverableRepo(db, log),
		DeliverableFile:  repos.NewDeliverableFileRepo(db, log),
		Status:           repos.NewDeliverableStatusRepo(db, log),
		SlaProfile:       repos.NewSlaProfileRepo(db, log),
		ClientSla:        repos.NewClientSlaRepo(db, log),
		NonBusinessDay:   repos.NewNonBusinessDayRepo(db, log),
		Notification:     repos.NewNotificationRepo(db, log),
		SchedulerJob:     repos.NewSchedulerJobRepo(db, log),
		SchedulerJobExec: repos.NewSchedulerJobExecutionRepo(db, log),
	}
}
