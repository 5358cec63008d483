package domain

import (
	"time"

	"github.com/yungbote/deliverysla-backend/internal/domain/audit"
	"github.com/yungbote/deliverysla-backend/internal/domain/calendar"
	"github.com/yungbote/deliverysla-backend/internal/domain/delivery"
	"github.com/yungbote/deliverysla-backend/internal/domain/identity"
	"github.com/yungbote/deliverysla-backend/internal/domain/notification"
	"github.com/yungbote/deliverysla-backend/internal/domain/scheduling"
)

const (
	StatusAwaitingClient = delivery.StatusAwaitingClient
	StatusClosedFrom     = delivery.StatusClosedFrom

	DefaultClientSlaID = delivery.DefaultClientSlaID
	DefaultClientID    = delivery.DefaultClientID

	ExecutionRunning  = scheduling.ExecutionRunning
	ExecutionExecuted = scheduling.ExecutionExecuted
	ExecutionError    = scheduling.ExecutionError
)

type Audit = audit.Audit

type Role = identity.Role
type Company = identity.Company
type Client = identity.Client
type User = identity.User

type Contract = delivery.Contract
type Project = delivery.Project
type Order = delivery.Order
type UserOrder = delivery.UserOrder
type Stage = delivery.Stage
type OrderStage = delivery.OrderStage
type Sprint = delivery.Sprint
type DeliverableSprint = delivery.DeliverableSprint
type DeliverableStatus = delivery.DeliverableStatus
type SlaProfile = delivery.SlaProfile
type ClientSla = delivery.ClientSla
type Deliverable = delivery.Deliverable
type DeliverableFile = delivery.DeliverableFile

type NonBusinessDay = calendar.NonBusinessDay

type Notification = notification.Notification
type Recipient = notification.Recipient
type ToUser = notification.ToUser
type ToRole = notification.ToRole

type SchedulerJob = scheduling.SchedulerJob
type SchedulerJobExecution = scheduling.SchedulerJobExecution

// CreatedAudit stamps a new row as created by `by` at `at`.
func CreatedAudit(by string, at time.Time) Audit { return audit.Created(by, at) }

// ApplyRecipient writes r onto n's recipient columns.
func ApplyRecipient(n *Notification, r Recipient) { notification.Apply(n, r) }

// Models lists every persisted model in migration order.
func Models() []any {
	return []any{
		&Role{}, &Company{}, &Client{}, &User{},
		&Contract{}, &Project{}, &Order{}, &UserOrder{},
		&Stage{}, &OrderStage{}, &Sprint{},
		&DeliverableStatus{}, &SlaProfile{}, &ClientSla{},
		&Deliverable{}, &DeliverableSprint{}, &DeliverableFile{},
		&NonBusinessDay{},
		&Notification{},
		&SchedulerJob{}, &SchedulerJobExecution{},
	}
}
