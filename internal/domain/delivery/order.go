package delivery

import (
	"time"

	"github.com/yungbote/deliverysla-backend/internal/domain/audit"
)

type Contract struct {
	ID       int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ClientID int64  `gorm:"column:client_id;not null;index" json:"client_id"`
	Code     string `gorm:"column:code;size:255" json:"code"`
	Name     string `gorm:"column:name;size:255" json:"name"`
	audit.Audit
}

func (Contract) TableName() string { return "contract" }

type Project struct {
	ID         int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ContractID *int64 `gorm:"column:contract_id;index" json:"contract_id,omitempty"`
	Code       string `gorm:"column:code;size:255" json:"code"`
	Name       string `gorm:"column:name;size:255" json:"name"`
	audit.Audit
}

func (Project) TableName() string { return "project" }

// Order is a service order: the top-level engagement that groups stages,
// sprints and deliverables.
type Order struct {
	ID                int64      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ProjectID         int64      `gorm:"column:project_id;not null;index" json:"project_id"`
	ResponsibleUserID *int64     `gorm:"column:responsible_user_id;index" json:"responsible_user_id,omitempty"`
	DurationWeeks     *int       `gorm:"column:duration_weeks" json:"duration_weeks,omitempty"`
	Name              string     `gorm:"column:name;size:255" json:"name"`
	ShortName         string     `gorm:"column:short_name;size:255" json:"short_name"`
	StartDate         *time.Time `gorm:"column:start_date;type:date" json:"start_date,omitempty"`
	EndDate           *time.Time `gorm:"column:end_date;type:date" json:"end_date,omitempty"`
	audit.Audit
}

func (Order) TableName() string { return "service_order" }

// UserOrder links a user to an order; role fan-out only reaches linked users.
type UserOrder struct {
	ID      int64 `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID  int64 `gorm:"column:user_id;not null;uniqueIndex:ux_user_order" json:"user_id"`
	OrderID int64 `gorm:"column:order_id;not null;uniqueIndex:ux_user_order;index" json:"order_id"`
	audit.Audit
}

func (UserOrder) TableName() string { return "user_order" }
