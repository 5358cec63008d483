package delivery

import (
	"time"

	"github.com/yungbote/deliverysla-backend/internal/domain/audit"
)

type Stage struct {
	ID          int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name        string `gorm:"column:name;size:50" json:"name"`
	Description string `gorm:"column:description;size:300" json:"description"`
	audit.Audit
}

func (Stage) TableName() string { return "stage" }

type OrderStage struct {
	ID            int64      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	OrderID       int64      `gorm:"column:order_id;not null;uniqueIndex:ux_order_stage" json:"order_id"`
	StageID       int64      `gorm:"column:stage_id;not null;uniqueIndex:ux_order_stage" json:"stage_id"`
	DurationWeeks int        `gorm:"column:duration_weeks;not null;default:2" json:"duration_weeks"`
	StartDate     *time.Time `gorm:"column:start_date;type:date" json:"start_date,omitempty"`
	EndDate       *time.Time `gorm:"column:end_date;type:date" json:"end_date,omitempty"`
	audit.Audit
}

func (OrderStage) TableName() string { return "order_stage" }

// Sprint belongs to an order stage. DocumentDeliveryDate drives the automatic
// major-version rollover of its open deliverables.
type Sprint struct {
	ID                   int64      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	OrderStageID         int64      `gorm:"column:order_stage_id;not null;index" json:"order_stage_id"`
	DurationWeeks        *int       `gorm:"column:duration_weeks" json:"duration_weeks,omitempty"`
	StartDate            *time.Time `gorm:"column:start_date;type:date" json:"start_date,omitempty"`
	EndDate              *time.Time `gorm:"column:end_date;type:date" json:"end_date,omitempty"`
	DocumentDeliveryDate *time.Time `gorm:"column:document_delivery_date;type:date;index" json:"document_delivery_date,omitempty"`
	audit.Audit
}

func (Sprint) TableName() string { return "sprint" }

type DeliverableSprint struct {
	ID            int64 `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	DeliverableID int64 `gorm:"column:deliverable_id;not null;index" json:"deliverable_id"`
	SprintID      int64 `gorm:"column:sprint_id;not null;index" json:"sprint_id"`
	audit.Audit
}

func (DeliverableSprint) TableName() string { return "deliverable_sprint" }
