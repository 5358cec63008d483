package delivery

import (
	"fmt"
	"time"

	"github.com/yungbote/deliverysla-backend/internal/domain/audit"
)

const (
	// StatusAwaitingClient is the ordinal of deliverables waiting on the client.
	StatusAwaitingClient int64 = 3
	// StatusClosedFrom is the first ordinal considered closed; lower is open.
	StatusClosedFrom int64 = 7
)

type DeliverableStatus struct {
	ID          int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name        string `gorm:"column:name;size:50" json:"name"`
	Description string `gorm:"column:description;size:255" json:"description"`
	audit.Audit
}

func (DeliverableStatus) TableName() string { return "deliverable_status" }

// Deliverable is a tracked work product of an order. SlaColor is written only
// by the SLA evaluation job.
type Deliverable struct {
	ID                int64      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	OrderID           int64      `gorm:"column:order_id;not null;index" json:"order_id"`
	ResponsibleUserID *int64     `gorm:"column:responsible_user_id;index" json:"responsible_user_id,omitempty"`
	StatusID          int64      `gorm:"column:status_id;not null;default:1;index" json:"status_id"`
	SlaProfileID      *int64     `gorm:"column:sla_profile_id;index" json:"sla_profile_id,omitempty"`
	SlaColor          string     `gorm:"column:sla_color;size:20;not null;default:''" json:"sla_color"`
	Name              string     `gorm:"column:name;size:300" json:"name"`
	StartDate         *time.Time `gorm:"column:start_date;type:date" json:"start_date,omitempty"`
	EndDate           *time.Time `gorm:"column:end_date;type:date" json:"end_date,omitempty"`
	DeliveryDate      *time.Time `gorm:"column:delivery_date;type:date" json:"delivery_date,omitempty"`
	ApprovalDate      *time.Time `gorm:"column:approval_date;type:date" json:"approval_date,omitempty"`
	audit.Audit
}

func (Deliverable) TableName() string { return "deliverable" }

func (d Deliverable) IsOpen() bool { return d.StatusID < StatusClosedFrom }

// DeliverableFile is one immutable version of a deliverable's document.
// ClientSla is the client-facing color, tracked apart from the deliverable's
// internal SlaColor.
type DeliverableFile struct {
	ID            int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	DeliverableID int64  `gorm:"column:deliverable_id;not null;index" json:"deliverable_id"`
	Major         int    `gorm:"column:major_version;not null;default:0" json:"major_version"`
	Minor         int    `gorm:"column:minor_version;not null;default:0" json:"minor_version"`
	Name          string `gorm:"column:name;size:500" json:"name"`
	Extension     string `gorm:"column:extension;size:500" json:"extension"`
	Comment       string `gorm:"column:comment;size:999" json:"comment"`
	Path          string `gorm:"column:path;size:700" json:"path"`
	Hash          string `gorm:"column:hash;size:300" json:"hash"`
	CurrentSla    string `gorm:"column:current_sla;size:20" json:"current_sla"`
	ClientSla     string `gorm:"column:client_sla;size:20" json:"client_sla"`
	audit.Audit
}

func (DeliverableFile) TableName() string { return "deliverable_file" }

func (f DeliverableFile) VersionName() string {
	return fmt.Sprintf("v%d.%d", f.Major, f.Minor)
}
