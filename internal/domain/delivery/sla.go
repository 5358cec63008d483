package delivery

import "github.com/yungbote/deliverysla-backend/internal/domain/audit"

// DefaultClientSlaID is the client SLA row used when a client has none of its own.
const DefaultClientSlaID int64 = 1

// DefaultClientID owns the fallback set of initial deliverables.
const DefaultClientID int64 = 1

// SlaProfile is a deliverable type ("InfoBlue"): a named template scoped to a
// client that carries the internal SLA thresholds for deliverables of that type.
type SlaProfile struct {
	ID                 int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ClientID           int64  `gorm:"column:client_id;not null;index" json:"client_id"`
	Stage              int    `gorm:"column:stage;not null;default:0" json:"stage"`
	Code               string `gorm:"column:code;size:255" json:"code"`
	Name               string `gorm:"column:name;size:255" json:"name"`
	InitialDeliverable bool   `gorm:"column:initial_deliverable;not null;default:false;index" json:"initial_deliverable"`
	Path               string `gorm:"column:path;size:500" json:"path"`
	GreenDays          int    `gorm:"column:green_days;not null;default:0" json:"green_days"`
	YellowDays         int    `gorm:"column:yellow_days;not null;default:0" json:"yellow_days"`
	RedDays            int    `gorm:"column:red_days;not null;default:0" json:"red_days"`
	audit.Audit
}

func (SlaProfile) TableName() string { return "sla_profile" }

// ClientSla holds the client-attention thresholds for one client.
type ClientSla struct {
	ID         int64 `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ClientID   int64 `gorm:"column:client_id;not null;uniqueIndex" json:"client_id"`
	GreenDays  int   `gorm:"column:green_days;not null;default:0" json:"green_days"`
	YellowDays int   `gorm:"column:yellow_days;not null;default:0" json:"yellow_days"`
	RedDays    int   `gorm:"column:red_days;not null;default:0" json:"red_days"`
	audit.Audit
}

func (ClientSla) TableName() string { return "client_sla" }
