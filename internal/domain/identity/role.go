package identity

import "github.com/yungbote/deliverysla-backend/internal/domain/audit"

type Role struct {
	ID        int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name      string `gorm:"column:name;size:255;uniqueIndex" json:"name"`
	ShortName string `gorm:"column:short_name;size:255" json:"short_name"`
	Active    bool   `gorm:"column:active;not null" json:"active"`
	audit.Audit
}

func (Role) TableName() string { return "role" }
