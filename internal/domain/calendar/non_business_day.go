package calendar

import (
	"time"

	"github.com/yungbote/deliverysla-backend/internal/domain/audit"
)

// NonBusinessDay flags a calendar date as non-working in addition to weekends.
type NonBusinessDay struct {
	ID   int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Date time.Time `gorm:"column:date;type:date;not null;index" json:"date"`
	audit.Audit
}

func (NonBusinessDay) TableName() string { return "non_business_day" }
