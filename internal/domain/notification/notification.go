package notification

import (
	"gorm.io/datatypes"

	"github.com/yungbote/deliverysla-backend/internal/domain/audit"
)

// Notification is a pending or dispatched message. ModifiedAt == nil means it
// has not been dispatched yet. Exactly one of UserID and RoleID is set; use
// Recipient and Apply instead of reading them directly.
type Notification struct {
	ID       int64          `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID   *int64         `gorm:"column:user_id;index" json:"user_id,omitempty"`
	RoleID   *int64         `gorm:"column:role_id;index" json:"role_id,omitempty"`
	OrderID  *int64         `gorm:"column:order_id;index" json:"order_id,omitempty"`
	External bool           `gorm:"column:external;not null;default:false" json:"external"`
	Title    string         `gorm:"column:title;size:255" json:"title"`
	Text     string         `gorm:"column:text;size:500" json:"text"`
	Template string         `gorm:"column:template;size:255" json:"template"`
	Payload  datatypes.JSON `gorm:"column:payload" json:"payload"`
	audit.Audit
}

func (Notification) TableName() string { return "notification" }

func (n Notification) Dispatched() bool { return n.ModifiedAt != nil }

// Recipient returns the addressee encoded in the row, or nil when the row
// carries neither a user nor a role.
func (n Notification) Recipient() Recipient {
	if n.UserID != nil {
		return ToUser{UserID: *n.UserID}
	}
	if n.RoleID != nil {
		r := ToRole{RoleID: *n.RoleID}
		if n.OrderID != nil {
			r.OrderID = *n.OrderID
		}
		return r
	}
	return nil
}

// Apply writes r onto n's recipient columns, clearing the other variant.
func Apply(n *Notification, r Recipient) {
	n.UserID, n.RoleID = nil, nil
	switch v := r.(type) {
	case ToUser:
		id := v.UserID
		n.UserID = &id
	case ToRole:
		role, order := v.RoleID, v.OrderID
		n.RoleID = &role
		n.OrderID = &order
	}
}
