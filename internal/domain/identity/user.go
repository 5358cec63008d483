package identity

import (
	"strings"

	"github.com/yungbote/deliverysla-backend/internal/domain/audit"
)

// User is either internal staff or an external (client-side) contact.
// External users only ever receive role notifications marked external.
type User struct {
	ID             int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	RoleID         int64  `gorm:"column:role_id;not null;index" json:"role_id"`
	ClientID       *int64 `gorm:"column:client_id;index" json:"client_id,omitempty"`
	Email          string `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	FirstName      string `gorm:"column:first_name;size:255" json:"first_name"`
	LastName       string `gorm:"column:last_name;size:255" json:"last_name"`
	SecondLastName string `gorm:"column:second_last_name;size:255" json:"second_last_name"`
	Position       string `gorm:"column:position;size:255" json:"position"`
	IsActive       bool   `gorm:"column:is_active;not null;index" json:"is_active"`
	IsExternal     bool   `gorm:"column:is_external;not null;default:false;index" json:"is_external"`
	audit.Audit
}

func (User) TableName() string { return "user" }

func (u User) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{u.FirstName, u.LastName, u.SecondLastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
