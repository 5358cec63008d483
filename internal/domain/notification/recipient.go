package notification

import "fmt"

// Recipient is either ToUser or ToRole.
type Recipient interface {
	isRecipient()
	String() string
}

// ToUser addresses a single user.
type ToUser struct {
	UserID int64
}

// ToRole addresses every user holding RoleID who is linked to OrderID.
type ToRole struct {
	RoleID  int64
	OrderID int64
}

func (ToUser) isRecipient() {}
func (ToRole) isRecipient() {}

func (r ToUser) String() string { return fmt.Sprintf("user:%d", r.UserID) }
func (r ToRole) String() string { return fmt.Sprintf("role:%d/order:%d", r.RoleID, r.OrderID) }
