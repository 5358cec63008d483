package testutil

import (
	"context"
	"testing"
	"time"

	types "github.com/yungbote/deliverysla-backend/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func create(tb testing.TB, ctx context.Context, tx *gorm.DB, what string, v any) {
	tb.Helper()
	if err := tx.WithContext(ctx).Create(v).Error; err != nil {
		tb.Fatalf("seed %s: %v", what, err)
	}
}

func SeedRole(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Role {
	tb.Helper()
	r := &types.Role{Name: name, ShortName: name, Active: true}
	create(tb, ctx, tx, "role", r)
	return r
}

// SeedClient creates a company and a client under it.
func SeedClient(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Client {
	tb.Helper()
	co := &types.Company{Name: name + " holding"}
	create(tb, ctx, tx, "company", co)
	c := &types.Client{CompanyID: co.ID, Name: name, ShortName: name, TaxID: "TAX-" + name}
	create(tb, ctx, tx, "client", c)
	return c
}

type UserOpts struct {
	ClientID *int64
	Inactive bool
	External bool
	Deleted  bool
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, roleID int64, email string, opts UserOpts) *types.User {
	tb.Helper()
	u := &types.User{
		RoleID:     roleID,
		ClientID:   opts.ClientID,
		Email:      email,
		FirstName:  "A",
		LastName:   "B",
		IsActive:   !opts.Inactive,
		IsExternal: opts.External,
	}
	if opts.Deleted {
		now := time.Now().UTC()
		u.DeletedAt = &now
	}
	create(tb, ctx, tx, "user", u)
	return u
}

// SeedOrder creates contract -> project -> order for clientID.
func SeedOrder(tb testing.TB, ctx context.Context, tx *gorm.DB, clientID int64, name string) *types.Order {
	tb.Helper()
	ct := &types.Contract{ClientID: clientID, Code: "C-" + name, Name: name}
	create(tb, ctx, tx, "contract", ct)
	p := &types.Project{ContractID: &ct.ID, Code: "P-" + name, Name: name}
	create(tb, ctx, tx, "project", p)
	o := &types.Order{ProjectID: p.ID, Name: name, ShortName: name}
	create(tb, ctx, tx, "order", o)
	return o
}

func SeedUserOrder(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, orderID int64) *types.UserOrder {
	tb.Helper()
	l := &types.UserOrder{UserID: userID, OrderID: orderID}
	create(tb, ctx, tx, "user order", l)
	return l
}

func SeedSlaProfile(tb testing.TB, ctx context.Context, tx *gorm.DB, clientID int64, green, yellow, red int) *types.SlaProfile {
	tb.Helper()
	p := &types.SlaProfile{
		ClientID:   clientID,
		Code:       "IB",
		Name:       "profile",
		GreenDays:  green,
		YellowDays: yellow,
		RedDays:    red,
	}
	create(tb, ctx, tx, "sla profile", p)
	return p
}

func SeedClientSla(tb testing.TB, ctx context.Context, tx *gorm.DB, clientID int64, green, yellow, red int) *types.ClientSla {
	tb.Helper()
	c := &types.ClientSla{ClientID: clientID, GreenDays: green, YellowDays: yellow, RedDays: red}
	create(tb, ctx, tx, "client sla", c)
	return c
}

type DeliverableOpts struct {
	ResponsibleUserID *int64
	StatusID          int64
	SlaProfileID      *int64
	StartDate         *time.Time
	Deleted           bool
}

func SeedDeliverable(tb testing.TB, ctx context.Context, tx *gorm.DB, orderID int64, name string, opts DeliverableOpts) *types.Deliverable {
	tb.Helper()
	status := opts.StatusID
	if status == 0 {
		status = 1
	}
	d := &types.Deliverable{
		OrderID:           orderID,
		ResponsibleUserID: opts.ResponsibleUserID,
		StatusID:          status,
		SlaProfileID:      opts.SlaProfileID,
		Name:              name,
		StartDate:         opts.StartDate,
	}
	if opts.Deleted {
		now := time.Now().UTC()
		d.DeletedAt = &now
	}
	create(tb, ctx, tx, "deliverable", d)
	return d
}

func SeedStatus(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.DeliverableStatus {
	tb.Helper()
	s := &types.DeliverableStatus{Name: name}
	create(tb, ctx, tx, "deliverable status", s)
	return s
}

func SeedFile(tb testing.TB, ctx context.Context, tx *gorm.DB, deliverableID int64, major, minor int, deleted bool) *types.DeliverableFile {
	tb.Helper()
	f := &types.DeliverableFile{
		DeliverableID: deliverableID,
		Major:         major,
		Minor:         minor,
		Name:          "doc",
		Extension:     "pdf",
		Comment:       "seeded",
		Path:          "files/doc.pdf",
		Hash:          "abc",
		CurrentSla:    "GREEN",
	}
	if deleted {
		now := time.Now().UTC()
		f.DeletedAt = &now
	}
	create(tb, ctx, tx, "deliverable file", f)
	return f
}

// SeedSprint creates a stage, an order stage and a sprint under orderID.
func SeedSprint(tb testing.TB, ctx context.Context, tx *gorm.DB, orderID int64, documentDelivery *time.Time) *types.Sprint {
	tb.Helper()
	st := &types.Stage{Name: "stage"}
	create(tb, ctx, tx, "stage", st)
	ost := &types.OrderStage{OrderID: orderID, StageID: st.ID, DurationWeeks: 2}
	create(tb, ctx, tx, "order stage", ost)
	s := &types.Sprint{OrderStageID: ost.ID, DocumentDeliveryDate: documentDelivery}
	create(tb, ctx, tx, "sprint", s)
	return s
}

func LinkSprint(tb testing.TB, ctx context.Context, tx *gorm.DB, deliverableID, sprintID int64) *types.DeliverableSprint {
	tb.Helper()
	l := &types.DeliverableSprint{DeliverableID: deliverableID, SprintID: sprintID}
	create(tb, ctx, tx, "deliverable sprint", l)
	return l
}

func SeedHoliday(tb testing.TB, ctx context.Context, tx *gorm.DB, day time.Time) *types.NonBusinessDay {
	tb.Helper()
	h := &types.NonBusinessDay{Date: day}
	create(tb, ctx, tx, "non business day", h)
	return h
}

func SeedNotification(tb testing.TB, ctx context.Context, tx *gorm.DB, n *types.Notification) *types.Notification {
	tb.Helper()
	if n.Payload == nil {
		n.Payload = datatypes.JSON([]byte("{}"))
	}
	create(tb, ctx, tx, "notification", n)
	return n
}
