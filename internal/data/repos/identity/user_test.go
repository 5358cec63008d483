package identity

import (
	"context"
	"testing"

	"github.com/yungbote/deliverysla-backend/internal/data/repos/testutil"
)

func TestUserRepo_FirstActiveForClient(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := testutil.DBC(tx)

	role := testutil.SeedRole(t, ctx, tx, "client")
	client := testutil.SeedClient(t, ctx, tx, "acme")
	testutil.SeedUser(t, ctx, tx, role.ID, "off@acme.io", testutil.UserOpts{ClientID: &client.ID, Inactive: true})
	want := testutil.SeedUser(t, ctx, tx, role.ID, "first@acme.io", testutil.UserOpts{ClientID: &client.ID})
	testutil.SeedUser(t, ctx, tx, role.ID, "second@acme.io", testutil.UserOpts{ClientID: &client.ID})

	repo := NewUserRepo(db, testutil.Logger(t))
	got, err := repo.FirstActiveForClient(dbc, client.ID)
	if err != nil || got == nil || got.ID != want.ID {
		t.Fatalf("FirstActiveForClient: want=%d got=%v err=%v", want.ID, got, err)
	}
	if none, err := repo.FirstActiveForClient(dbc, client.ID+50); err != nil || none != nil {
		t.Fatalf("FirstActiveForClient(missing): got=%v err=%v", none, err)
	}
}

func TestUserRepo_ListRoleMembersForOrder(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := testutil.DBC(tx)

	pm := testutil.SeedRole(t, ctx, tx, "pm")
	dev := testutil.SeedRole(t, ctx, tx, "dev")
	client := testutil.SeedClient(t, ctx, tx, "acme")
	order := testutil.SeedOrder(t, ctx, tx, client.ID, "o1")
	otherOrder := testutil.SeedOrder(t, ctx, tx, client.ID, "o2")

	linked := testutil.SeedUser(t, ctx, tx, pm.ID, "pm1@x.io", testutil.UserOpts{})
	external := testutil.SeedUser(t, ctx, tx, pm.ID, "pm2@x.io", testutil.UserOpts{External: true})
	unlinked := testutil.SeedUser(t, ctx, tx, pm.ID, "pm3@x.io", testutil.UserOpts{})
	wrongRole := testutil.SeedUser(t, ctx, tx, dev.ID, "dev@x.io", testutil.UserOpts{})
	testutil.SeedUserOrder(t, ctx, tx, linked.ID, order.ID)
	testutil.SeedUserOrder(t, ctx, tx, external.ID, order.ID)
	testutil.SeedUserOrder(t, ctx, tx, unlinked.ID, otherOrder.ID)
	testutil.SeedUserOrder(t, ctx, tx, wrongRole.ID, order.ID)

	repo := NewUserRepo(db, testutil.Logger(t))
	internal, err := repo.ListRoleMembersForOrder(dbc, pm.ID, order.ID, false)
	if err != nil || len(internal) != 1 || internal[0].ID != linked.ID {
		t.Fatalf("ListRoleMembersForOrder(internal): got=%d rows err=%v", len(internal), err)
	}
	ext, err := repo.ListRoleMembersForOrder(dbc, pm.ID, order.ID, true)
	if err != nil || len(ext) != 1 || ext[0].ID != external.ID {
		t.Fatalf("ListRoleMembersForOrder(external): got=%d rows err=%v", len(ext), err)
	}
}
