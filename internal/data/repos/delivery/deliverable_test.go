package delivery

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/deliverysla-backend/internal/data/repos/testutil"
)

func TestDeliverableRepo_ListSlaCandidates(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := testutil.DBC(tx)

	role := testutil.SeedRole(t, ctx, tx, "dev")
	client := testutil.SeedClient(t, ctx, tx, "acme")
	active := testutil.SeedUser(t, ctx, tx, role.ID, "a@x.io", testutil.UserOpts{})
	inactive := testutil.SeedUser(t, ctx, tx, role.ID, "b@x.io", testutil.UserOpts{Inactive: true})
	gone := testutil.SeedUser(t, ctx, tx, role.ID, "c@x.io", testutil.UserOpts{Deleted: true})
	order := testutil.SeedOrder(t, ctx, tx, client.ID, "o1")

	open := testutil.SeedDeliverable(t, ctx, tx, order.ID, "open", testutil.DeliverableOpts{ResponsibleUserID: &active.ID, StatusID: 6})
	testutil.SeedDeliverable(t, ctx, tx, order.ID, "closed", testutil.DeliverableOpts{ResponsibleUserID: &active.ID, StatusID: 7})
	testutil.SeedDeliverable(t, ctx, tx, order.ID, "deleted", testutil.DeliverableOpts{ResponsibleUserID: &active.ID, Deleted: true})
	testutil.SeedDeliverable(t, ctx, tx, order.ID, "inactive owner", testutil.DeliverableOpts{ResponsibleUserID: &inactive.ID})
	testutil.SeedDeliverable(t, ctx, tx, order.ID, "deleted owner", testutil.DeliverableOpts{ResponsibleUserID: &gone.ID})
	testutil.SeedDeliverable(t, ctx, tx, order.ID, "no owner", testutil.DeliverableOpts{})

	repo := NewDeliverableRepo(db, testutil.Logger(t))
	got, err := repo.ListSlaCandidates(dbc)
	if err != nil {
		t.Fatalf("ListSlaCandidates: %v", err)
	}
	if len(got) != 1 || got[0].ID != open.ID {
		t.Fatalf("ListSlaCandidates: want=[%d] got=%v", open.ID, ids(got))
	}

	now := time.Now().UTC()
	if err := repo.UpdateSlaColor(dbc, open.ID, "RED", "JOB_SLA", now); err != nil {
		t.Fatalf("UpdateSlaColor: %v", err)
	}
	reloaded, err := repo.GetByID(dbc, open.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("GetByID: err=%v row=%v", err, reloaded)
	}
	if reloaded.SlaColor != "RED" || reloaded.ModifiedBy == nil || *reloaded.ModifiedBy != "JOB_SLA" {
		t.Fatalf("UpdateSlaColor: got color=%q by=%v", reloaded.SlaColor, reloaded.ModifiedBy)
	}
}

func TestDeliverableRepo_ListAwaitingClient(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	acme := testutil.SeedClient(t, ctx, tx, "acme")
	globex := testutil.SeedClient(t, ctx, tx, "globex")
	o1 := testutil.SeedOrder(t, ctx, tx, acme.ID, "o1")
	o2 := testutil.SeedOrder(t, ctx, tx, globex.ID, "o2")

	a := testutil.SeedDeliverable(t, ctx, tx, o1.ID, "a", testutil.DeliverableOpts{StatusID: 3})
	b := testutil.SeedDeliverable(t, ctx, tx, o2.ID, "b", testutil.DeliverableOpts{StatusID: 3})
	testutil.SeedDeliverable(t, ctx, tx, o1.ID, "wrong status", testutil.DeliverableOpts{StatusID: 2})
	testutil.SeedDeliverable(t, ctx, tx, o1.ID, "deleted", testutil.DeliverableOpts{StatusID: 3, Deleted: true})

	repo := NewDeliverableRepo(db, testutil.Logger(t))
	got, err := repo.ListAwaitingClient(testutil.DBC(tx))
	if err != nil {
		t.Fatalf("ListAwaitingClient: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListAwaitingClient: want=2 got=%d", len(got))
	}
	if got[0].Deliverable.ID != a.ID || got[0].ClientID != acme.ID {
		t.Fatalf("ListAwaitingClient[0]: got deliverable=%d client=%d", got[0].Deliverable.ID, got[0].ClientID)
	}
	if got[1].Deliverable.ID != b.ID || got[1].ClientID != globex.ID {
		t.Fatalf("ListAwaitingClient[1]: got deliverable=%d client=%d", got[1].Deliverable.ID, got[1].ClientID)
	}
}

func TestDeliverableRepo_ListOpenDueForDocumentDelivery(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	client := testutil.SeedClient(t, ctx, tx, "acme")
	order := testutil.SeedOrder(t, ctx, tx, client.ID, "o1")
	day := testutil.Day(2024, time.March, 4)
	other := testutil.Day(2024, time.March, 5)

	due := testutil.SeedSprint(t, ctx, tx, order.ID, &day)
	later := testutil.SeedSprint(t, ctx, tx, order.ID, &other)
	undated := testutil.SeedSprint(t, ctx, tx, order.ID, nil)

	open := testutil.SeedDeliverable(t, ctx, tx, order.ID, "open", testutil.DeliverableOpts{StatusID: 2})
	closed := testutil.SeedDeliverable(t, ctx, tx, order.ID, "closed", testutil.DeliverableOpts{StatusID: 8})
	notDue := testutil.SeedDeliverable(t, ctx, tx, order.ID, "not due", testutil.DeliverableOpts{StatusID: 2})
	testutil.LinkSprint(t, ctx, tx, open.ID, due.ID)
	testutil.LinkSprint(t, ctx, tx, open.ID, undated.ID)
	testutil.LinkSprint(t, ctx, tx, closed.ID, due.ID)
	testutil.LinkSprint(t, ctx, tx, notDue.ID, later.ID)

	repo := NewDeliverableRepo(db, testutil.Logger(t))
	got, err := repo.ListOpenDueForDocumentDelivery(testutil.DBC(tx), day)
	if err != nil {
		t.Fatalf("ListOpenDueForDocumentDelivery: %v", err)
	}
	if len(got) != 1 || got[0].ID != open.ID {
		t.Fatalf("ListOpenDueForDocumentDelivery: want=[%d] got=%v", open.ID, ids(got))
	}
}

func TestDeliverableFileRepo_GetCurrent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := testutil.DBC(tx)

	client := testutil.SeedClient(t, ctx, tx, "acme")
	order := testutil.SeedOrder(t, ctx, tx, client.ID, "o1")
	d := testutil.SeedDeliverable(t, ctx, tx, order.ID, "d", testutil.DeliverableOpts{})

	repo := NewDeliverableFileRepo(db, testutil.Logger(t))
	if cur, err := repo.GetCurrent(dbc, d.ID); err != nil || cur != nil {
		t.Fatalf("GetCurrent (empty): want=nil got=%v err=%v", cur, err)
	}

	testutil.SeedFile(t, ctx, tx, d.ID, 1, 9, false)
	want := testutil.SeedFile(t, ctx, tx, d.ID, 2, 1, false)
	testutil.SeedFile(t, ctx, tx, d.ID, 2, 0, false)
	testutil.SeedFile(t, ctx, tx, d.ID, 3, 0, true)

	cur, err := repo.GetCurrent(dbc, d.ID)
	if err != nil {
		t.Fatalf("GetCurrent: %v", err)
	}
	if cur == nil || cur.ID != want.ID {
		t.Fatalf("GetCurrent: want=%d got=%v", want.ID, cur)
	}

	if err := repo.UpdateClientSla(dbc, cur.ID, "YELLOW", "JOB_SLA_CLIENT", time.Now().UTC()); err != nil {
		t.Fatalf("UpdateClientSla: %v", err)
	}
	files, err := repo.ListByDeliverable(dbc, d.ID)
	if err != nil || len(files) != 4 {
		t.Fatalf("ListByDeliverable: err=%v len=%d", err, len(files))
	}
	for _, f := range files {
		if f.ID == want.ID && f.ClientSla != "YELLOW" {
			t.Fatalf("UpdateClientSla: want=YELLOW got=%q", f.ClientSla)
		}
		if f.ID != want.ID && f.ClientSla != "" {
			t.Fatalf("UpdateClientSla touched file %d", f.ID)
		}
	}
}

func TestOrderRepo_ClientIDForOrder(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := testutil.DBC(tx)

	client := testutil.SeedClient(t, ctx, tx, "acme")
	order := testutil.SeedOrder(t, ctx, tx, client.ID, "o1")

	repo := NewOrderRepo(db, testutil.Logger(t))
	got, ok, err := repo.ClientIDForOrder(dbc, order.ID)
	if err != nil || !ok || got != client.ID {
		t.Fatalf("ClientIDForOrder: want=%d got=%d ok=%v err=%v", client.ID, got, ok, err)
	}
	if _, ok, err := repo.ClientIDForOrder(dbc, order.ID+100); err != nil || ok {
		t.Fatalf("ClientIDForOrder (missing): ok=%v err=%v", ok, err)
	}
	orderIDs, err := repo.ListIDsForClient(dbc, client.ID)
	if err != nil || len(orderIDs) != 1 || orderIDs[0] != order.ID {
		t.Fatalf("ListIDsForClient: got=%v err=%v", orderIDs, err)
	}
}
