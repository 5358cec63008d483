package delivery

import (
	"context"
	"testing"

	"github.com/yungbote/deliverysla-backend/internal/data/repos/testutil"
)

func TestDeliverableStatusRepo_GetNames(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := testutil.DBC(tx)

	review := testutil.SeedStatus(t, ctx, tx, "En revision")
	waiting := testutil.SeedStatus(t, ctx, tx, "Awaiting client")

	repo := NewDeliverableStatusRepo(db, testutil.Logger(t))
	names, err := repo.GetNames(dbc, []int64{review.ID, waiting.ID, 999})
	if err != nil {
		t.Fatalf("GetNames: %v", err)
	}
	if len(names) != 2 || names[review.ID] != "En revision" || names[waiting.ID] != "Awaiting client" {
		t.Fatalf("GetNames: got=%v", names)
	}
	if _, ok := names[999]; ok {
		t.Fatalf("GetNames: unknown id should be absent")
	}

	empty, err := repo.GetNames(dbc, nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("GetNames(nil): got=%v err=%v", empty, err)
	}
}
