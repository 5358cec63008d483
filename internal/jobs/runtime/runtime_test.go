package runtime

import (
	"context"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

type stubHandler struct{ id string }

func (s stubHandler) Type() string       { return s.id }
func (s stubHandler) Run(*Context) error { return nil }

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(stubHandler{id: "b"}); err != nil {
		t.Fatalf("Register b: %v", err)
	}
	if err := r.Register(stubHandler{id: "a"}); err != nil {
		t.Fatalf("Register a: %v", err)
	}
	if err := r.Register(stubHandler{id: "a"}); err == nil {
		t.Fatalf("Register duplicate: want error")
	}
	if err := r.Register(stubHandler{}); err == nil {
		t.Fatalf("Register empty type: want error")
	}
	if err := r.Register(nil); err == nil {
		t.Fatalf("Register nil: want error")
	}
	if _, ok := r.Get("a"); !ok {
		t.Fatalf("Get(a): want found")
	}
	if got := r.Types(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("Types: want=[a b] got=%v", got)
	}
}

func TestContextReport(t *testing.T) {
	c := NewContext(context.Background(), "send_mails", uuid.New(), true, logger.Nop())
	c.Report("sent", 3)
	c.Report("failed", 1)
	c.Report("sent", 4)

	res := c.Result()
	if res["sent"] != 4 || res["failed"] != 1 {
		t.Fatalf("Result: got=%v", res)
	}
	res["sent"] = 99
	if c.Result()["sent"] != 4 {
		t.Fatalf("Result: want a copy")
	}
	if got := c.ResultKV(); !reflect.DeepEqual(got, []any{"failed", 1, "sent", 4}) {
		t.Fatalf("ResultKV: got=%v", got)
	}
}
