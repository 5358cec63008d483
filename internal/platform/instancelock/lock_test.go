package instancelock

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

func TestNew_BadURL(t *testing.T) {
	if _, err := New(Config{URL: "not-a-url"}, logger.Nop()); err == nil {
		t.Fatalf("New: want error for bad url")
	}
}

func TestNew_Defaults(t *testing.T) {
	l, err := New(Config{URL: "redis://127.0.0.1:6379/0"}, logger.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer l.rdb.Close()
	if l.key != "deliverysla:scheduler" {
		t.Fatalf("key: want=%q got=%q", "deliverysla:scheduler", l.key)
	}
	if l.ttl != 30*time.Second {
		t.Fatalf("ttl: want=30s got=%s", l.ttl)
	}
	if l.token == "" {
		t.Fatalf("token: want non-empty")
	}
}

func TestLock_SecondInstanceBlocked(t *testing.T) {
	url := strings.TrimSpace(os.Getenv("DELIVERYSLA_TEST_REDIS_URL"))
	if url == "" {
		t.Skip("set DELIVERYSLA_TEST_REDIS_URL to run redis lock tests")
	}
	ctx := context.Background()
	key := "deliverysla:test:" + time.Now().Format("150405.000000000")

	a, err := New(Config{URL: url, Key: key, TTL: 3 * time.Second}, logger.Nop())
	if err != nil {
		t.Fatalf("New a: %v", err)
	}
	b, err := New(Config{URL: url, Key: key, TTL: 3 * time.Second}, logger.Nop())
	if err != nil {
		t.Fatalf("New b: %v", err)
	}

	if err := a.Acquire(ctx); err != nil {
		t.Fatalf("a.Acquire: %v", err)
	}
	if err := b.Acquire(ctx); !errors.Is(err, ErrHeld) {
		t.Fatalf("b.Acquire: want=ErrHeld got=%v", err)
	}
	if err := a.Release(ctx); err != nil {
		t.Fatalf("a.Release: %v", err)
	}
	if err := b.Acquire(ctx); err != nil {
		t.Fatalf("b.Acquire after release: %v", err)
	}
	_ = b.Release(ctx)
}
