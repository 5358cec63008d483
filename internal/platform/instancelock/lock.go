package instancelock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

// ErrHeld is returned by Acquire when another instance owns the lock.
var ErrHeld = errors.New("instance lock held by another process")

var (
	refreshScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`)
	releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0`)
)

type Config struct {
	URL string
	Key string
	TTL time.Duration
}

// Lock is a single-owner Redis lease (SET NX PX) kept alive by Hold.
type Lock struct {
	log   *logger.Logger
	rdb   *goredis.Client
	key   string
	token string
	ttl   time.Duration

	mu   sync.Mutex
	held bool
}

func New(cfg Config, log *logger.Logger) (*Lock, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	opts, err := goredis.ParseURL(strings.TrimSpace(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}
	key := strings.TrimSpace(cfg.Key)
	if key == "" {
		key = "deliverysla:scheduler"
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Lock{
		log:   log.With("component", "InstanceLock", "key", key),
		rdb:   goredis.NewClient(opts),
		key:   key,
		token: newToken(),
		ttl:   ttl,
	}, nil
}

func newToken() string {
	host, _ := os.Hostname()
	var b [8]byte
	_, _ = rand.Read(b[:])
	return fmt.Sprintf("%s:%d:%s", host, os.Getpid(), hex.EncodeToString(b[:]))
}

// Acquire takes the lease or returns ErrHeld.
func (l *Lock) Acquire(ctx context.Context) error {
	ok, err := l.rdb.SetNX(ctx, l.key, l.token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire instance lock: %w", err)
	}
	if !ok {
		owner, _ := l.rdb.Get(ctx, l.key).Result()
		return fmt.Errorf("%w (owner=%s)", ErrHeld, owner)
	}
	l.mu.Lock()
	l.held = true
	l.mu.Unlock()
	l.log.Info("Instance lock acquired", "ttl", l.ttl.String())
	return nil
}

// Hold refreshes the lease every ttl/3 until ctx is done or the lease is
// lost, in which case it returns ErrHeld.
func (l *Lock) Hold(ctx context.Context) error {
	ticker := time.NewTicker(l.ttl / 3)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := refreshScript.Run(ctx, l.rdb, []string{l.key}, l.token, l.ttl.Milliseconds()).Int64()
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				l.log.Warn("Instance lock refresh failed", "error", err)
				continue
			}
			if n == 0 {
				l.mu.Lock()
				l.held = false
				l.mu.Unlock()
				return fmt.Errorf("instance lock lost: %w", ErrHeld)
			}
		}
	}
}

// Release drops the lease if this process still owns it and closes the client.
func (l *Lock) Release(ctx context.Context) error {
	l.mu.Lock()
	held := l.held
	l.held = false
	l.mu.Unlock()

	var err error
	if held {
		if _, rerr := releaseScript.Run(ctx, l.rdb, []string{l.key}, l.token).Result(); rerr != nil {
			err = fmt.Errorf("release instance lock: %w", rerr)
		} else {
			l.log.Info("Instance lock released")
		}
	}
	if cerr := l.rdb.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
