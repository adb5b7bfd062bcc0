// Package locker serialises check-then-write sections across requests and,
// with redis, across instances.
package locker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrNotAcquired = errors.New("lock not acquired")

// Release frees a lock obtained from Acquire
type Release func()

type Locker interface {
	Acquire(ctx context.Context, key string) (Release, error)
}

// ==================== REDSYNC ====================

type redisLocker struct {
	rs     *redsync.Redsync
	expiry time.Duration
	log    *zap.Logger
}

func NewRedis(client *redis.Client, expiry time.Duration, log *zap.Logger) Locker {
	if expiry <= 0 {
		expiry = 10 * time.Second
	}
	return &redisLocker{
		rs:     redsync.New(goredis.NewPool(client)),
		expiry: expiry,
		log:    log.With(zap.String("component", "locker")),
	}
}

func (l *redisLocker) Acquire(ctx context.Context, key string) (Release, error) {
	mutex := l.rs.NewMutex("lock:"+key,
		redsync.WithExpiry(l.expiry),
		redsync.WithTries(40),
		redsync.WithRetryDelay(50*time.Millisecond),
	)

	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotAcquired, key, err)
	}

	return func() {
		// fresh context so a cancelled request still releases
		unlockCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if ok, err := mutex.UnlockContext(unlockCtx); !ok || err != nil {
			l.log.Warn("Failed to release lock", zap.String("key", key), zap.Error(err))
		}
	}, nil
}

// ==================== LOCAL ====================

type localEntry struct {
	ch   chan struct{}
	refs int
}

type localLocker struct {
	mu      sync.Mutex
	entries map[string]*localEntry
}

// NewLocal returns an in-process keyed mutex
func NewLocal() Locker {
	return &localLocker{entries: make(map[string]*localEntry)}
}

func (l *localLocker) Acquire(ctx context.Context, key string) (Release, error) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &localEntry{ch: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.unref(key, e)
		return nil, fmt.Errorf("%w: %s: %v", ErrNotAcquired, key, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.unref(key, e)
		})
	}, nil
}

func (l *localLocker) unref(key string, e *localEntry) {
	l.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
	l.mu.Unlock()
}

// Keys for the sections that must not interleave

func FacilitySlotsKey(facilityID fmt.Stringer) string {
	return "facility-slots:" + facilityID.String()
}

func BookingKey(courtID, slotID fmt.Stringer, date time.Time) string {
	return fmt.Sprintf("booking:%s:%s:%s", courtID, slotID, date.Format("2006-01-02"))
}
