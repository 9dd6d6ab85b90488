package memory

import (
	"context"
	"sync"
)

// KeyLocker serializes critical sections per lock key, the in-process
// counterpart of Postgres advisory locks keyed by the same strings
// types.GenerateLockKey produces. Keys are never evicted; the key space
// is bounded by live invoices and forecast periods.
type KeyLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyLocker creates a new key locker.
func NewKeyLocker() *KeyLocker {
	return &KeyLocker{
		locks: make(map[string]*sync.Mutex),
	}
}

func (l *KeyLocker) lockFor(key string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	return m
}

// WithLock runs fn while holding the mutex for key. Two concurrent
// callers with the same key execute fn sequentially.
func (l *KeyLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	m := l.lockFor(key)
	m.Lock()
	defer m.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
