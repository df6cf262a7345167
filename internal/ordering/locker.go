package ordering

import (
	"context"
	"errors"
	"sync"
)

// ErrLockNotAcquired is returned when a container lock could not be taken
// before the caller's deadline.
var ErrLockNotAcquired = errors.New("ordering: lock not acquired")

// Locker serialises reorders of the same container.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// ContainerKey builds the lock key for one container of one site.
func ContainerKey(kind, site, id string) string {
	return kind + ":" + site + ":" + id
}

type memoryEntry struct {
	slot chan struct{}
	refs int
}

// MemoryLocker is an in-process keyed mutex.
type MemoryLocker struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{entries: make(map[string]*memoryEntry)}
}

func (l *MemoryLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	entry, ok := l.entries[key]
	if !ok {
		entry = &memoryEntry{slot: make(chan struct{}, 1)}
		l.entries[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	select {
	case entry.slot <- struct{}{}:
	case <-ctx.Done():
		l.release(key, entry)
		return nil, errors.Join(ErrLockNotAcquired, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.slot
			l.release(key, entry)
		})
	}, nil
}

func (l *MemoryLocker) release(key string, entry *memoryEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry.refs--
	if entry.refs == 0 {
		delete(l.entries, key)
	}
}

// NoopLocker never blocks. Useful when the storage layer already serialises.
type NoopLocker struct{}

func (NoopLocker) Lock(context.Context, string) (func(), error) { return func() {}, nil }
