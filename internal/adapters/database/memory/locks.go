package memory

import (
	"context"
	"sync"
)

// lockTable hands out one exclusive lock per row key. Waiting honours context cancellation.
type lockTable struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func newLockTable() *lockTable {
	return &lockTable{slots: map[string]chan struct{}{}}
}

func (t *lockTable) slot(key string) chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	ch, ok := t.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		t.slots[key] = ch
	}
	return ch
}

func (t *lockTable) acquire(ctx context.Context, key string) error {
	select {
	case t.slot(key) <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *lockTable) release(key string) {
	<-t.slot(key)
}
