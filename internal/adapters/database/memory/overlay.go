package memory

import "sync"

// overlay is a copy-on-write view of one table. In direct mode writes go straight to the
// base map; otherwise they are staged and published by apply, which the caller runs while
// holding the store mutex for writing.
type overlay[T any] struct {
	mu      *sync.RWMutex
	base    map[string]T
	direct  bool
	staged  map[string]T
	deleted map[string]bool
}

func newOverlay[T any](mu *sync.RWMutex, base map[string]T, direct bool) *overlay[T] {
	return &overlay[T]{
		mu:      mu,
		base:    base,
		direct:  direct,
		staged:  map[string]T{},
		deleted: map[string]bool{},
	}
}

func (o *overlay[T]) get(id string) (T, bool) {
	if v, ok := o.staged[id]; ok {
		return v, true
	}
	var zero T
	if o.deleted[id] {
		return zero, false
	}
	o.mu.RLock()
	defer o.mu.RUnlock()
	v, ok := o.base[id]
	return v, ok
}

func (o *overlay[T]) put(id string, v T) {
	if o.direct {
		o.mu.Lock()
		o.base[id] = v
		o.mu.Unlock()
		return
	}
	delete(o.deleted, id)
	o.staged[id] = v
}

// putIf writes v only when check passes against the current merged view. In direct mode the
// check and the write happen under one lock.
func (o *overlay[T]) putIf(id string, v T, check func(rows []T) error) error {
	if o.direct {
		o.mu.Lock()
		defer o.mu.Unlock()
		rows := make([]T, 0, len(o.base))
		for _, r := range o.base {
			rows = append(rows, r)
		}
		if err := check(rows); err != nil {
			return err
		}
		o.base[id] = v
		return nil
	}
	if err := check(o.all()); err != nil {
		return err
	}
	o.put(id, v)
	return nil
}

func (o *overlay[T]) del(id string) {
	if o.direct {
		o.mu.Lock()
		delete(o.base, id)
		o.mu.Unlock()
		return
	}
	delete(o.staged, id)
	o.deleted[id] = true
}

// all returns every visible row in no particular order.
func (o *overlay[T]) all() []T {
	o.mu.RLock()
	rows := make([]T, 0, len(o.base)+len(o.staged))
	for id, v := range o.base {
		if o.deleted[id] {
			continue
		}
		if _, ok := o.staged[id]; ok {
			continue
		}
		rows = append(rows, v)
	}
	o.mu.RUnlock()
	for _, v := range o.staged {
		rows = append(rows, v)
	}
	return rows
}

func (o *overlay[T]) apply() {
	for id := range o.deleted {
		delete(o.base, id)
	}
	for id, v := range o.staged {
		o.base[id] = v
	}
	o.staged = map[string]T{}
	o.deleted = map[string]bool{}
}
