package resource

import (
	"sort"
	"sync"
)

// Table tracks every entity one engine instance has allocated. Each entry
// pairs a value with the type id it was created under; the handle that
// Insert returns is what diagnostics render and what lookups key on.
type Table struct {
	mu      sync.RWMutex
	entries map[Handle]tableEntry
	next    Handle
	closed  bool
}

type tableEntry struct {
	value  any
	typeID int
}

// NewTable creates an empty table. The first handle issued is 1.
func NewTable() *Table {
	return &Table{
		entries: make(map[Handle]tableEntry),
		next:    1,
	}
}

// Insert tracks value under typeID and returns its handle. After Close
// the table tracks nothing and Insert returns 0.
func (t *Table) Insert(typeID int, value any) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0
	}
	h := t.next
	t.next++
	t.entries[h] = tableEntry{value: value, typeID: typeID}
	return h
}

// Get retrieves the value tracked under h.
func (t *Table) Get(h Handle) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.entries[h]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// GetTyped retrieves the value tracked under h only when it was inserted
// under typeID.
func (t *Table) GetTyped(h Handle, typeID int) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.entries[h]
	if !ok || e.typeID != typeID {
		return nil, false
	}
	return e.value, true
}

// TypeID reports the type id h was inserted under.
func (t *Table) TypeID(h Handle) (int, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.entries[h]
	if !ok {
		return 0, false
	}
	return e.typeID, true
}

// Remove unlinks h and returns its value. The value's Discard hook, if
// any, runs after the entry is gone from the table.
func (t *Table) Remove(h Handle) (any, bool) {
	t.mu.Lock()
	e, ok := t.entries[h]
	if ok {
		delete(t.entries, h)
	}
	t.mu.Unlock()
	if !ok {
		return nil, false
	}
	if d, ok := e.value.(Discarder); ok {
		d.Discard()
	}
	return e.value, true
}

// Len reports how many entities are currently tracked.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Each calls fn for every live entry until fn returns false. The walk
// holds the table lock; fn must not mutate the table.
func (t *Table) Each(fn func(h Handle, typeID int, value any) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for h, e := range t.entries {
		if !fn(h, e.typeID, e.value) {
			return
		}
	}
}

// Drain unlinks every entry and runs Discard hooks oldest-first. It
// reports how many entries were released; the table stays usable.
func (t *Table) Drain() int {
	t.mu.Lock()
	handles := make([]Handle, 0, len(t.entries))
	for h := range t.entries {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	drained := make([]any, 0, len(handles))
	for _, h := range handles {
		drained = append(drained, t.entries[h].value)
		delete(t.entries, h)
	}
	t.mu.Unlock()
	for _, v := range drained {
		if d, ok := v.(Discarder); ok {
			d.Discard()
		}
	}
	return len(drained)
}

// Close drains the table and refuses further inserts. It reports how many
// entries the final drain released; closing twice releases nothing.
func (t *Table) Close() int {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return 0
	}
	t.closed = true
	t.mu.Unlock()
	return t.Drain()
}
