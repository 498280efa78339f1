// Package kv provides the string-keyed key-value store the data layer is
// built on. Backends are interchangeable: an in-memory map, Redis, or a
// single-table relational shim. All of them expose the same synchronous
// get/set/delete contract plus a change-notification hook so other instances
// of the application can observe writes. Observation is best effort only;
// there is no locking and no cross-key atomicity, so two instances writing
// the same key can still lose updates. That is an accepted limitation of
// this data layer, not something the backends try to fix.
package kv

import "sync"

// Store is a synchronous, string-keyed key-value store.
type Store interface {
	// Get returns the value stored under key and whether the key exists.
	Get(key string) (string, bool, error)

	// Set stores value under key, unconditionally overwriting prior contents.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Subscribe registers fn to be called with the key of every observed
	// change. It returns an unsubscribe function. Callbacks may fire on a
	// backend goroutine and must not block.
	Subscribe(fn func(key string)) func()

	// Close releases backend resources.
	Close() error
}

// notifier is the shared subscriber fanout embedded by every backend.
type notifier struct {
	mu   sync.RWMutex
	next int
	subs map[int]func(key string)
}

func (n *notifier) Subscribe(fn func(key string)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[int]func(key string))
	}
	id := n.next
	n.next++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

func (n *notifier) notify(key string) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, fn := range n.subs {
		fn(key)
	}
}
