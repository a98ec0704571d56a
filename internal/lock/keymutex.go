// Package lock provides per-key mutual exclusion for the assignment workflow.
// Two concurrent assigns against the same worker or complaint must not both
// pass their existence checks; callers serialize on the entity keys before
// reading.
package lock

import "sync"

// KeyMutex is a set of named mutexes. The zero value is not usable; use New.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New creates an empty KeyMutex.
func New() *KeyMutex {
	return &KeyMutex{locks: make(map[string]*entry)}
}

// Lock acquires the mutex for key, blocking until it is free.
func (k *KeyMutex) Lock(key string) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for key. The entry is dropped once no goroutine
// holds or waits on it.
func (k *KeyMutex) Unlock(key string) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if ok {
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
	}
	k.mu.Unlock()

	if ok {
		e.mu.Unlock()
	}
}

// LockAll acquires the given keys in the order provided. Callers must use a
// consistent global ordering to stay deadlock free.
func (k *KeyMutex) LockAll(keys ...string) {
	for _, key := range keys {
		k.Lock(key)
	}
}

// UnlockAll releases the given keys in reverse order.
func (k *KeyMutex) UnlockAll(keys ...string) {
	for i := len(keys) - 1; i >= 0; i-- {
		k.Unlock(keys[i])
	}
}
