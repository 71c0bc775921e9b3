package concurrency

import (
	"sync"
)

// LockManager handles named locks. The tracker uses one lock per game id
// so state transitions for the same game never interleave.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for the given key, creating it if needed
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// WithLock runs fn while holding the named lock
func (lm *LockManager) WithLock(key string, fn func()) {
	mu := lm.GetLock(key)
	mu.Lock()
	defer mu.Unlock()
	fn()
}

// Forget drops the lock for a key. Call once the key is retired, for
// example after a game resolves, so the map does not grow forever.
func (lm *LockManager) Forget(key string) {
	lm.locks.Delete(key)
}
