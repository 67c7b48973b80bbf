package service

import "sync"

// guard is the item store's single reader/writer lock. Any number of read
// sections may run together; a write section runs alone. The lock is
// released when fn returns or panics.
type guard struct {
	mu sync.RWMutex
}

func (g *guard) read(fn func() error) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return fn()
}

func (g *guard) write(fn func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	return fn()
}
