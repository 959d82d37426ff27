package cooking

import "sync"

// Lease is a held keep-awake capability.
type Lease interface {
	Release()
}

// NoopLease stands in when the capability is unavailable.
type NoopLease struct{}

func (NoopLease) Release() {}

// Guard makes releasing a lease idempotent so every exit path may call it.
type Guard struct {
	once  sync.Once
	lease Lease
	mu    sync.Mutex
	done  bool
}

// NewGuard wraps lease. A nil lease is treated as NoopLease.
func NewGuard(lease Lease) *Guard {
	if lease == nil {
		lease = NoopLease{}
	}
	return &Guard{lease: lease}
}

// Release releases the underlying lease exactly once.
func (g *Guard) Release() {
	g.once.Do(func() {
		g.lease.Release()
		g.mu.Lock()
		g.done = true
		g.mu.Unlock()
	})
}

// Released reports whether Release has run.
func (g *Guard) Released() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.done
}
