// Package wakelock tracks keep-awake leases held by cooking sessions.
package wakelock

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/cooking"
)

// Registry hands out leases and reports how many are held. The server
// cannot keep a browser screen awake itself; clients poll the session view
// and keep their own lock while wakeLockHeld is true.
type Registry struct {
	mu     sync.Mutex
	held   map[string]int
	gauge  prometheus.Gauge
	logger *zap.Logger
}

// NewRegistry creates a registry. gauge may be nil.
func NewRegistry(gauge prometheus.Gauge, logger *zap.Logger) *Registry {
	return &Registry{held: make(map[string]int), gauge: gauge, logger: logger.Named("wakelock")}
}

// Acquire takes a lease for holder
func (r *Registry) Acquire(ctx context.Context, holder string) (cooking.Lease, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.held[holder]++
	r.mu.Unlock()
	if r.gauge != nil {
		r.gauge.Inc()
	}
	r.logger.Debug("Wake lock acquired", zap.String("holder", holder))

	return &lease{registry: r, holder: holder}, nil
}

// Held reports whether holder has at least one lease
func (r *Registry) Held(holder string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.held[holder] > 0
}

// Count reports the number of outstanding leases
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.held {
		n += c
	}
	return n
}

func (r *Registry) release(holder string) {
	r.mu.Lock()
	if r.held[holder] <= 1 {
		delete(r.held, holder)
	} else {
		r.held[holder]--
	}
	r.mu.Unlock()
	if r.gauge != nil {
		r.gauge.Dec()
	}
	r.logger.Debug("Wake lock released", zap.String("holder", holder))
}

type lease struct {
	once     sync.Once
	registry *Registry
	holder   string
}

func (l *lease) Release() {
	l.once.Do(func() { l.registry.release(l.holder) })
}

// Disabled is the provider used when wake locks are turned off.
type Disabled struct{}

// Acquire returns a lease that does nothing
func (Disabled) Acquire(context.Context, string) (cooking.Lease, error) {
	return cooking.NoopLease{}, nil
}
