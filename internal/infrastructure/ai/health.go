package ai

import (
	"context"
	"time"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/outbound"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/healthcheck"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker reports whether the configured provider is reachable.
// Providers without a cheap probe are reported healthy. A failing provider
// marks the service degraded: stored recipes stay usable without AI.
type HealthChecker struct {
	provider outbound.AIProvider
}

// NewHealthChecker creates a checker for provider
func NewHealthChecker(provider outbound.AIProvider) *HealthChecker {
	return &HealthChecker{provider: provider}
}

// Check probes the provider
func (h *HealthChecker) Check(ctx context.Context) healthcheck.Check {
	start := time.Now()
	check := healthcheck.Check{
		Status:      healthcheck.StatusHealthy,
		LastChecked: start,
		Metadata:    map[string]interface{}{"provider": h.provider.Name()},
	}

	p, ok := h.provider.(pinger)
	if !ok {
		check.Message = "no probe available"
		return check
	}
	if err := p.Ping(ctx); err != nil {
		check.Status = healthcheck.StatusDegraded
		check.Message = err.Error()
	}
	check.Duration = time.Since(start)
	return check
}
