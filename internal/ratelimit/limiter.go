package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

type Limit struct {
	RequestsPerSecond float64
	Burst             int
}

func DefaultLimit() Limit {
	return Limit{
		RequestsPerSecond: 10,
		Burst:             20,
	}
}

// ProviderLimiter keeps one token bucket per provider name, created lazily.
type ProviderLimiter struct {
	mu        sync.RWMutex
	limiters  map[string]*rate.Limiter
	defaults  Limit
	overrides map[string]Limit
}

func NewProviderLimiter(defaults Limit, overrides map[string]Limit) *ProviderLimiter {
	o := make(map[string]Limit, len(overrides))
	for name, l := range overrides {
		o[name] = l
	}
	return &ProviderLimiter{
		limiters:  make(map[string]*rate.Limiter),
		defaults:  defaults,
		overrides: o,
	}
}

func (p *ProviderLimiter) Limiter(provider string) *rate.Limiter {
	p.mu.RLock()
	limiter, exists := p.limiters[provider]
	p.mu.RUnlock()

	if exists {
		return limiter
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if limiter, exists = p.limiters[provider]; exists {
		return limiter
	}

	l := p.defaults
	if override, ok := p.overrides[provider]; ok {
		l = override
	}
	limiter = rate.NewLimiter(rate.Limit(l.RequestsPerSecond), l.Burst)
	p.limiters[provider] = limiter
	return limiter
}

func (p *ProviderLimiter) Wait(ctx context.Context, provider string) error {
	return p.Limiter(provider).Wait(ctx)
}
