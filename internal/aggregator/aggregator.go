package aggregator

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/dharmasatrya/flyback/internal/cache"
	"github.com/dharmasatrya/flyback/internal/models"
	"github.com/dharmasatrya/flyback/internal/providers"
	"github.com/dharmasatrya/flyback/internal/ratelimit"
)

var ErrAllProvidersFailed = errors.New("all flight providers failed")

type Config struct {
	Timeout         time.Duration
	MaxRetries      int
	RetryDelays     []time.Duration
	RateLimiter     *ratelimit.ProviderLimiter
	Cache           cache.Cache
	PoolConcurrency int
}

type Aggregator struct {
	providers []providers.Provider
	config    Config
}

type Result struct {
	Records            []models.FlightRecord
	ProvidersQueried   int
	ProvidersSucceeded int
	ProvidersFailed    int
	FailedProviders    []string
	CacheHit           bool
}

func NewAggregator(providerList []providers.Provider, config Config) *Aggregator {
	if config.Cache == nil {
		config.Cache = cache.NewNoOpCache()
	}
	return &Aggregator{
		providers: providerList,
		config:    config,
	}
}

func (a *Aggregator) ProviderCount() int {
	return len(a.providers)
}

func (a *Aggregator) Search(ctx context.Context, q providers.Query) (*Result, error) {
	if records, ok := a.config.Cache.Get(ctx, q); ok {
		return &Result{
			Records:            records,
			ProvidersQueried:   len(a.providers),
			ProvidersSucceeded: len(a.providers),
			CacheHit:           true,
		}, nil
	}

	searchCtx := ctx
	if a.config.Timeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, a.config.Timeout)
		defer cancel()
	}

	result := &Result{
		Records:          make([]models.FlightRecord, 0),
		ProvidersQueried: len(a.providers),
	}

	type providerResult struct {
		provider string
		records  []models.FlightRecord
		err      error
	}

	resultCh := make(chan providerResult, len(a.providers))
	var wg sync.WaitGroup

	for _, p := range a.providers {
		wg.Add(1)
		go func(provider providers.Provider) {
			defer wg.Done()

			if a.config.RateLimiter != nil {
				if err := a.config.RateLimiter.Wait(searchCtx, provider.Name()); err != nil {
					resultCh <- providerResult{provider: provider.Name(), err: err}
					return
				}
			}

			records, err := a.searchWithRetry(searchCtx, provider, q)
			resultCh <- providerResult{provider: provider.Name(), records: records, err: err}
		}(p)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	for pr := range resultCh {
		if pr.err != nil {
			log.Printf("Provider %s failed for %s-%s on %s: %v", pr.provider, q.Origin, q.Destination, q.Date, pr.err)
			result.ProvidersFailed++
			result.FailedProviders = append(result.FailedProviders, pr.provider)
			continue
		}
		result.ProvidersSucceeded++
		result.Records = append(result.Records, pr.records...)
	}

	// Provider completion order is random; keep the pool order reproducible.
	sort.Strings(result.FailedProviders)
	sort.SliceStable(result.Records, func(i, j int) bool {
		return result.Records[i].Provider < result.Records[j].Provider
	})

	if result.ProvidersQueried > 0 && result.ProvidersSucceeded == 0 {
		return result, ErrAllProvidersFailed
	}

	if result.ProvidersFailed == 0 {
		if err := a.config.Cache.Set(ctx, q, result.Records); err != nil {
			log.Printf("Failed to cache offers for %s-%s on %s: %v", q.Origin, q.Destination, q.Date, err)
		}
	}

	return result, nil
}

func (a *Aggregator) searchWithRetry(ctx context.Context, provider providers.Provider, q providers.Query) ([]models.FlightRecord, error) {
	var lastErr error

	for attempt := 0; attempt <= a.config.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if attempt > 0 && len(a.config.RetryDelays) > 0 {
			delayIdx := attempt - 1
			if delayIdx >= len(a.config.RetryDelays) {
				delayIdx = len(a.config.RetryDelays) - 1
			}

			select {
			case <-time.After(a.config.RetryDelays[delayIdx]):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		records, err := provider.Search(ctx, q)
		if err == nil {
			return records, nil
		}

		lastErr = err
		if !errors.Is(err, providers.ErrTemporary) {
			break
		}
		log.Printf("Provider %s attempt %d failed: %v", provider.Name(), attempt+1, err)
	}

	return nil, providers.NewProviderError(provider.Name(), lastErr)
}
