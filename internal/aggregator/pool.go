package aggregator

import (
	"context"
	"errors"
	"log"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/dharmasatrya/flyback/internal/models"
	"github.com/dharmasatrya/flyback/internal/providers"
	"github.com/dharmasatrya/flyback/internal/search"
)

const MaxPoolQueries = 120

const defaultPoolConcurrency = 8

var ErrTooManyQueries = errors.New("search window too wide")

type Pool struct {
	Flights            []models.Flight
	Queries            int
	CacheHits          int
	Rejected           int
	ProvidersQueried   int
	ProvidersSucceeded int
	ProvidersFailed    int
	FailedProviders    []string
}

func PoolQueries(criteria models.SearchCriteria, passengers int) ([]providers.Query, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	var queries []providers.Query
	add := func(route models.Route, date models.Date) {
		queries = append(queries, providers.Query{
			Origin:      route.Origin,
			Destination: route.Destination,
			Date:        date,
			Passengers:  passengers,
		}.Normalized())
	}

	switch c := criteria.(type) {
	case models.FixedDateCriteria:
		add(c.Route, c.Date)
		if c.ReturnDate != nil {
			add(c.Route.Reverse(), *c.ReturnDate)
		}
	case models.FlexibleCriteria:
		for _, d := range models.DaysBetween(c.Earliest, c.Latest) {
			add(c.Route, d)
		}
	case models.WeekdayCriteria:
		for _, pair := range search.WeekdayPairs(c) {
			add(c.Route, pair.Departure)
			add(c.Route.Reverse(), pair.Return)
		}
	}

	if len(queries) > MaxPoolQueries {
		return nil, ErrTooManyQueries
	}

	return queries, nil
}

func (a *Aggregator) FetchPool(ctx context.Context, queries []providers.Query) (*Pool, error) {
	pool := &Pool{
		Flights: make([]models.Flight, 0),
		Queries: len(queries),
	}

	limit := a.config.PoolConcurrency
	if limit <= 0 {
		limit = defaultPoolConcurrency
	}

	results := make([]*Result, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, q := range queries {
		g.Go(func() error {
			result, err := a.Search(gctx, q)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	type key struct{ provider, id string }
	seen := make(map[key]bool)
	failed := make(map[string]bool)

	for _, result := range results {
		if result.CacheHit {
			pool.CacheHits++
		}
		pool.ProvidersQueried += result.ProvidersQueried
		pool.ProvidersSucceeded += result.ProvidersSucceeded
		pool.ProvidersFailed += result.ProvidersFailed
		for _, name := range result.FailedProviders {
			failed[name] = true
		}

		for _, record := range result.Records {
			k := key{record.Provider, record.ID}
			if seen[k] {
				continue
			}

			flight, err := models.NewFlight(record)
			if err != nil {
				log.Printf("Rejected record %s from %s: %v", record.ID, record.Provider, err)
				pool.Rejected++
				continue
			}

			seen[k] = true
			pool.Flights = append(pool.Flights, flight)
		}
	}

	for name := range failed {
		pool.FailedProviders = append(pool.FailedProviders, name)
	}
	sort.Strings(pool.FailedProviders)

	return pool, nil
}
