package providers

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/dharmasatrya/flyback/internal/models"
	"github.com/dharmasatrya/flyback/internal/timezone"
)

var mockNamespace = uuid.MustParse("6f1c2a0e-2b8e-4c53-9a55-1d6c3f6e7b10")

var mockCarriers = []string{
	"SAS", "Lufthansa", "Ryanair", "ITA Airways", "easyJet", "Norwegian", "KLM", "Air France",
}

type MockConfig struct {
	MaxOffers   int
	MinPrice    float64
	MaxPrice    float64
	Currency    string
	FailureRate float64
	Latency     time.Duration
}

func DefaultMockConfig() MockConfig {
	return MockConfig{
		MaxOffers: 5,
		MinPrice:  100,
		MaxPrice:  600,
		Currency:  "EUR",
	}
}

// MockProvider generates synthetic offers. The same query always yields the
// same offers; only injected failures are random.
type MockProvider struct {
	config MockConfig
}

func NewMockProvider(config MockConfig) *MockProvider {
	return &MockProvider{config: config}
}

func (p *MockProvider) Name() string {
	return "mock"
}

func (p *MockProvider) Search(ctx context.Context, q Query) ([]models.FlightRecord, error) {
	if p.config.Latency > 0 {
		select {
		case <-time.After(p.config.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if p.config.FailureRate > 0 && rand.Float64() < p.config.FailureRate {
		return nil, ErrTemporary
	}

	q = q.Normalized()
	key := fmt.Sprintf("%s|%s|%s", q.Origin, q.Destination, q.Date)
	rng := rand.New(rand.NewPCG(seedOf(key), 0))
	loc := timezone.GetLocationByAirport(q.Origin)

	count := rng.IntN(p.config.MaxOffers + 1)
	results := make([]models.FlightRecord, 0, count)
	for i := 0; i < count; i++ {
		minute := rng.IntN(24 * 60)
		departure := time.Date(q.Date.Year, q.Date.Month, q.Date.Day, minute/60, minute%60, 0, 0, loc)
		duration := time.Duration(1+rng.IntN(8))*time.Hour + time.Duration(rng.IntN(60))*time.Minute
		price := p.config.MinPrice + rng.Float64()*(p.config.MaxPrice-p.config.MinPrice)

		results = append(results, models.FlightRecord{
			ID:            uuid.NewSHA1(mockNamespace, []byte(fmt.Sprintf("%s|%d", key, i))).String(),
			Provider:      p.Name(),
			Carrier:       mockCarriers[rng.IntN(len(mockCarriers))],
			Origin:        q.Origin,
			Destination:   q.Destination,
			DepartureTime: departure,
			ArrivalTime:   timezone.ConvertToTimezone(departure.Add(duration), q.Destination),
			Price:         math.Round(price*100) / 100,
			Currency:      p.config.Currency,
		})
	}

	return results, nil
}

func seedOf(key string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return h.Sum64()
}
