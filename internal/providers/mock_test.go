package providers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/flyback/internal/models"
)

func TestMockProvider_Deterministic(t *testing.T) {
	p := NewMockProvider(DefaultMockConfig())
	q := Query{Origin: "CPH", Destination: "FCO", Date: models.NewDate(2026, 3, 13)}

	first, err := p.Search(context.Background(), q)
	require.NoError(t, err)
	second, err := p.Search(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMockProvider_OffersAreWellFormed(t *testing.T) {
	cfg := DefaultMockConfig()
	p := NewMockProvider(cfg)

	for day := 1; day <= 28; day++ {
		date := models.NewDate(2026, 2, day)
		records, err := p.Search(context.Background(), Query{Origin: "CPH", Destination: "BER", Date: date})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(records), cfg.MaxOffers)

		for _, r := range records {
			assert.Equal(t, date, models.DateOf(r.DepartureTime))
			assert.True(t, r.ArrivalTime.After(r.DepartureTime))
			assert.GreaterOrEqual(t, r.Price, cfg.MinPrice)
			assert.LessOrEqual(t, r.Price, cfg.MaxPrice)
			assert.Equal(t, "EUR", r.Currency)

			_, err := models.NewFlight(r)
			assert.NoError(t, err)
		}
	}
}

func TestMockProvider_DistinctIDsPerQuery(t *testing.T) {
	p := NewMockProvider(MockConfig{MaxOffers: 20, MinPrice: 100, MaxPrice: 600, Currency: "EUR"})

	seen := map[string]bool{}
	for day := 1; day <= 7; day++ {
		records, err := p.Search(context.Background(), Query{Origin: "CPH", Destination: "BER", Date: models.NewDate(2026, 2, day)})
		require.NoError(t, err)
		for _, r := range records {
			assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
			seen[r.ID] = true
		}
	}
}

func TestMockProvider_FailureAndLatency(t *testing.T) {
	failing := NewMockProvider(MockConfig{MaxOffers: 1, FailureRate: 1})
	_, err := failing.Search(context.Background(), Query{Origin: "CPH", Destination: "BER", Date: models.NewDate(2026, 2, 1)})
	assert.ErrorIs(t, err, ErrTemporary)

	slow := NewMockProvider(MockConfig{MaxOffers: 1, Latency: time.Second})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = slow.Search(ctx, Query{Origin: "CPH", Destination: "BER", Date: models.NewDate(2026, 2, 1)})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMockProvider_AirportCaseDoesNotChangeOffers(t *testing.T) {
	p := NewMockProvider(DefaultMockConfig())
	date := models.NewDate(2026, 2, 6)

	upper, err := p.Search(context.Background(), Query{Origin: "CPH", Destination: "FCO", Date: date})
	require.NoError(t, err)
	lower, err := p.Search(context.Background(), Query{Origin: "cph", Destination: " fco ", Date: date})
	require.NoError(t, err)

	assert.Equal(t, upper, lower)
	for _, r := range lower {
		assert.Equal(t, "CPH", r.Origin)
		assert.Equal(t, "FCO", r.Destination)
	}
}
