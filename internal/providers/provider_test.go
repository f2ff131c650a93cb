package providers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dharmasatrya/flyback/internal/models"
)

func TestQuery_Normalized(t *testing.T) {
	q := Query{Origin: " cph", Destination: "Fco ", Date: models.NewDate(2026, 2, 6), Passengers: 2}

	got := q.Normalized()

	assert.Equal(t, Query{Origin: "CPH", Destination: "FCO", Date: q.Date, Passengers: 2}, got)
	assert.Equal(t, " cph", q.Origin, "receiver untouched")
}

func TestProviderError_Unwrap(t *testing.T) {
	err := NewProviderError("mock", ErrTemporary)

	assert.EqualError(t, err, "mock: temporary provider failure")
	assert.True(t, errors.Is(err, ErrTemporary))
}
