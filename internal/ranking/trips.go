package ranking

import (
	"math"

	"github.com/dharmasatrya/flyback/internal/models"
)

type Trip struct {
	Outbound models.Flight `json:"outbound"`
	Return   models.Flight `json:"return"`
}

// TotalPrice is rounded to cents so sums of equal fares compare equal.
func (t Trip) TotalPrice() float64 {
	return math.Round((t.Outbound.Price()+t.Return.Price())*100) / 100
}

func CompareTrips(a, b Trip) int {
	switch {
	case a.TotalPrice() < b.TotalPrice():
		return -1
	case a.TotalPrice() > b.TotalPrice():
		return 1
	}
	if c := Compare(a.Outbound, b.Outbound); c != 0 {
		return c
	}
	return Compare(a.Return, b.Return)
}

// RankTripsFunc ranks any values that carry a Trip, returning a copy.
func RankTripsFunc[T any](items []T, trip func(T) Trip) []T {
	ranked := make([]T, len(items))
	copy(ranked, items)
	insertionSort(ranked, func(a, b T) int {
		return CompareTrips(trip(a), trip(b))
	})
	return ranked
}
