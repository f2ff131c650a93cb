package ranking

import (
	"strings"

	"github.com/dharmasatrya/flyback/internal/models"
)

// Compare orders flights by price, then departure time, then id. It returns
// a negative number when a sorts before b, zero when they are equal.
func Compare(a, b models.Flight) int {
	switch {
	case a.Price() < b.Price():
		return -1
	case a.Price() > b.Price():
		return 1
	}

	if c := a.Departure().Compare(b.Departure()); c != 0 {
		return c
	}

	return strings.Compare(a.ID(), b.ID())
}

func Sort(flights []models.Flight) {
	insertionSort(flights, Compare)
}

// Rank returns a sorted copy of flights; the input is left untouched.
func Rank(flights []models.Flight) []models.Flight {
	ranked := make([]models.Flight, len(flights))
	copy(ranked, flights)
	Sort(ranked)
	return ranked
}

// insertionSort is stable: an element only moves left past neighbours that
// compare strictly greater.
func insertionSort[T any](items []T, cmp func(a, b T) int) {
	for i := 1; i < len(items); i++ {
		current := items[i]
		j := i - 1
		for j >= 0 && cmp(items[j], current) > 0 {
			items[j+1] = items[j]
			j--
		}
		items[j+1] = current
	}
}
