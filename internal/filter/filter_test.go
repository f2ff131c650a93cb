package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/flyback/internal/models"
)

func mustFlight(t *testing.T, id, from, to string, price float64, dep time.Time, dur time.Duration) models.Flight {
	t.Helper()
	f, err := models.NewFlight(models.FlightRecord{
		ID:            id,
		Origin:        from,
		Destination:   to,
		DepartureTime: dep,
		ArrivalTime:   dep.Add(dur),
		Price:         price,
		Currency:      "EUR",
	})
	require.NoError(t, err)
	return f
}

func at(d, h, m int) time.Time {
	return time.Date(2024, 6, d, h, m, 0, 0, time.UTC)
}

func idsOf(flights []models.Flight) []string {
	out := make([]string, 0, len(flights))
	for _, f := range flights {
		out = append(out, f.ID())
	}
	return out
}

func samplePool(t *testing.T) []models.Flight {
	return []models.Flight{
		mustFlight(t, "A1", "CPH", "BER", 500, at(1, 8, 0), time.Hour),
		mustFlight(t, "B2", "CPH", "BER", 300, at(2, 12, 0), time.Hour),
		mustFlight(t, "C3", "CPH", "BER", 300, at(1, 18, 30), time.Hour),
		mustFlight(t, "D4", "CPH", "FCO", 100, at(1, 9, 0), 2*time.Hour),
		mustFlight(t, "R1", "BER", "CPH", 250, at(5, 16, 0), time.Hour),
		mustFlight(t, "R2", "BER", "CPH", 150, at(5, 21, 0), 90*time.Minute),
		mustFlight(t, "R3", "BER", "CPH", 90, at(6, 7, 0), time.Hour),
	}
}

var cphBer = models.Route{Origin: "CPH", Destination: "BER"}

func TestFixedDate_ExactDateOnly(t *testing.T) {
	pool := samplePool(t)

	outbound, inbound := FixedDate(pool, models.FixedDateCriteria{Route: cphBer, Date: models.NewDate(2024, 6, 1)})

	assert.ElementsMatch(t, []string{"A1", "C3"}, idsOf(outbound))
	assert.Empty(t, inbound)
}

func TestFixedDate_NoFallback(t *testing.T) {
	outbound, _ := FixedDate(samplePool(t), models.FixedDateCriteria{Route: cphBer, Date: models.NewDate(2024, 6, 5)})
	assert.NotNil(t, outbound)
	assert.Empty(t, outbound)
}

func TestFixedDate_ReturnLegJoinsOnDate(t *testing.T) {
	ret := models.NewDate(2024, 6, 5)
	outbound, inbound := FixedDate(samplePool(t), models.FixedDateCriteria{
		Route:      cphBer,
		Date:       models.NewDate(2024, 6, 1),
		ReturnDate: &ret,
	})

	assert.ElementsMatch(t, []string{"A1", "C3"}, idsOf(outbound))
	assert.ElementsMatch(t, []string{"R1", "R2"}, idsOf(inbound))
}

func TestFixedDate_TimeWindowsInclusive(t *testing.T) {
	ret := models.NewDate(2024, 6, 5)
	after, err := models.ParseTimeOfDay("18:30")
	require.NoError(t, err)
	before, err := models.ParseTimeOfDay("17:00")
	require.NoError(t, err)

	outbound, inbound := FixedDate(samplePool(t), models.FixedDateCriteria{
		Route:        cphBer,
		Date:         models.NewDate(2024, 6, 1),
		ReturnDate:   &ret,
		DepartAfter:  &after,
		ArriveBefore: &before,
	})

	assert.Equal(t, []string{"C3"}, idsOf(outbound))
	assert.Equal(t, []string{"R1"}, idsOf(inbound))
}

func TestFlexible_InclusiveBounds(t *testing.T) {
	pool := []models.Flight{
		mustFlight(t, "EDGE-LOW", "CPH", "BER", 100, at(1, 0, 0), time.Hour),
		mustFlight(t, "EDGE-HIGH", "CPH", "BER", 100, at(3, 23, 0), time.Hour),
		mustFlight(t, "AT-MAX", "CPH", "BER", 500, at(2, 10, 0), time.Hour),
		mustFlight(t, "OVER-MAX", "CPH", "BER", 500.01, at(2, 10, 0), time.Hour),
		mustFlight(t, "TOO-EARLY", "CPH", "BER", 10, at(1, 0, 0).Add(-time.Minute), time.Hour),
		mustFlight(t, "TOO-LATE", "CPH", "BER", 10, at(4, 0, 0), time.Hour),
		mustFlight(t, "OTHER-ROUTE", "CPH", "FCO", 10, at(2, 10, 0), time.Hour),
	}

	got := Flexible(pool, models.FlexibleCriteria{
		Route:    cphBer,
		Earliest: models.NewDate(2024, 6, 1),
		Latest:   models.NewDate(2024, 6, 3),
		MaxPrice: 500,
	})

	assert.ElementsMatch(t, []string{"EDGE-LOW", "EDGE-HIGH", "AT-MAX"}, idsOf(got))
}

func TestFlexible_ZeroBudget(t *testing.T) {
	pool := []models.Flight{
		mustFlight(t, "FREE", "CPH", "BER", 0, at(1, 9, 0), time.Hour),
		mustFlight(t, "PAID", "CPH", "BER", 1, at(1, 9, 0), time.Hour),
	}
	got := Flexible(pool, models.FlexibleCriteria{
		Route: cphBer, Earliest: models.NewDate(2024, 6, 1), Latest: models.NewDate(2024, 6, 1), MaxPrice: 0,
	})
	assert.Equal(t, []string{"FREE"}, idsOf(got))
}

func TestFilters_DoNotMutatePool(t *testing.T) {
	pool := samplePool(t)
	before := append([]models.Flight(nil), pool...)

	Flexible(pool, models.FlexibleCriteria{Route: cphBer, Earliest: models.NewDate(2024, 6, 1), Latest: models.NewDate(2024, 6, 9), MaxPrice: 1000})
	FixedDate(pool, models.FixedDateCriteria{Route: cphBer, Date: models.NewDate(2024, 6, 1)})

	assert.Equal(t, before, pool)
}

func TestApply_Dispatch(t *testing.T) {
	pool := samplePool(t)
	ret := models.NewDate(2024, 6, 5)

	fixed := Apply(pool, models.FixedDateCriteria{Route: cphBer, Date: models.NewDate(2024, 6, 1), ReturnDate: &ret})
	assert.ElementsMatch(t, []string{"A1", "C3"}, idsOf(fixed))

	flexible := Apply(pool, models.FlexibleCriteria{Route: cphBer, Earliest: models.NewDate(2024, 6, 1), Latest: models.NewDate(2024, 6, 2), MaxPrice: 300})
	assert.ElementsMatch(t, []string{"B2", "C3"}, idsOf(flexible))

	// 2024-06-01 is a Saturday.
	weekday := Apply(pool, models.WeekdayCriteria{
		Route: cphBer, DepartOn: time.Saturday, ReturnOn: time.Wednesday,
		From: models.NewDate(2024, 6, 1), Until: models.NewDate(2024, 6, 30),
	})
	assert.ElementsMatch(t, []string{"A1", "C3"}, idsOf(weekday))
}

func TestWeekday_ReturnMustFitWindow(t *testing.T) {
	// 2024-06-01 and 2024-06-08 are Saturdays.
	pool := []models.Flight{
		mustFlight(t, "SAT-1", "CPH", "BER", 100, at(1, 9, 0), time.Hour),
		mustFlight(t, "SAT-8", "CPH", "BER", 100, at(8, 9, 0), time.Hour),
	}
	c := models.WeekdayCriteria{
		Route: cphBer, DepartOn: time.Saturday, ReturnOn: time.Sunday,
		From: models.NewDate(2024, 6, 1), Until: models.NewDate(2024, 6, 8),
	}

	assert.Equal(t, []string{"SAT-1"}, idsOf(Weekday(pool, c)))

	c.ReturnOn = time.Saturday
	assert.ElementsMatch(t, []string{"SAT-1", "SAT-8"}, idsOf(Weekday(pool, c)))
}
