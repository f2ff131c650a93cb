package search

import (
	"encoding/json"

	"github.com/dharmasatrya/flyback/internal/filter"
	"github.com/dharmasatrya/flyback/internal/models"
	"github.com/dharmasatrya/flyback/internal/ranking"
)

// ResultSet is a ranked, read-only sequence of flights.
type ResultSet struct {
	flights []models.Flight
}

func newResultSet(flights []models.Flight) ResultSet {
	return ResultSet{flights: ranking.Rank(flights)}
}

func (r ResultSet) Len() int               { return len(r.flights) }
func (r ResultSet) IsEmpty() bool          { return len(r.flights) == 0 }
func (r ResultSet) At(i int) models.Flight { return r.flights[i] }

func (r ResultSet) Flights() []models.Flight {
	out := make([]models.Flight, len(r.flights))
	copy(out, r.flights)
	return out
}

func (r ResultSet) MarshalJSON() ([]byte, error) {
	if r.flights == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.flights)
}

// FixedDate ranks the flights leaving on the requested day. When a return
// date is set and no return flight matches, the result is empty.
func FixedDate(pool []models.Flight, c models.FixedDateCriteria) (ResultSet, error) {
	if err := c.Validate(); err != nil {
		return ResultSet{}, err
	}

	outbound, inbound := filter.FixedDate(pool, c)
	if c.IsRoundTrip() && len(inbound) == 0 {
		return ResultSet{}, nil
	}

	return newResultSet(outbound), nil
}

func Flexible(pool []models.Flight, c models.FlexibleCriteria) (ResultSet, error) {
	if err := c.Validate(); err != nil {
		return ResultSet{}, err
	}

	return newResultSet(filter.Flexible(pool, c)), nil
}

type RoundTripResult struct {
	Outbound ResultSet `json:"outbound_flights"`
	Return   ResultSet `json:"return_flights"`
}

func (r RoundTripResult) IsEmpty() bool {
	return r.Outbound.IsEmpty() && r.Return.IsEmpty()
}

// RoundTrip ranks both legs of a fixed-date search. Unless both legs have at
// least one match, both are empty.
func RoundTrip(pool []models.Flight, c models.FixedDateCriteria) (RoundTripResult, error) {
	if err := c.Validate(); err != nil {
		return RoundTripResult{}, err
	}

	outbound, inbound := filter.FixedDate(pool, c)
	if len(outbound) == 0 || (c.IsRoundTrip() && len(inbound) == 0) {
		return RoundTripResult{}, nil
	}

	return RoundTripResult{
		Outbound: newResultSet(outbound),
		Return:   newResultSet(inbound),
	}, nil
}

// Run dispatches a single-leg search on the criteria variant. Weekday
// criteria rank the outbound flights only; use Weekdays for trip options.
func Run(pool []models.Flight, criteria models.SearchCriteria) (ResultSet, error) {
	switch c := criteria.(type) {
	case models.FixedDateCriteria:
		return FixedDate(pool, c)
	case models.FlexibleCriteria:
		return Flexible(pool, c)
	default:
		if err := criteria.Validate(); err != nil {
			return ResultSet{}, err
		}
		return newResultSet(filter.Apply(pool, criteria)), nil
	}
}
