package search

import (
	"encoding/json"

	"github.com/dharmasatrya/flyback/internal/filter"
	"github.com/dharmasatrya/flyback/internal/models"
	"github.com/dharmasatrya/flyback/internal/ranking"
)

type DatePair struct {
	Departure models.Date `json:"departure_date"`
	Return    models.Date `json:"return_date"`
}

// WeekdayPairs lists every (departure, return) pair where departure falls on
// c.DepartOn, return is the next c.ReturnOn (same day when equal), and both
// lie inside [From, Until].
func WeekdayPairs(c models.WeekdayCriteria) []DatePair {
	offset := c.ReturnOffset()

	var pairs []DatePair
	for _, d := range models.DaysBetween(c.From, c.Until) {
		if d.Weekday() != c.DepartOn {
			continue
		}
		ret := d.AddDays(offset)
		if ret.After(c.Until) {
			break
		}
		pairs = append(pairs, DatePair{Departure: d, Return: ret})
	}

	return pairs
}

// TripOption is the cheapest round trip found for one date pair.
type TripOption struct {
	Dates DatePair
	Trip  ranking.Trip
}

func (o TripOption) TotalPrice() float64 {
	return o.Trip.TotalPrice()
}

func (o TripOption) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		DepartureDate models.Date   `json:"departure_date"`
		ReturnDate    models.Date   `json:"return_date"`
		Outbound      models.Flight `json:"outbound"`
		Return        models.Flight `json:"return"`
		TotalPrice    float64       `json:"total_price"`
	}{
		DepartureDate: o.Dates.Departure,
		ReturnDate:    o.Dates.Return,
		Outbound:      o.Trip.Outbound,
		Return:        o.Trip.Return,
		TotalPrice:    o.TotalPrice(),
	})
}

// Weekdays finds the cheapest outbound and return flight for every weekday
// pair and ranks the pairs by total price. Pairs missing either leg are
// left out.
func Weekdays(pool []models.Flight, c models.WeekdayCriteria) ([]TripOption, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	options := make([]TripOption, 0)
	for _, pair := range WeekdayPairs(c) {
		ret := pair.Return
		outbound, inbound := filter.FixedDate(pool, models.FixedDateCriteria{
			Route:      c.Route,
			Date:       pair.Departure,
			ReturnDate: &ret,
		})
		if len(outbound) == 0 || len(inbound) == 0 {
			continue
		}

		options = append(options, TripOption{
			Dates: pair,
			Trip: ranking.Trip{
				Outbound: ranking.Rank(outbound)[0],
				Return:   ranking.Rank(inbound)[0],
			},
		})
	}

	return ranking.RankTripsFunc(options, func(o TripOption) ranking.Trip { return o.Trip }), nil
}
