package filter

import (
	"github.com/dharmasatrya/flyback/internal/models"
)

func Apply(pool []models.Flight, criteria models.SearchCriteria) []models.Flight {
	switch c := criteria.(type) {
	case models.FixedDateCriteria:
		outbound, _ := FixedDate(pool, c)
		return outbound
	case models.FlexibleCriteria:
		return Flexible(pool, c)
	case models.WeekdayCriteria:
		return Weekday(pool, c)
	default:
		return []models.Flight{}
	}
}

func FixedDate(pool []models.Flight, c models.FixedDateCriteria) (outbound, inbound []models.Flight) {
	outbound = make([]models.Flight, 0)
	inbound = make([]models.Flight, 0)

	back := c.Route.Reverse()
	for _, f := range pool {
		if matchesOutbound(f, c) {
			outbound = append(outbound, f)
			continue
		}
		if c.ReturnDate != nil && matchesReturn(f, back, *c.ReturnDate, c.ArriveBefore) {
			inbound = append(inbound, f)
		}
	}

	return outbound, inbound
}

func matchesOutbound(f models.Flight, c models.FixedDateCriteria) bool {
	if !c.Route.Serves(f) {
		return false
	}
	if f.DepartureDate() != c.Date {
		return false
	}
	if c.DepartAfter != nil && models.TimeOfDayOf(f.Departure()) < *c.DepartAfter {
		return false
	}
	return true
}

func matchesReturn(f models.Flight, route models.Route, date models.Date, arriveBefore *models.TimeOfDay) bool {
	if !route.Serves(f) {
		return false
	}
	if f.DepartureDate() != date {
		return false
	}
	if arriveBefore != nil && models.TimeOfDayOf(f.Arrival()) > *arriveBefore {
		return false
	}
	return true
}

func Flexible(pool []models.Flight, c models.FlexibleCriteria) []models.Flight {
	result := make([]models.Flight, 0, len(pool))

	for _, f := range pool {
		if matchesFlexible(f, c) {
			result = append(result, f)
		}
	}

	return result
}

func matchesFlexible(f models.Flight, c models.FlexibleCriteria) bool {
	if !c.Route.Serves(f) {
		return false
	}

	date := f.DepartureDate()
	if date.Before(c.Earliest) || date.After(c.Latest) {
		return false
	}

	return f.Price() <= c.MaxPrice
}

func Weekday(pool []models.Flight, c models.WeekdayCriteria) []models.Flight {
	result := make([]models.Flight, 0)
	offset := c.ReturnOffset()

	for _, f := range pool {
		if !c.Route.Serves(f) {
			continue
		}
		date := f.DepartureDate()
		if date.Before(c.From) || date.AddDays(offset).After(c.Until) || date.Weekday() != c.DepartOn {
			continue
		}
		result = append(result, f)
	}

	return result
}
