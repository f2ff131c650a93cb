package models

import (
	"math"
	"strings"
	"time"
)

type Mode string

const (
	ModeFixedDate Mode = "fixed_date"
	ModeFlexible  Mode = "flexible"
	ModeWeekdays  Mode = "weekdays"
)

// SearchCriteria is one of FixedDateCriteria, FlexibleCriteria or
// WeekdayCriteria.
type SearchCriteria interface {
	Mode() Mode
	Validate() error
	route() Route
}

type Route struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

func (r Route) route() Route { return r }

func (r Route) Reverse() Route {
	return Route{Origin: r.Destination, Destination: r.Origin}
}

func (r Route) Serves(f Flight) bool {
	return strings.EqualFold(f.Origin(), strings.TrimSpace(r.Origin)) &&
		strings.EqualFold(f.Destination(), strings.TrimSpace(r.Destination))
}

func (r Route) Validate() error {
	origin := strings.TrimSpace(r.Origin)
	destination := strings.TrimSpace(r.Destination)
	if origin == "" {
		return ErrMissingOrigin
	}
	if destination == "" {
		return ErrMissingDestination
	}
	if strings.EqualFold(origin, destination) {
		return ErrSameOriginDestination
	}
	return nil
}

// FixedDateCriteria searches an exact departure date, optionally paired with
// an exact return date.
type FixedDateCriteria struct {
	Route
	Date       Date
	ReturnDate *Date

	// DepartAfter bounds the outbound departure time, inclusive.
	DepartAfter *TimeOfDay
	// ArriveBefore bounds the return arrival time, inclusive.
	ArriveBefore *TimeOfDay
}

func (c FixedDateCriteria) Mode() Mode { return ModeFixedDate }

func (c FixedDateCriteria) IsRoundTrip() bool { return c.ReturnDate != nil }

func (c FixedDateCriteria) Validate() error {
	if err := c.Route.Validate(); err != nil {
		return err
	}
	if c.Date.IsZero() {
		return ErrMissingDate
	}
	if c.ReturnDate != nil && c.ReturnDate.Before(c.Date) {
		return ErrReturnBeforeDeparture
	}
	return nil
}

type FlexibleCriteria struct {
	Route
	Earliest Date
	Latest   Date
	MaxPrice float64
}

func (c FlexibleCriteria) Mode() Mode { return ModeFlexible }

func (c FlexibleCriteria) Validate() error {
	if err := c.Route.Validate(); err != nil {
		return err
	}
	if c.Earliest.IsZero() || c.Latest.IsZero() {
		return ErrMissingDate
	}
	if c.Earliest.After(c.Latest) {
		return ErrInvertedDateRange
	}
	if math.IsNaN(c.MaxPrice) || c.MaxPrice < 0 {
		return ErrNegativeMaxPrice
	}
	return nil
}

// WeekdayCriteria searches round trips leaving on DepartOn and coming back on
// the next ReturnOn, with both legs inside [From, Until].
type WeekdayCriteria struct {
	Route
	DepartOn time.Weekday
	ReturnOn time.Weekday
	From     Date
	Until    Date
}

func (c WeekdayCriteria) Mode() Mode { return ModeWeekdays }

// ReturnOffset is the number of days from DepartOn to the next ReturnOn,
// zero when both name the same day.
func (c WeekdayCriteria) ReturnOffset() int {
	return (int(c.ReturnOn) - int(c.DepartOn) + 7) % 7
}

func (c WeekdayCriteria) Validate() error {
	if err := c.Route.Validate(); err != nil {
		return err
	}
	if c.From.IsZero() || c.Until.IsZero() {
		return ErrMissingDate
	}
	if c.From.After(c.Until) {
		return ErrInvertedDateRange
	}
	if c.DepartOn < time.Sunday || c.DepartOn > time.Saturday ||
		c.ReturnOn < time.Sunday || c.ReturnOn > time.Saturday {
		return ErrInvalidWeekday
	}
	return nil
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday accepts full English day names in any case.
func ParseWeekday(s string) (time.Weekday, bool) {
	d, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]
	return d, ok
}
