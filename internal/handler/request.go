package handler

import (
	"fmt"

	"github.com/dharmasatrya/flyback/internal/models"
)

type FixedSearchRequest struct {
	Origin        string `json:"origin" validate:"required,len=3"`
	Destination   string `json:"destination" validate:"required,len=3"`
	DepartureDate string `json:"departure_date" validate:"required,datetime=2006-01-02"`
	ReturnDate    string `json:"return_date" validate:"omitempty,datetime=2006-01-02"`
	DepartAfter   string `json:"depart_after" validate:"omitempty,datetime=15:04"`
	ArriveBefore  string `json:"arrive_before" validate:"omitempty,datetime=15:04"`
	Passengers    int    `json:"passengers" validate:"omitempty,min=1,max=9"`
}

func (r FixedSearchRequest) Criteria() (models.FixedDateCriteria, error) {
	c := models.FixedDateCriteria{
		Route: models.Route{Origin: r.Origin, Destination: r.Destination},
	}

	var err error
	if c.Date, err = parseDate("departure_date", r.DepartureDate); err != nil {
		return c, err
	}
	if r.ReturnDate != "" {
		ret, err := parseDate("return_date", r.ReturnDate)
		if err != nil {
			return c, err
		}
		c.ReturnDate = &ret
	}
	if c.DepartAfter, err = parseTimeOfDay("depart_after", r.DepartAfter); err != nil {
		return c, err
	}
	if c.ArriveBefore, err = parseTimeOfDay("arrive_before", r.ArriveBefore); err != nil {
		return c, err
	}

	return c, nil
}

type FlexibleSearchRequest struct {
	Origin      string   `json:"origin" validate:"required,len=3"`
	Destination string   `json:"destination" validate:"required,len=3"`
	Earliest    string   `json:"earliest" validate:"required,datetime=2006-01-02"`
	Latest      string   `json:"latest" validate:"required,datetime=2006-01-02"`
	MaxPrice    *float64 `json:"max_price" validate:"required"`
	Passengers  int      `json:"passengers" validate:"omitempty,min=1,max=9"`
}

func (r FlexibleSearchRequest) Criteria() (models.FlexibleCriteria, error) {
	c := models.FlexibleCriteria{
		Route: models.Route{Origin: r.Origin, Destination: r.Destination},
	}
	if r.MaxPrice != nil {
		c.MaxPrice = *r.MaxPrice
	}

	var err error
	if c.Earliest, err = parseDate("earliest", r.Earliest); err != nil {
		return c, err
	}
	if c.Latest, err = parseDate("latest", r.Latest); err != nil {
		return c, err
	}

	return c, nil
}

type WeekdaySearchRequest struct {
	Origin      string `json:"origin" validate:"required,len=3"`
	Destination string `json:"destination" validate:"required,len=3"`
	DepartOn    string `json:"depart_on" validate:"required"`
	ReturnOn    string `json:"return_on" validate:"required"`
	From        string `json:"from" validate:"required,datetime=2006-01-02"`
	Until       string `json:"until" validate:"required,datetime=2006-01-02"`
	Passengers  int    `json:"passengers" validate:"omitempty,min=1,max=9"`
}

func (r WeekdaySearchRequest) Criteria() (models.WeekdayCriteria, error) {
	c := models.WeekdayCriteria{
		Route: models.Route{Origin: r.Origin, Destination: r.Destination},
	}

	var ok bool
	if c.DepartOn, ok = models.ParseWeekday(r.DepartOn); !ok {
		return c, fmt.Errorf("depart_on: unknown weekday %q", r.DepartOn)
	}
	if c.ReturnOn, ok = models.ParseWeekday(r.ReturnOn); !ok {
		return c, fmt.Errorf("return_on: unknown weekday %q", r.ReturnOn)
	}

	var err error
	if c.From, err = parseDate("from", r.From); err != nil {
		return c, err
	}
	if c.Until, err = parseDate("until", r.Until); err != nil {
		return c, err
	}

	return c, nil
}

func parseDate(field, value string) (models.Date, error) {
	d, err := models.ParseDate(value)
	if err != nil {
		return models.Date{}, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

func parseTimeOfDay(field, value string) (*models.TimeOfDay, error) {
	if value == "" {
		return nil, nil
	}
	t, err := models.ParseTimeOfDay(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return &t, nil
}

func passengersOrDefault(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}
