package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedDateCriteria_Validate(t *testing.T) {
	date := NewDate(2024, 6, 5)
	earlier := NewDate(2024, 6, 4)
	same := date

	tests := []struct {
		name     string
		criteria FixedDateCriteria
		want     error
	}{
		{"valid one way", FixedDateCriteria{Route: Route{"CPH", "BER"}, Date: date}, nil},
		{"valid same-day return", FixedDateCriteria{Route: Route{"CPH", "BER"}, Date: date, ReturnDate: &same}, nil},
		{"same airports", FixedDateCriteria{Route: Route{"CPH", "cph"}, Date: date}, ErrSameOriginDestination},
		{"missing origin", FixedDateCriteria{Route: Route{"", "BER"}, Date: date}, ErrMissingOrigin},
		{"missing destination", FixedDateCriteria{Route: Route{"CPH", " "}, Date: date}, ErrMissingDestination},
		{"missing date", FixedDateCriteria{Route: Route{"CPH", "BER"}}, ErrMissingDate},
		{"return before departure", FixedDateCriteria{Route: Route{"CPH", "BER"}, Date: date, ReturnDate: &earlier}, ErrReturnBeforeDeparture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.criteria.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, err)
		})
	}
}

func TestFlexibleCriteria_Validate(t *testing.T) {
	route := Route{Origin: "CPH", Destination: "FCO"}
	tests := []struct {
		name     string
		criteria FlexibleCriteria
		want     error
	}{
		{"valid", FlexibleCriteria{route, NewDate(2024, 6, 1), NewDate(2024, 6, 3), 500}, nil},
		{"single day, zero budget", FlexibleCriteria{route, NewDate(2024, 6, 1), NewDate(2024, 6, 1), 0}, nil},
		{"inverted range", FlexibleCriteria{route, NewDate(2024, 6, 3), NewDate(2024, 6, 1), 500}, ErrInvertedDateRange},
		{"negative budget", FlexibleCriteria{route, NewDate(2024, 6, 1), NewDate(2024, 6, 3), -1}, ErrNegativeMaxPrice},
		{"same airports", FlexibleCriteria{Route{"FCO", "FCO"}, NewDate(2024, 6, 1), NewDate(2024, 6, 3), 500}, ErrSameOriginDestination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.criteria.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, err)

			var invalid InvalidCriteriaError
			assert.True(t, errors.As(err, &invalid))
		})
	}
}

func TestWeekdayCriteria_Validate(t *testing.T) {
	route := Route{Origin: "CPH", Destination: "FCO"}
	valid := WeekdayCriteria{Route: route, DepartOn: time.Friday, ReturnOn: time.Sunday, From: NewDate(2025, 1, 1), Until: NewDate(2025, 2, 28)}
	assert.NoError(t, valid.Validate())

	inverted := valid
	inverted.From, inverted.Until = valid.Until, valid.From
	assert.Equal(t, ErrInvertedDateRange, inverted.Validate())

	badDay := valid
	badDay.ReturnOn = time.Weekday(9)
	assert.Equal(t, ErrInvalidWeekday, badDay.Validate())
}

func TestCriteriaModes(t *testing.T) {
	assert.Equal(t, ModeFixedDate, FixedDateCriteria{}.Mode())
	assert.Equal(t, ModeFlexible, FlexibleCriteria{}.Mode())
	assert.Equal(t, ModeWeekdays, WeekdayCriteria{}.Mode())

	route := Route{Origin: "CPH", Destination: "BER"}
	assert.Equal(t, Route{Origin: "BER", Destination: "CPH"}, route.Reverse())
}

func TestParseWeekday(t *testing.T) {
	d, ok := ParseWeekday("FRIDAY")
	assert.True(t, ok)
	assert.Equal(t, time.Friday, d)

	_, ok = ParseWeekday("Fri")
	assert.False(t, ok)
}

func TestWeekdayCriteria_ReturnOffset(t *testing.T) {
	tests := []struct {
		depart, ret time.Weekday
		want        int
	}{
		{time.Friday, time.Sunday, 2},
		{time.Thursday, time.Monday, 4},
		{time.Saturday, time.Saturday, 0},
		{time.Sunday, time.Saturday, 6},
	}

	for _, tt := range tests {
		c := WeekdayCriteria{DepartOn: tt.depart, ReturnOn: tt.ret}
		assert.Equal(t, tt.want, c.ReturnOffset(), "%s to %s", tt.depart, tt.ret)
	}
}
