package models

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/dharmasatrya/flyback/pkg/currency"
)

// FlightRecord is a raw offer as returned by a provider, before validation.
type FlightRecord struct {
	ID            string    `json:"id" bson:"offer_id"`
	Provider      string    `json:"provider" bson:"provider"`
	Carrier       string    `json:"carrier" bson:"carrier"`
	Origin        string    `json:"origin" bson:"origin"`
	Destination   string    `json:"destination" bson:"destination"`
	DepartureTime time.Time `json:"departure_time" bson:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time" bson:"arrival_time"`
	Price         float64   `json:"price" bson:"price"`
	Currency      string    `json:"currency" bson:"currency"`
}

// Flight is a validated, read-only offer. The zero value is not a valid
// Flight; build one with NewFlight.
type Flight struct {
	id          string
	provider    string
	carrier     string
	origin      string
	destination string
	departure   time.Time
	arrival     time.Time
	price       float64
	currency    string
}

func NewFlight(r FlightRecord) (Flight, error) {
	if strings.TrimSpace(r.ID) == "" {
		return Flight{}, ErrMissingFlightID
	}
	if strings.TrimSpace(r.Origin) == "" || strings.TrimSpace(r.Destination) == "" {
		return Flight{}, ErrMissingAirport
	}
	if r.DepartureTime.IsZero() || r.ArrivalTime.IsZero() {
		return Flight{}, ErrMissingTimestamp
	}
	if !r.DepartureTime.Before(r.ArrivalTime) {
		return Flight{}, ErrArrivalNotAfterDeparture
	}
	if math.IsNaN(r.Price) || math.IsInf(r.Price, 0) {
		return Flight{}, ErrInvalidPrice
	}
	if r.Price < 0 {
		return Flight{}, ErrNegativePrice
	}

	return Flight{
		id:          r.ID,
		provider:    r.Provider,
		carrier:     r.Carrier,
		origin:      strings.ToUpper(strings.TrimSpace(r.Origin)),
		destination: strings.ToUpper(strings.TrimSpace(r.Destination)),
		departure:   r.DepartureTime,
		arrival:     r.ArrivalTime,
		price:       r.Price,
		currency:    strings.ToUpper(r.Currency),
	}, nil
}

func (f Flight) ID() string           { return f.id }
func (f Flight) Provider() string     { return f.provider }
func (f Flight) Carrier() string      { return f.carrier }
func (f Flight) Origin() string       { return f.origin }
func (f Flight) Destination() string  { return f.destination }
func (f Flight) Departure() time.Time { return f.departure }
func (f Flight) Arrival() time.Time   { return f.arrival }
func (f Flight) Price() float64       { return f.price }
func (f Flight) Currency() string     { return f.currency }

// DepartureDate is the local calendar date at the departure airport.
func (f Flight) DepartureDate() Date {
	return DateOf(f.departure)
}

func (f Flight) Duration() time.Duration {
	return f.arrival.Sub(f.departure)
}

type flightJSON struct {
	ID              string    `json:"id"`
	Provider        string    `json:"provider,omitempty"`
	Carrier         string    `json:"carrier,omitempty"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	Departure       time.Time `json:"departure"`
	Arrival         time.Time `json:"arrival"`
	DepartureDate   Date      `json:"departure_date"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           Price     `json:"price"`
}

type Price struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Formatted string  `json:"formatted"`
}

func (f Flight) MarshalJSON() ([]byte, error) {
	return json.Marshal(flightJSON{
		ID:              f.id,
		Provider:        f.provider,
		Carrier:         f.carrier,
		Origin:          f.origin,
		Destination:     f.destination,
		Departure:       f.departure,
		Arrival:         f.arrival,
		DepartureDate:   f.DepartureDate(),
		DurationMinutes: int(f.Duration().Minutes()),
		Price: Price{
			Amount:    f.price,
			Currency:  f.currency,
			Formatted: currency.Format(f.price, f.currency),
		},
	})
}
