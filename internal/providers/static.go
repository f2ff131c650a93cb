package providers

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/dharmasatrya/flyback/internal/models"
	"github.com/dharmasatrya/flyback/internal/providers/data"
	"github.com/dharmasatrya/flyback/internal/timezone"
)

type staticResponse struct {
	Offers []staticOffer `json:"offers"`
}

type staticOffer struct {
	OfferID      string        `json:"offer_id"`
	Carrier      staticCarrier `json:"carrier"`
	FlightNumber string        `json:"flight_number"`
	From         string        `json:"from"`
	To           string        `json:"to"`
	DepartAt     string        `json:"depart_at"`
	ArriveAt     string        `json:"arrive_at"`
	Price        staticPrice   `json:"price"`
}

type staticCarrier struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type staticPrice struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

type StaticProvider struct {
	offers []staticOffer
}

func NewStaticProvider() (*StaticProvider, error) {
	return NewStaticProviderFromJSON(data.Offers)
}

func NewStaticProviderFromJSON(raw []byte) (*StaticProvider, error) {
	var resp staticResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}
	return &StaticProvider{offers: resp.Offers}, nil
}

func (p *StaticProvider) Name() string {
	return "static"
}

func (p *StaticProvider) Search(ctx context.Context, q Query) ([]models.FlightRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var results []models.FlightRecord
	for _, o := range p.offers {
		if !q.matchesRoute(o.From, o.To) {
			continue
		}

		record, err := p.normalize(o)
		if err != nil {
			continue
		}
		if models.DateOf(record.DepartureTime) != q.Date {
			continue
		}

		results = append(results, record)
	}

	return results, nil
}

// normalize only parses; range checks happen in models.NewFlight.
func (p *StaticProvider) normalize(o staticOffer) (models.FlightRecord, error) {
	depTime, err := timezone.ParseAtAirport(o.DepartAt, o.From)
	if err != nil {
		return models.FlightRecord{}, err
	}

	arrTime, err := timezone.ParseAtAirport(o.ArriveAt, o.To)
	if err != nil {
		return models.FlightRecord{}, err
	}

	price, err := strconv.ParseFloat(o.Price.Total, 64)
	if err != nil {
		return models.FlightRecord{}, err
	}

	return models.FlightRecord{
		ID:            o.OfferID,
		Provider:      p.Name(),
		Carrier:       carrierLabel(o.Carrier.Name, o.FlightNumber),
		Origin:        o.From,
		Destination:   o.To,
		DepartureTime: depTime,
		ArrivalTime:   arrTime,
		Price:         price,
		Currency:      o.Price.Currency,
	}, nil
}

func carrierLabel(name, flightNumber string) string {
	switch {
	case name == "":
		return flightNumber
	case flightNumber == "":
		return name
	default:
		return name + " " + flightNumber
	}
}
