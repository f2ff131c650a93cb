package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/dharmasatrya/flyback/internal/models"
	"github.com/dharmasatrya/flyback/internal/timezone"
)

const DefaultAmadeusBaseURL = "https://test.api.amadeus.com"

type amadeusResponse struct {
	Data []amadeusOffer `json:"data"`
}

type amadeusOffer struct {
	ID                     string             `json:"id"`
	Itineraries            []amadeusItinerary `json:"itineraries"`
	Price                  amadeusPrice       `json:"price"`
	ValidatingAirlineCodes []string           `json:"validatingAirlineCodes"`
}

type amadeusItinerary struct {
	Duration string           `json:"duration"`
	Segments []amadeusSegment `json:"segments"`
}

type amadeusSegment struct {
	Departure     amadeusEndpoint `json:"departure"`
	Arrival       amadeusEndpoint `json:"arrival"`
	CarrierCode   string          `json:"carrierCode"`
	Number        string          `json:"number"`
	NumberOfStops int             `json:"numberOfStops"`
}

type amadeusEndpoint struct {
	IataCode string `json:"iataCode"`
	At       string `json:"at"`
}

type amadeusPrice struct {
	Currency string `json:"currency"`
	Total    string `json:"total"`
}

type AmadeusConfig struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	MaxOffers    int
	Timeout      time.Duration
	// Carriers maps airline codes to display names.
	Carriers map[string]string
}

// AmadeusProvider queries the Amadeus Flight Offers Search API. Only direct,
// single-segment itineraries are kept.
type AmadeusProvider struct {
	client  *http.Client
	baseURL string
	config  AmadeusConfig
}

func NewAmadeusProvider(cfg AmadeusConfig) (*AmadeusProvider, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("amadeus: client id and secret are required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultAmadeusBaseURL
	}
	if cfg.MaxOffers <= 0 {
		cfg.MaxOffers = 50
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	oauthCfg := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     baseURL + "/v1/security/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	client := oauthCfg.Client(ctx)
	client.Timeout = cfg.Timeout

	return &AmadeusProvider{
		client:  client,
		baseURL: baseURL,
		config:  cfg,
	}, nil
}

func (p *AmadeusProvider) Name() string {
	return "amadeus"
}

func (p *AmadeusProvider) Search(ctx context.Context, q Query) ([]models.FlightRecord, error) {
	q = q.Normalized()
	passengers := q.Passengers
	if passengers <= 0 {
		passengers = 1
	}

	params := url.Values{}
	params.Set("originLocationCode", q.Origin)
	params.Set("destinationLocationCode", q.Destination)
	params.Set("departureDate", q.Date.String())
	params.Set("adults", strconv.Itoa(passengers))
	params.Set("nonStop", "true")
	params.Set("max", strconv.Itoa(p.config.MaxOffers))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/v2/shopping/flight-offers?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.amadeus+json")

	resp, err := p.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrTemporary, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: status %d", ErrTemporary, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload amadeusResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode flight offers: %w", err)
	}

	var results []models.FlightRecord
	for _, offer := range payload.Data {
		for _, itinerary := range offer.Itineraries {
			if len(itinerary.Segments) != 1 || itinerary.Segments[0].NumberOfStops != 0 {
				continue
			}

			record, err := p.normalize(offer, itinerary.Segments[0])
			if err != nil {
				continue
			}
			results = append(results, record)
		}
	}

	return results, nil
}

func (p *AmadeusProvider) normalize(offer amadeusOffer, seg amadeusSegment) (models.FlightRecord, error) {
	depTime, err := timezone.ParseAtAirport(seg.Departure.At, seg.Departure.IataCode)
	if err != nil {
		return models.FlightRecord{}, err
	}

	arrTime, err := timezone.ParseAtAirport(seg.Arrival.At, seg.Arrival.IataCode)
	if err != nil {
		return models.FlightRecord{}, err
	}

	price, err := strconv.ParseFloat(offer.Price.Total, 64)
	if err != nil {
		return models.FlightRecord{}, err
	}

	airline := seg.CarrierCode
	if len(offer.ValidatingAirlineCodes) > 0 {
		airline = offer.ValidatingAirlineCodes[0]
	}
	if name, ok := p.config.Carriers[airline]; ok {
		airline = name
	}

	// Offer ids only number the offers within one response.
	id := seg.CarrierCode + seg.Number + "-" + depTime.Format("20060102T1504")

	return models.FlightRecord{
		ID:            id,
		Provider:      p.Name(),
		Carrier:       carrierLabel(airline, seg.CarrierCode+" "+seg.Number),
		Origin:        seg.Departure.IataCode,
		Destination:   seg.Arrival.IataCode,
		DepartureTime: depTime,
		ArrivalTime:   arrTime,
		Price:         price,
		Currency:      offer.Price.Currency,
	}, nil
}
