package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/flyback/internal/aggregator"
	"github.com/dharmasatrya/flyback/internal/models"
	"github.com/dharmasatrya/flyback/internal/search"
)

type FlightsResponse struct {
	Metadata models.SearchMetadata `json:"metadata"`
	Flights  search.ResultSet      `json:"flights"`
}

type RoundTripResponse struct {
	Metadata models.SearchMetadata `json:"metadata"`
	search.RoundTripResult
}

type WeekdaysResponse struct {
	Metadata models.SearchMetadata `json:"metadata"`
	Options  []search.TripOption   `json:"options"`
}

type SearchHandler struct {
	aggregator *aggregator.Aggregator
}

func NewSearchHandler(agg *aggregator.Aggregator) *SearchHandler {
	return &SearchHandler{aggregator: agg}
}

func (h *SearchHandler) Fixed(c echo.Context) error {
	startTime := time.Now()

	var req FixedSearchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return invalidRequest(c, err)
	}
	criteria, err := req.Criteria()
	if err != nil {
		return invalidRequest(c, err)
	}

	pool, err := h.fetchPool(c.Request().Context(), criteria, req.Passengers)
	if err != nil {
		return searchFailed(c, err)
	}

	if criteria.IsRoundTrip() {
		result, err := search.RoundTrip(pool.Flights, criteria)
		if err != nil {
			return searchFailed(c, err)
		}
		total := result.Outbound.Len() + result.Return.Len()
		return c.JSON(http.StatusOK, RoundTripResponse{
			Metadata:        buildMetadata(pool, total, startTime),
			RoundTripResult: result,
		})
	}

	result, err := search.FixedDate(pool.Flights, criteria)
	if err != nil {
		return searchFailed(c, err)
	}

	return c.JSON(http.StatusOK, FlightsResponse{
		Metadata: buildMetadata(pool, result.Len(), startTime),
		Flights:  result,
	})
}

func (h *SearchHandler) Flexible(c echo.Context) error {
	startTime := time.Now()

	var req FlexibleSearchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return invalidRequest(c, err)
	}
	criteria, err := req.Criteria()
	if err != nil {
		return invalidRequest(c, err)
	}

	pool, err := h.fetchPool(c.Request().Context(), criteria, req.Passengers)
	if err != nil {
		return searchFailed(c, err)
	}

	result, err := search.Flexible(pool.Flights, criteria)
	if err != nil {
		return searchFailed(c, err)
	}

	return c.JSON(http.StatusOK, FlightsResponse{
		Metadata: buildMetadata(pool, result.Len(), startTime),
		Flights:  result,
	})
}

func (h *SearchHandler) Weekdays(c echo.Context) error {
	startTime := time.Now()

	var req WeekdaySearchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return invalidRequest(c, err)
	}
	criteria, err := req.Criteria()
	if err != nil {
		return invalidRequest(c, err)
	}

	pool, err := h.fetchPool(c.Request().Context(), criteria, req.Passengers)
	if err != nil {
		return searchFailed(c, err)
	}

	options, err := search.Weekdays(pool.Flights, criteria)
	if err != nil {
		return searchFailed(c, err)
	}

	return c.JSON(http.StatusOK, WeekdaysResponse{
		Metadata: buildMetadata(pool, len(options), startTime),
		Options:  options,
	})
}

func (h *SearchHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "ok",
		Providers: h.aggregator.ProviderCount(),
	})
}

func (h *SearchHandler) fetchPool(ctx context.Context, criteria models.SearchCriteria, passengers int) (*aggregator.Pool, error) {
	queries, err := aggregator.PoolQueries(criteria, passengersOrDefault(passengers))
	if err != nil {
		return nil, err
	}
	return h.aggregator.FetchPool(ctx, queries)
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

func buildMetadata(pool *aggregator.Pool, total int, startTime time.Time) models.SearchMetadata {
	return models.SearchMetadata{
		TotalResults:       total,
		RouteDays:          pool.Queries,
		ProvidersQueried:   pool.ProvidersQueried,
		ProvidersSucceeded: pool.ProvidersSucceeded,
		ProvidersFailed:    pool.ProvidersFailed,
		FailedProviders:    pool.FailedProviders,
		RejectedRecords:    pool.Rejected,
		CacheHits:          pool.CacheHits,
		SearchTimeMs:       time.Since(startTime).Milliseconds(),
	}
}

func invalidRequest(c echo.Context, err error) error {
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if s, ok := he.Message.(string); ok {
			msg = s
		}
	}
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "invalid_request",
		Message: msg,
		Code:    http.StatusBadRequest,
	})
}

// searchFailed maps criteria errors to 422 and adapter failures to 502.
func searchFailed(c echo.Context, err error) error {
	var ice models.InvalidCriteriaError
	switch {
	case errors.As(err, &ice):
		return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "invalid_criteria",
			Message: ice.Error(),
			Code:    http.StatusUnprocessableEntity,
		})
	case errors.Is(err, aggregator.ErrTooManyQueries):
		return invalidRequest(c, err)
	}

	log.Printf("Search failed: %v", err)
	return c.JSON(http.StatusBadGateway, models.ErrorResponse{
		Error:   "search_error",
		Message: "Failed to search flights: " + err.Error(),
		Code:    http.StatusBadGateway,
	})
}
