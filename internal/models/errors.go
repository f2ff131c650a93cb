package models

// ValidationError means a provider record cannot form a Flight.
type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingFlightID          ValidationError = "flight id is required"
	ErrMissingAirport           ValidationError = "origin and destination airports are required"
	ErrMissingTimestamp         ValidationError = "departure and arrival times are required"
	ErrArrivalNotAfterDeparture ValidationError = "departure must be before arrival"
	ErrNegativePrice            ValidationError = "price must not be negative"
	ErrInvalidPrice             ValidationError = "price must be a finite number"
)

// InvalidCriteriaError means the search request itself is malformed.
type InvalidCriteriaError string

func (e InvalidCriteriaError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin         InvalidCriteriaError = "origin is required"
	ErrMissingDestination    InvalidCriteriaError = "destination is required"
	ErrSameOriginDestination InvalidCriteriaError = "origin and destination must differ"
	ErrMissingDate           InvalidCriteriaError = "travel date is required"
	ErrReturnBeforeDeparture InvalidCriteriaError = "return date must not be before departure date"
	ErrInvertedDateRange     InvalidCriteriaError = "earliest date must not be after latest date"
	ErrNegativeMaxPrice      InvalidCriteriaError = "max price must not be negative"
	ErrInvalidWeekday        InvalidCriteriaError = "weekday is out of range"
)
