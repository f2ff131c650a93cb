package providers

import (
	"context"
	"errors"
	"strings"

	"github.com/dharmasatrya/flyback/internal/models"
)

type Query struct {
	Origin      string      `json:"origin"`
	Destination string      `json:"destination"`
	Date        models.Date `json:"date"`
	Passengers  int         `json:"passengers"`
}

func (q Query) Normalized() Query {
	q.Origin = strings.ToUpper(strings.TrimSpace(q.Origin))
	q.Destination = strings.ToUpper(strings.TrimSpace(q.Destination))
	return q
}

func (q Query) matchesRoute(origin, destination string) bool {
	return strings.EqualFold(origin, q.Origin) && strings.EqualFold(destination, q.Destination)
}

type Provider interface {
	Name() string
	Search(ctx context.Context, q Query) ([]models.FlightRecord, error)
}

// ErrTemporary marks failures worth retrying.
var ErrTemporary = errors.New("temporary provider failure")

type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Err:      err,
	}
}
