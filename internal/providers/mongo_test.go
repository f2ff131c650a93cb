package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/dharmasatrya/flyback/internal/models"
)

func TestRouteDayFilter(t *testing.T) {
	f := routeDayFilter(Query{Origin: "cph", Destination: "fco", Date: models.NewDate(2026, 2, 6)})

	assert.Equal(t, "CPH", f["origin"])
	assert.Equal(t, "FCO", f["destination"])

	window, ok := f["departure_time"].(bson.M)
	require.True(t, ok)

	// Copenhagen is UTC+1 in February.
	assert.Equal(t, time.Date(2026, 2, 5, 23, 0, 0, 0, time.UTC), window["$gte"])
	assert.Equal(t, time.Date(2026, 2, 6, 23, 0, 0, 0, time.UTC), window["$lt"])
}

func TestNewMongoProvider_DefaultLimit(t *testing.T) {
	p := NewMongoProvider(nil, 0)
	assert.Equal(t, int64(500), p.limit)
	assert.Equal(t, "mongo", p.Name())
}

func TestMongoProvider_Search(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	q := Query{Origin: "CPH", Destination: "FCO", Date: models.NewDate(2026, 2, 6)}

	mt.Run("decodes offers in airport time", func(mt *mtest.T) {
		dep := time.Date(2026, 2, 6, 8, 30, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "flyback.offers", mtest.FirstBatch, bson.D{
			{Key: "offer_id", Value: "SK687-20260206"},
			{Key: "carrier", Value: "SAS"},
			{Key: "origin", Value: "CPH"},
			{Key: "destination", Value: "FCO"},
			{Key: "departure_time", Value: dep},
			{Key: "arrival_time", Value: dep.Add(150 * time.Minute)},
			{Key: "price", Value: 129.5},
			{Key: "currency", Value: "EUR"},
		}))

		records, err := NewMongoProvider(mt.Coll, 0).Search(context.Background(), q)
		require.NoError(mt, err)
		require.Len(mt, records, 1)

		r := records[0]
		assert.Equal(mt, "SK687-20260206", r.ID)
		assert.Equal(mt, "mongo", r.Provider)
		assert.True(mt, r.DepartureTime.Equal(dep))
		assert.Equal(mt, "Europe/Copenhagen", r.DepartureTime.Location().String())
		assert.Equal(mt, "Europe/Rome", r.ArrivalTime.Location().String())
		assert.Equal(mt, 129.5, r.Price)
	})

	mt.Run("returns the driver error unwrapped", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized on flyback",
		}))

		_, err := NewMongoProvider(mt.Coll, 0).Search(context.Background(), q)
		require.Error(mt, err)

		var pe *ProviderError
		assert.False(mt, errors.As(err, &pe))
		var ce mongo.CommandError
		assert.True(mt, errors.As(err, &ce))
	})
}
