package providers

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dharmasatrya/flyback/internal/models"
	"github.com/dharmasatrya/flyback/internal/timezone"
)

type MongoProvider struct {
	collection *mongo.Collection
	limit      int64
}

func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}

func NewMongoProvider(collection *mongo.Collection, limit int64) *MongoProvider {
	if limit <= 0 {
		limit = 500
	}
	return &MongoProvider{collection: collection, limit: limit}
}

func (p *MongoProvider) Name() string {
	return "mongo"
}

func (p *MongoProvider) Search(ctx context.Context, q Query) ([]models.FlightRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "departure_time", Value: 1}}).
		SetLimit(p.limit)

	cursor, err := p.collection.Find(ctx, routeDayFilter(q), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.FlightRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	for i := range records {
		records[i].Provider = p.Name()
		// BSON datetimes come back in UTC.
		records[i].DepartureTime = timezone.ConvertToTimezone(records[i].DepartureTime, records[i].Origin)
		records[i].ArrivalTime = timezone.ConvertToTimezone(records[i].ArrivalTime, records[i].Destination)
	}

	return records, nil
}

// routeDayFilter selects offers departing during q.Date, local time at the
// origin airport.
func routeDayFilter(q Query) bson.M {
	q = q.Normalized()
	return bson.M{
		"origin":      q.Origin,
		"destination": q.Destination,
		"departure_time": bson.M{
			"$gte": startOfDay(q.Date, q.Origin),
			"$lt":  startOfDay(q.Date.AddDays(1), q.Origin),
		},
	}
}

func startOfDay(date models.Date, airport string) time.Time {
	return date.In(timezone.GetLocationByAirport(airport)).UTC()
}
