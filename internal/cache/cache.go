package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/flyback/internal/models"
	"github.com/dharmasatrya/flyback/internal/providers"
)

// Cache holds raw provider records for one route-day query. Records are
// stored unvalidated so every read goes through models.NewFlight again.
type Cache interface {
	Get(ctx context.Context, q providers.Query) ([]models.FlightRecord, bool)
	Set(ctx context.Context, q providers.Query, records []models.FlightRecord) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     "localhost",
		Port:     "6379",
		Password: "",
		DB:       0,
		TTL:      5 * time.Minute,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, q providers.Query) ([]models.FlightRecord, bool) {
	data, err := c.client.Get(ctx, generateKey(q)).Bytes()
	if err != nil {
		return nil, false
	}

	var records []models.FlightRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false
	}

	return records, true
}

func (c *RedisCache) Set(ctx context.Context, q providers.Query, records []models.FlightRecord) error {
	if records == nil {
		records = []models.FlightRecord{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, generateKey(q), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, q providers.Query) ([]models.FlightRecord, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, q providers.Query, records []models.FlightRecord) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

func generateKey(q providers.Query) string {
	q = q.Normalized()
	passengers := q.Passengers
	if passengers <= 0 {
		passengers = 1
	}

	keyData := struct {
		Origin      string
		Destination string
		Date        string
		Passengers  int
	}{
		Origin:      q.Origin,
		Destination: q.Destination,
		Date:        q.Date.String(),
		Passengers:  passengers,
	}

	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return "offers:" + hex.EncodeToString(hash[:])
}
