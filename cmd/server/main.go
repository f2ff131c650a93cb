package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dharmasatrya/flyback/internal/aggregator"
	"github.com/dharmasatrya/flyback/internal/cache"
	"github.com/dharmasatrya/flyback/internal/handler"
	"github.com/dharmasatrya/flyback/internal/providers"
	"github.com/dharmasatrya/flyback/internal/ratelimit"
)

type Config struct {
	Port           string
	CacheEnabled   bool
	RedisHost      string
	RedisPort      string
	RedisPassword  string
	RedisDB        int
	RedisTTL       time.Duration
	MockEnabled    bool
	AmadeusID      string
	AmadeusSecret  string
	AmadeusBaseURL string
	MongoURI       string
	MongoDatabase  string
	MongoColl      string
	SearchTimeout  time.Duration
	MaxRetries     int
	PoolWorkers    int
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Failed to load .env file: %v", err)
	}

	cfg := loadConfig()
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Validator = handler.NewRequestValidator()

	providerList, cleanup, err := initializeProviders(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize providers: %v", err)
	}
	defer cleanup()
	log.Printf("Initialized %d flight providers", len(providerList))

	rateLimiter := ratelimit.NewProviderLimiter(ratelimit.DefaultLimit(), map[string]ratelimit.Limit{
		"static":  {RequestsPerSecond: 100, Burst: 200},
		"mock":    {RequestsPerSecond: 50, Burst: 100},
		"amadeus": {RequestsPerSecond: 10, Burst: 10},
		"mongo":   {RequestsPerSecond: 50, Burst: 100},
	})

	var offerCache cache.Cache
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.RedisTTL,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		offerCache = redisCache
		log.Printf("Redis cache enabled (host: %s:%s, TTL: %v)", cfg.RedisHost, cfg.RedisPort, cfg.RedisTTL)
	} else {
		offerCache = cache.NewNoOpCache()
		log.Println("Cache disabled")
	}
	defer offerCache.Close()

	aggConfig := aggregator.Config{
		Timeout:    cfg.SearchTimeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelays: []time.Duration{
			100 * time.Millisecond,
			200 * time.Millisecond,
			400 * time.Millisecond,
		},
		RateLimiter:     rateLimiter,
		Cache:           offerCache,
		PoolConcurrency: cfg.PoolWorkers,
	}
	agg := aggregator.NewAggregator(providerList, aggConfig)

	searchHandler := handler.NewSearchHandler(agg)

	api := e.Group("/api/v1")
	api.POST("/flights/search/fixed", searchHandler.Fixed)
	api.POST("/flights/search/flexible", searchHandler.Flexible)
	api.POST("/flights/search/weekdays", searchHandler.Weekdays)
	e.GET("/health", searchHandler.Health)

	log.Printf("Starting FlyBack server on port %s", cfg.Port)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func loadConfig() Config {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		CacheEnabled:   getEnvBool("CACHE_ENABLED", false),
		RedisHost:      getEnv("REDIS_HOST", "localhost"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisTTL:       getEnvDuration("REDIS_TTL", 5*time.Minute),
		MockEnabled:    getEnvBool("MOCK_ENABLED", true),
		AmadeusID:      getEnv("AMADEUS_CLIENT_ID", ""),
		AmadeusSecret:  getEnv("AMADEUS_CLIENT_SECRET", ""),
		AmadeusBaseURL: getEnv("AMADEUS_BASE_URL", providers.DefaultAmadeusBaseURL),
		MongoURI:       getEnv("MONGO_URI", ""),
		MongoDatabase:  getEnv("MONGO_DATABASE", "flyback"),
		MongoColl:      getEnv("MONGO_COLLECTION", "offers"),
		SearchTimeout:  getEnvDuration("SEARCH_TIMEOUT", 5*time.Second),
		MaxRetries:     getEnvInt("PROVIDER_MAX_RETRIES", 3),
		PoolWorkers:    getEnvInt("POOL_CONCURRENCY", 8),
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func initializeProviders(cfg Config) ([]providers.Provider, func(), error) {
	var providerList []providers.Provider
	cleanup := func() {}

	static, err := providers.NewStaticProvider()
	if err != nil {
		return nil, cleanup, err
	}
	providerList = append(providerList, static)

	if cfg.MockEnabled {
		providerList = append(providerList, providers.NewMockProvider(providers.DefaultMockConfig()))
	}

	if cfg.AmadeusID != "" && cfg.AmadeusSecret != "" {
		amadeus, err := providers.NewAmadeusProvider(providers.AmadeusConfig{
			ClientID:     cfg.AmadeusID,
			ClientSecret: cfg.AmadeusSecret,
			BaseURL:      cfg.AmadeusBaseURL,
		})
		if err != nil {
			return nil, cleanup, err
		}
		providerList = append(providerList, amadeus)
		log.Printf("Amadeus provider enabled (%s)", cfg.AmadeusBaseURL)
	}

	if cfg.MongoURI != "" {
		client, err := providers.ConnectMongo(context.Background(), cfg.MongoURI)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				log.Printf("Failed to disconnect from MongoDB: %v", err)
			}
		}
		collection := client.Database(cfg.MongoDatabase).Collection(cfg.MongoColl)
		providerList = append(providerList, providers.NewMongoProvider(collection, 0))
		log.Printf("MongoDB provider enabled (%s.%s)", cfg.MongoDatabase, cfg.MongoColl)
	}

	return providerList, cleanup, nil
}
