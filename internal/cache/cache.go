package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"pollboard/internal/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ResultsTTL bounds how stale a cached results payload may get even if an
// invalidation is lost
const ResultsTTL = 30 * time.Second

// ResultsCache is a short-lived Redis cache for computed poll results.
// A nil *ResultsCache is valid and means caching is disabled.
type ResultsCache struct {
	client *redis.Client
}

// New connects to Redis, or returns nil (caching disabled) when no address
// is configured
func New(cfg config.RedisConfig) (*ResultsCache, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Printf("Redis connected: %s", cfg.Addr)
	return &ResultsCache{client: client}, nil
}

func resultsKey(pollID uuid.UUID) string {
	return "poll:results:" + pollID.String()
}

// GetResults loads cached results into dest, reporting whether it was a hit.
// Cache errors degrade to a miss.
func (c *ResultsCache) GetResults(ctx context.Context, pollID uuid.UUID, dest interface{}) bool {
	if c == nil {
		return false
	}

	payload, err := c.client.Get(ctx, resultsKey(pollID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Results cache read error for poll %s: %v", pollID, err)
		}
		return false
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		log.Printf("Results cache decode error for poll %s: %v", pollID, err)
		return false
	}
	return true
}

// SetResults stores computed results; failures are logged, never surfaced
func (c *ResultsCache) SetResults(ctx context.Context, pollID uuid.UUID, results interface{}) {
	if c == nil {
		return
	}

	payload, err := json.Marshal(results)
	if err != nil {
		log.Printf("Results cache encode error for poll %s: %v", pollID, err)
		return
	}

	if err := c.client.Set(ctx, resultsKey(pollID), payload, ResultsTTL).Err(); err != nil {
		log.Printf("Results cache write error for poll %s: %v", pollID, err)
	}
}

// Invalidate drops cached results for a poll, typically after a vote lands
func (c *ResultsCache) Invalidate(ctx context.Context, pollID uuid.UUID) {
	if c == nil {
		return
	}

	if err := c.client.Del(ctx, resultsKey(pollID)).Err(); err != nil {
		log.Printf("Results cache invalidate error for poll %s: %v", pollID, err)
	}
}
