package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is the latest snapshot of the service's external
// dependencies: the booking store, the quote cache and the notification
// queue backend.
type HealthStatus struct {
	Mongo      bool      `json:"mongo"`
	CacheRedis bool      `json:"cache_redis"`
	QueueRedis bool      `json:"queue_redis"`
	CheckedAt  time.Time `json:"checked_at"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

func setHealth(s HealthStatus) {
	mu.Lock()
	currentHealth = s
	mu.Unlock()
}

// StartHealthMonitor performs periodic health checks and updates in-memory
// state. The queue client is checked separately from the cache client: the
// two live on different Redis DBs and the notification path only needs the
// queue.
func StartHealthMonitor(cacheClient, queueClient *redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			setHealth(HealthStatus{
				Mongo:      mongoClient.Ping(ctx, nil) == nil,
				CacheRedis: cacheClient.Ping(ctx).Err() == nil,
				QueueRedis: queueClient.Ping(ctx).Err() == nil,
				CheckedAt:  time.Now(),
			})
		}
	}()
}
