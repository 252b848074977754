package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is the latest snapshot of the backing services: the
// appointment store, the generic cache and the conversation session store.
type HealthStatus struct {
	Appointments bool      `json:"appointments"`
	Cache        bool      `json:"cache"`
	Sessions     bool      `json:"sessions"`
	CheckedAt    time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// StartHealthMonitor pings the appointment store and both redis clients
// once a minute and keeps the snapshot in memory for /health.
func StartHealthMonitor(cache, sessions *redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			snapshot := HealthStatus{
				Appointments: mongoClient.Ping(ctx, nil) == nil,
				Cache:        cache.Ping(ctx).Err() == nil,
				Sessions:     sessions.Ping(ctx).Err() == nil,
				CheckedAt:    time.Now(),
			}

			mu.Lock()
			currentHealth = snapshot
			mu.Unlock()
		}
	}()
}
