package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HealthStatus is the latest probe of the service's backing stores: the
// Mongo request store plus each Redis client by purpose (cache, auth,
// reminder queue).
type HealthStatus struct {
	RequestStore bool            `json:"requestStore"`
	Caches       map[string]bool `json:"caches"`
	CheckedAt    time.Time       `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor probes the request store and the named Redis clients
// once a minute and keeps the snapshot in memory for the health endpoint.
func StartHealthMonitor(caches map[string]*redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			cacheHealth := make(map[string]bool, len(caches))
			for name, client := range caches {
				err := client.Ping(ctx).Err()
				if err != nil {
					GetLogger().Warn("redis health probe failed",
						zap.String("client", name), zap.Error(err))
				}
				cacheHealth[name] = err == nil
			}

			storeErr := mongoClient.Ping(ctx, nil)
			if storeErr != nil {
				GetLogger().Warn("request store health probe failed", zap.Error(storeErr))
			}

			healthMu.Lock()
			currentHealth = HealthStatus{
				RequestStore: storeErr == nil,
				Caches:       cacheHealth,
				CheckedAt:    time.Now(),
			}
			healthMu.Unlock()
		}
	}()
}
