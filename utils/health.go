package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Redis     bool      `json:"redis"`
	Calendar  bool      `json:"calendar"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks and updates in-memory
// state. calendarAvailable is queried rather than stored so the monitor does
// not depend on service packages.
func StartHealthMonitor(redisClient *redis.Client, calendarAvailable func() bool) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			redisHealthy := redisClient != nil && redisClient.Ping(ctx).Err() == nil

			healthMu.Lock()
			currentHealth = HealthStatus{
				Redis:     redisHealthy,
				Calendar:  calendarAvailable(),
				CheckedAt: time.Now(),
			}
			healthMu.Unlock()
		}
	}()
}
