package cache

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keys. List endpoints cache their JSON payloads under these
// prefixes; the invalidators below clear them on every mutation.
const (
	ContainersKeyFmt = "containers:%s" // per vessel id, "all" for the full list
	DashboardKey     = "dashboard:summary"
	TallyGroupsKey   = "tally:groups"
	StatsKeyFmt      = "stats:%s" // worker / mechanical
)

var client *redis.Client

// Init initializes the Redis connection
func Init() error {
	// K8s sets REDIS_SERVICE_HOST and REDIS_SERVICE_PORT for services
	host := os.Getenv("REDIS_SERVICE_HOST")
	if host == "" {
		host = "redis" // fallback to service name
	}
	port := os.Getenv("REDIS_SERVICE_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidateContainerCaches clears everything derived from container rows.
// Called when: import, bulk replace, per-container update, tally approval
func InvalidateContainerCaches(ctx context.Context) {
	InvalidatePattern(ctx, "containers:*")
	InvalidateKeys(ctx, DashboardKey, TallyGroupsKey)
	// mechanical statistics read container weights
	InvalidatePattern(ctx, "stats:*")
}

// InvalidateTallyCaches clears tally listings and groups.
// Called when: report save, replace-all, approval
func InvalidateTallyCaches(ctx context.Context) {
	InvalidatePattern(ctx, "tally:*")
	InvalidateKeys(ctx, DashboardKey)
}

// InvalidateStatsCaches clears the production statistics.
// Called when: work order save or replace-all
func InvalidateStatsCaches(ctx context.Context) {
	InvalidatePattern(ctx, "stats:*")
	InvalidatePattern(ctx, "workorders:*")
}

// InvalidateVesselCaches clears vessel listings and derived dashboards.
// Called when: vessel upsert/delete, import totals recompute
func InvalidateVesselCaches(ctx context.Context) {
	InvalidatePattern(ctx, "vessels:*")
	InvalidateKeys(ctx, DashboardKey)
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
