package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// PublicKeyPrefix namespaces every cached public page payload.
	PublicKeyPrefix = "public:"

	// Timeout for individual Redis operations
	cacheOpTimeout = 5 * time.Second

	// Pipelines are created and executed per batch so warming the whole
	// catalog never buffers every command at once.
	cacheBatchSize = 100

	mutexCleanupInterval = 10 * time.Minute
	mutexStaleThreshold  = 10 * time.Minute
)

// PublicKey builds a cache key under PublicKeyPrefix.
func PublicKey(parts ...string) string {
	return PublicKeyPrefix + strings.Join(parts, ":")
}

// CacheEntry is one key/value pair written by SetMany.
type CacheEntry struct {
	Key   string
	Value interface{}
}

// ContentCache stores JSON-encoded public page data in Redis.
//
// Loads for the same key are serialized through a per-key mutex so a cold
// key is computed once even when many requests miss at the same time.
type ContentCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger

	keyMu sync.Map // map[string]*mutexWithTimestamp

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

// NewContentCache starts the background mutex cleanup goroutine; call Stop
// during shutdown.
func NewContentCache(client *redis.Client, ttl time.Duration, log *logrus.Logger) *ContentCache {
	c := &ContentCache{
		client:   client,
		ttl:      ttl,
		log:      log,
		stopChan: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupMutexMapLoop()

	return c
}

// Stop is safe to call multiple times.
func (c *ContentCache) Stop() {
	if c.stopped.CompareAndSwap(false, true) {
		close(c.stopChan)
		c.wg.Wait()
		c.log.Info("ContentCache stopped")
	}
}

func (c *ContentCache) TTL() time.Duration {
	return c.ttl
}

// Get decodes the cached value into dest. It reports false on a miss.
func (c *ContentCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

func (c *ContentCache) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}

	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// SetMany writes entries in pipelined batches and returns how many were stored.
func (c *ContentCache) SetMany(ctx context.Context, entries []CacheEntry) (int, error) {
	stored := 0
	for start := 0; start < len(entries); start += cacheBatchSize {
		end := start + cacheBatchSize
		if end > len(entries) {
			end = len(entries)
		}

		// New pipeline for THIS batch only
		pipe := c.client.Pipeline()
		for _, entry := range entries[start:end] {
			raw, err := json.Marshal(entry.Value)
			if err != nil {
				return stored, fmt.Errorf("cache encode %s: %w", entry.Key, err)
			}
			pipe.Set(ctx, entry.Key, raw, c.ttl)
		}

		if _, err := pipe.Exec(ctx); err != nil {
			c.log.Errorf("Failed to execute cache pipeline for batch at offset %d: %+v", start, err)
			return stored, fmt.Errorf("pipeline exec at offset %d: %w", start, err)
		}
		stored += end - start
		c.log.Debugf("Cached batch: %d entries", end-start)

		select {
		case <-ctx.Done():
			return stored, ctx.Err()
		default:
		}
	}
	return stored, nil
}

// Purge deletes every key under PublicKeyPrefix and returns the count.
func (c *ContentCache) Purge(ctx context.Context) (int, error) {
	deleted, err := deleteMatching(ctx, c.client, PublicKeyPrefix+"*", cacheBatchSize)
	if err != nil {
		c.log.Warnf("Failed to purge public cache: %+v", err)
		return int(deleted), fmt.Errorf("purge public cache: %w", err)
	}

	c.log.Debugf("Purged %d public cache keys", deleted)
	return int(deleted), nil
}

// deleteMatching scans the whole keyspace for pattern before deleting
// anything; deleting mid-scan lets the cursor skip keys.
func deleteMatching(ctx context.Context, client *redis.Client, pattern string, batchSize int) (int64, error) {
	var keys []string
	iter := client.Scan(ctx, 0, pattern, int64(batchSize)).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("scan %s: %w", pattern, err)
	}

	var deleted int64
	for start := 0; start < len(keys); start += batchSize {
		end := start + batchSize
		if end > len(keys) {
			end = len(keys)
		}
		n, err := client.Del(ctx, keys[start:end]...).Result()
		if err != nil {
			return deleted, fmt.Errorf("delete %s: %w", pattern, err)
		}
		deleted += n
	}
	return deleted, nil
}

// Remember returns the cached value for key, or calls load and caches its
// result. Cache failures are logged and never hide the loaded value.
// A nil cache always calls load.
func Remember[T any](ctx context.Context, c *ContentCache, key string, load func(ctx context.Context) (T, error)) (T, error) {
	if c == nil {
		return load(ctx)
	}

	var cached T
	if hit, err := c.Get(ctx, key, &cached); err != nil {
		c.log.Warnf("Failed to read public cache: %+v", err)
	} else if hit {
		return cached, nil
	}

	mt := c.getKeyMutex(key)
	mt.mu.Lock()
	defer mt.mu.Unlock()

	// Another request may have filled the key while we waited.
	if hit, err := c.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if err := c.Set(ctx, key, value); err != nil {
		c.log.Warnf("Failed to write public cache: %+v", err)
	}
	return value, nil
}

func (c *ContentCache) getKeyMutex(key string) *mutexWithTimestamp {
	mt, _ := c.keyMu.LoadOrStore(key, &mutexWithTimestamp{})
	result := mt.(*mutexWithTimestamp)
	result.lastUsed.Store(time.Now().Unix())
	return result
}

func (c *ContentCache) cleanupMutexMapLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(mutexCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			c.log.Debug("Mutex cleanup goroutine stopping")
			return
		case <-ticker.C:
			c.cleanupStaleMutexes()
		}
	}
}

// cleanupStaleMutexes checks lastUsed while holding the lock so a mutex
// picked up concurrently is never dropped.
func (c *ContentCache) cleanupStaleMutexes() int {
	cutoffTime := time.Now().Add(-mutexStaleThreshold).Unix()
	var cleaned int

	c.keyMu.Range(func(key, value any) bool {
		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}

		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoffTime {
				c.keyMu.Delete(key)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		c.log.Debugf("Cleaned up %d stale mutexes", cleaned)
	}
	return cleaned
}
