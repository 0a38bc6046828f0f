package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gestor/backend/internal/domain/geo"
	"github.com/redis/go-redis/v9"
)

// GeocodeStore caches resolved addresses. A miss is (nil, nil); store errors
// are surfaced so callers can decide whether to fall through to the provider.
type GeocodeStore interface {
	Get(ctx context.Context, address string) (*geo.GeocodingResult, error)
	Set(ctx context.Context, address string, result *geo.GeocodingResult, ttl time.Duration) error
	Close() error
}

// cacheKey normalizes an address for cache lookup. Whitespace and case
// differences in user input should not fan out into separate provider calls.
func cacheKey(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}

// =============================================================================
// In-Memory Store
// =============================================================================

// memoryEntry is a cached result with expiration
type memoryEntry struct {
	result    geo.GeocodingResult
	expiresAt time.Time
}

// MemoryGeocodeStore implements GeocodeStore using an in-memory map.
// This is suitable for single-instance deployments and testing.
type MemoryGeocodeStore struct {
	mu        sync.RWMutex
	entries   map[string]memoryEntry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewMemoryGeocodeStore creates a new in-memory geocode store.
// It starts a background goroutine to clean up expired entries.
func NewMemoryGeocodeStore() *MemoryGeocodeStore {
	store := &MemoryGeocodeStore{
		entries:  make(map[string]memoryEntry),
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

// Get returns the cached result for an address, or nil on a miss
func (s *MemoryGeocodeStore) Get(ctx context.Context, address string) (*geo.GeocodingResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[cacheKey(address)]
	if !exists {
		return nil, nil
	}
	if time.Now().After(e.expiresAt) {
		return nil, nil
	}

	result := e.result
	return &result, nil
}

// Set caches a result for an address
func (s *MemoryGeocodeStore) Set(ctx context.Context, address string, result *geo.GeocodingResult, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[cacheKey(address)] = memoryEntry{
		result:    *result,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *MemoryGeocodeStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (s *MemoryGeocodeStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

// cleanup removes expired entries from the store
func (s *MemoryGeocodeStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
		}
	}
}

// Size returns the number of entries in the store (for testing/monitoring)
func (s *MemoryGeocodeStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// =============================================================================
// Redis Store
// =============================================================================

// RedisGeocodeStore implements GeocodeStore using Redis, so multiple instances
// share one cache of resolved addresses.
type RedisGeocodeStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisGeocodeStore creates a Redis-backed geocode store and verifies the
// connection
func NewRedisGeocodeStore(addr, password string, db int) (*RedisGeocodeStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisGeocodeStore{
		client:    client,
		keyPrefix: "geocode:",
	}, nil
}

// NewRedisGeocodeStoreWithClient creates a store with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisGeocodeStoreWithClient(client *redis.Client, keyPrefix string) *RedisGeocodeStore {
	if keyPrefix == "" {
		keyPrefix = "geocode:"
	}
	return &RedisGeocodeStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the cached result for an address, or nil on a miss
func (s *RedisGeocodeStore) Get(ctx context.Context, address string) (*geo.GeocodingResult, error) {
	payload, err := s.client.Get(ctx, s.keyPrefix+cacheKey(address)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read geocode cache: %w", err)
	}

	var result geo.GeocodingResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("failed to decode cached geocode result: %w", err)
	}
	return &result, nil
}

// Set caches a result for an address with a TTL
func (s *RedisGeocodeStore) Set(ctx context.Context, address string, result *geo.GeocodingResult, ttl time.Duration) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode geocode result: %w", err)
	}

	if err := s.client.Set(ctx, s.keyPrefix+cacheKey(address), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write geocode cache: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisGeocodeStore) Close() error {
	return s.client.Close()
}

// Ensure both stores implement GeocodeStore
var (
	_ GeocodeStore = (*MemoryGeocodeStore)(nil)
	_ GeocodeStore = (*RedisGeocodeStore)(nil)
)
