package services

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"ouardatie_server/config"
	"ouardatie_server/structs"
	"ouardatie_server/structs/tables"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
	redisCtx    = context.Background()
)

// CacheService provides Redis caching functionality with connection pooling and retry logic
type CacheService struct {
	logger *gecho.Logger
	config *structs.Config
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, cfg *structs.Config) *CacheService {
	return &CacheService{
		logger: logger,
		config: cfg,
		client: getRedisClient(),
	}
}

// getRedisClient returns a singleton Redis client with proper connection pooling
func getRedisClient() *redis.Client {
	redisOnce.Do(func() {
		cfg := config.GetConfig()
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Address,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,

			// Connection pool settings
			PoolSize:        cfg.Cache.PoolSize,
			MinIdleConns:    cfg.Cache.MinIdleConns,
			MaxIdleConns:    cfg.Cache.MaxIdleConns,
			PoolTimeout:     cfg.Cache.PoolTimeout,
			ConnMaxIdleTime: cfg.Cache.IdleTimeout,

			// Timeouts
			DialTimeout:  cfg.Cache.DialTimeout,
			ReadTimeout:  cfg.Cache.ReadTimeout,
			WriteTimeout: cfg.Cache.WriteTimeout,

			// Retry settings
			MaxRetries:      cfg.Cache.MaxRetries,
			MinRetryBackoff: cfg.Cache.MinRetryBackoff,
			MaxRetryBackoff: cfg.Cache.MaxRetryBackoff,
		})
	})
	return redisClient
}

// Close closes the Redis connection pool
func (cs *CacheService) Close() error {
	if redisClient != nil {
		return redisClient.Close()
	}
	return nil
}

// withRetry executes a Redis operation with exponential backoff retry logic
func (cs *CacheService) withRetry(operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		// Don't retry on the last attempt
		if attempt == maxRetries {
			break
		}

		// Only retry on network/connection errors, not on logical errors like key not found
		if !isRetryableError(err) {
			return err
		}

		maxBackoff := 2000 // max 2000ms = 2s
		base := 100        // 100ms base

		backoff := base * (1 << attempt) // exponential
		backoff = min(backoff, maxBackoff)

		// add jitter ±50%
		jitterBytes := make([]byte, 4)
		_, err = rand.Read(jitterBytes)
		if err != nil {
			// fallback to no jitter if random fails
			time.Sleep(time.Duration(backoff) * time.Millisecond)
			continue
		}
		jitter := int(uint32(jitterBytes[0])<<24 | uint32(jitterBytes[1])<<16 | uint32(jitterBytes[2])<<8 | uint32(jitterBytes[3]))

		jitter = jitter % (backoff/2 + 1)
		backoffWithJitter := backoff/2 + jitter

		time.Sleep(time.Duration(backoffWithJitter) * time.Millisecond)
	}

	return fmt.Errorf("redis operation failed after %d retries: %w", maxRetries, lastErr)
}

// isRetryableError determines if an error is worth retrying
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Don't retry on nil results (key not found)
	if err == redis.Nil {
		return false
	}

	// Retry on network/connection errors
	errStr := err.Error()
	retryableErrors := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	}

	for _, retryableErr := range retryableErrors {
		if strings.Contains(errStr, retryableErr) {
			return true
		}
	}

	return false
}

// Set sets a key with TTL and automatic retry logic
func (cs *CacheService) Set(key string, value any, ttl time.Duration) error {
	return cs.withRetry(func() error {
		return cs.client.Set(redisCtx, key, value, ttl).Err()
	}, 3)
}

// Get retrieves a key with automatic retry logic
func (cs *CacheService) Get(key string) (string, error) {
	var result string

	err := cs.withRetry(func() error {
		val, err := cs.client.Get(redisCtx, key).Result()
		if err == redis.Nil {
			result = ""
			return nil // Don't retry on key not found
		}
		if err != nil {
			return err
		}
		result = val
		return nil
	}, 3)

	if err != nil {
		return "", err
	}

	return result, nil
}

// Delete removes a key with automatic retry logic
func (cs *CacheService) Delete(key string) error {
	return cs.withRetry(func() error {
		return cs.client.Del(redisCtx, key).Err()
	}, 3)
}

// Exists checks if a key exists with automatic retry logic
func (cs *CacheService) Exists(key string) (bool, error) {
	var result bool

	err := cs.withRetry(func() error {
		count, err := cs.client.Exists(redisCtx, key).Result()
		if err != nil {
			return err
		}
		result = count > 0
		return nil
	}, 3)

	return result, err
}

// BlacklistToken adds a token's jti to the blacklist with expiration and retry logic
func (cs *CacheService) BlacklistToken(jti uuid.UUID, exp time.Time) error {
	ttl := cs.config.Auth.BlacklistCacheTTL
	if exp.After(time.Now()) {
		ttl = time.Until(exp)
	}

	key := fmt.Sprintf("blacklist:%s", jti)
	return cs.Set(key, "true", ttl)
}

// IsTokenBlacklisted checks if a JTI exists in Redis with retry logic
func (cs *CacheService) IsTokenBlacklisted(jti uuid.UUID) (bool, error) {
	key := fmt.Sprintf("blacklist:%s", jti.String())
	val, err := cs.Get(key)
	if err != nil {
		return false, err
	}

	return val == "true", nil
}

// GetProfileFromCache retrieves a profile object from cache using userID
func (cs *CacheService) GetProfileFromCache(userID uuid.UUID) (*tables.Profile, error) {
	key := fmt.Sprintf("profile:%s", userID.String())
	return getJSON[tables.Profile](cs, key)
}

// SetProfileInCache stores a profile object in cache with TTL
func (cs *CacheService) SetProfileInCache(profile *tables.Profile) error {
	if profile == nil {
		// Nothing to cache
		return nil
	}
	key := fmt.Sprintf("profile:%s", profile.ID.String())
	return setJSON(cs, key, profile, cs.config.Auth.CacheUserTTL)
}

// InvalidateProfileCache removes a profile object from cache
func (cs *CacheService) InvalidateProfileCache(userID uuid.UUID) error {
	key := fmt.Sprintf("profile:%s", userID.String())
	return cs.Delete(key)
}

// ============================================================================
// Cart Persistence Methods
// ============================================================================

// GetCart retrieves a persisted cart by its cookie token
func (cs *CacheService) GetCart(token string) (*structs.Cart, error) {
	key := fmt.Sprintf("cart:%s", token)
	return getJSON[structs.Cart](cs, key)
}

// SetCart persists a cart under its cookie token, refreshing the idle TTL
func (cs *CacheService) SetCart(token string, cart *structs.Cart) error {
	key := fmt.Sprintf("cart:%s", token)
	return setJSON(cs, key, cart, cs.config.Cart.TTL)
}

// DeleteCart removes a persisted cart
func (cs *CacheService) DeleteCart(token string) error {
	key := fmt.Sprintf("cart:%s", token)
	return cs.Delete(key)
}

// ============================================================================
// Rate Limiting Methods
// ============================================================================

// IncrementRateLimit atomically increments a rate limit counter
func (cs *CacheService) IncrementRateLimit(ip, endpoint string, ttl time.Duration) (int, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", ip, endpoint)

	var result int64
	err := cs.withRetry(func() error {
		val, err := cs.client.Incr(redisCtx, key).Result()
		if err != nil {
			return err
		}
		result = val

		// Set expiration only on first increment
		if val == 1 {
			return cs.client.Expire(redisCtx, key, ttl).Err()
		}

		return nil
	}, 3)

	return int(result), err
}

// ============================================================================
// Catalog Caching Methods
// ============================================================================

// GetProductByID retrieves a cached product by ID
func (cs *CacheService) GetProductByID(id string) (*tables.Product, error) {
	key := fmt.Sprintf("product:id:%s", id)

	product, err := getJSON[tables.Product](cs, key)
	if err != nil {
		cs.logger.Warn("Failed to get product from cache", gecho.Field("error", err), gecho.Field("id", id))
		return nil, err
	}

	return product, nil
}

// SetProductByID caches a product by ID
func (cs *CacheService) SetProductByID(product *tables.Product) error {
	key := fmt.Sprintf("product:id:%s", product.ID.String())
	return setJSON(cs, key, product, cs.getProductListTTL())
}

// GetCategoriesList retrieves the cached category list
func (cs *CacheService) GetCategoriesList() ([]tables.Category, error) {
	categories, err := getJSON[[]tables.Category](cs, "categories:all")
	if err != nil {
		return nil, err
	}
	if categories == nil {
		return nil, nil
	}
	return *categories, nil
}

// SetCategoriesList caches the category list
func (cs *CacheService) SetCategoriesList(categories []tables.Category) error {
	return setJSON(cs, "categories:all", categories, cs.getProductListTTL())
}

// GetShippingOptions retrieves the cached shipping option list
func (cs *CacheService) GetShippingOptions() ([]tables.ShippingOption, error) {
	options, err := getJSON[[]tables.ShippingOption](cs, "shipping:options")
	if err != nil {
		return nil, err
	}
	if options == nil {
		return nil, nil
	}
	return *options, nil
}

// SetShippingOptions caches the shipping option list
func (cs *CacheService) SetShippingOptions(options []tables.ShippingOption) error {
	return setJSON(cs, "shipping:options", options, cs.getProductCountTTL())
}

// ============================================================================
// Cache Invalidation Methods
// ============================================================================

// InvalidateProductCaches removes the cached copy of a product.
// Listings are never cached (filters and sorts make the key space
// unbounded), so the per-ID entry is the only one to drop.
func (cs *CacheService) InvalidateProductCaches(productID uuid.UUID) error {
	key := fmt.Sprintf("product:id:%s", productID.String())
	return cs.Delete(key)
}

// InvalidateCategoryCache removes the cached category list
func (cs *CacheService) InvalidateCategoryCache() error {
	return cs.Delete("categories:all")
}

// InvalidateShippingCache removes the cached shipping options
func (cs *CacheService) InvalidateShippingCache() error {
	return cs.Delete("shipping:options")
}

// Ping tests the Redis connection
func (cs *CacheService) Ping() error {
	return cs.withRetry(func() error {
		return cs.client.Ping(redisCtx).Err()
	}, 3)
}

// GetConnectionStats returns Redis connection pool statistics
func (cs *CacheService) GetConnectionStats() map[string]any {
	stats := cs.client.PoolStats()

	return map[string]any{
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"timeouts":    stats.Timeouts,
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
		"stale_conns": stats.StaleConns,
	}
}

// ============================================================================
// Helper Methods
// ============================================================================

// getProductListTTL returns the TTL for product lists from config
func (cs *CacheService) getProductListTTL() time.Duration {
	if cs.config.Cache.ProductListTTL > 0 {
		return cs.config.Cache.ProductListTTL
	}
	return 5 * time.Minute // fallback default
}

// getProductCountTTL returns the TTL for product counts from config
func (cs *CacheService) getProductCountTTL() time.Duration {
	if cs.config.Cache.ProductCountTTL > 0 {
		return cs.config.Cache.ProductCountTTL
	}
	return 10 * time.Minute // fallback default
}

func setJSON[T any](cs *CacheService, key string, value T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return cs.Set(key, data, ttl)
}

func getJSON[T any](cs *CacheService, key string) (*T, error) {
	val, err := cs.Get(key)
	if err != nil {
		return nil, err
	}

	if val == "" {
		return nil, nil // not found in cache
	}

	var result T
	err = json.Unmarshal([]byte(val), &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// GetRateLimitCount retrieves the current rate limit count for an IP/endpoint
func (cs *CacheService) GetRateLimitCount(ip, endpoint string) (int, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", ip, endpoint)
	val, err := cs.Get(key)
	if err != nil {
		return 0, err
	}

	if val == "" {
		return 0, nil
	}

	count, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid rate limit value: %w", err)
	}

	return count, nil
}
