package cache

import (
	"condo-package-service/internal/domain"
	"condo-package-service/internal/ports"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	lookupKeyPrefix = "lookup:code:"
	recentFeedKey   = "feed:recent"

	// Codes are immutable once assigned; the TTL only bounds memory,
	// correctness comes from explicit invalidation on delivery.
	lookupTTL = 24 * time.Hour
	feedTTL   = 5 * time.Minute
)

// Redis-backed implementation of the LookupCache port.
type RedisLookupCache struct{ Client redis.UniversalClient }

func NewRedisLookupCache(client redis.UniversalClient) *RedisLookupCache {
	return &RedisLookupCache{Client: client}
}

var _ ports.LookupCache = (*RedisLookupCache)(nil)

func (c *RedisLookupCache) GetPackage(ctx context.Context, code string) (*domain.Package, bool, error) {
	raw, err := c.Client.Get(ctx, lookupKeyPrefix+code).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup cache get %q: %w", code, err)
	}

	var pkg domain.Package
	if err := json.Unmarshal(raw, &pkg); err != nil {
		return nil, false, fmt.Errorf("lookup cache decode %q: %w", code, err)
	}

	return &pkg, true, nil
}

func (c *RedisLookupCache) PutPackage(ctx context.Context, code string, p *domain.Package) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("lookup cache encode %q: %w", code, err)
	}

	if err := c.Client.Set(ctx, lookupKeyPrefix+code, raw, lookupTTL).Err(); err != nil {
		return fmt.Errorf("lookup cache set %q: %w", code, err)
	}

	return nil
}

func (c *RedisLookupCache) Invalidate(ctx context.Context, code string) error {
	if err := c.Client.Del(ctx, lookupKeyPrefix+code).Err(); err != nil {
		return fmt.Errorf("lookup cache del %q: %w", code, err)
	}
	return nil
}

// Redis-backed implementation of the FeedCache port.
type RedisFeedCache struct{ Client redis.UniversalClient }

func NewRedisFeedCache(client redis.UniversalClient) *RedisFeedCache {
	return &RedisFeedCache{Client: client}
}

var _ ports.FeedCache = (*RedisFeedCache)(nil)

func (c *RedisFeedCache) GetRecent(ctx context.Context) ([]*domain.Package, bool, error) {
	raw, err := c.Client.Get(ctx, recentFeedKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("feed cache get: %w", err)
	}

	var pkgs []*domain.Package
	if err := json.Unmarshal(raw, &pkgs); err != nil {
		return nil, false, fmt.Errorf("feed cache decode: %w", err)
	}

	return pkgs, true, nil
}

func (c *RedisFeedCache) PutRecent(ctx context.Context, pkgs []*domain.Package) error {
	raw, err := json.Marshal(pkgs)
	if err != nil {
		return fmt.Errorf("feed cache encode: %w", err)
	}

	if err := c.Client.Set(ctx, recentFeedKey, raw, feedTTL).Err(); err != nil {
		return fmt.Errorf("feed cache set: %w", err)
	}

	return nil
}

func (c *RedisFeedCache) Invalidate(ctx context.Context) error {
	if err := c.Client.Del(ctx, recentFeedKey).Err(); err != nil {
		return fmt.Errorf("feed cache del: %w", err)
	}
	return nil
}
