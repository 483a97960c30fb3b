package shipping

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const credentialKey = "shipping:easyparcel:apikey"

// CredentialCache keeps the courier API credential in Redis with a TTL so a
// rotated key propagates to every instance without a restart. Invalidate
// forces the next call to re-fetch.
type CredentialCache struct {
	client *redis.Client
	ttl    time.Duration
	fetch  func(ctx context.Context) (string, error)
}

// NewCredentialCache wires a credential cache. fetch loads the current key
// from its source of truth (config, secret manager).
func NewCredentialCache(client *redis.Client, ttl time.Duration, fetch func(ctx context.Context) (string, error)) *CredentialCache {
	return &CredentialCache{client: client, ttl: ttl, fetch: fetch}
}

// APIKey returns the cached credential, fetching and caching it on a miss.
func (c *CredentialCache) APIKey(ctx context.Context) (string, error) {
	if c == nil || c.fetch == nil {
		return "", errors.New("shipping: credential source not configured")
	}
	if c.client != nil {
		cached, err := c.client.Get(ctx, credentialKey).Result()
		if err == nil && cached != "" {
			return cached, nil
		}
		if err != nil && err != redis.Nil {
			// Redis being down should not block tracking; fall through to fetch.
			_ = err
		}
	}
	key, err := c.fetch(ctx)
	if err != nil {
		return "", err
	}
	if c.client != nil && key != "" {
		_ = c.client.Set(ctx, credentialKey, key, c.ttl).Err()
	}
	return key, nil
}

// Invalidate drops the cached credential.
func (c *CredentialCache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, credentialKey).Err()
}
