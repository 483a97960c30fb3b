package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	redis "github.com/redis/go-redis/v9"

	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
)

// MembershipConfig is the storefront's qualification configuration. Threshold
// is in sen.
type MembershipConfig struct {
	Threshold                  int64 `json:"threshold"`
	EnablePromotionalExclusion bool  `json:"enablePromotionalExclusion"`
}

type queryProvider interface {
	GetMembershipSettings(ctx context.Context) (dbgen.MembershipSetting, error)
	UpdateMembershipSettings(ctx context.Context, arg dbgen.UpdateMembershipSettingsParams) (dbgen.MembershipSetting, error)
}

// Store loads and updates the membership configuration. Reads go through a
// short-TTL Redis cache; writes append a new settings row and invalidate.
// The cache is owned here, with the TTL injected at construction.
type Store struct {
	Q        queryProvider
	R        *redis.Client
	TTL      time.Duration
	Fallback MembershipConfig
}

const cacheKey = "settings:membership"

// NewStore constructs a settings store.
func NewStore(q queryProvider, r *redis.Client, ttl time.Duration, fallback MembershipConfig) *Store {
	return &Store{Q: q, R: r, TTL: ttl, Fallback: fallback}
}

// Get returns the current membership configuration. When no settings row
// exists yet, the configured fallback is returned.
func (s *Store) Get(ctx context.Context) (MembershipConfig, error) {
	if s.R != nil {
		data, err := s.R.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var cfg MembershipConfig
			if err := json.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			return MembershipConfig{}, fmt.Errorf("settings cache get: %w", err)
		}
	}

	row, err := s.Q.GetMembershipSettings(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s.Fallback, nil
		}
		return MembershipConfig{}, fmt.Errorf("load membership settings: %w", err)
	}
	cfg := MembershipConfig{
		Threshold:                  row.Threshold,
		EnablePromotionalExclusion: row.EnablePromotionalExclusion,
	}

	if s.R != nil && s.TTL > 0 {
		if data, err := json.Marshal(cfg); err == nil {
			_ = s.R.Set(ctx, cacheKey, data, s.TTL).Err()
		}
	}
	return cfg, nil
}

// Update appends a new settings row and invalidates the cache.
func (s *Store) Update(ctx context.Context, cfg MembershipConfig, updatedBy pgtype.UUID) (MembershipConfig, error) {
	row, err := s.Q.UpdateMembershipSettings(ctx, dbgen.UpdateMembershipSettingsParams{
		Threshold:                  cfg.Threshold,
		EnablePromotionalExclusion: cfg.EnablePromotionalExclusion,
		UpdatedBy:                  updatedBy,
	})
	if err != nil {
		return MembershipConfig{}, fmt.Errorf("update membership settings: %w", err)
	}
	if err := s.Invalidate(ctx); err != nil {
		return MembershipConfig{}, err
	}
	return MembershipConfig{
		Threshold:                  row.Threshold,
		EnablePromotionalExclusion: row.EnablePromotionalExclusion,
	}, nil
}

// Invalidate drops the cached configuration so the next read hits Postgres.
func (s *Store) Invalidate(ctx context.Context) error {
	if s.R == nil {
		return nil
	}
	if err := s.R.Del(ctx, cacheKey).Err(); err != nil {
		return fmt.Errorf("settings cache invalidate: %w", err)
	}
	return nil
}
