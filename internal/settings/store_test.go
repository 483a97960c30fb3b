package settings

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
)

type fakeSettingsQueries struct {
	row      dbgen.MembershipSetting
	getCalls int
	noRows   bool
}

func (f *fakeSettingsQueries) GetMembershipSettings(ctx context.Context) (dbgen.MembershipSetting, error) {
	f.getCalls++
	if f.noRows {
		return dbgen.MembershipSetting{}, pgx.ErrNoRows
	}
	return f.row, nil
}

func (f *fakeSettingsQueries) UpdateMembershipSettings(ctx context.Context, arg dbgen.UpdateMembershipSettingsParams) (dbgen.MembershipSetting, error) {
	f.row = dbgen.MembershipSetting{
		Threshold:                  arg.Threshold,
		EnablePromotionalExclusion: arg.EnablePromotionalExclusion,
		UpdatedBy:                  arg.UpdatedBy,
	}
	f.noRows = false
	return f.row, nil
}

func newTestStore(t *testing.T, q queryProvider) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(q, client, time.Minute, MembershipConfig{Threshold: 8000}), mr
}

func TestStoreGetCachesResult(t *testing.T) {
	q := &fakeSettingsQueries{row: dbgen.MembershipSetting{Threshold: 9000, EnablePromotionalExclusion: true}}
	store, _ := newTestStore(t, q)
	ctx := context.Background()

	cfg, err := store.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(9000), cfg.Threshold)
	require.True(t, cfg.EnablePromotionalExclusion)

	cfg, err = store.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(9000), cfg.Threshold)
	require.Equal(t, 1, q.getCalls, "second read must come from cache")
}

func TestStoreGetFallback(t *testing.T) {
	q := &fakeSettingsQueries{noRows: true}
	store, _ := newTestStore(t, q)

	cfg, err := store.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(8000), cfg.Threshold)
}

func TestStoreUpdateInvalidates(t *testing.T) {
	q := &fakeSettingsQueries{row: dbgen.MembershipSetting{Threshold: 8000}}
	store, mr := newTestStore(t, q)
	ctx := context.Background()

	_, err := store.Get(ctx)
	require.NoError(t, err)
	require.True(t, mr.Exists("settings:membership"))

	_, err = store.Update(ctx, MembershipConfig{Threshold: 12000, EnablePromotionalExclusion: true}, pgtype.UUID{})
	require.NoError(t, err)
	require.False(t, mr.Exists("settings:membership"), "update must invalidate the cache")

	cfg, err := store.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(12000), cfg.Threshold)
	require.True(t, cfg.EnablePromotionalExclusion)
}

func TestStoreInvalidateWithoutRedis(t *testing.T) {
	store := NewStore(&fakeSettingsQueries{}, nil, time.Minute, MembershipConfig{})
	require.NoError(t, store.Invalidate(context.Background()))
}
