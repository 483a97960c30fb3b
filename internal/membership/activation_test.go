package membership

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
	"github.com/ecomjrm/storefront-api/internal/lock"
	"github.com/ecomjrm/storefront-api/internal/settings"
)

type fakeActivationQueries struct {
	order       dbgen.Order
	orderErr    error
	memberUsers map[string]bool
	audits      []dbgen.InsertMembershipAuditParams
}

func (f *fakeActivationQueries) GetOrderByID(ctx context.Context, id pgtype.UUID) (dbgen.Order, error) {
	if f.orderErr != nil {
		return dbgen.Order{}, f.orderErr
	}
	return f.order, nil
}

func (f *fakeActivationQueries) ActivateMembership(ctx context.Context, id pgtype.UUID) (int64, error) {
	key := uuidString(id)
	if f.memberUsers[key] {
		return 0, nil
	}
	if f.memberUsers == nil {
		f.memberUsers = map[string]bool{}
	}
	f.memberUsers[key] = true
	return 1, nil
}

func (f *fakeActivationQueries) InsertMembershipAudit(ctx context.Context, arg dbgen.InsertMembershipAuditParams) (dbgen.MembershipAudit, error) {
	f.audits = append(f.audits, arg)
	return dbgen.MembershipAudit{}, nil
}

type staticConfig struct {
	cfg settings.MembershipConfig
}

func (s staticConfig) Get(context.Context) (settings.MembershipConfig, error) { return s.cfg, nil }

func testActivation(t *testing.T, q *fakeActivationQueries) *Activation {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return &Activation{
		Q:      q,
		Config: staticConfig{cfg: settings.MembershipConfig{Threshold: 8000}},
		Locker: lock.Locker{R: client},
		Log:    zerolog.Nop(),
	}
}

func pgUUID(u uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: u, Valid: true}
}

func TestHandlePaidOrderActivates(t *testing.T) {
	userID := pgUUID(uuid.New())
	orderID := pgUUID(uuid.New())
	q := &fakeActivationQueries{order: dbgen.Order{
		ID:                 orderID,
		UserID:             userID,
		QualifyingTotal:    9500,
		MembershipEligible: true,
	}}
	act := testActivation(t, q)

	require.NoError(t, act.HandlePaidOrder(context.Background(), orderID))
	require.True(t, q.memberUsers[uuidString(userID)])
	require.Len(t, q.audits, 1)
	require.Equal(t, int64(9500), q.audits[0].QualifyingTotal)
	require.Equal(t, int64(8000), q.audits[0].Threshold)
}

func TestHandlePaidOrderIdempotent(t *testing.T) {
	userID := pgUUID(uuid.New())
	orderID := pgUUID(uuid.New())
	q := &fakeActivationQueries{order: dbgen.Order{
		ID:                 orderID,
		UserID:             userID,
		QualifyingTotal:    9500,
		MembershipEligible: true,
	}}
	act := testActivation(t, q)
	ctx := context.Background()

	require.NoError(t, act.HandlePaidOrder(ctx, orderID))
	require.NoError(t, act.HandlePaidOrder(ctx, orderID))
	require.Len(t, q.audits, 1, "redelivery must not duplicate the audit record")
}

func TestHandlePaidOrderNotEligible(t *testing.T) {
	orderID := pgUUID(uuid.New())
	q := &fakeActivationQueries{order: dbgen.Order{
		ID:                 orderID,
		UserID:             pgUUID(uuid.New()),
		QualifyingTotal:    3000,
		MembershipEligible: false,
	}}
	act := testActivation(t, q)

	require.NoError(t, act.HandlePaidOrder(context.Background(), orderID))
	require.Empty(t, q.memberUsers)
	require.Empty(t, q.audits)
}

func TestHandlePaidOrderMissing(t *testing.T) {
	q := &fakeActivationQueries{orderErr: pgx.ErrNoRows}
	act := testActivation(t, q)

	err := act.HandlePaidOrder(context.Background(), pgUUID(uuid.New()))
	require.ErrorIs(t, err, ErrOrderNotFound)
}
