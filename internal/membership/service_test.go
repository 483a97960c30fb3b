package membership

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	"github.com/ecomjrm/storefront-api/internal/common"
	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
	"github.com/ecomjrm/storefront-api/internal/settings"
)

type fakeCartQueries struct {
	cart    dbgen.Cart
	cartErr error
	lines   []dbgen.ListCartLinesForMembershipRow
}

func (f *fakeCartQueries) GetCartByID(ctx context.Context, id pgtype.UUID) (dbgen.Cart, error) {
	if f.cartErr != nil {
		return dbgen.Cart{}, f.cartErr
	}
	return f.cart, nil
}

func (f *fakeCartQueries) ListCartLinesForMembership(ctx context.Context, cartID pgtype.UUID) ([]dbgen.ListCartLinesForMembershipRow, error) {
	return f.lines, nil
}

func validCart() dbgen.Cart {
	return dbgen.Cart{
		ID:        pgUUID(uuid.New()),
		ExpiresAt: pgtype.Timestamptz{Time: time.Now().Add(time.Hour), Valid: true},
	}
}

func TestSummarizeJoinsCurrentProductData(t *testing.T) {
	q := &fakeCartQueries{
		cart: validCart(),
		lines: []dbgen.ListCartLinesForMembershipRow{
			{Qty: 1, RegularPrice: 10000, MemberPrice: 9000, IsQualifying: true},
		},
	}
	svc := &Service{
		Q:      q,
		Config: staticConfig{cfg: settings.MembershipConfig{Threshold: 8000}},
	}

	res, cfg, err := svc.Summarize(context.Background(), q.cart.ID, false)
	require.NoError(t, err)
	require.Equal(t, int64(8000), cfg.Threshold)
	require.True(t, res.Eligible)
	require.Equal(t, "100.00", res.QualifyingTotal.StringFixed(2))
	require.Equal(t, "10.00", res.PotentialSavings.StringFixed(2))
	require.Equal(t, "100.0", res.Progress.StringFixed(1))
}

func TestSummarizePromotionalExclusion(t *testing.T) {
	q := &fakeCartQueries{
		cart: validCart(),
		lines: []dbgen.ListCartLinesForMembershipRow{
			{Qty: 2, RegularPrice: 3000, MemberPrice: 3000, IsPromotional: true, IsQualifying: true},
		},
	}
	svc := &Service{
		Q:      q,
		Config: staticConfig{cfg: settings.MembershipConfig{Threshold: 8000, EnablePromotionalExclusion: true}},
	}

	res, _, err := svc.Summarize(context.Background(), q.cart.ID, false)
	require.NoError(t, err)
	require.False(t, res.Eligible)
	require.Equal(t, "0.00", res.QualifyingTotal.StringFixed(2))
	require.Equal(t, "60.00", res.Subtotal.StringFixed(2))
	require.Equal(t, "80.00", res.AmountNeeded.StringFixed(2))
}

func TestSummarizeCartNotFound(t *testing.T) {
	q := &fakeCartQueries{cartErr: pgx.ErrNoRows}
	svc := &Service{Q: q, Config: staticConfig{}}

	_, _, err := svc.Summarize(context.Background(), pgUUID(uuid.New()), false)
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestSummarizeExpiredCart(t *testing.T) {
	q := &fakeCartQueries{cart: dbgen.Cart{
		ID:        pgUUID(uuid.New()),
		ExpiresAt: pgtype.Timestamptz{Time: time.Now().Add(-time.Hour), Valid: true},
	}}
	svc := &Service{Q: q, Config: staticConfig{}}

	_, _, err := svc.Summarize(context.Background(), q.cart.ID, false)
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestSummarizeMemberGetsMemberSubtotal(t *testing.T) {
	q := &fakeCartQueries{
		cart: validCart(),
		lines: []dbgen.ListCartLinesForMembershipRow{
			{Qty: 2, RegularPrice: 2550, MemberPrice: 2200, IsQualifying: true},
		},
	}
	svc := &Service{
		Q:      q,
		Config: staticConfig{cfg: settings.MembershipConfig{Threshold: 8000}},
	}

	res, _, err := svc.Summarize(context.Background(), q.cart.ID, true)
	require.NoError(t, err)
	require.Equal(t, "44.00", res.ApplicableSubtotal.StringFixed(2))
}
