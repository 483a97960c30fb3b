package checkout

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
	"github.com/ecomjrm/storefront-api/internal/settings"
)

type fakeOrderStore struct {
	cart        dbgen.Cart
	user        dbgen.GetUserByIDRow
	items       []dbgen.CartItem
	lines       []dbgen.ListCartLinesForMembershipRow
	noStockFor  string
	orderParams dbgen.CreateOrderParams
	itemParams  []dbgen.CreateOrderItemParams
	cleared     bool
}

func (f *fakeOrderStore) GetCartByID(context.Context, pgtype.UUID) (dbgen.Cart, error) {
	return f.cart, nil
}

func (f *fakeOrderStore) GetUserByID(context.Context, pgtype.UUID) (dbgen.GetUserByIDRow, error) {
	return f.user, nil
}

func (f *fakeOrderStore) ListCartItems(context.Context, pgtype.UUID) ([]dbgen.CartItem, error) {
	return f.items, nil
}

func (f *fakeOrderStore) ListCartLinesForMembership(context.Context, pgtype.UUID) ([]dbgen.ListCartLinesForMembershipRow, error) {
	return f.lines, nil
}

func (f *fakeOrderStore) CreateOrder(_ context.Context, arg dbgen.CreateOrderParams) (dbgen.Order, error) {
	f.orderParams = arg
	return dbgen.Order{
		ID:                 pgUUID(uuid.New()),
		UserID:             arg.UserID,
		Status:             arg.Status,
		PricingTotal:       arg.PricingTotal,
		QualifyingTotal:    arg.QualifyingTotal,
		MembershipEligible: arg.MembershipEligible,
	}, nil
}

func (f *fakeOrderStore) CreateOrderItem(_ context.Context, arg dbgen.CreateOrderItemParams) error {
	f.itemParams = append(f.itemParams, arg)
	return nil
}

func (f *fakeOrderStore) DecrementStock(_ context.Context, arg dbgen.DecrementStockParams) (int64, error) {
	for _, it := range f.items {
		if it.ProductID == arg.ID && it.Slug == f.noStockFor {
			return 0, nil
		}
	}
	return 1, nil
}

func (f *fakeOrderStore) ClearCartItems(context.Context, pgtype.UUID) error {
	f.cleared = true
	return nil
}

func pgUUID(u uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: u, Valid: true}
}

// Two lines: RM60 + RM40 regular, RM54 + RM36 member, both qualifying.
func twoLineStore(isMember bool) *fakeOrderStore {
	uID := pgUUID(uuid.New())
	teaID := pgUUID(uuid.New())
	kopiID := pgUUID(uuid.New())
	return &fakeOrderStore{
		cart: dbgen.Cart{ID: pgUUID(uuid.New()), UserID: uID},
		user: dbgen.GetUserByIDRow{ID: uID, Email: "aina@example.my", IsMember: isMember},
		items: []dbgen.CartItem{
			{ProductID: teaID, Title: "Teh Tarik Premium", Slug: "teh-tarik-premium", Qty: 2, RegularPrice: 3000, MemberPrice: 2700},
			{ProductID: kopiID, Title: "Kopi O Kaw", Slug: "kopi-o-kaw", Qty: 1, RegularPrice: 4000, MemberPrice: 3600},
		},
		lines: []dbgen.ListCartLinesForMembershipRow{
			{ProductID: teaID, Qty: 2, RegularPrice: 3000, MemberPrice: 2700, IsQualifying: true},
			{ProductID: kopiID, Qty: 1, RegularPrice: 4000, MemberPrice: 3600, IsQualifying: true},
		},
	}
}

func TestPlaceOrderChargesMemberPrices(t *testing.T) {
	t.Parallel()

	store := twoLineStore(true)
	svc := &Service{Currency: "MYR"}
	cfg := settings.MembershipConfig{Threshold: 8000}

	p, err := svc.placeOrder(context.Background(), store, store.cart.UserID, store.cart.ID, Input{Shipping: ShipOpt{Price: 500}}, cfg)
	require.NoError(t, err)

	// Member pays the snapshotted member unit price per line.
	require.EqualValues(t, 10000, store.orderParams.PricingSubtotal)
	require.EqualValues(t, 9000, store.orderParams.PricingMember)
	require.EqualValues(t, 1000, store.orderParams.PricingDiscount)
	require.EqualValues(t, 9500, store.orderParams.PricingTotal)
	require.Len(t, store.itemParams, 2)
	require.EqualValues(t, 2700, store.itemParams[0].UnitPrice)
	require.EqualValues(t, 5400, store.itemParams[0].Subtotal)
	require.EqualValues(t, 3600, store.itemParams[1].UnitPrice)

	// Qualification snapshot frozen onto the order.
	require.True(t, store.orderParams.MembershipEligible)
	require.EqualValues(t, 10000, store.orderParams.QualifyingTotal)
	require.Equal(t, "100.00", p.res.QualifyingTotal.StringFixed(2))
	require.True(t, store.cleared)
}

func TestPlaceOrderChargesRegularPricesForNonMembers(t *testing.T) {
	t.Parallel()

	store := twoLineStore(false)
	svc := &Service{Currency: "MYR"}
	cfg := settings.MembershipConfig{Threshold: 8000}

	_, err := svc.placeOrder(context.Background(), store, store.cart.UserID, store.cart.ID, Input{Shipping: ShipOpt{Price: 500}}, cfg)
	require.NoError(t, err)

	require.EqualValues(t, 10000, store.orderParams.PricingSubtotal)
	require.EqualValues(t, 0, store.orderParams.PricingDiscount)
	require.EqualValues(t, 10500, store.orderParams.PricingTotal)
	require.EqualValues(t, 3000, store.itemParams[0].UnitPrice)
	require.EqualValues(t, 4000, store.itemParams[1].UnitPrice)

	// Qualification is independent of membership; the snapshot still records
	// that this order would meet the threshold.
	require.True(t, store.orderParams.MembershipEligible)
	require.EqualValues(t, 10000, store.orderParams.QualifyingTotal)
}

func TestPlaceOrderBelowThresholdSnapshot(t *testing.T) {
	t.Parallel()

	store := twoLineStore(false)
	svc := &Service{Currency: "MYR"}
	cfg := settings.MembershipConfig{Threshold: 20000}

	_, err := svc.placeOrder(context.Background(), store, store.cart.UserID, store.cart.ID, Input{}, cfg)
	require.NoError(t, err)
	require.False(t, store.orderParams.MembershipEligible)
	require.EqualValues(t, 10000, store.orderParams.QualifyingTotal)
}

func TestPlaceOrderOutOfStock(t *testing.T) {
	t.Parallel()

	store := twoLineStore(true)
	store.noStockFor = "kopi-o-kaw"
	svc := &Service{Currency: "MYR"}

	_, err := svc.placeOrder(context.Background(), store, store.cart.UserID, store.cart.ID, Input{}, settings.MembershipConfig{Threshold: 8000})
	require.ErrorIs(t, err, ErrOutOfStock)
	require.False(t, store.cleared)
}

func TestPlaceOrderRejectsForeignCart(t *testing.T) {
	t.Parallel()

	store := twoLineStore(true)
	svc := &Service{Currency: "MYR"}

	_, err := svc.placeOrder(context.Background(), store, pgUUID(uuid.New()), store.cart.ID, Input{}, settings.MembershipConfig{Threshold: 8000})
	require.Error(t, err)
}
