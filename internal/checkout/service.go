package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecomjrm/storefront-api/internal/cart"
	"github.com/ecomjrm/storefront-api/internal/common"
	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
	"github.com/ecomjrm/storefront-api/internal/events"
	"github.com/ecomjrm/storefront-api/internal/membership"
	"github.com/ecomjrm/storefront-api/internal/promotion"
	"github.com/ecomjrm/storefront-api/internal/settings"
)

// ErrOutOfStock is returned when a line exceeds available stock at commit.
var ErrOutOfStock = errors.New("insufficient stock")

type Addr struct {
	ReceiverName string `json:"receiverName"`
	Phone        string `json:"phone"`
	State        string `json:"state"`
	City         string `json:"city"`
	PostalCode   string `json:"postalCode"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
}

type ShipOpt struct {
	Courier string `json:"courier"`
	Service string `json:"service"`
	Price   int64  `json:"price"`
	ETD     string `json:"etd"`
}

type Input struct {
	CartID   string  `json:"cartId"`
	Address  Addr    `json:"address"`
	Shipping ShipOpt `json:"shipping"`
	Notes    *string `json:"notes"`
}

type Output struct {
	OrderID            string `json:"orderId"`
	Status             string `json:"status"`
	Total              string `json:"total"`
	MembershipEligible bool   `json:"membershipEligible"`
	QualifyingTotal    string `json:"qualifyingTotal"`
}

// Service turns a cart into an order. Pricing is member-aware: members pay
// the snapshotted member price per line, everyone else pays the regular
// price. The qualification summary is evaluated one final time inside the
// transaction and frozen onto the order.
type Service struct {
	Q        *dbgen.Queries
	Pool     *pgxpool.Pool
	Config   membership.ConfigSource
	Currency string
	Events   *events.Bus
	Now      func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) Create(ctx context.Context, userID *string, in Input) (Output, error) {
	if s == nil || s.Q == nil || s.Pool == nil {
		return Output{}, errors.New("checkout service not configured")
	}
	if userID == nil || *userID == "" {
		return Output{}, errors.New("user is required for checkout")
	}
	if in.CartID == "" {
		return Output{}, errors.New("cartId is required")
	}
	cID, err := cart.ToUUID(in.CartID)
	if err != nil {
		return Output{}, fmt.Errorf("invalid cart id: %w", err)
	}
	uID, err := cart.ToUUID(*userID)
	if err != nil {
		return Output{}, fmt.Errorf("invalid user id: %w", err)
	}

	cfg := settings.MembershipConfig{}
	if s.Config != nil {
		cfg, err = s.Config.Get(ctx)
		if err != nil {
			return Output{}, fmt.Errorf("load membership config: %w", err)
		}
	}

	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Output{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	p, err := s.placeOrder(ctx, s.Q.WithTx(tx), uID, cID, in, cfg)
	if err != nil {
		return Output{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Output{}, err
	}

	if s.Events != nil {
		payload := map[string]any{
			"orderId":            cart.UUIDString(p.order.ID),
			"userId":             *userID,
			"total":              p.total,
			"membershipEligible": p.res.Eligible,
		}
		if p.user.Email != "" {
			payload["email"] = p.user.Email
		}
		_, _ = s.Events.Emit(ctx, events.TopicOrderCreated, p.order.ID, payload)
	}

	return Output{
		OrderID:            cart.UUIDString(p.order.ID),
		Status:             string(p.order.Status),
		Total:              common.SenToRinggit(p.total).StringFixed(2),
		MembershipEligible: p.res.Eligible,
		QualifyingTotal:    p.res.QualifyingTotal.StringFixed(2),
	}, nil
}

// orderStore is the transactional slice of the query layer placeOrder needs.
type orderStore interface {
	GetCartByID(ctx context.Context, id pgtype.UUID) (dbgen.Cart, error)
	GetUserByID(ctx context.Context, id pgtype.UUID) (dbgen.GetUserByIDRow, error)
	ListCartItems(ctx context.Context, cartID pgtype.UUID) ([]dbgen.CartItem, error)
	ListCartLinesForMembership(ctx context.Context, cartID pgtype.UUID) ([]dbgen.ListCartLinesForMembershipRow, error)
	CreateOrder(ctx context.Context, arg dbgen.CreateOrderParams) (dbgen.Order, error)
	CreateOrderItem(ctx context.Context, arg dbgen.CreateOrderItemParams) error
	DecrementStock(ctx context.Context, arg dbgen.DecrementStockParams) (int64, error)
	ClearCartItems(ctx context.Context, cartID pgtype.UUID) error
}

type placed struct {
	order dbgen.Order
	user  dbgen.GetUserByIDRow
	res   membership.Result
	total int64
}

// placeOrder runs the pricing and persistence steps inside the caller's
// transaction: member-aware unit prices, the final qualification snapshot,
// stock decrements and cart clearing.
func (s *Service) placeOrder(ctx context.Context, q orderStore, uID, cID pgtype.UUID, in Input, cfg settings.MembershipConfig) (placed, error) {
	cartRow, err := q.GetCartByID(ctx, cID)
	if err != nil {
		return placed{}, err
	}
	if cartRow.UserID.Valid && !cart.UUIDEqual(cartRow.UserID, uID) {
		return placed{}, errors.New("cart does not belong to user")
	}
	user, err := q.GetUserByID(ctx, uID)
	if err != nil {
		return placed{}, fmt.Errorf("load user: %w", err)
	}
	items, err := q.ListCartItems(ctx, cID)
	if err != nil {
		return placed{}, err
	}
	if len(items) == 0 {
		return placed{}, errors.New("cart is empty")
	}

	lines, err := q.ListCartLinesForMembership(ctx, cID)
	if err != nil {
		return placed{}, fmt.Errorf("load cart lines: %w", err)
	}
	now := s.now()
	calcItems := make([]membership.LineItem, 0, len(lines))
	for _, line := range lines {
		calcItems = append(calcItems, lineItem(line))
	}
	res := membership.Evaluate(calcItems, user.IsMember, membership.Config{
		Threshold:          common.SenToRinggit(cfg.Threshold),
		ExcludePromotional: cfg.EnablePromotionalExclusion,
	}, now, promotion.Policy{ExcludePromotional: cfg.EnablePromotionalExclusion})

	var subtotal, memberSubtotal int64
	for _, it := range items {
		subtotal += int64(it.Qty) * it.RegularPrice
		memberSubtotal += int64(it.Qty) * it.MemberPrice
	}
	applicable := subtotal
	if user.IsMember {
		applicable = memberSubtotal
	}
	discount := subtotal - applicable
	if discount < 0 {
		discount = 0
	}
	shippingCost := in.Shipping.Price
	if shippingCost < 0 {
		shippingCost = 0
	}
	total := applicable + shippingCost

	order, err := q.CreateOrder(ctx, dbgen.CreateOrderParams{
		UserID:             uID,
		CartID:             cID,
		Status:             dbgen.OrderStatusPENDINGPAYMENT,
		Currency:           s.Currency,
		PricingSubtotal:    subtotal,
		PricingMember:      memberSubtotal,
		PricingDiscount:    discount,
		PricingShipping:    shippingCost,
		PricingTotal:       total,
		QualifyingTotal:    common.RinggitToSen(res.QualifyingTotal),
		MembershipEligible: res.Eligible,
		ShippingAddress:    toJSON(in.Address),
		ShippingOption:     toJSON(in.Shipping),
		Notes:              toNullableText(in.Notes),
	})
	if err != nil {
		return placed{}, err
	}
	for _, it := range items {
		unitPrice := it.RegularPrice
		if user.IsMember {
			unitPrice = it.MemberPrice
		}
		if err := q.CreateOrderItem(ctx, dbgen.CreateOrderItemParams{
			OrderID:   order.ID,
			ProductID: it.ProductID,
			Title:     it.Title,
			Slug:      it.Slug,
			Qty:       it.Qty,
			UnitPrice: unitPrice,
			Subtotal:  int64(it.Qty) * unitPrice,
		}); err != nil {
			return placed{}, err
		}
		rows, err := q.DecrementStock(ctx, dbgen.DecrementStockParams{ID: it.ProductID, Qty: it.Qty})
		if err != nil {
			return placed{}, err
		}
		if rows == 0 {
			return placed{}, fmt.Errorf("%w: %s", ErrOutOfStock, it.Slug)
		}
	}
	if err := q.ClearCartItems(ctx, cID); err != nil {
		return placed{}, err
	}

	return placed{order: order, user: user, res: res, total: total}, nil
}

func lineItem(row dbgen.ListCartLinesForMembershipRow) membership.LineItem {
	item := membership.LineItem{
		Quantity:     int64(row.Qty),
		RegularPrice: common.SenToRinggit(row.RegularPrice),
		MemberPrice:  common.SenToRinggit(row.MemberPrice),
		Promotion: promotion.Item{
			IsPromotional:   row.IsPromotional,
			IsQualifying:    row.IsQualifying,
			QualifyOverride: row.QualifyOverride,
		},
	}
	if row.PromotionStart.Valid {
		start := row.PromotionStart.Time
		item.Promotion.Start = &start
	}
	if row.PromotionEnd.Valid {
		end := row.PromotionEnd.Time
		item.Promotion.End = &end
	}
	return item
}

func toJSON(v any) []byte {
	if v == nil {
		return nil
	}
	b, _ := json.Marshal(v)
	return b
}

func toNullableText(v *string) pgtype.Text {
	if v == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *v, Valid: true}
}
