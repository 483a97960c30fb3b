package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
)

// ErrNotFound indicates the requested cart could not be located.
var ErrNotFound = errors.New("cart not found")

// ErrInvalidInput is returned when the provided payload is invalid.
var ErrInvalidInput = errors.New("invalid input")

// Service encapsulates cart domain operations. Line items snapshot both the
// regular and member unit price at add time; the qualification summary always
// re-joins current product data.
type Service struct {
	Q   *dbgen.Queries
	TTL time.Duration
	Now func() time.Time
}

func (s *Service) ttl() time.Duration {
	if s == nil || s.TTL <= 0 {
		return 7 * 24 * time.Hour
	}
	return s.TTL
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// EnsureCart loads or creates a cart for the provided identifiers.
func (s *Service) EnsureCart(ctx context.Context, userID *string, anonID *string) (dbgen.Cart, error) {
	if s == nil || s.Q == nil {
		return dbgen.Cart{}, errors.New("cart service not configured")
	}
	ttl := s.ttl()
	expires := pgtype.Timestamptz{Time: s.now().Add(ttl), Valid: true}

	if userID != nil && *userID != "" {
		uid, err := toUUID(*userID)
		if err != nil {
			return dbgen.Cart{}, fmt.Errorf("parse user id: %w", err)
		}
		cart, err := s.Q.GetActiveCartByUser(ctx, uid)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return s.Q.CreateCart(ctx, dbgen.CreateCartParams{
					UserID:    uid,
					AnonID:    pgtype.Text{},
					ExpiresAt: expires,
				})
			}
			return dbgen.Cart{}, err
		}
		_ = s.Q.TouchCart(ctx, dbgen.TouchCartParams{ID: cart.ID, ExpiresAt: expires})
		return cart, nil
	}

	if anonID != nil && *anonID != "" {
		cart, err := s.Q.GetActiveCartByAnon(ctx, pgtype.Text{String: *anonID, Valid: true})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return s.Q.CreateCart(ctx, dbgen.CreateCartParams{
					UserID:    pgtype.UUID{},
					AnonID:    pgtype.Text{String: *anonID, Valid: true},
					ExpiresAt: expires,
				})
			}
			return dbgen.Cart{}, err
		}
		_ = s.Q.TouchCart(ctx, dbgen.TouchCartParams{ID: cart.ID, ExpiresAt: expires})
		return cart, nil
	}

	return dbgen.Cart{}, ErrInvalidInput
}

// AddItem inserts or increments a cart item, snapshotting current pricing.
func (s *Service) AddItem(ctx context.Context, cartID string, productID string, qty int) error {
	if s == nil || s.Q == nil {
		return errors.New("cart service not configured")
	}
	if qty <= 0 {
		return fmt.Errorf("qty must be positive: %w", ErrInvalidInput)
	}
	cID, err := toUUID(cartID)
	if err != nil {
		return fmt.Errorf("parse cart id: %w", err)
	}
	pID, err := toUUID(productID)
	if err != nil {
		return fmt.Errorf("parse product id: %w", err)
	}

	expires := pgtype.Timestamptz{Time: s.now().Add(s.ttl()), Valid: true}
	item, err := s.Q.FindCartItemByProduct(ctx, dbgen.FindCartItemByProductParams{
		CartID:    cID,
		ProductID: pID,
	})
	if err == nil {
		newQty := item.Qty + int32(qty)
		newSubtotal := int64(newQty) * item.RegularPrice
		if _, err := s.Q.UpdateCartItemQty(ctx, dbgen.UpdateCartItemQtyParams{ID: item.ID, Qty: newQty, Subtotal: newSubtotal}); err != nil {
			return err
		}
		_ = s.Q.TouchCart(ctx, dbgen.TouchCartParams{ID: cID, ExpiresAt: expires})
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	product, err := s.Q.GetProductByID(ctx, pID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("product: %w", ErrNotFound)
		}
		return err
	}
	if !product.Published {
		return fmt.Errorf("product not available: %w", ErrInvalidInput)
	}
	if product.Stock <= 0 {
		return fmt.Errorf("product out of stock: %w", ErrInvalidInput)
	}

	regular := product.RegularPrice
	if regular < 0 {
		regular = 0
	}
	member := product.MemberPrice
	if member < 0 {
		member = 0
	}
	if _, err := s.Q.CreateCartItem(ctx, dbgen.CreateCartItemParams{
		CartID:       cID,
		ProductID:    pID,
		Title:        product.Title,
		Slug:         product.Slug,
		Qty:          int32(qty),
		RegularPrice: regular,
		MemberPrice:  member,
		Subtotal:     int64(qty) * regular,
	}); err != nil {
		return err
	}
	_ = s.Q.TouchCart(ctx, dbgen.TouchCartParams{ID: cID, ExpiresAt: expires})
	return nil
}

// UpdateQty updates the quantity for a cart item.
func (s *Service) UpdateQty(ctx context.Context, itemID string, qty int) error {
	if s == nil || s.Q == nil {
		return errors.New("cart service not configured")
	}
	if qty <= 0 {
		return fmt.Errorf("qty must be positive: %w", ErrInvalidInput)
	}
	id, err := toUUID(itemID)
	if err != nil {
		return fmt.Errorf("parse item id: %w", err)
	}
	item, err := s.Q.GetCartItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	newSubtotal := int64(qty) * item.RegularPrice
	if _, err := s.Q.UpdateCartItemQty(ctx, dbgen.UpdateCartItemQtyParams{ID: item.ID, Qty: int32(qty), Subtotal: newSubtotal}); err != nil {
		return err
	}
	expires := pgtype.Timestamptz{Time: s.now().Add(s.ttl()), Valid: true}
	_ = s.Q.TouchCart(ctx, dbgen.TouchCartParams{ID: item.CartID, ExpiresAt: expires})
	return nil
}

// RemoveItem deletes a cart item.
func (s *Service) RemoveItem(ctx context.Context, cartID string, itemID string) error {
	if s == nil || s.Q == nil {
		return errors.New("cart service not configured")
	}
	cID, err := toUUID(cartID)
	if err != nil {
		return fmt.Errorf("parse cart id: %w", err)
	}
	iID, err := toUUID(itemID)
	if err != nil {
		return fmt.Errorf("parse item id: %w", err)
	}
	rows, err := s.Q.DeleteCartItem(ctx, dbgen.DeleteCartItemParams{ID: iID, CartID: cID})
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	expires := pgtype.Timestamptz{Time: s.now().Add(s.ttl()), Valid: true}
	_ = s.Q.TouchCart(ctx, dbgen.TouchCartParams{ID: cID, ExpiresAt: expires})
	return nil
}

// Merge moves guest cart items into the user's active cart returning the
// resulting cart identifier.
func (s *Service) Merge(ctx context.Context, guestCartID string, userID string) (string, error) {
	if s == nil || s.Q == nil {
		return "", errors.New("cart service not configured")
	}
	gID, err := toUUID(guestCartID)
	if err != nil {
		return "", fmt.Errorf("parse guest cart id: %w", err)
	}
	uID, err := toUUID(userID)
	if err != nil {
		return "", fmt.Errorf("parse user id: %w", err)
	}
	guestCart, err := s.Q.GetCartByID(ctx, gID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	userIDCopy := userID
	userCart, err := s.EnsureCart(ctx, &userIDCopy, nil)
	if err != nil {
		return "", err
	}
	guestItems, err := s.Q.ListCartItems(ctx, gID)
	if err != nil {
		return "", err
	}
	for _, item := range guestItems {
		existing, err := s.Q.FindCartItemByProduct(ctx, dbgen.FindCartItemByProductParams{
			CartID:    userCart.ID,
			ProductID: item.ProductID,
		})
		if err == nil {
			if existing.Qty < item.Qty {
				_, err = s.Q.UpdateCartItemQty(ctx, dbgen.UpdateCartItemQtyParams{
					ID:       existing.ID,
					Qty:      item.Qty,
					Subtotal: int64(item.Qty) * existing.RegularPrice,
				})
				if err != nil {
					return "", err
				}
			}
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return "", err
		}
		if _, err := s.Q.CreateCartItem(ctx, dbgen.CreateCartItemParams{
			CartID:       userCart.ID,
			ProductID:    item.ProductID,
			Title:        item.Title,
			Slug:         item.Slug,
			Qty:          item.Qty,
			RegularPrice: item.RegularPrice,
			MemberPrice:  item.MemberPrice,
			Subtotal:     item.Subtotal,
		}); err != nil {
			return "", err
		}
	}
	expires := pgtype.Timestamptz{Time: s.now().Add(s.ttl()), Valid: true}
	_ = s.Q.TouchCart(ctx, dbgen.TouchCartParams{ID: userCart.ID, ExpiresAt: expires})
	_ = s.Q.TouchCart(ctx, dbgen.TouchCartParams{ID: guestCart.ID, ExpiresAt: pgtype.Timestamptz{Time: s.now(), Valid: true}})
	_ = s.Q.TransferCartToUser(ctx, dbgen.TransferCartToUserParams{ID: guestCart.ID, UserID: uID})
	return uuidString(userCart.ID), nil
}

func toUUID(value string) (pgtype.UUID, error) {
	var id pgtype.UUID
	parsed, err := uuid.Parse(value)
	if err != nil {
		return id, err
	}
	if err := id.Scan(parsed[:]); err != nil {
		return pgtype.UUID{}, err
	}
	return id, nil
}

func uuidString(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	return uuid.UUID(id.Bytes).String()
}

// ToUUID converts a string representation of a UUID into pgtype.UUID.
func ToUUID(value string) (pgtype.UUID, error) {
	return toUUID(value)
}

// UUIDString converts a pgtype.UUID into a canonical string.
func UUIDString(id pgtype.UUID) string {
	return uuidString(id)
}

// UUIDEqual reports whether two UUIDs are both valid and identical.
func UUIDEqual(a, b pgtype.UUID) bool {
	return a.Valid && b.Valid && a.Bytes == b.Bytes
}
