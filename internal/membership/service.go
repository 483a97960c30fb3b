package membership

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ecomjrm/storefront-api/internal/common"
	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
	"github.com/ecomjrm/storefront-api/internal/obs"
	"github.com/ecomjrm/storefront-api/internal/promotion"
	"github.com/ecomjrm/storefront-api/internal/settings"
)

type queryProvider interface {
	GetCartByID(ctx context.Context, id pgtype.UUID) (dbgen.Cart, error)
	ListCartLinesForMembership(ctx context.Context, cartID pgtype.UUID) ([]dbgen.ListCartLinesForMembershipRow, error)
}

// ConfigSource supplies the current membership configuration.
type ConfigSource interface {
	Get(ctx context.Context) (settings.MembershipConfig, error)
}

// Service computes the qualification summary for a cart. Line items are
// joined fresh from cart state and current product data on every call.
type Service struct {
	Q      queryProvider
	Config ConfigSource
	Now    func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Summarize evaluates the membership qualification for the given cart.
func (s *Service) Summarize(ctx context.Context, cartID pgtype.UUID, isMember bool) (Result, settings.MembershipConfig, error) {
	now := s.now()

	cart, err := s.Q.GetCartByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Result{}, settings.MembershipConfig{}, &common.AppError{
				Code: "NOT_FOUND", Message: "cart not found", HTTPStatus: http.StatusNotFound, Err: err,
			}
		}
		return Result{}, settings.MembershipConfig{}, fmt.Errorf("load cart: %w", err)
	}
	if cart.ExpiresAt.Valid && cart.ExpiresAt.Time.Before(now) {
		return Result{}, settings.MembershipConfig{}, &common.AppError{
			Code: "NOT_FOUND", Message: "cart expired", HTTPStatus: http.StatusNotFound,
		}
	}

	rows, err := s.Q.ListCartLinesForMembership(ctx, cartID)
	if err != nil {
		return Result{}, settings.MembershipConfig{}, fmt.Errorf("load cart lines: %w", err)
	}

	cfg, err := s.Config.Get(ctx)
	if err != nil {
		return Result{}, settings.MembershipConfig{}, fmt.Errorf("load membership config: %w", err)
	}

	items := make([]LineItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, lineFromRow(row))
	}

	calcCfg := Config{
		Threshold:          common.SenToRinggit(cfg.Threshold),
		ExcludePromotional: cfg.EnablePromotionalExclusion,
	}
	policy := promotion.Policy{ExcludePromotional: cfg.EnablePromotionalExclusion}
	res := Evaluate(items, isMember, calcCfg, now, policy)

	if obs.MembershipEvaluations != nil {
		obs.MembershipEvaluations.WithLabelValues(boolLabel(res.Eligible)).Inc()
	}
	return res, cfg, nil
}

func lineFromRow(row dbgen.ListCartLinesForMembershipRow) LineItem {
	item := LineItem{
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

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
