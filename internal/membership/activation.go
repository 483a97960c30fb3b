package membership

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/ecomjrm/storefront-api/internal/common"
	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
	"github.com/ecomjrm/storefront-api/internal/events"
	"github.com/ecomjrm/storefront-api/internal/lock"
	"github.com/ecomjrm/storefront-api/internal/obs"
)

// ErrOrderNotFound is returned when the activation target order is missing.
var ErrOrderNotFound = errors.New("membership: order not found")

type activationQueries interface {
	GetOrderByID(ctx context.Context, id pgtype.UUID) (dbgen.Order, error)
	ActivateMembership(ctx context.Context, id pgtype.UUID) (int64, error)
	InsertMembershipAudit(ctx context.Context, arg dbgen.InsertMembershipAuditParams) (dbgen.MembershipAudit, error)
}

// Activation applies the membership side effect of a paid order: when the
// order's qualification snapshot met the threshold, the buyer becomes a
// member. Safe under redelivery; the flag flips at most once per user.
type Activation struct {
	Q       activationQueries
	Config  ConfigSource
	Bus     *events.Bus
	Locker  lock.Locker
	LockTTL time.Duration
	Log     zerolog.Logger
}

// HandlePaidOrder processes one paid order. Redeliveries of already-processed
// orders and orders below the threshold return nil.
func (a *Activation) HandlePaidOrder(ctx context.Context, orderID pgtype.UUID) error {
	order, err := a.Q.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrOrderNotFound, uuidString(orderID))
		}
		return fmt.Errorf("load order: %w", err)
	}

	if !order.MembershipEligible {
		a.count("not_eligible")
		return nil
	}

	lockKey := "membership:activate:" + uuidString(order.UserID)
	ttl := a.LockTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return a.Locker.WithLock(ctx, lockKey, ttl, func(ctx context.Context) error {
		rows, err := a.Q.ActivateMembership(ctx, order.UserID)
		if err != nil {
			return fmt.Errorf("activate membership: %w", err)
		}
		if rows == 0 {
			// Already a member; nothing to record.
			a.count("already_member")
			return nil
		}

		threshold := int64(0)
		if a.Config != nil {
			if cfg, err := a.Config.Get(ctx); err == nil {
				threshold = cfg.Threshold
			}
		}
		if _, err := a.Q.InsertMembershipAudit(ctx, dbgen.InsertMembershipAuditParams{
			UserID:          order.UserID,
			OrderID:         order.ID,
			QualifyingTotal: order.QualifyingTotal,
			Threshold:       threshold,
		}); err != nil {
			return fmt.Errorf("record membership audit: %w", err)
		}

		if a.Bus != nil {
			payload := map[string]any{
				"userId":          uuidString(order.UserID),
				"orderId":         uuidString(order.ID),
				"qualifyingTotal": common.SenToRinggit(order.QualifyingTotal).StringFixed(2),
			}
			if _, err := a.Bus.Emit(ctx, events.TopicMembershipActivated, order.UserID, payload); err != nil {
				a.Log.Warn().Err(err).Str("order_id", uuidString(order.ID)).Msg("membership activated event failed")
			}
		}

		a.count("activated")
		a.Log.Info().
			Str("user_id", uuidString(order.UserID)).
			Str("order_id", uuidString(order.ID)).
			Int64("qualifying_total", order.QualifyingTotal).
			Msg("membership activated")
		return nil
	})
}

func (a *Activation) count(result string) {
	if obs.MembershipActivations != nil {
		obs.MembershipActivations.WithLabelValues(result).Inc()
	}
}

func uuidString(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	return fmt.Sprintf("%x-%x-%x-%x-%x", id.Bytes[0:4], id.Bytes[4:6], id.Bytes[6:8], id.Bytes[8:10], id.Bytes[10:16])
}
