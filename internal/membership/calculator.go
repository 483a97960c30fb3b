package membership

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecomjrm/storefront-api/internal/promotion"
)

// LineItem is one cart line with current product pricing joined in. Amounts
// are ringgit per unit.
type LineItem struct {
	Quantity     int64
	RegularPrice decimal.Decimal
	MemberPrice  decimal.Decimal
	Promotion    promotion.Item
}

// Config is the qualification configuration, loaded per request by the caller.
type Config struct {
	Threshold          decimal.Decimal // ringgit
	ExcludePromotional bool
}

// QualifyPolicy answers whether a line accrues toward the threshold. The rule
// lives in internal/promotion; the calculator only delegates.
type QualifyPolicy interface {
	Qualifies(it promotion.Item, now time.Time) bool
}

// Result is the qualification summary for one cart. Currency fields are
// rounded half up to two decimal places, Progress to one, clamped to [0, 100].
type Result struct {
	QualifyingTotal    decimal.Decimal
	TotalItems         int64
	Subtotal           decimal.Decimal
	MemberSubtotal     decimal.Decimal
	PotentialSavings   decimal.Decimal
	Eligible           bool
	Progress           decimal.Decimal
	AmountNeeded       decimal.Decimal
	ApplicableSubtotal decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// Evaluate walks the cart once and produces the qualification summary.
//
// isMember selects which subtotal is reported as ApplicableSubtotal and has no
// effect on the qualification math. A threshold of zero or less makes every
// non-empty cart eligible, with Progress 100 for non-empty carts and 0 for
// empty ones. Progress is rounded to one decimal place, so a cart just under
// the threshold can report 100.0 while Eligible stays false; AmountNeeded is
// the authoritative gap. Inputs are trusted; negative amounts propagate
// arithmetically.
func Evaluate(items []LineItem, isMember bool, cfg Config, now time.Time, policy QualifyPolicy) Result {
	var (
		qualifying     = decimal.Zero
		subtotal       = decimal.Zero
		memberSubtotal = decimal.Zero
		totalItems     int64
	)

	for _, it := range items {
		qty := decimal.NewFromInt(it.Quantity)
		totalItems += it.Quantity

		lineRegular := it.RegularPrice.Mul(qty)
		subtotal = subtotal.Add(lineRegular)
		memberSubtotal = memberSubtotal.Add(it.MemberPrice.Mul(qty))

		if policy.Qualifies(it.Promotion, now) {
			qualifying = qualifying.Add(lineRegular)
		}
	}

	res := Result{
		QualifyingTotal: qualifying.Round(2),
		TotalItems:      totalItems,
		Subtotal:        subtotal.Round(2),
		MemberSubtotal:  memberSubtotal.Round(2),
	}
	res.PotentialSavings = res.Subtotal.Sub(res.MemberSubtotal)

	if cfg.Threshold.Sign() <= 0 {
		res.AmountNeeded = decimal.Zero
		if len(items) > 0 {
			res.Eligible = true
			res.Progress = hundred
		} else {
			res.Progress = decimal.Zero
		}
	} else {
		res.Eligible = res.QualifyingTotal.GreaterThanOrEqual(cfg.Threshold)
		res.Progress = clampProgress(res.QualifyingTotal.Div(cfg.Threshold).Mul(hundred).Round(1))
		need := cfg.Threshold.Sub(res.QualifyingTotal)
		if need.Sign() < 0 {
			need = decimal.Zero
		}
		res.AmountNeeded = need.Round(2)
	}

	if isMember {
		res.ApplicableSubtotal = res.MemberSubtotal
	} else {
		res.ApplicableSubtotal = res.Subtotal
	}
	return res
}

func clampProgress(p decimal.Decimal) decimal.Decimal {
	if p.Sign() < 0 {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}
