package membership

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ecomjrm/storefront-api/internal/common"
)

// Handler exposes the cart qualification summary endpoint.
type Handler struct {
	Svc      *Service
	Currency string
}

// Summary renders the membership qualification summary for a cart.
// Membership status comes from the authenticated context; guests evaluate as
// non-members.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "membership service not configured", nil)
		return
	}
	cartID, err := parseUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid cart id", nil)
		return
	}

	isMember := common.IsMember(r.Context())
	res, cfg, err := h.Svc.Summarize(r.Context(), cartID, isMember)
	if err != nil {
		var appErr *common.AppError
		if errors.As(err, &appErr) {
			common.JSONError(w, appErr.HTTPStatus, appErr.Code, appErr.Message, appErr.Details)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to evaluate membership", nil)
		return
	}

	common.JSON(w, http.StatusOK, map[string]any{
		"data": SummaryPayload(res, cfg.Threshold, h.Currency, isMember),
	})
}

// SummaryPayload shapes a Result for JSON rendering. Currency amounts are
// fixed-point strings in ringgit; progress carries one decimal place.
func SummaryPayload(res Result, thresholdSen int64, currency string, isMember bool) map[string]any {
	return map[string]any{
		"qualifyingTotal":           res.QualifyingTotal.StringFixed(2),
		"subtotal":                  res.Subtotal.StringFixed(2),
		"memberSubtotal":            res.MemberSubtotal.StringFixed(2),
		"applicableSubtotal":        res.ApplicableSubtotal.StringFixed(2),
		"potentialSavings":          res.PotentialSavings.StringFixed(2),
		"totalItems":                res.TotalItems,
		"isEligibleForMembership":   res.Eligible,
		"membershipProgress":        res.Progress.StringFixed(1),
		"amountNeededForMembership": res.AmountNeeded.StringFixed(2),
		"membershipThreshold":       common.SenToRinggit(thresholdSen).StringFixed(2),
		"isMember":                  isMember,
		"currency":                  currency,
	}
}

func parseUUID(raw string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return pgtype.UUID{}, err
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}
