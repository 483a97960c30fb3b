package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/ecomjrm/storefront-api/internal/common"
	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
	"github.com/ecomjrm/storefront-api/internal/events"
	"github.com/ecomjrm/storefront-api/internal/membership"
)

// AdminHandler provides administrative order management endpoints. Marking
// an order PAID triggers the membership activation side effect.
type AdminHandler struct {
	Q          *dbgen.Queries
	Activation *membership.Activation
	Events     *events.Bus
	Log        zerolog.Logger
}

type patchStatusRequest struct {
	Status string `json:"status"`
}

// PatchStatus updates the order status with state-machine validation.
func (h *AdminHandler) PatchStatus(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order queries not configured", nil)
		return
	}
	orderID := chi.URLParam(r, "id")
	oID, err := parseUUID(orderID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid order id", nil)
		return
	}
	var req patchStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if req.Status == "" {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "status is required", nil)
		return
	}
	target := dbgen.OrderStatus(req.Status)
	if !isAllowedAdminTarget(target) {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "unsupported status", nil)
		return
	}
	current, err := h.Q.GetOrderStatus(r.Context(), oID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "order not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load order", nil)
		return
	}
	if target != dbgen.OrderStatusCANCELED && orderStatusRank(current) >= orderStatusRank(target) {
		common.JSONError(w, http.StatusConflict, "INVALID_STATE", "cannot transition to equal or previous state", nil)
		return
	}
	if current == dbgen.OrderStatusCANCELED || current == dbgen.OrderStatusDELIVERED {
		common.JSONError(w, http.StatusConflict, "INVALID_STATE", "order is in a terminal state", nil)
		return
	}
	rows, err := h.Q.UpdateOrderStatus(r.Context(), dbgen.UpdateOrderStatusParams{ID: oID, Status: target})
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to update order status", nil)
		return
	}
	if rows == 0 {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "order not found", nil)
		return
	}

	if target == dbgen.OrderStatusPAID {
		h.afterPaid(r, oID)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) afterPaid(r *http.Request, orderID pgtype.UUID) {
	ctx := r.Context()
	if h.Events != nil {
		_, _ = h.Events.Emit(ctx, events.TopicOrderPaid, orderID, map[string]any{
			"orderId": uuid.UUID(orderID.Bytes).String(),
		})
	}
	if h.Activation != nil {
		if err := h.Activation.HandlePaidOrder(ctx, orderID); err != nil {
			h.Log.Error().Err(err).Str("order_id", uuid.UUID(orderID.Bytes).String()).Msg("membership activation failed")
		}
	}
}

func isAllowedAdminTarget(status dbgen.OrderStatus) bool {
	switch status {
	case dbgen.OrderStatusPAID, dbgen.OrderStatusPACKED, dbgen.OrderStatusSHIPPED, dbgen.OrderStatusOUTFORDELIVERY, dbgen.OrderStatusDELIVERED, dbgen.OrderStatusCANCELED:
		return true
	}
	return false
}

func orderStatusRank(status dbgen.OrderStatus) int {
	switch status {
	case dbgen.OrderStatusPENDINGPAYMENT:
		return 0
	case dbgen.OrderStatusPAID:
		return 1
	case dbgen.OrderStatusPACKED:
		return 2
	case dbgen.OrderStatusSHIPPED:
		return 3
	case dbgen.OrderStatusOUTFORDELIVERY:
		return 4
	case dbgen.OrderStatusDELIVERED:
		return 5
	case dbgen.OrderStatusCANCELED:
		return -1
	default:
		return -2
	}
}

func parseUUID(value string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(value)
	if err != nil {
		return pgtype.UUID{}, err
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}
