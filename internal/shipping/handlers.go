package shipping

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ecomjrm/storefront-api/internal/common"
	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
)

// Handler exposes HTTP endpoints for shipment creation and retrieval.
type Handler struct {
	Svc *Service
	Q   *dbgen.Queries
}

// GetByOrder returns shipment metadata and tracking events for the authenticated user.
func (h *Handler) GetByOrder(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "shipment queries not configured", nil)
		return
	}
	userID, ok := common.UserID(r.Context())
	if !ok || userID == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	orderID := chi.URLParam(r, "orderId")
	oID, err := parseUUID(orderID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid order id", nil)
		return
	}
	uID, err := parseUUID(userID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid user id", nil)
		return
	}
	order, err := h.Q.GetOrderByIDForUser(r.Context(), dbgen.GetOrderByIDForUserParams{ID: oID, UserID: uID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "order not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load order", nil)
		return
	}
	shipment, err := h.Q.GetShipmentByOrder(r.Context(), order.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "shipment not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load shipment", nil)
		return
	}
	events, err := h.Q.ListShipmentEvents(r.Context(), shipment.ID)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load shipment events", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"id":             uuidString(shipment.ID),
			"orderId":        uuidString(shipment.OrderID),
			"status":         shipment.Status,
			"courier":        nullableText(shipment.Courier),
			"trackingNumber": nullableText(shipment.TrackingNumber),
			"lastStatus":     resolveStatus(shipment.Status, shipment.LastStatus),
			"lastEventAt":    nullableTime(shipment.LastEventAt),
			"events":         serialiseEvents(events),
		},
	})
}

type createShipmentRequest struct {
	Courier        string `json:"courier"`
	TrackingNumber string `json:"trackingNumber"`
}

// AdminCreate allows administrators to register courier and tracking data for an order.
func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "shipment service not configured", nil)
		return
	}
	orderID := chi.URLParam(r, "id")
	oID, err := parseUUID(orderID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid order id", nil)
		return
	}
	var req createShipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	shipment, err := h.Svc.Create(r.Context(), oID, req.Courier, req.TrackingNumber)
	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotEligible):
			common.JSONError(w, http.StatusConflict, "INVALID_STATE", err.Error(), nil)
			return
		case errors.Is(err, ErrShipmentAlreadyExists):
			common.JSONError(w, http.StatusConflict, "ALREADY_EXISTS", err.Error(), nil)
			return
		case errors.Is(err, pgx.ErrNoRows):
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "order not found", nil)
			return
		default:
			common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to create shipment", nil)
			return
		}
	}
	common.JSON(w, http.StatusCreated, map[string]any{
		"data": map[string]any{
			"id":             uuidString(shipment.ID),
			"orderId":        uuidString(shipment.OrderID),
			"status":         shipment.Status,
			"courier":        nullableText(shipment.Courier),
			"trackingNumber": nullableText(shipment.TrackingNumber),
			"lastStatus":     resolveStatus(shipment.Status, shipment.LastStatus),
			"lastEventAt":    nullableTime(shipment.LastEventAt),
			"events":         []any{},
		},
	})
}

// AdminRefresh pulls the latest provider tracking events for an order's shipment.
func (h *Handler) AdminRefresh(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "shipment service not configured", nil)
		return
	}
	oID, err := parseUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid order id", nil)
		return
	}
	applied, err := h.Svc.RefreshTracking(r.Context(), oID)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "shipment not found", nil)
			return
		case errors.Is(err, ErrNoTrackingNumber):
			common.JSONError(w, http.StatusConflict, "NO_TRACKING_NUMBER", err.Error(), nil)
			return
		default:
			common.JSONError(w, http.StatusBadGateway, "UPSTREAM", "failed to refresh tracking", nil)
			return
		}
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"applied": applied}})
}

// Track resolves a shipment by tracking number. Exposes only shipment
// progress, never order or customer data, so it can stay public.
func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "shipment queries not configured", nil)
		return
	}
	trackingNumber := chi.URLParam(r, "trackingNumber")
	if trackingNumber == "" {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "tracking number is required", nil)
		return
	}
	shipment, err := h.Q.GetShipmentByTracking(r.Context(), pgtype.Text{String: trackingNumber, Valid: true})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "shipment not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load shipment", nil)
		return
	}
	events, err := h.Q.ListShipmentEvents(r.Context(), shipment.ID)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load shipment events", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"trackingNumber": nullableText(shipment.TrackingNumber),
			"courier":        nullableText(shipment.Courier),
			"status":         resolveStatus(shipment.Status, shipment.LastStatus),
			"lastEventAt":    nullableTime(shipment.LastEventAt),
			"events":         serialiseEvents(events),
		},
	})
}

// QuoteHandler exposes shipping rate quotes used by the checkout flow.
type QuoteHandler struct {
	Client Client
}

type quoteRequest struct {
	PickupPostcode  string  `json:"pickupPostcode"`
	DeliverPostcode string  `json:"deliverPostcode"`
	WeightKg        float64 `json:"weightKg"`
	Courier         string  `json:"courier"`
}

// Quote returns available courier rates for the provided route and weight.
func (h QuoteHandler) Quote(w http.ResponseWriter, r *http.Request) {
	if h.Client == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "rate client not configured", nil)
		return
	}
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if req.PickupPostcode == "" || req.DeliverPostcode == "" {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "pickup and delivery postcodes are required", nil)
		return
	}
	if req.WeightKg <= 0 {
		req.WeightKg = 1
	}
	rates, err := h.Client.Rates(r.Context(), RateReq{
		PickupPostcode:  req.PickupPostcode,
		DeliverPostcode: req.DeliverPostcode,
		WeightKg:        req.WeightKg,
		Courier:         req.Courier,
	})
	if err != nil {
		common.JSONError(w, http.StatusBadGateway, "UPSTREAM", "failed to fetch rates", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rates})
}

func serialiseEvents(events []dbgen.ShipmentEvent) []map[string]any {
	result := make([]map[string]any, 0, len(events))
	for _, ev := range events {
		result = append(result, map[string]any{
			"id":          uuidString(ev.ID),
			"status":      ev.Status,
			"description": nullableText(ev.Description),
			"location":    nullableText(ev.Location),
			"occurredAt":  nullableTime(ev.OccurredAt),
		})
	}
	return result
}

func resolveStatus(status dbgen.ShipmentStatus, lastStatus dbgen.NullShipmentStatus) dbgen.ShipmentStatus {
	if lastStatus.Valid {
		return lastStatus.ShipmentStatus
	}
	return status
}

func nullableText(v pgtype.Text) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullableTime(v pgtype.Timestamptz) *time.Time {
	if !v.Valid {
		return nil
	}
	return &v.Time
}
