package settings

import (
	"encoding/json"
	"net/http"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ecomjrm/storefront-api/internal/common"
)

// Handler exposes the membership settings admin endpoints.
type Handler struct {
	Store    *Store
	Validate *validator.Validate
}

// Get returns the current membership configuration.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "settings store not configured", nil)
		return
	}
	cfg, err := h.Store.Get(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to load settings", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": cfg})
}

type updatePayload struct {
	Threshold                  int64 `json:"threshold" validate:"gte=0"`
	EnablePromotionalExclusion bool  `json:"enablePromotionalExclusion"`
}

// Update replaces the membership configuration and invalidates the cache.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "settings store not configured", nil)
		return
	}
	var payload updatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "threshold must be zero or positive", nil)
			return
		}
	}

	var updatedBy pgtype.UUID
	if id, ok := common.UserID(r.Context()); ok {
		if parsed, err := uuid.Parse(id); err == nil {
			updatedBy = pgtype.UUID{Bytes: parsed, Valid: true}
		}
	}

	cfg, err := h.Store.Update(r.Context(), MembershipConfig{
		Threshold:                  payload.Threshold,
		EnablePromotionalExclusion: payload.EnablePromotionalExclusion,
	}, updatedBy)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to update settings", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": cfg})
}
