package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ecomjrm/storefront-api/internal/common"
	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
)

// AdminHandler exposes back-office product management endpoints.
type AdminHandler struct {
	Q        *dbgen.Queries
	Service  *Service
	Validate *validator.Validate
}

type productPayload struct {
	Title            string     `json:"title" validate:"required,min=1,max=200"`
	Slug             string     `json:"slug" validate:"required,min=1,max=200"`
	Description      *string    `json:"description"`
	RegularPrice     int64      `json:"regularPriceSen" validate:"gte=0"`
	MemberPrice      int64      `json:"memberPriceSen" validate:"gte=0"`
	IsPromotional    bool       `json:"isPromotional"`
	PromotionalPrice *int64     `json:"promotionalPriceSen" validate:"omitempty,gte=0"`
	PromotionStart   *time.Time `json:"promotionStart"`
	PromotionEnd     *time.Time `json:"promotionEnd"`
	IsQualifying     *bool      `json:"countsTowardMembership"`
	QualifyOverride  bool       `json:"qualifyOverride"`
	Stock            int32      `json:"stock" validate:"gte=0"`
	Thumbnail        *string    `json:"thumbnail"`
	Published        bool       `json:"published"`
}

// List handles GET /api/v1/admin/products, including unpublished entries.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog queries not configured", nil)
		return
	}
	page, limit := common.ParsePagination(r, 20)
	rows, err := h.Q.ListProductsAdmin(r.Context(), dbgen.ListProductsAdminParams{
		LimitValue:  int32(limit),
		OffsetValue: int32((page - 1) * limit),
	})
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to list products", nil)
		return
	}
	now := time.Now()
	items := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		items = append(items, adminProductPayload(row, now))
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": items})
}

// Create handles POST /api/v1/admin/products.
func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog queries not configured", nil)
		return
	}
	payload, ok := h.decode(w, r)
	if !ok {
		return
	}
	product, err := h.Q.CreateProduct(r.Context(), dbgen.CreateProductParams{
		Title:            payload.Title,
		Slug:             payload.Slug,
		Description:      textOrNull(payload.Description),
		RegularPrice:     payload.RegularPrice,
		MemberPrice:      payload.MemberPrice,
		IsPromotional:    payload.IsPromotional,
		PromotionalPrice: int8OrNull(payload.PromotionalPrice),
		PromotionStart:   timeOrNull(payload.PromotionStart),
		PromotionEnd:     timeOrNull(payload.PromotionEnd),
		IsQualifying:     qualifying(payload.IsQualifying),
		QualifyOverride:  payload.QualifyOverride,
		Stock:            payload.Stock,
		Thumbnail:        textOrNull(payload.Thumbnail),
		Published:        payload.Published,
	})
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to create product", nil)
		return
	}
	h.invalidate(r, product.Slug)
	common.JSON(w, http.StatusCreated, map[string]any{"data": adminProductPayload(product, time.Now())})
}

// Update handles PUT /api/v1/admin/products/{id}.
func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog queries not configured", nil)
		return
	}
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid product id", nil)
		return
	}
	payload, ok := h.decode(w, r)
	if !ok {
		return
	}
	existing, err := h.Q.GetProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to load product", nil)
		return
	}
	product, err := h.Q.UpdateProduct(r.Context(), dbgen.UpdateProductParams{
		ID:               id,
		Title:            payload.Title,
		Slug:             payload.Slug,
		Description:      textOrNull(payload.Description),
		RegularPrice:     payload.RegularPrice,
		MemberPrice:      payload.MemberPrice,
		IsPromotional:    payload.IsPromotional,
		PromotionalPrice: int8OrNull(payload.PromotionalPrice),
		PromotionStart:   timeOrNull(payload.PromotionStart),
		PromotionEnd:     timeOrNull(payload.PromotionEnd),
		IsQualifying:     qualifying(payload.IsQualifying),
		QualifyOverride:  payload.QualifyOverride,
		Stock:            payload.Stock,
		Thumbnail:        textOrNull(payload.Thumbnail),
		Published:        payload.Published,
	})
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to update product", nil)
		return
	}
	h.invalidate(r, existing.Slug)
	if product.Slug != existing.Slug {
		h.invalidate(r, product.Slug)
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": adminProductPayload(product, time.Now())})
}

// Delete handles DELETE /api/v1/admin/products/{id}.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog queries not configured", nil)
		return
	}
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid product id", nil)
		return
	}
	existing, err := h.Q.GetProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to load product", nil)
		return
	}
	rows, err := h.Q.DeleteProduct(r.Context(), id)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to delete product", nil)
		return
	}
	if rows == 0 {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
		return
	}
	h.invalidate(r, existing.Slug)
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"deleted": true}})
}

func (h *AdminHandler) decode(w http.ResponseWriter, r *http.Request) (productPayload, bool) {
	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return payload, false
	}
	payload.Title = strings.TrimSpace(payload.Title)
	payload.Slug = strings.TrimSpace(payload.Slug)
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid product payload", map[string]any{"error": err.Error()})
			return payload, false
		}
	}
	if payload.IsPromotional && payload.PromotionStart != nil && payload.PromotionEnd != nil && payload.PromotionEnd.Before(*payload.PromotionStart) {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", "promotionEnd must not precede promotionStart", nil)
		return payload, false
	}
	return payload, true
}

func (h *AdminHandler) invalidate(r *http.Request, slug string) {
	if h.Service != nil {
		h.Service.InvalidateProduct(r.Context(), slug)
	}
}

func adminProductPayload(p dbgen.Product, now time.Time) map[string]any {
	out := map[string]any{
		"id":                     uuidString(p.ID),
		"title":                  p.Title,
		"slug":                   p.Slug,
		"regularPriceSen":        p.RegularPrice,
		"memberPriceSen":         p.MemberPrice,
		"isPromotional":          p.IsPromotional,
		"promotionActive":        promotionActive(p, now),
		"countsTowardMembership": p.IsQualifying,
		"qualifyOverride":        p.QualifyOverride,
		"stock":                  p.Stock,
		"published":              p.Published,
	}
	if p.Description.Valid {
		out["description"] = p.Description.String
	}
	if p.PromotionalPrice.Valid {
		out["promotionalPriceSen"] = p.PromotionalPrice.Int64
	}
	if p.PromotionStart.Valid {
		out["promotionStart"] = p.PromotionStart.Time
	}
	if p.PromotionEnd.Valid {
		out["promotionEnd"] = p.PromotionEnd.Time
	}
	if p.Thumbnail.Valid {
		out["thumbnail"] = p.Thumbnail.String
	}
	return out
}

func parseID(raw string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return pgtype.UUID{}, err
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}

func textOrNull(v *string) pgtype.Text {
	if v == nil || strings.TrimSpace(*v) == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *v, Valid: true}
}

func int8OrNull(v *int64) pgtype.Int8 {
	if v == nil {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: *v, Valid: true}
}

func timeOrNull(v *time.Time) pgtype.Timestamptz {
	if v == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *v, Valid: true}
}

// qualifying defaults the membership accrual flag to true when omitted.
func qualifying(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}
