package content

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ecomjrm/storefront-api/internal/common"
)

// Handler exposes the public content endpoints.
type Handler struct {
	Service *Service
}

// Faqs handles GET /api/v1/content/faqs.
func (h *Handler) Faqs(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "content service not configured", nil)
		return
	}
	items, err := h.Service.Faqs(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to list faqs", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": items})
}

// Articles handles GET /api/v1/content/articles.
func (h *Handler) Articles(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "content service not configured", nil)
		return
	}
	page, limit := common.ParsePagination(r, 20)
	items, total, err := h.Service.Articles(r.Context(), page, limit)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to list articles", nil)
		return
	}
	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	common.JSON(w, http.StatusOK, map[string]any{
		"data": items,
		"meta": common.Pagination{Page: page, PerPage: limit, TotalItems: int(total)},
	})
}

// ArticleDetail handles GET /api/v1/content/articles/{slug}.
func (h *Handler) ArticleDetail(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "content service not configured", nil)
		return
	}
	slug := chi.URLParam(r, "slug")
	detail, err := h.Service.Article(r.Context(), slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "article not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to load article", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": detail})
}
