package content

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

// AdminHandler exposes back-office FAQ and article management.
type AdminHandler struct {
	Q        *dbgen.Queries
	Service  *Service
	Validate *validator.Validate
}

type faqPayload struct {
	Question     string `json:"question" validate:"required,min=1,max=500"`
	Answer       string `json:"answer" validate:"required,min=1"`
	DisplayOrder int32  `json:"displayOrder" validate:"gte=0"`
	Published    bool   `json:"published"`
}

type articlePayload struct {
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Slug        string     `json:"slug" validate:"required,min=1,max=200"`
	Summary     *string    `json:"summary"`
	Body        string     `json:"body" validate:"required,min=1"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// ListFaqs handles GET /api/v1/admin/content/faqs, including drafts.
func (h *AdminHandler) ListFaqs(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Q.ListFaqsAll(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to list faqs", nil)
		return
	}
	items := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		items = append(items, adminFaqPayload(row))
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": items})
}

// CreateFaq handles POST /api/v1/admin/content/faqs.
func (h *AdminHandler) CreateFaq(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodeFaq(w, r)
	if !ok {
		return
	}
	faq, err := h.Q.CreateFaq(r.Context(), dbgen.CreateFaqParams{
		Question:     payload.Question,
		Answer:       payload.Answer,
		DisplayOrder: payload.DisplayOrder,
		Published:    payload.Published,
	})
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to create faq", nil)
		return
	}
	h.invalidateFaqs(r)
	common.JSON(w, http.StatusCreated, map[string]any{"data": adminFaqPayload(faq)})
}

// UpdateFaq handles PUT /api/v1/admin/content/faqs/{id}.
func (h *AdminHandler) UpdateFaq(w http.ResponseWriter, r *http.Request) {
	id, err := contentID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid faq id", nil)
		return
	}
	payload, ok := h.decodeFaq(w, r)
	if !ok {
		return
	}
	faq, err := h.Q.UpdateFaq(r.Context(), dbgen.UpdateFaqParams{
		ID:           id,
		Question:     payload.Question,
		Answer:       payload.Answer,
		DisplayOrder: payload.DisplayOrder,
		Published:    payload.Published,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "faq not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to update faq", nil)
		return
	}
	h.invalidateFaqs(r)
	common.JSON(w, http.StatusOK, map[string]any{"data": adminFaqPayload(faq)})
}

// DeleteFaq handles DELETE /api/v1/admin/content/faqs/{id}.
func (h *AdminHandler) DeleteFaq(w http.ResponseWriter, r *http.Request) {
	id, err := contentID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid faq id", nil)
		return
	}
	rows, err := h.Q.DeleteFaq(r.Context(), id)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to delete faq", nil)
		return
	}
	if rows == 0 {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "faq not found", nil)
		return
	}
	h.invalidateFaqs(r)
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"deleted": true}})
}

// ListArticles handles GET /api/v1/admin/content/articles, including drafts.
func (h *AdminHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	page, limit := common.ParsePagination(r, 20)
	rows, err := h.Q.ListArticlesAdmin(r.Context(), dbgen.ListArticlesAdminParams{
		LimitValue:  int32(limit),
		OffsetValue: int32((page - 1) * limit),
	})
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to list articles", nil)
		return
	}
	items := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		items = append(items, adminArticlePayload(row))
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": items})
}

// CreateArticle handles POST /api/v1/admin/content/articles.
func (h *AdminHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodeArticle(w, r)
	if !ok {
		return
	}
	article, err := h.Q.CreateArticle(r.Context(), dbgen.CreateArticleParams{
		Title:       payload.Title,
		Slug:        payload.Slug,
		Summary:     summaryOrNull(payload.Summary),
		Body:        payload.Body,
		Published:   payload.Published,
		PublishedAt: publishedAt(payload),
	})
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to create article", nil)
		return
	}
	h.invalidateArticle(r, article.Slug)
	common.JSON(w, http.StatusCreated, map[string]any{"data": adminArticlePayload(article)})
}

// UpdateArticle handles PUT /api/v1/admin/content/articles/{id}.
func (h *AdminHandler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, err := contentID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid article id", nil)
		return
	}
	payload, ok := h.decodeArticle(w, r)
	if !ok {
		return
	}
	existing, err := h.Q.GetArticleByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "article not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to load article", nil)
		return
	}
	article, err := h.Q.UpdateArticle(r.Context(), dbgen.UpdateArticleParams{
		ID:          id,
		Title:       payload.Title,
		Slug:        payload.Slug,
		Summary:     summaryOrNull(payload.Summary),
		Body:        payload.Body,
		Published:   payload.Published,
		PublishedAt: publishedAt(payload),
	})
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to update article", nil)
		return
	}
	h.invalidateArticle(r, existing.Slug)
	if article.Slug != existing.Slug {
		h.invalidateArticle(r, article.Slug)
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": adminArticlePayload(article)})
}

// DeleteArticle handles DELETE /api/v1/admin/content/articles/{id}.
func (h *AdminHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := contentID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid article id", nil)
		return
	}
	existing, err := h.Q.GetArticleByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "article not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to load article", nil)
		return
	}
	rows, err := h.Q.DeleteArticle(r.Context(), id)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to delete article", nil)
		return
	}
	if rows == 0 {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "article not found", nil)
		return
	}
	h.invalidateArticle(r, existing.Slug)
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"deleted": true}})
}

func (h *AdminHandler) decodeFaq(w http.ResponseWriter, r *http.Request) (faqPayload, bool) {
	var payload faqPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return payload, false
	}
	payload.Question = strings.TrimSpace(payload.Question)
	payload.Answer = strings.TrimSpace(payload.Answer)
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid faq payload", map[string]any{"error": err.Error()})
			return payload, false
		}
	}
	return payload, true
}

func (h *AdminHandler) decodeArticle(w http.ResponseWriter, r *http.Request) (articlePayload, bool) {
	var payload articlePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return payload, false
	}
	payload.Title = strings.TrimSpace(payload.Title)
	payload.Slug = strings.TrimSpace(payload.Slug)
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid article payload", map[string]any{"error": err.Error()})
			return payload, false
		}
	}
	return payload, true
}

func (h *AdminHandler) invalidateFaqs(r *http.Request) {
	if h.Service != nil {
		h.Service.InvalidateFaqs(r.Context())
	}
}

func (h *AdminHandler) invalidateArticle(r *http.Request, slug string) {
	if h.Service != nil {
		h.Service.InvalidateArticle(r.Context(), slug)
	}
}

func adminFaqPayload(f dbgen.Faq) map[string]any {
	return map[string]any{
		"id":           uuidText(f.ID),
		"question":     f.Question,
		"answer":       f.Answer,
		"displayOrder": f.DisplayOrder,
		"published":    f.Published,
	}
}

func adminArticlePayload(a dbgen.Article) map[string]any {
	out := map[string]any{
		"id":        uuidText(a.ID),
		"title":     a.Title,
		"slug":      a.Slug,
		"body":      a.Body,
		"published": a.Published,
	}
	if a.Summary.Valid {
		out["summary"] = a.Summary.String
	}
	if a.PublishedAt.Valid {
		out["publishedAt"] = a.PublishedAt.Time
	}
	return out
}

// publishedAt stamps newly published articles that did not carry an explicit date.
func publishedAt(p articlePayload) pgtype.Timestamptz {
	if p.PublishedAt != nil {
		return pgtype.Timestamptz{Time: *p.PublishedAt, Valid: true}
	}
	if p.Published {
		return pgtype.Timestamptz{Time: time.Now(), Valid: true}
	}
	return pgtype.Timestamptz{}
}

func summaryOrNull(v *string) pgtype.Text {
	if v == nil || strings.TrimSpace(*v) == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *v, Valid: true}
}

func contentID(raw string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return pgtype.UUID{}, err
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}
