package content

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
)

type fakeContentQueries struct {
	faqs     []dbgen.Faq
	articles []dbgen.Article
}

func (f *fakeContentQueries) ListFaqsPublished(ctx context.Context) ([]dbgen.Faq, error) {
	var out []dbgen.Faq
	for _, faq := range f.faqs {
		if faq.Published {
			out = append(out, faq)
		}
	}
	return out, nil
}

func (f *fakeContentQueries) ListArticlesPublished(ctx context.Context, arg dbgen.ListArticlesPublishedParams) ([]dbgen.Article, error) {
	var published []dbgen.Article
	for _, article := range f.articles {
		if article.Published {
			published = append(published, article)
		}
	}
	start := int(arg.OffsetValue)
	if start >= len(published) {
		return nil, nil
	}
	end := start + int(arg.LimitValue)
	if end > len(published) {
		end = len(published)
	}
	return published[start:end], nil
}

func (f *fakeContentQueries) CountArticlesPublished(ctx context.Context) (int64, error) {
	var count int64
	for _, article := range f.articles {
		if article.Published {
			count++
		}
	}
	return count, nil
}

func (f *fakeContentQueries) GetArticleBySlug(ctx context.Context, slug string) (dbgen.Article, error) {
	for _, article := range f.articles {
		if article.Slug == slug && article.Published {
			return article, nil
		}
	}
	return dbgen.Article{}, pgx.ErrNoRows
}

func seedContent() *fakeContentQueries {
	ts := pgtype.Timestamptz{Time: time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC), Valid: true}
	return &fakeContentQueries{
		faqs: []dbgen.Faq{
			{
				ID:           contentTestID("6a8c2f14-1111-4a61-9d8e-2f0a4b7c9d01"),
				Question:     "Bagaimana cara menjadi ahli?",
				Answer:       "Capai jumlah belian melayakkan dalam satu pesanan.",
				DisplayOrder: 1,
				Published:    true,
			},
			{
				ID:           contentTestID("6a8c2f14-2222-4a61-9d8e-2f0a4b7c9d02"),
				Question:     "Draft question",
				Answer:       "Hidden",
				DisplayOrder: 2,
				Published:    false,
			},
		},
		articles: []dbgen.Article{
			{
				ID:          contentTestID("6a8c2f14-3333-4a61-9d8e-2f0a4b7c9d03"),
				Title:       "Panduan Keahlian",
				Slug:        "panduan-keahlian",
				Summary:     pgtype.Text{String: "Cara layak jadi ahli", Valid: true},
				Body:        "Belanja sekurang-kurangnya jumlah ambang dalam satu pesanan.",
				Published:   true,
				PublishedAt: ts,
			},
			{
				ID:        contentTestID("6a8c2f14-4444-4a61-9d8e-2f0a4b7c9d04"),
				Title:     "Draf",
				Slug:      "draf",
				Body:      "Belum terbit.",
				Published: false,
			},
		},
	}
}

func contentTestID(raw string) pgtype.UUID {
	var id pgtype.UUID
	if err := id.Scan(raw); err != nil {
		panic(err)
	}
	return id
}

func newContentHandler() *Handler {
	svc := NewService(seedContent(), nil, zerolog.Nop())
	return &Handler{Service: svc}
}

func TestFaqsListsOnlyPublished(t *testing.T) {
	handler := newContentHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/content/faqs", nil)
	rec := httptest.NewRecorder()
	handler.Faqs(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var payload struct {
		Data []FaqItem `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(payload.Data) != 1 {
		t.Fatalf("expected 1 published faq, got %d", len(payload.Data))
	}
	if payload.Data[0].Question != "Bagaimana cara menjadi ahli?" {
		t.Fatalf("unexpected question: %q", payload.Data[0].Question)
	}
}

func TestArticlesListWithTotalCount(t *testing.T) {
	handler := newContentHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/content/articles", nil)
	rec := httptest.NewRecorder()
	handler.Articles(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if got := rec.Header().Get("X-Total-Count"); got != "1" {
		t.Fatalf("unexpected total count header: %q", got)
	}
	var payload struct {
		Data []ArticleListItem `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(payload.Data) != 1 {
		t.Fatalf("expected 1 published article, got %d", len(payload.Data))
	}
	if payload.Data[0].Slug != "panduan-keahlian" {
		t.Fatalf("unexpected slug: %q", payload.Data[0].Slug)
	}
	if payload.Data[0].Summary == nil || *payload.Data[0].Summary != "Cara layak jadi ahli" {
		t.Fatalf("expected summary in list item")
	}
}

func TestArticleDetailAndNotFound(t *testing.T) {
	handler := newContentHandler()
	router := chi.NewRouter()
	router.Get("/api/v1/content/articles/{slug}", handler.ArticleDetail)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/content/articles/panduan-keahlian", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var payload struct {
		Data ArticleDetail `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Data.Body == "" {
		t.Fatalf("expected article body in detail payload")
	}

	// Drafts stay hidden from the public surface.
	draftReq := httptest.NewRequest(http.MethodGet, "/api/v1/content/articles/draf", nil)
	draftRec := httptest.NewRecorder()
	router.ServeHTTP(draftRec, draftReq)
	if draftRec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for draft article, got %d", draftRec.Code)
	}
}
