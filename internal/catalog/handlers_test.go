package catalog_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	"github.com/ecomjrm/storefront-api/internal/catalog"
	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
)

type productsResponse struct {
	Data       []catalog.ProductListItem `json:"data"`
	Pagination struct {
		Page       int `json:"page"`
		PerPage    int `json:"per_page"`
		TotalItems int `json:"total_items"`
	} `json:"pagination"`
}

type productDetailResponse struct {
	Data catalog.ProductDetail `json:"data"`
}

func TestCatalogHandlers(t *testing.T) {
	queries := newFakeCatalogQueries(t)
	svc, err := catalog.NewService(catalog.ServiceConfig{
		Queries:      queries,
		DefaultPage:  1,
		DefaultLimit: 20,
		MaxLimit:     100,
		Now:          func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)

	handler := catalog.NewHandler(catalog.HandlerConfig{Service: svc})

	t.Run("products list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products?limit=1", nil)
		rec := httptest.NewRecorder()
		handler.Products(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "2", rec.Header().Get("X-Total-Count"))

		var resp productsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		require.Equal(t, "Baju Batik Lelaki", resp.Data[0].Title)
		require.Equal(t, "89.00", resp.Data[0].RegularPrice)
		require.Equal(t, "79.00", resp.Data[0].MemberPrice)
		require.True(t, resp.Data[0].IsQualifying)
		require.Equal(t, 1, resp.Pagination.Page)
		require.Equal(t, 1, resp.Pagination.PerPage)
		require.Equal(t, 2, resp.Pagination.TotalItems)
	})

	t.Run("search filters by title", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products?q=kasut", nil)
		rec := httptest.NewRecorder()
		handler.Products(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp productsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		require.Equal(t, "Kasut Sukan", resp.Data[0].Title)
	})

	t.Run("product detail with active promotion", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/kasut-sukan", nil)
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("slug", "kasut-sukan")
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
		rec := httptest.NewRecorder()
		handler.ProductDetail(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp productDetailResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "Kasut Sukan", resp.Data.Title)
		require.True(t, resp.Data.PromotionActive)
		require.NotNil(t, resp.Data.PromotionalPrice)
		require.Equal(t, "99.00", *resp.Data.PromotionalPrice)
		require.False(t, resp.Data.IsQualifying)
	})

	t.Run("product detail not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/tiada", nil)
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("slug", "tiada")
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
		rec := httptest.NewRecorder()
		handler.ProductDetail(rec, req)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid page rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products?page=0", nil)
		rec := httptest.NewRecorder()
		handler.Products(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

type fakeCatalogQueries struct {
	products []dbgen.Product
}

func newFakeCatalogQueries(t *testing.T) *fakeCatalogQueries {
	t.Helper()
	promoStart := pgtype.Timestamptz{Time: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Valid: true}
	promoEnd := pgtype.Timestamptz{Time: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), Valid: true}
	return &fakeCatalogQueries{products: []dbgen.Product{
		{
			ID:           mustUUID(t, "11111111-1111-1111-1111-111111111111"),
			Title:        "Baju Batik Lelaki",
			Slug:         "baju-batik-lelaki",
			RegularPrice: 8900,
			MemberPrice:  7900,
			IsQualifying: true,
			Stock:        12,
			Published:    true,
		},
		{
			ID:               mustUUID(t, "22222222-2222-2222-2222-222222222222"),
			Title:            "Kasut Sukan",
			Slug:             "kasut-sukan",
			RegularPrice:     12900,
			MemberPrice:      11900,
			IsPromotional:    true,
			PromotionalPrice: pgtype.Int8{Int64: 9900, Valid: true},
			PromotionStart:   promoStart,
			PromotionEnd:     promoEnd,
			IsQualifying:     false,
			Stock:            4,
			Published:        true,
		},
	}}
}

func (f *fakeCatalogQueries) CountProductsPublic(ctx context.Context, query string) (int64, error) {
	return int64(len(f.filter(query))), nil
}

func (f *fakeCatalogQueries) ListProductsPublic(ctx context.Context, arg dbgen.ListProductsPublicParams) ([]dbgen.Product, error) {
	filtered := f.filter(arg.Query)
	start := int(arg.OffsetValue)
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + int(arg.LimitValue)
	if end > len(filtered) {
		end = len(filtered)
	}
	return append([]dbgen.Product(nil), filtered[start:end]...), nil
}

func (f *fakeCatalogQueries) GetProductBySlug(ctx context.Context, slug string) (dbgen.Product, error) {
	for _, p := range f.products {
		if p.Slug == slug && p.Published {
			return p, nil
		}
	}
	return dbgen.Product{}, fmt.Errorf("get product: %w", pgx.ErrNoRows)
}

func (f *fakeCatalogQueries) filter(query string) []dbgen.Product {
	result := make([]dbgen.Product, 0, len(f.products))
	for _, p := range f.products {
		if !p.Published {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(query)) {
			continue
		}
		result = append(result, p)
	}
	return result
}

func mustUUID(t *testing.T, value string) pgtype.UUID {
	t.Helper()
	var id pgtype.UUID
	require.NoError(t, id.Scan(value))
	return id
}
