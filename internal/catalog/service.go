package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ecomjrm/storefront-api/internal/common"
	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
	"github.com/ecomjrm/storefront-api/internal/promotion"
)

type queryProvider interface {
	CountProductsPublic(ctx context.Context, query string) (int64, error)
	ListProductsPublic(ctx context.Context, arg dbgen.ListProductsPublicParams) ([]dbgen.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (dbgen.Product, error)
}

// Service orchestrates catalog queries, DTO assembly, and caching.
type Service struct {
	queries      queryProvider
	cache        *Cache
	defaultPage  int
	defaultLimit int
	maxLimit     int
	now          func() time.Time
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Queries      queryProvider
	Cache        *Cache
	DefaultPage  int
	DefaultLimit int
	MaxLimit     int
	Now          func() time.Time
}

// ListParams captures filters for product listing.
type ListParams struct {
	Query string
	Page  int
	Limit int
}

// ProductListItem represents an entry in list responses. Prices are
// fixed-point ringgit strings.
type ProductListItem struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Slug             string  `json:"slug"`
	RegularPrice     string  `json:"regularPrice"`
	MemberPrice      string  `json:"memberPrice"`
	PromotionalPrice *string `json:"promotionalPrice,omitempty"`
	PromotionActive  bool    `json:"promotionActive"`
	IsQualifying     bool    `json:"countsTowardMembership"`
	InStock          bool    `json:"inStock"`
	Thumbnail        *string `json:"thumbnail,omitempty"`
}

// ProductDetail aggregates the full public detail payload.
type ProductDetail struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Slug             string     `json:"slug"`
	Description      *string    `json:"description,omitempty"`
	RegularPrice     string     `json:"regularPrice"`
	MemberPrice      string     `json:"memberPrice"`
	PromotionalPrice *string    `json:"promotionalPrice,omitempty"`
	PromotionActive  bool       `json:"promotionActive"`
	PromotionStart   *time.Time `json:"promotionStart,omitempty"`
	PromotionEnd     *time.Time `json:"promotionEnd,omitempty"`
	IsQualifying     bool       `json:"countsTowardMembership"`
	Stock            int        `json:"stock"`
	InStock          bool       `json:"inStock"`
	Thumbnail        *string    `json:"thumbnail,omitempty"`
}

// ProductListResult contains list data and pagination metadata.
type ProductListResult struct {
	Items []ProductListItem
	Total int64
	Page  int
	Limit int
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Queries == nil {
		return nil, errors.New("catalog: queries provider is required")
	}
	defaultPage := cfg.DefaultPage
	if defaultPage < 1 {
		defaultPage = 1
	}
	defaultLimit := cfg.DefaultLimit
	if defaultLimit < 1 {
		defaultLimit = 20
	}
	maxLimit := cfg.MaxLimit
	if maxLimit < 1 {
		maxLimit = 100
	}
	if defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		queries:      cfg.Queries,
		cache:        cfg.Cache,
		defaultPage:  defaultPage,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		now:          now,
	}, nil
}

// ParseListParams normalises raw query values into strongly typed filters.
func (s *Service) ParseListParams(values url.Values) (ListParams, error) {
	params := ListParams{
		Page:  s.defaultPage,
		Limit: s.defaultLimit,
	}
	params.Query = strings.TrimSpace(values.Get("q"))

	if v := strings.TrimSpace(values.Get("page")); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return params, badRequest("page", "page must be a positive integer", err)
		}
		params.Page = page
	}

	limit := s.defaultLimit
	if v := strings.TrimSpace(values.Get("limit")); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil || l < 1 {
			return params, badRequest("limit", "limit must be a positive integer", err)
		}
		limit = l
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	params.Limit = limit
	return params, nil
}

// ListProducts returns the published product list with pagination metadata.
func (s *Service) ListProducts(ctx context.Context, params ListParams) (ProductListResult, error) {
	key, shouldUseCache := s.listCacheKey(params)
	if shouldUseCache && s.cache != nil {
		var cached cachedList
		ok, err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil && ok {
			return ProductListResult{Items: cached.Items, Total: cached.Total, Page: params.Page, Limit: params.Limit}, nil
		}
	}

	total, err := s.queries.CountProductsPublic(ctx, params.Query)
	if err != nil {
		return ProductListResult{}, fmt.Errorf("count products: %w", err)
	}
	offset := int32((params.Page - 1) * params.Limit)
	if offset < 0 {
		offset = 0
	}
	rows, err := s.queries.ListProductsPublic(ctx, dbgen.ListProductsPublicParams{
		Query:       params.Query,
		LimitValue:  int32(params.Limit),
		OffsetValue: offset,
	})
	if err != nil {
		return ProductListResult{}, fmt.Errorf("list products: %w", err)
	}
	now := s.now()
	items := make([]ProductListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, listItemFromProduct(row, now))
	}
	result := ProductListResult{Items: items, Total: total, Page: params.Page, Limit: params.Limit}
	if shouldUseCache && s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, cachedList{Items: items, Total: total})
	}
	return result, nil
}

// GetProductDetail returns the published product detail by slug.
func (s *Service) GetProductDetail(ctx context.Context, slug string) (ProductDetail, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return ProductDetail{}, badRequest("slug", "slug is required", nil)
	}
	cacheKey := detailCacheKey(slug)
	if s.cache != nil {
		var cached ProductDetail
		ok, err := s.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && ok {
			return cached, nil
		}
	}
	product, err := s.queries.GetProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProductDetail{}, &common.AppError{Code: "NOT_FOUND", Message: "product not found", HTTPStatus: http.StatusNotFound, Err: err}
		}
		return ProductDetail{}, fmt.Errorf("get product by slug: %w", err)
	}
	now := s.now()
	detail := ProductDetail{
		ID:              uuidString(product.ID),
		Title:           product.Title,
		Slug:            product.Slug,
		RegularPrice:    common.SenToRinggit(product.RegularPrice).StringFixed(2),
		MemberPrice:     common.SenToRinggit(product.MemberPrice).StringFixed(2),
		PromotionActive: promotionActive(product, now),
		IsQualifying:    product.IsQualifying,
		Stock:           int(product.Stock),
		InStock:         product.Stock > 0,
	}
	if product.Description.Valid {
		desc := product.Description.String
		detail.Description = &desc
	}
	if product.PromotionalPrice.Valid {
		promo := common.SenToRinggit(product.PromotionalPrice.Int64).StringFixed(2)
		detail.PromotionalPrice = &promo
	}
	if product.PromotionStart.Valid {
		start := product.PromotionStart.Time
		detail.PromotionStart = &start
	}
	if product.PromotionEnd.Valid {
		end := product.PromotionEnd.Time
		detail.PromotionEnd = &end
	}
	if product.Thumbnail.Valid {
		thumb := product.Thumbnail.String
		detail.Thumbnail = &thumb
	}
	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, cacheKey, detail)
	}
	return detail, nil
}

// InvalidateProduct drops cached entries after an admin mutation.
func (s *Service) InvalidateProduct(ctx context.Context, slug string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, detailCacheKey(slug))
	_ = s.cache.Delete(ctx, "catalog:products:list:front")
}

func listItemFromProduct(p dbgen.Product, now time.Time) ProductListItem {
	item := ProductListItem{
		ID:              uuidString(p.ID),
		Title:           p.Title,
		Slug:            p.Slug,
		RegularPrice:    common.SenToRinggit(p.RegularPrice).StringFixed(2),
		MemberPrice:     common.SenToRinggit(p.MemberPrice).StringFixed(2),
		PromotionActive: promotionActive(p, now),
		IsQualifying:    p.IsQualifying,
		InStock:         p.Stock > 0,
	}
	if p.PromotionalPrice.Valid {
		promo := common.SenToRinggit(p.PromotionalPrice.Int64).StringFixed(2)
		item.PromotionalPrice = &promo
	}
	if p.Thumbnail.Valid {
		thumb := p.Thumbnail.String
		item.Thumbnail = &thumb
	}
	return item
}

func promotionActive(p dbgen.Product, now time.Time) bool {
	item := promotion.Item{IsPromotional: p.IsPromotional}
	if p.PromotionStart.Valid {
		start := p.PromotionStart.Time
		item.Start = &start
	}
	if p.PromotionEnd.Valid {
		end := p.PromotionEnd.Time
		item.End = &end
	}
	return item.ActiveAt(now)
}

type cachedList struct {
	Items []ProductListItem `json:"items"`
	Total int64             `json:"total"`
}

func (s *Service) listCacheKey(params ListParams) (string, bool) {
	if params.Page != s.defaultPage {
		return "", false
	}
	if params.Limit != s.defaultLimit {
		return "", false
	}
	if params.Query != "" {
		return "", false
	}
	return "catalog:products:list:front", true
}

func detailCacheKey(slug string) string {
	return "catalog:products:detail:" + slug
}

func uuidString(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	u, err := uuid.FromBytes(id.Bytes[:])
	if err != nil {
		return ""
	}
	return u.String()
}

func badRequest(field, message string, err error) *common.AppError {
	return &common.AppError{
		Code:       "BAD_REQUEST",
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
		Details: map[string]any{
			"field": field,
		},
	}
}
