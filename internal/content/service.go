package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
)

const (
	faqListKey       = "content:faqs"
	articleFrontKey  = "content:articles:front"
	articleDetailKey = "content:articles:detail:"
)

// ErrNotFound is returned when a published article cannot be located.
var ErrNotFound = errors.New("content: not found")

type queryProvider interface {
	ListFaqsPublished(ctx context.Context) ([]dbgen.Faq, error)
	ListArticlesPublished(ctx context.Context, arg dbgen.ListArticlesPublishedParams) ([]dbgen.Article, error)
	CountArticlesPublished(ctx context.Context) (int64, error)
	GetArticleBySlug(ctx context.Context, slug string) (dbgen.Article, error)
}

// Service serves the public FAQ and article surface with read-through caching.
type Service struct {
	q     queryProvider
	cache *Cache
	log   zerolog.Logger
}

// NewService wires the content service. Cache may be nil.
func NewService(q queryProvider, cache *Cache, log zerolog.Logger) *Service {
	return &Service{q: q, cache: cache, log: log}
}

// FaqItem is the public FAQ representation.
type FaqItem struct {
	ID           string `json:"id"`
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	DisplayOrder int32  `json:"displayOrder"`
}

// ArticleListItem is the public article list representation.
type ArticleListItem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Summary     *string    `json:"summary,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// ArticleDetail is the public article detail representation.
type ArticleDetail struct {
	ArticleListItem
	Body string `json:"body"`
}

// Faqs returns all published FAQ entries in display order.
func (s *Service) Faqs(ctx context.Context) ([]FaqItem, error) {
	var cached []FaqItem
	if hit, err := s.cache.GetJSON(ctx, faqListKey, &cached); err == nil && hit {
		return cached, nil
	} else if err != nil {
		s.log.Warn().Err(err).Msg("content faq cache read failed")
	}

	rows, err := s.q.ListFaqsPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list faqs: %w", err)
	}
	items := make([]FaqItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, FaqItem{
			ID:           uuidText(row.ID),
			Question:     row.Question,
			Answer:       row.Answer,
			DisplayOrder: row.DisplayOrder,
		})
	}
	if err := s.cache.SetJSON(ctx, faqListKey, items); err != nil {
		s.log.Warn().Err(err).Msg("content faq cache write failed")
	}
	return items, nil
}

// Articles returns a page of published articles with the total count.
func (s *Service) Articles(ctx context.Context, page, limit int) ([]ArticleListItem, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	type cachedPage struct {
		Items []ArticleListItem `json:"items"`
		Total int64             `json:"total"`
	}
	cacheable := page == 1 && limit == 20
	if cacheable {
		var cached cachedPage
		if hit, err := s.cache.GetJSON(ctx, articleFrontKey, &cached); err == nil && hit {
			return cached.Items, cached.Total, nil
		} else if err != nil {
			s.log.Warn().Err(err).Msg("content article cache read failed")
		}
	}

	total, err := s.q.CountArticlesPublished(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}
	rows, err := s.q.ListArticlesPublished(ctx, dbgen.ListArticlesPublishedParams{
		LimitValue:  int32(limit),
		OffsetValue: int32((page - 1) * limit),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}
	items := make([]ArticleListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, articleListItem(row))
	}
	if cacheable {
		if err := s.cache.SetJSON(ctx, articleFrontKey, cachedPage{Items: items, Total: total}); err != nil {
			s.log.Warn().Err(err).Msg("content article cache write failed")
		}
	}
	return items, total, nil
}

// Article returns a published article by slug.
func (s *Service) Article(ctx context.Context, slug string) (ArticleDetail, error) {
	key := articleDetailKey + slug
	var cached ArticleDetail
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	} else if err != nil {
		s.log.Warn().Err(err).Msg("content article cache read failed")
	}

	row, err := s.q.GetArticleBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ArticleDetail{}, ErrNotFound
		}
		return ArticleDetail{}, fmt.Errorf("get article: %w", err)
	}
	detail := ArticleDetail{ArticleListItem: articleListItem(row), Body: row.Body}
	if err := s.cache.SetJSON(ctx, key, detail); err != nil {
		s.log.Warn().Err(err).Msg("content article cache write failed")
	}
	return detail, nil
}

// InvalidateFaqs drops the cached FAQ list after an admin write.
func (s *Service) InvalidateFaqs(ctx context.Context) {
	if err := s.cache.Delete(ctx, faqListKey); err != nil {
		s.log.Warn().Err(err).Msg("content faq cache invalidation failed")
	}
}

// InvalidateArticle drops the cached detail and front page for a slug.
func (s *Service) InvalidateArticle(ctx context.Context, slug string) {
	keys := []string{articleFrontKey}
	if slug != "" {
		keys = append(keys, articleDetailKey+slug)
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.log.Warn().Err(err).Msg("content article cache invalidation failed")
	}
}

func articleListItem(row dbgen.Article) ArticleListItem {
	item := ArticleListItem{
		ID:    uuidText(row.ID),
		Title: row.Title,
		Slug:  row.Slug,
	}
	if row.Summary.Valid {
		summary := row.Summary.String
		item.Summary = &summary
	}
	if row.PublishedAt.Valid {
		publishedAt := row.PublishedAt.Time
		item.PublishedAt = &publishedAt
	}
	return item
}

func uuidText(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	u, err := uuid.FromBytes(id.Bytes[:])
	if err != nil {
		return ""
	}
	return u.String()
}
