// ABOUTME: Feed query service builds the two read shapes over the article store
// ABOUTME: Provides the paginated summary list and the lazy full-detail fetch

package query

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"legacy-updates-api/core/domain"
	coreerrors "legacy-updates-api/core/errors"
	"legacy-updates-api/core/interfaces"
)

// Page size defaults. The first page fills the above-the-fold hero plus two
// grid rows; later pages fill uniform rows, hence the asymmetry.
const (
	FirstPageLimit = 9
	NextPageLimit  = 6
)

// articleCacheTTL bounds staleness of the single-article cache
const articleCacheTTL = 1 * time.Minute

// FeedQueryService builds read projections over the article store
type FeedQueryService struct {
	deps interfaces.Dependencies
}

// NewFeedQueryService creates a new feed query service instance
func NewFeedQueryService(deps interfaces.Dependencies) *FeedQueryService {
	return &FeedQueryService{
		deps: deps,
	}
}

// ListRequest carries the inputs for a paginated list query
type ListRequest struct {
	// Page is 1-based; values below 1 are treated as 1
	Page int

	// Limit is the page size; it must be positive
	Limit int

	// Search is an optional case-insensitive substring matched against title
	Search string
}

// List returns one page of summary projections plus pagination metadata.
// A zero or negative limit is rejected rather than clamped, so the pages
// computation can never divide by zero.
func (s *FeedQueryService) List(ctx context.Context, req ListRequest) (*domain.FeedPage, error) {
	if req.Page < 1 {
		req.Page = 1
	}

	if req.Limit < 1 {
		return nil, &coreerrors.InvalidRequestError{
			Field:   "limit",
			Message: "limit must be a positive integer",
		}
	}

	filter := domain.Filter{TitleSearch: req.Search}
	skip := Skip(req.Page, req.Limit)

	data, err := s.deps.Storage.Find(ctx, filter, skip, req.Limit)
	if err != nil {
		return nil, coreerrors.WrapError(err, "feed list query failed")
	}

	total, err := s.deps.Storage.Count(ctx, filter)
	if err != nil {
		return nil, coreerrors.WrapError(err, "feed count query failed")
	}

	if data == nil {
		data = []domain.ArticleSummary{}
	}

	return &domain.FeedPage{
		Data:       data,
		Pagination: Paginate(total, req.Page, req.Limit, len(data)),
	}, nil
}

// Get returns the full projection for a single article.
// The cache is consulted first so repeated opens of the same article skip the
// store; NotFound and Transient errors propagate untouched.
func (s *FeedQueryService) Get(ctx context.Context, id string) (*domain.Article, error) {
	if id == "" {
		return nil, &coreerrors.InvalidRequestError{
			Field:   "id",
			Message: "id cannot be empty",
		}
	}

	if cached := s.getCachedArticle(ctx, id); cached != nil {
		return cached, nil
	}

	article, err := s.deps.Storage.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cacheArticle(ctx, article)

	return article, nil
}

// ArticleCacheKey returns the cache key for a single-article projection.
// The write service deletes this key on every successful write.
func ArticleCacheKey(id string) string {
	return fmt.Sprintf("article:%s", id)
}

// getCachedArticle retrieves an article from cache, returning nil on any miss
func (s *FeedQueryService) getCachedArticle(ctx context.Context, id string) *domain.Article {
	if s.deps.Cache == nil {
		return nil
	}

	data, err := s.deps.Cache.Get(ctx, ArticleCacheKey(id))
	if err != nil || data == nil {
		return nil
	}

	var article domain.Article
	if err := json.Unmarshal(data, &article); err != nil {
		return nil
	}

	return &article
}

// cacheArticle stores an article in cache, ignoring cache errors
func (s *FeedQueryService) cacheArticle(ctx context.Context, article *domain.Article) {
	if s.deps.Cache == nil || article == nil {
		return
	}

	data, err := json.Marshal(article)
	if err != nil {
		return
	}

	if err := s.deps.Cache.Set(ctx, ArticleCacheKey(article.ID), data, articleCacheTTL); err != nil && s.deps.Logger != nil {
		s.deps.Logger.Warn("Failed to cache article", map[string]interface{}{
			"id":    article.ID,
			"error": err.Error(),
		})
	}
}
