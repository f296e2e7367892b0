// ABOUTME: Client-side feed cache orchestrating incremental loading
// ABOUTME: Handles initial load, load-more paging, and lazy article hydration

package feedcache

import (
	"context"
	"sync"
	"time"

	"legacy-updates-api/core/domain"
	coreerrors "legacy-updates-api/core/errors"
	"legacy-updates-api/core/interfaces"
	"legacy-updates-api/core/query"
)

// FeedReader is the read surface the cache consumes
type FeedReader interface {
	List(ctx context.Context, req query.ListRequest) (*domain.FeedPage, error)
	Get(ctx context.Context, id string) (*domain.Article, error)
}

// Read-path retry policy for transient store failures. Writes are never
// retried here; the cache only reads.
const (
	readRetryAttempts = 3
	readRetryBaseWait = 100 * time.Millisecond
)

// Selection is the currently open article in whatever projection is loaded.
// Full stays nil until hydration completes; the summary is always presentable.
type Selection struct {
	Summary domain.ArticleSummary
	Full    *domain.Article
}

// FeedCache keeps the in-memory feed state for a single client session.
// All methods are safe for concurrent use; fetches never block other callers.
type FeedCache struct {
	reader FeedReader
	logger interfaces.Logger

	mu          sync.Mutex
	items       []domain.ArticleSummary
	hydrated    map[string]*domain.Article
	page        int
	hasMore     bool
	loadingMore bool
	selectedID  string
}

// NewFeedCache creates a feed cache over the given reader
func NewFeedCache(reader FeedReader, logger interfaces.Logger) *FeedCache {
	return &FeedCache{
		reader:   reader,
		logger:   logger,
		hydrated: make(map[string]*domain.Article),
	}
}

// LoadInitial fetches page 1 with the first-page limit and replaces the
// in-memory list wholesale. On failure the feed degrades to empty rather
// than leaving stale state behind.
func (c *FeedCache) LoadInitial(ctx context.Context) error {
	page, err := c.listWithRetry(ctx, query.ListRequest{
		Page:  1,
		Limit: query.FirstPageLimit,
	})
	if err != nil {
		c.mu.Lock()
		c.items = nil
		c.page = 1
		c.hasMore = false
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.items = page.Data
	c.page = 1
	c.hasMore = page.Pagination.HasMore
	c.mu.Unlock()

	return nil
}

// LoadMore fetches the next page with the subsequent-page limit and appends
// it to the list. It is a no-op while a previous LoadMore is in flight or
// when there is nothing more to load; the in-flight guard also keeps pages
// applied in request order. A failed fetch leaves the list intact and allows
// re-triggering.
func (c *FeedCache) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.loadingMore || !c.hasMore {
		c.mu.Unlock()
		return nil
	}
	c.loadingMore = true
	nextPage := c.page + 1
	c.mu.Unlock()

	page, err := c.listWithRetry(ctx, query.ListRequest{
		Page:  nextPage,
		Limit: query.NextPageLimit,
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadingMore = false

	if err != nil {
		return err
	}

	c.items = append(c.items, page.Data...)
	c.page = nextPage
	c.hasMore = page.Pagination.HasMore

	return nil
}

// Select marks the article as the current selection and immediately returns
// whatever projection is already in memory. An id not in memory returns nil
// and leaves any prior selection untouched. When the record lacks body
// content a background fetch hydrates it; a stale response never overwrites
// a newer selection because the result is applied only if the selection
// still matches the fetched id (last-selection-wins).
func (c *FeedCache) Select(ctx context.Context, id string) *Selection {
	c.mu.Lock()
	sel := c.selectionLocked(id)
	if sel == nil {
		c.mu.Unlock()
		return nil
	}
	c.selectedID = id
	needsBody := sel.Full == nil
	c.mu.Unlock()

	if needsBody {
		go c.hydrate(id)
	}

	return sel
}

// Deselect clears the current selection without side effects
func (c *FeedCache) Deselect() {
	c.mu.Lock()
	c.selectedID = ""
	c.mu.Unlock()
}

// Selected returns the current selection, or nil when nothing is open
func (c *FeedCache) Selected() *Selection {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selectedID == "" {
		return nil
	}
	return c.selectionLocked(c.selectedID)
}

// Items returns a snapshot of the in-memory summary list
func (c *FeedCache) Items() []domain.ArticleSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := make([]domain.ArticleSummary, len(c.items))
	copy(snapshot, c.items)
	return snapshot
}

// HasMore reports whether further pages can be loaded
func (c *FeedCache) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMore
}

// Page returns the last applied page number
func (c *FeedCache) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// selectionLocked builds the selection for an id from in-memory state.
// Caller must hold the mutex.
func (c *FeedCache) selectionLocked(id string) *Selection {
	if full, ok := c.hydrated[id]; ok {
		return &Selection{Summary: full.Summary(), Full: full}
	}

	for _, item := range c.items {
		if item.ID == id {
			return &Selection{Summary: item}
		}
	}

	return nil
}

// hydrate fetches the full projection in the background. It runs detached
// from the selecting call so a slow fetch never blocks the UI; superseded
// fetches are discarded by the identity check, not cancelled.
func (c *FeedCache) hydrate(id string) {
	article, err := c.getWithRetry(context.Background(), id)
	if err != nil {
		// The summary projection stays visible; viewing is not blocked.
		if c.logger != nil {
			c.logger.Warn("Article hydration failed", map[string]interface{}{
				"id":    id,
				"error": err.Error(),
			})
		}
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selectedID != article.ID {
		return
	}

	c.hydrated[article.ID] = article
	for i := range c.items {
		if c.items[i].ID == article.ID {
			c.items[i] = article.Summary()
			break
		}
	}
}

// listWithRetry runs a list query with the read retry policy
func (c *FeedCache) listWithRetry(ctx context.Context, req query.ListRequest) (*domain.FeedPage, error) {
	var page *domain.FeedPage
	err := c.withRetry(ctx, func() error {
		var err error
		page, err = c.reader.List(ctx, req)
		return err
	})
	return page, err
}

// getWithRetry runs a single-article fetch with the read retry policy
func (c *FeedCache) getWithRetry(ctx context.Context, id string) (*domain.Article, error) {
	var article *domain.Article
	err := c.withRetry(ctx, func() error {
		var err error
		article, err = c.reader.Get(ctx, id)
		return err
	})
	return article, err
}

// withRetry retries fn with doubling backoff, but only on transient errors;
// NotFound and InvalidRequest are reported to the caller immediately.
func (c *FeedCache) withRetry(ctx context.Context, fn func() error) error {
	wait := readRetryBaseWait

	var err error
	for attempt := 0; attempt < readRetryAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}

		if !coreerrors.IsTransient(err) {
			return err
		}

		if attempt == readRetryAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}

	return err
}
