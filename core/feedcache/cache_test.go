package feedcache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"legacy-updates-api/core/domain"
	coreerrors "legacy-updates-api/core/errors"
	"legacy-updates-api/core/query"
)

// fakeReader is a func-field fake of the FeedReader interface
type fakeReader struct {
	listFunc func(ctx context.Context, req query.ListRequest) (*domain.FeedPage, error)
	getFunc  func(ctx context.Context, id string) (*domain.Article, error)
}

func (f *fakeReader) List(ctx context.Context, req query.ListRequest) (*domain.FeedPage, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx, req)
	}
	return &domain.FeedPage{Data: []domain.ArticleSummary{}}, nil
}

func (f *fakeReader) Get(ctx context.Context, id string) (*domain.Article, error) {
	if f.getFunc != nil {
		return f.getFunc(ctx, id)
	}
	return nil, &coreerrors.NotFoundError{Resource: "article", ID: id}
}

func summaries(ids ...string) []domain.ArticleSummary {
	out := make([]domain.ArticleSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.ArticleSummary{ID: id, Title: "Title " + id})
	}
	return out
}

func feedPage(hasMore bool, ids ...string) *domain.FeedPage {
	return &domain.FeedPage{
		Data:       summaries(ids...),
		Pagination: domain.Pagination{HasMore: hasMore},
	}
}

// waitFor polls cond until it holds or the deadline passes
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestLoadInitial_ReplacesList(t *testing.T) {
	var gotReq query.ListRequest
	reader := &fakeReader{
		listFunc: func(ctx context.Context, req query.ListRequest) (*domain.FeedPage, error) {
			gotReq = req
			return feedPage(true, "a3", "a2", "a1"), nil
		},
	}
	cache := NewFeedCache(reader, nil)

	if err := cache.LoadInitial(context.Background()); err != nil {
		t.Fatalf("LoadInitial returned error: %v", err)
	}

	if gotReq.Page != 1 || gotReq.Limit != query.FirstPageLimit {
		t.Errorf("request = %+v, want page 1 limit %d", gotReq, query.FirstPageLimit)
	}
	if items := cache.Items(); len(items) != 3 || items[0].ID != "a3" {
		t.Errorf("items = %v, want a3,a2,a1", items)
	}
	if !cache.HasMore() {
		t.Error("HasMore = false, want true")
	}
}

func TestLoadInitial_FailureDegradesToEmpty(t *testing.T) {
	calls := 0
	reader := &fakeReader{
		listFunc: func(ctx context.Context, req query.ListRequest) (*domain.FeedPage, error) {
			calls++
			if calls == 1 {
				return feedPage(true, "a1"), nil
			}
			return nil, errors.New("boom")
		},
	}
	cache := NewFeedCache(reader, nil)

	if err := cache.LoadInitial(context.Background()); err != nil {
		t.Fatalf("first LoadInitial returned error: %v", err)
	}
	if err := cache.LoadInitial(context.Background()); err == nil {
		t.Fatal("second LoadInitial should fail")
	}

	if items := cache.Items(); len(items) != 0 {
		t.Errorf("items = %v, a failed refresh must not leave stale entries", items)
	}
	if cache.HasMore() {
		t.Error("HasMore = true after failed refresh, want false")
	}
}

func TestLoadMore_AppendsNextPage(t *testing.T) {
	reader := &fakeReader{
		listFunc: func(ctx context.Context, req query.ListRequest) (*domain.FeedPage, error) {
			if req.Page == 1 {
				return feedPage(true, "a10", "a9"), nil
			}
			if req.Limit != query.NextPageLimit {
				t.Errorf("load-more limit = %d, want %d", req.Limit, query.NextPageLimit)
			}
			return feedPage(false, "a8"), nil
		},
	}
	cache := NewFeedCache(reader, nil)

	if err := cache.LoadInitial(context.Background()); err != nil {
		t.Fatalf("LoadInitial returned error: %v", err)
	}
	if err := cache.LoadMore(context.Background()); err != nil {
		t.Fatalf("LoadMore returned error: %v", err)
	}

	items := cache.Items()
	if len(items) != 3 || items[2].ID != "a8" {
		t.Errorf("items = %v, want a10,a9,a8", items)
	}
	if cache.Page() != 2 {
		t.Errorf("Page = %d, want 2", cache.Page())
	}
	if cache.HasMore() {
		t.Error("HasMore = true, want false after the final page")
	}
}

func TestLoadMore_PagesAreDisjoint(t *testing.T) {
	// Reader backed by ten records paged with the service's skip math; the
	// asymmetric limits (9 then 6) must never re-serve a record.
	all := summaries("a10", "a9", "a8", "a7", "a6", "a5", "a4", "a3", "a2", "a1")
	reader := &fakeReader{
		listFunc: func(ctx context.Context, req query.ListRequest) (*domain.FeedPage, error) {
			skip := query.Skip(req.Page, req.Limit)
			data := []domain.ArticleSummary{}
			if skip < len(all) {
				data = all[skip:]
				if req.Limit < len(data) {
					data = data[:req.Limit]
				}
			}
			return &domain.FeedPage{
				Data:       data,
				Pagination: query.Paginate(len(all), req.Page, req.Limit, len(data)),
			}, nil
		},
	}
	cache := NewFeedCache(reader, nil)

	if err := cache.LoadInitial(context.Background()); err != nil {
		t.Fatalf("LoadInitial returned error: %v", err)
	}
	if err := cache.LoadMore(context.Background()); err != nil {
		t.Fatalf("LoadMore returned error: %v", err)
	}

	items := cache.Items()
	if len(items) != 10 {
		t.Fatalf("items has %d entries after LoadMore, want 10", len(items))
	}
	seen := make(map[string]int, len(items))
	for _, item := range items {
		seen[item.ID]++
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("feed entry %s appears %d times, want 1", id, n)
		}
	}
	if items[9].ID != "a1" {
		t.Errorf("items[9].ID = %q, want a1", items[9].ID)
	}
	if cache.HasMore() {
		t.Error("HasMore = true after the final page, want false")
	}
}

func TestLoadMore_NoopWhenExhausted(t *testing.T) {
	listCalls := 0
	reader := &fakeReader{
		listFunc: func(ctx context.Context, req query.ListRequest) (*domain.FeedPage, error) {
			listCalls++
			return feedPage(false, "a1"), nil
		},
	}
	cache := NewFeedCache(reader, nil)

	if err := cache.LoadInitial(context.Background()); err != nil {
		t.Fatalf("LoadInitial returned error: %v", err)
	}
	if err := cache.LoadMore(context.Background()); err != nil {
		t.Fatalf("LoadMore returned error: %v", err)
	}

	if listCalls != 1 {
		t.Errorf("reader called %d times, want 1; exhausted feeds must not refetch", listCalls)
	}
}

func TestLoadMore_SingleFlight(t *testing.T) {
	block := make(chan struct{})
	started := make(chan struct{})
	var listCalls int
	var mu sync.Mutex

	reader := &fakeReader{
		listFunc: func(ctx context.Context, req query.ListRequest) (*domain.FeedPage, error) {
			if req.Page == 1 {
				return feedPage(true, "a10"), nil
			}
			mu.Lock()
			listCalls++
			mu.Unlock()
			close(started)
			<-block
			return feedPage(false, "a9"), nil
		},
	}
	cache := NewFeedCache(reader, nil)

	if err := cache.LoadInitial(context.Background()); err != nil {
		t.Fatalf("LoadInitial returned error: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- cache.LoadMore(context.Background()) }()
	<-started

	// Second trigger while the first is in flight must be a silent no-op.
	if err := cache.LoadMore(context.Background()); err != nil {
		t.Fatalf("concurrent LoadMore returned error: %v", err)
	}

	close(block)
	if err := <-done; err != nil {
		t.Fatalf("LoadMore returned error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if listCalls != 1 {
		t.Errorf("next page fetched %d times, want 1", listCalls)
	}
}

func TestLoadMore_FailureLeavesListIntact(t *testing.T) {
	failNext := true
	reader := &fakeReader{
		listFunc: func(ctx context.Context, req query.ListRequest) (*domain.FeedPage, error) {
			if req.Page == 1 {
				return feedPage(true, "a10", "a9"), nil
			}
			if failNext {
				return nil, errors.New("boom")
			}
			return feedPage(false, "a8"), nil
		},
	}
	cache := NewFeedCache(reader, nil)

	if err := cache.LoadInitial(context.Background()); err != nil {
		t.Fatalf("LoadInitial returned error: %v", err)
	}
	if err := cache.LoadMore(context.Background()); err == nil {
		t.Fatal("LoadMore should fail")
	}

	if items := cache.Items(); len(items) != 2 {
		t.Errorf("items = %v, a failed load-more must not disturb the list", items)
	}
	if cache.Page() != 1 {
		t.Errorf("Page = %d, want 1 after failed load-more", cache.Page())
	}

	// The guard must clear so the user can retry.
	failNext = false
	if err := cache.LoadMore(context.Background()); err != nil {
		t.Fatalf("retried LoadMore returned error: %v", err)
	}
	if items := cache.Items(); len(items) != 3 {
		t.Errorf("items = %v, want 3 after successful retry", items)
	}
}

func TestSelect_ReturnsSummaryImmediatelyThenHydrates(t *testing.T) {
	reader := &fakeReader{
		listFunc: func(ctx context.Context, req query.ListRequest) (*domain.FeedPage, error) {
			return feedPage(false, "a1"), nil
		},
		getFunc: func(ctx context.Context, id string) (*domain.Article, error) {
			return &domain.Article{ID: id, Title: "Title " + id, FullContent: "<p>body</p>"}, nil
		},
	}
	cache := NewFeedCache(reader, nil)

	if err := cache.LoadInitial(context.Background()); err != nil {
		t.Fatalf("LoadInitial returned error: %v", err)
	}

	sel := cache.Select(context.Background(), "a1")
	if sel == nil {
		t.Fatal("Select returned nil for a listed article")
	}
	if sel.Summary.ID != "a1" {
		t.Errorf("Summary.ID = %q, want a1", sel.Summary.ID)
	}

	waitFor(t, func() bool {
		s := cache.Selected()
		return s != nil && s.Full != nil
	}, "selection never hydrated")

	if full := cache.Selected().Full; full.FullContent != "<p>body</p>" {
		t.Errorf("FullContent = %q after hydration", full.FullContent)
	}
}

func TestSelect_UnknownIDReturnsNil(t *testing.T) {
	cache := NewFeedCache(&fakeReader{}, nil)

	if sel := cache.Select(context.Background(), "ghost"); sel != nil {
		t.Errorf("Select of unlisted id = %+v, want nil", sel)
	}
}

func TestSelect_UnknownIDKeepsPriorSelection(t *testing.T) {
	reader := &fakeReader{
		listFunc: func(ctx context.Context, req query.ListRequest) (*domain.FeedPage, error) {
			return feedPage(false, "a1"), nil
		},
		getFunc: func(ctx context.Context, id string) (*domain.Article, error) {
			return &domain.Article{ID: id, FullContent: "body"}, nil
		},
	}
	cache := NewFeedCache(reader, nil)

	if err := cache.LoadInitial(context.Background()); err != nil {
		t.Fatalf("LoadInitial returned error: %v", err)
	}
	if sel := cache.Select(context.Background(), "a1"); sel == nil {
		t.Fatal("Select returned nil for a listed article")
	}

	if sel := cache.Select(context.Background(), "ghost"); sel != nil {
		t.Fatalf("Select of unlisted id = %+v, want nil", sel)
	}

	sel := cache.Selected()
	if sel == nil || sel.Summary.ID != "a1" {
		t.Errorf("Selected = %+v, a failed selection must not clear the current one", sel)
	}
}

func TestSelect_StaleHydrationDiscarded(t *testing.T) {
	releaseA1 := make(chan struct{})
	a1Started := make(chan struct{})
	a1Done := make(chan struct{})

	reader := &fakeReader{
		listFunc: func(ctx context.Context, req query.ListRequest) (*domain.FeedPage, error) {
			return feedPage(false, "a1", "a2"), nil
		},
		getFunc: func(ctx context.Context, id string) (*domain.Article, error) {
			if id == "a1" {
				close(a1Started)
				<-releaseA1
				defer close(a1Done)
			}
			return &domain.Article{ID: id, Title: "Title " + id, FullContent: "body " + id}, nil
		},
	}
	cache := NewFeedCache(reader, nil)

	if err := cache.LoadInitial(context.Background()); err != nil {
		t.Fatalf("LoadInitial returned error: %v", err)
	}

	cache.Select(context.Background(), "a1")
	<-a1Started
	cache.Select(context.Background(), "a2")

	waitFor(t, func() bool {
		s := cache.Selected()
		return s != nil && s.Full != nil && s.Full.ID == "a2"
	}, "newer selection never hydrated")

	// Let the stale fetch complete; it must not change the selection.
	close(releaseA1)
	<-a1Done
	time.Sleep(50 * time.Millisecond)

	cache.mu.Lock()
	_, kept := cache.hydrated["a1"]
	cache.mu.Unlock()
	if kept {
		t.Error("stale hydration result was applied")
	}

	if s := cache.Selected(); s == nil || s.Full == nil || s.Full.ID != "a2" {
		t.Errorf("Selected = %+v, want the full projection of a2", s)
	}
}

func TestWithRetry_RetriesOnlyTransient(t *testing.T) {
	cache := NewFeedCache(&fakeReader{}, nil)

	transientCalls := 0
	err := cache.withRetry(context.Background(), func() error {
		transientCalls++
		if transientCalls < 3 {
			return &coreerrors.TransientError{Op: "find", Message: "unreachable"}
		}
		return nil
	})
	if err != nil {
		t.Errorf("withRetry returned %v after recovery, want nil", err)
	}
	if transientCalls != 3 {
		t.Errorf("transient op ran %d times, want 3", transientCalls)
	}

	notFoundCalls := 0
	err = cache.withRetry(context.Background(), func() error {
		notFoundCalls++
		return &coreerrors.NotFoundError{Resource: "article", ID: "a1"}
	})
	if !coreerrors.IsNotFound(err) {
		t.Errorf("withRetry returned %v, want NotFoundError", err)
	}
	if notFoundCalls != 1 {
		t.Errorf("not-found op ran %d times, want 1; only transient failures retry", notFoundCalls)
	}
}

func TestWithRetry_GivesUpAfterAttempts(t *testing.T) {
	cache := NewFeedCache(&fakeReader{}, nil)

	calls := 0
	err := cache.withRetry(context.Background(), func() error {
		calls++
		return &coreerrors.TransientError{Op: "find", Message: "still down"}
	})
	if !coreerrors.IsTransient(err) {
		t.Errorf("withRetry returned %v, want the last transient error", err)
	}
	if calls != readRetryAttempts {
		t.Errorf("op ran %d times, want %d", calls, readRetryAttempts)
	}
}
