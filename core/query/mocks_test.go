package query

import (
	"context"
	"time"

	"legacy-updates-api/core/domain"
)

// mockStorage is a mock implementation of the ArticleStorage interface
type mockStorage struct {
	findFunc    func(ctx context.Context, filter domain.Filter, skip, limit int) ([]domain.ArticleSummary, error)
	countFunc   func(ctx context.Context, filter domain.Filter) (int, error)
	findOneFunc func(ctx context.Context, id string) (*domain.Article, error)
	upsertFunc  func(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, bool, error)
	updateFunc  func(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, error)
	deleteFunc  func(ctx context.Context, key string) (int64, error)
}

func (m *mockStorage) Find(ctx context.Context, filter domain.Filter, skip, limit int) ([]domain.ArticleSummary, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, filter, skip, limit)
	}
	return nil, nil
}

func (m *mockStorage) Count(ctx context.Context, filter domain.Filter) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, filter)
	}
	return 0, nil
}

func (m *mockStorage) FindOne(ctx context.Context, id string) (*domain.Article, error) {
	if m.findOneFunc != nil {
		return m.findOneFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockStorage) Upsert(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, bool, error) {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, id, patch)
	}
	return nil, false, nil
}

func (m *mockStorage) Update(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, patch)
	}
	return nil, nil
}

func (m *mockStorage) DeleteByEitherKey(ctx context.Context, key string) (int64, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, key)
	}
	return 0, nil
}

// mockCache is a mock implementation of the Cache interface
type mockCache struct {
	getFunc    func(ctx context.Context, key string) ([]byte, error)
	setFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	deleteFunc func(ctx context.Context, key string) error
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, key)
	}
	return nil, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFunc != nil {
		return m.setFunc(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, key)
	}
	return nil
}
