// ABOUTME: Storage interfaces for persisting domain entities
// ABOUTME: Defines the contract for article persistence operations

package interfaces

import (
	"context"

	"legacy-updates-api/core/domain"
)

// ArticleStorage defines the interface for article persistence.
//
// Records carry two lookup keys: the application-level id and a store-assigned
// surrogate key. Records created before application ids existed are only
// addressable by the surrogate key, which is why deletes fall back to it.
// Every operation is single-record-atomic; no transaction spans records.
type ArticleStorage interface {
	// Find returns summary projections matching the filter, sorted
	// newest-first by insertion order, with skip/limit applied.
	Find(ctx context.Context, filter domain.Filter, skip, limit int) ([]domain.ArticleSummary, error)

	// Count returns the number of articles matching the filter.
	Count(ctx context.Context, filter domain.Filter) (int, error)

	// FindOne returns the full projection for the given application id.
	// Returns a NotFoundError if no record matches.
	FindOne(ctx context.Context, id string) (*domain.Article, error)

	// Upsert merges the patch into the record with the given id, creating it
	// if absent. Nil patch fields leave stored values untouched. Returns the
	// stored record and whether it was created.
	Upsert(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, bool, error)

	// Update merges the patch into an existing record. Returns a
	// NotFoundError when no record matches; it never creates one, even when
	// racing a concurrent delete.
	Update(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, error)

	// DeleteByEitherKey deletes by application id; if nothing matched and the
	// key is syntactically a valid surrogate key, it retries by surrogate key.
	// Returns the number of records actually removed.
	DeleteByEitherKey(ctx context.Context, key string) (int64, error)
}
