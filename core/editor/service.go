// ABOUTME: Write service for the article editor
// ABOUTME: Provides create-or-update, explicit update, and dual-key delete

package editor

import (
	"context"

	"github.com/google/uuid"

	"legacy-updates-api/core/domain"
	coreerrors "legacy-updates-api/core/errors"
	"legacy-updates-api/core/interfaces"
	"legacy-updates-api/core/query"
)

// EditorService accepts writes from the authenticated editor
type EditorService struct {
	deps interfaces.Dependencies
}

// NewEditorService creates a new editor service instance
func NewEditorService(deps interfaces.Dependencies) *EditorService {
	return &EditorService{
		deps: deps,
	}
}

// Upsert creates or updates an article. The submitted id decides between
// insert and in-place update; articles submitted without one get a
// server-assigned id. Every submitted field overwrites the stored value.
// Returns the stored record and whether it was created.
func (s *EditorService) Upsert(ctx context.Context, article *domain.Article) (*domain.Article, bool, error) {
	if article == nil {
		return nil, false, &coreerrors.InvalidRequestError{
			Field:   "body",
			Message: "article body is required",
		}
	}

	if err := validateTag(article.Tag); err != nil {
		return nil, false, err
	}

	if article.ID == "" {
		article.ID = uuid.New().String()
	}

	stored, created, err := s.deps.Storage.Upsert(ctx, article.ID, domain.PatchFrom(article))
	if err != nil {
		return nil, false, err
	}

	s.invalidateArticle(ctx, stored.ID)

	return stored, created, nil
}

// Update applies a partial update to an existing article. Unlike Upsert it
// fails with NotFound instead of inserting when the id is unknown, so
// editors can distinguish edit-of-existing from accidental create.
func (s *EditorService) Update(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, error) {
	if id == "" {
		return nil, &coreerrors.InvalidRequestError{
			Field:   "id",
			Message: "id cannot be empty",
		}
	}

	if patch.Tag != nil {
		if err := validateTag(*patch.Tag); err != nil {
			return nil, err
		}
	}

	stored, err := s.deps.Storage.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.invalidateArticle(ctx, id)

	return stored, nil
}

// Delete removes an article by application id, falling back to the surrogate
// key for records that predate application ids. Returns the removed count.
func (s *EditorService) Delete(ctx context.Context, id string) (int64, error) {
	if id == "" {
		return 0, &coreerrors.InvalidRequestError{
			Field:   "id",
			Message: "id cannot be empty",
		}
	}

	deleted, err := s.deps.Storage.DeleteByEitherKey(ctx, id)
	if err != nil {
		return 0, err
	}

	// More than one removal means upstream uniqueness was violated; surface
	// it rather than silently accepting.
	if deleted > 1 && s.deps.Logger != nil {
		s.deps.Logger.Warn("Delete removed multiple records for one key", map[string]interface{}{
			"id":      id,
			"deleted": deleted,
		})
	}

	if deleted > 0 {
		s.invalidateArticle(ctx, id)
	}

	return deleted, nil
}

// validateTag rejects tags outside the fixed enumeration
func validateTag(tag domain.Tag) error {
	if !domain.ValidTag(tag) {
		return &coreerrors.InvalidRequestError{
			Field:   "tag",
			Message: "tag must be one of SYSTEM, ECONOMY, VEHICLES, MAP, JOBS, EVENT",
		}
	}
	return nil
}

// invalidateArticle drops the cached single-article projection after a write
func (s *EditorService) invalidateArticle(ctx context.Context, id string) {
	if s.deps.Cache == nil {
		return
	}

	if err := s.deps.Cache.Delete(ctx, query.ArticleCacheKey(id)); err != nil && s.deps.Logger != nil {
		s.deps.Logger.Warn("Failed to invalidate article cache", map[string]interface{}{
			"id":    id,
			"error": err.Error(),
		})
	}
}
