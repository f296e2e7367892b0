// ABOUTME: Request DTOs for the updates resource
// ABOUTME: Provides decoding shapes for upsert and explicit update bodies

package requests

import "legacy-updates-api/core/domain"

// UpsertArticleRequest is the POST body: a full article object.
// Every submitted field overwrites the stored value.
type UpsertArticleRequest struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Subtitle       string         `json:"subtitle"`
	Description    string         `json:"description"`
	ImageURL       string         `json:"imageUrl"`
	SecondaryImage string         `json:"secondaryImage"`
	Tag            string         `json:"tag"`
	Date           string         `json:"date"`
	Version        string         `json:"version"`
	IsFeatured     bool           `json:"isFeatured"`
	FullContent    string         `json:"fullContent"`
	RawBlocks      []domain.Block `json:"rawBlocks"`
}

// ToDomain converts the request body to a domain article
func (r *UpsertArticleRequest) ToDomain() *domain.Article {
	return &domain.Article{
		ID:             r.ID,
		Title:          r.Title,
		Subtitle:       r.Subtitle,
		Description:    r.Description,
		ImageURL:       r.ImageURL,
		SecondaryImage: r.SecondaryImage,
		Tag:            domain.Tag(r.Tag),
		Date:           r.Date,
		Version:        r.Version,
		IsFeatured:     r.IsFeatured,
		FullContent:    r.FullContent,
		RawBlocks:      r.RawBlocks,
	}
}

// UpdateArticleRequest is the PUT body: an id plus the fields to change.
// Absent fields leave stored values untouched.
type UpdateArticleRequest struct {
	ID             string          `json:"id"`
	Title          *string         `json:"title"`
	Subtitle       *string         `json:"subtitle"`
	Description    *string         `json:"description"`
	ImageURL       *string         `json:"imageUrl"`
	SecondaryImage *string         `json:"secondaryImage"`
	Tag            *string         `json:"tag"`
	Date           *string         `json:"date"`
	Version        *string         `json:"version"`
	IsFeatured     *bool           `json:"isFeatured"`
	FullContent    *string         `json:"fullContent"`
	RawBlocks      *[]domain.Block `json:"rawBlocks"`
}

// ToPatch converts the request body to a domain patch
func (r *UpdateArticleRequest) ToPatch() domain.ArticlePatch {
	patch := domain.ArticlePatch{
		Title:          r.Title,
		Subtitle:       r.Subtitle,
		Description:    r.Description,
		ImageURL:       r.ImageURL,
		SecondaryImage: r.SecondaryImage,
		Date:           r.Date,
		Version:        r.Version,
		IsFeatured:     r.IsFeatured,
		FullContent:    r.FullContent,
		RawBlocks:      r.RawBlocks,
	}
	if r.Tag != nil {
		tag := domain.Tag(*r.Tag)
		patch.Tag = &tag
	}
	return patch
}
