// ABOUTME: Response DTOs for the updates resource
// ABOUTME: Provides the feed page, full article, delete, and error shapes

package responses

import "legacy-updates-api/core/domain"

// ArticleSummaryResponse is a feed list entry, excluding body content
type ArticleSummaryResponse struct {
	Key            int64  `json:"_key,omitempty"`
	ID             string `json:"id"`
	Title          string `json:"title"`
	Subtitle       string `json:"subtitle,omitempty"`
	Description    string `json:"description"`
	ImageURL       string `json:"imageUrl"`
	SecondaryImage string `json:"secondaryImage,omitempty"`
	Tag            string `json:"tag"`
	Date           string `json:"date"`
	Version        string `json:"version,omitempty"`
	IsFeatured     bool   `json:"isFeatured,omitempty"`
}

// ArticleResponse is the full projection of an article
type ArticleResponse struct {
	ArticleSummaryResponse
	FullContent string         `json:"fullContent,omitempty"`
	RawBlocks   []domain.Block `json:"rawBlocks,omitempty"`
}

// PaginationResponse is the metadata returned alongside a feed page
type PaginationResponse struct {
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	Pages   int  `json:"pages"`
	HasMore bool `json:"hasMore"`
}

// FeedPageResponse is one page of the update feed
type FeedPageResponse struct {
	Data       []ArticleSummaryResponse `json:"data"`
	Pagination PaginationResponse       `json:"pagination"`
}

// DeleteResponse reports the outcome of a delete
type DeleteResponse struct {
	Success      bool  `json:"success"`
	DeletedCount int64 `json:"deletedCount"`
}

// ErrorResponse is the generic error body
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries a human-readable status message
type MessageResponse struct {
	Message string `json:"message"`
}
