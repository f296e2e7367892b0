// ABOUTME: Mappers converting domain entities to response DTOs
// ABOUTME: Keeps the wire shapes decoupled from the core types

package mappers

import (
	"legacy-updates-api/api/dto/responses"
	"legacy-updates-api/core/domain"
)

// ToSummaryResponse converts a summary projection to its response DTO
func ToSummaryResponse(s domain.ArticleSummary) responses.ArticleSummaryResponse {
	return responses.ArticleSummaryResponse{
		Key:            s.Seq,
		ID:             s.ID,
		Title:          s.Title,
		Subtitle:       s.Subtitle,
		Description:    s.Description,
		ImageURL:       s.ImageURL,
		SecondaryImage: s.SecondaryImage,
		Tag:            string(s.Tag),
		Date:           s.Date,
		Version:        s.Version,
		IsFeatured:     s.IsFeatured,
	}
}

// ToArticleResponse converts a full article to its response DTO
func ToArticleResponse(a *domain.Article) *responses.ArticleResponse {
	if a == nil {
		return nil
	}

	return &responses.ArticleResponse{
		ArticleSummaryResponse: ToSummaryResponse(a.Summary()),
		FullContent:            a.FullContent,
		RawBlocks:              a.RawBlocks,
	}
}

// ToFeedPageResponse converts a feed page to its response DTO
func ToFeedPageResponse(page *domain.FeedPage) *responses.FeedPageResponse {
	data := make([]responses.ArticleSummaryResponse, 0, len(page.Data))
	for _, s := range page.Data {
		data = append(data, ToSummaryResponse(s))
	}

	return &responses.FeedPageResponse{
		Data: data,
		Pagination: responses.PaginationResponse{
			Total:   page.Pagination.Total,
			Page:    page.Pagination.Page,
			Pages:   page.Pagination.Pages,
			HasMore: page.Pagination.HasMore,
		},
	}
}
