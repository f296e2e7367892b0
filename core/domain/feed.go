// ABOUTME: Feed query domain types
// ABOUTME: Defines list filters, pagination metadata, and the feed page shape

package domain

// Filter selects articles for list queries
type Filter struct {
	// TitleSearch is a case-insensitive substring matched against title.
	// Empty means no filtering.
	TitleSearch string
}

// Pagination is the metadata returned alongside a feed page
type Pagination struct {
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	Pages   int  `json:"pages"`
	HasMore bool `json:"hasMore"`
}

// FeedPage is one page of the update feed
type FeedPage struct {
	Data       []ArticleSummary `json:"data"`
	Pagination Pagination       `json:"pagination"`
}
