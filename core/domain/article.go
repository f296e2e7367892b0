// ABOUTME: Article domain entity for the community update feed
// ABOUTME: Defines the full record, the summary projection, and partial updates

package domain

// Tag is the fixed category assigned to an article
type Tag string

// The fixed tag enumeration shown on article cards
const (
	TagSystem   Tag = "SYSTEM"
	TagEconomy  Tag = "ECONOMY"
	TagVehicles Tag = "VEHICLES"
	TagMap      Tag = "MAP"
	TagJobs     Tag = "JOBS"
	TagEvent    Tag = "EVENT"
)

// ValidTag reports whether t is part of the fixed enumeration
func ValidTag(t Tag) bool {
	switch t {
	case TagSystem, TagEconomy, TagVehicles, TagMap, TagJobs, TagEvent:
		return true
	}
	return false
}

// BlockType identifies the kind of a structured content block
type BlockType string

// Supported content block kinds
const (
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockImage     BlockType = "image"
)

// Block is one ordered element of an article's structured body
type Block struct {
	Type BlockType `json:"type"`
	Text string    `json:"text,omitempty"`
	URL  string    `json:"url,omitempty"`
	// Color carries per-block style attributes such as heading color
	Color string `json:"color,omitempty"`
}

// Article is the full projection of an update record.
// Seq is the store-assigned surrogate key; records created before application
// ids existed are only addressable through it. It also provides the
// newest-first ordering (the display date is free text and not sortable).
type Article struct {
	Seq            int64   `json:"_key,omitempty"`
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Subtitle       string  `json:"subtitle,omitempty"`
	Description    string  `json:"description"`
	ImageURL       string  `json:"imageUrl"`
	SecondaryImage string  `json:"secondaryImage,omitempty"`
	Tag            Tag     `json:"tag"`
	Date           string  `json:"date"`
	Version        string  `json:"version,omitempty"`
	IsFeatured     bool    `json:"isFeatured,omitempty"`
	FullContent    string  `json:"fullContent,omitempty"`
	RawBlocks      []Block `json:"rawBlocks,omitempty"`
}

// Summary returns the summary projection of the article.
// It never carries body content; clients must fetch the full projection
// before assuming fullContent or rawBlocks are present.
func (a *Article) Summary() ArticleSummary {
	return ArticleSummary{
		Seq:            a.Seq,
		ID:             a.ID,
		Title:          a.Title,
		Subtitle:       a.Subtitle,
		Description:    a.Description,
		ImageURL:       a.ImageURL,
		SecondaryImage: a.SecondaryImage,
		Tag:            a.Tag,
		Date:           a.Date,
		Version:        a.Version,
		IsFeatured:     a.IsFeatured,
	}
}

// HasBody reports whether the article carries any body content
func (a *Article) HasBody() bool {
	return a.FullContent != "" || len(a.RawBlocks) > 0
}

// ArticleSummary is the list projection of an article, excluding the heavy
// body fields so feed pages stay small.
type ArticleSummary struct {
	Seq            int64  `json:"_key,omitempty"`
	ID             string `json:"id"`
	Title          string `json:"title"`
	Subtitle       string `json:"subtitle,omitempty"`
	Description    string `json:"description"`
	ImageURL       string `json:"imageUrl"`
	SecondaryImage string `json:"secondaryImage,omitempty"`
	Tag            Tag    `json:"tag"`
	Date           string `json:"date"`
	Version        string `json:"version,omitempty"`
	IsFeatured     bool   `json:"isFeatured,omitempty"`
}

// ArticlePatch is a partial update. Nil fields are left untouched by the
// store; RawBlocks replaces the stored sequence wholesale, never merged
// element-wise.
type ArticlePatch struct {
	Title          *string
	Subtitle       *string
	Description    *string
	ImageURL       *string
	SecondaryImage *string
	Tag            *Tag
	Date           *string
	Version        *string
	IsFeatured     *bool
	FullContent    *string
	RawBlocks      *[]Block
}

// PatchFrom builds a patch that overwrites every field with the article's
// current values. POST upsert is a destructive merge of the submitted object,
// so every submitted field replaces the stored one.
func PatchFrom(a *Article) ArticlePatch {
	blocks := a.RawBlocks
	return ArticlePatch{
		Title:          &a.Title,
		Subtitle:       &a.Subtitle,
		Description:    &a.Description,
		ImageURL:       &a.ImageURL,
		SecondaryImage: &a.SecondaryImage,
		Tag:            &a.Tag,
		Date:           &a.Date,
		Version:        &a.Version,
		IsFeatured:     &a.IsFeatured,
		FullContent:    &a.FullContent,
		RawBlocks:      &blocks,
	}
}

// Apply merges the patch into the article in place
func (p ArticlePatch) Apply(a *Article) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Subtitle != nil {
		a.Subtitle = *p.Subtitle
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.ImageURL != nil {
		a.ImageURL = *p.ImageURL
	}
	if p.SecondaryImage != nil {
		a.SecondaryImage = *p.SecondaryImage
	}
	if p.Tag != nil {
		a.Tag = *p.Tag
	}
	if p.Date != nil {
		a.Date = *p.Date
	}
	if p.Version != nil {
		a.Version = *p.Version
	}
	if p.IsFeatured != nil {
		a.IsFeatured = *p.IsFeatured
	}
	if p.FullContent != nil {
		a.FullContent = *p.FullContent
	}
	if p.RawBlocks != nil {
		a.RawBlocks = *p.RawBlocks
	}
}
