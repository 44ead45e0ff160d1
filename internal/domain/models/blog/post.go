package blog

import (
	"time"
)

// PostStatus is the publication state of a post
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusScheduled PostStatus = "scheduled"
	PostStatusArchived  PostStatus = "archived"
)

// Visibility controls who can read a post
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
	VisibilityTeam    Visibility = "team"
)

// SectionType tags the payload of a content section
type SectionType string

const (
	SectionText    SectionType = "text"
	SectionHeading SectionType = "heading"
	SectionHTML    SectionType = "html"
	SectionImage   SectionType = "image"
	SectionVideo   SectionType = "video"
	SectionEmbed   SectionType = "embed"
	SectionQuote   SectionType = "quote"
	SectionCode    SectionType = "code"
)

// ContentSection is one block of a post body.
// Content holds text for text-like sections and a URL for media sections.
type ContentSection struct {
	ID       string         `json:"id"`
	Type     SectionType    `json:"type"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Author is the denormalized author subset stored on a post
type Author struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// FeaturedImage describes the hero image of a post
type FeaturedImage struct {
	URL     string `json:"url"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// PostMetadata is derived from content on every content change
type PostMetadata struct {
	WordCount    int            `json:"wordCount"`
	ReadingTime  int            `json:"readingTime"` // minutes
	Revision     int            `json:"revision"`
	LastEditedBy string         `json:"lastEditedBy,omitempty"`
	CustomFields map[string]any `json:"customFields,omitempty"`
}

type Post struct {
	ID            string           `json:"id"`
	ProjectID     string           `json:"projectId"`
	Title         string           `json:"title"`
	Slug          string           `json:"slug"`
	Excerpt       string           `json:"excerpt"`
	Content       []ContentSection `json:"content"`
	Status        PostStatus       `json:"status"`
	Visibility    Visibility       `json:"visibility"`
	Categories    []string         `json:"categories"`
	Tags          []string         `json:"tags"`
	Author        Author           `json:"author"`
	CoAuthors     []Author         `json:"coAuthors,omitempty"`
	FeaturedImage *FeaturedImage   `json:"featuredImage,omitempty"`
	PublishedAt   *time.Time       `json:"publishedAt,omitempty"`
	ScheduledFor  *time.Time       `json:"scheduledFor,omitempty"`
	Metadata      PostMetadata     `json:"metadata"`
	Analytics     *PostAnalytics   `json:"analytics,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// HasCategory reports whether the post is filed under categoryID
func (p *Post) HasCategory(categoryID string) bool {
	return containsID(p.Categories, categoryID)
}

// HasTag reports whether the post carries tagID
func (p *Post) HasTag(tagID string) bool {
	return containsID(p.Tags, tagID)
}

// Clone returns a deep copy that shares no mutable state with p
func (p *Post) Clone() Post {
	c := *p
	c.Content = make([]ContentSection, len(p.Content))
	for i, section := range p.Content {
		section.Metadata = cloneMap(section.Metadata)
		c.Content[i] = section
	}
	c.Categories = append([]string(nil), p.Categories...)
	c.Tags = append([]string(nil), p.Tags...)
	if p.CoAuthors != nil {
		c.CoAuthors = append([]Author(nil), p.CoAuthors...)
	}
	if p.FeaturedImage != nil {
		img := *p.FeaturedImage
		c.FeaturedImage = &img
	}
	c.PublishedAt = cloneTime(p.PublishedAt)
	c.ScheduledFor = cloneTime(p.ScheduledFor)
	c.Metadata.CustomFields = cloneMap(p.Metadata.CustomFields)
	if p.Analytics != nil {
		a := p.Analytics.Clone()
		c.Analytics = &a
	}
	return c
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// cloneMap copies the top level of a JSON-like map; nested values are
// treated as immutable once stored.
func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
