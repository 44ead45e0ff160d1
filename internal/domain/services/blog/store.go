package blog

import (
	"context"
	"time"

	"nalevel/internal/domain/models/blog"
)

// ContentStore is the authoritative collection of posts, categories, tags
// and comments. Every mutation either fully commits (memory and storage)
// or leaves the state untouched.
type ContentStore interface {
	// AddPost validates the request, derives the slug from the title when
	// absent and fails with DuplicateSlugError when the slug is taken
	AddPost(ctx context.Context, req *CreatePostRequest) (*blog.Post, error)

	// UpdatePost merges the supplied fields over the stored post.
	// Supplying content bumps the revision and recomputes word count.
	UpdatePost(ctx context.Context, id string, req *UpdatePostRequest) (*blog.Post, error)

	// DeletePost removes the post and its comments; deleting an absent id is a no-op
	DeletePost(ctx context.Context, id string) error

	GetPost(ctx context.Context, id string) (*blog.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*blog.Post, error)

	// GetProjectPosts filters by owning project; an empty status matches every status
	GetProjectPosts(ctx context.Context, projectID string, status blog.PostStatus) ([]blog.Post, error)

	// GetPostsByCategory and GetPostsByTag return published posts only
	GetPostsByCategory(ctx context.Context, categoryID string) ([]blog.Post, error)
	GetPostsByTag(ctx context.Context, tagID string) ([]blog.Post, error)

	// SearchPosts returns posts containing every whitespace-separated term
	// of query in title, excerpt or content (case-insensitive)
	SearchPosts(ctx context.Context, query string) ([]blog.Post, error)

	IncrementPostViews(ctx context.Context, postID string) (*blog.PostAnalytics, error)
	UpdatePostAnalytics(ctx context.Context, postID string, update *blog.AnalyticsUpdate) (*blog.PostAnalytics, error)

	AddCategory(ctx context.Context, req *CreateCategoryRequest) (*blog.Category, error)
	UpdateCategory(ctx context.Context, id string, req *UpdateCategoryRequest) (*blog.Category, error)
	// DeleteCategory also strips the id from every post
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]blog.Category, error)

	AddTag(ctx context.Context, req *CreateTagRequest) (*blog.Tag, error)
	UpdateTag(ctx context.Context, id string, req *UpdateTagRequest) (*blog.Tag, error)
	DeleteTag(ctx context.Context, id string) error
	ListTags(ctx context.Context) ([]blog.Tag, error)

	// AddComment creates a pending comment on an existing post
	AddComment(ctx context.Context, postID string, author blog.CommentAuthor, req *CreateCommentRequest) (*blog.Comment, error)
	// UpdateComment records the prior content in the edit history before overwriting it
	UpdateComment(ctx context.Context, id string, req *UpdateCommentRequest) (*blog.Comment, error)
	// DeleteComment marks the comment deleted; comments are never physically removed
	DeleteComment(ctx context.Context, id string) error
	// GetPostComments lists the comments of a post, oldest first, excluding deleted ones
	GetPostComments(ctx context.Context, postID string) ([]blog.Comment, error)

	// ExportMarkdown renders a post as Markdown with YAML frontmatter
	ExportMarkdown(ctx context.Context, postID string) (string, error)
	// ImportMarkdown creates a post from a document in the ExportMarkdown format
	ImportMarkdown(ctx context.Context, projectID string, author blog.Author, document []byte) (*blog.Post, error)
}

// CreatePostRequest is the input of AddPost
type CreatePostRequest struct {
	ProjectID     string                `json:"projectId"`
	Title         string                `json:"title"`
	Slug          string                `json:"slug,omitempty"` // derived from title when empty
	Excerpt       string                `json:"excerpt"`
	Content       []blog.ContentSection `json:"content"`
	Status        blog.PostStatus       `json:"status,omitempty"`     // default draft
	Visibility    blog.Visibility       `json:"visibility,omitempty"` // default public
	Categories    []string              `json:"categories,omitempty"`
	Tags          []string              `json:"tags,omitempty"`
	Author        blog.Author           `json:"author"`
	CoAuthors     []blog.Author         `json:"coAuthors,omitempty"`
	FeaturedImage *blog.FeaturedImage   `json:"featuredImage,omitempty"`
	PublishedAt   *time.Time            `json:"publishedAt,omitempty"`
	ScheduledFor  *time.Time            `json:"scheduledFor,omitempty"`
	CustomFields  map[string]any        `json:"customFields,omitempty"`
}

// UpdatePostRequest carries the fields to change; nil fields are kept
type UpdatePostRequest struct {
	Title         *string                `json:"title,omitempty"`
	Slug          *string                `json:"slug,omitempty"`
	Excerpt       *string                `json:"excerpt,omitempty"`
	Content       *[]blog.ContentSection `json:"content,omitempty"`
	Status        *blog.PostStatus       `json:"status,omitempty"`
	Visibility    *blog.Visibility       `json:"visibility,omitempty"`
	Categories    *[]string              `json:"categories,omitempty"`
	Tags          *[]string              `json:"tags,omitempty"`
	Author        *blog.Author           `json:"author,omitempty"`
	CoAuthors     *[]blog.Author         `json:"coAuthors,omitempty"`
	FeaturedImage *blog.FeaturedImage    `json:"featuredImage,omitempty"`
	PublishedAt   *time.Time             `json:"publishedAt,omitempty"`
	ScheduledFor  *time.Time             `json:"scheduledFor,omitempty"`
	CustomFields  map[string]any         `json:"customFields,omitempty"`
	EditedBy      string                 `json:"-"` // set by handler from the session
}

// CreateCategoryRequest is the input of AddCategory
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	ParentID    string `json:"parentId,omitempty"`
	Color       string `json:"color,omitempty"`
	CoverImage  string `json:"coverImage,omitempty"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	ParentID    *string `json:"parentId,omitempty"`
	Color       *string `json:"color,omitempty"`
	CoverImage  *string `json:"coverImage,omitempty"`
}

// CreateTagRequest is the input of AddTag
type CreateTagRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

type UpdateTagRequest struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// CreateCommentRequest is the input of AddComment
type CreateCommentRequest struct {
	Content  string `json:"content"`
	ParentID string `json:"parentId,omitempty"`
}

// UpdateCommentRequest carries moderation and edit changes
type UpdateCommentRequest struct {
	Content *string             `json:"content,omitempty"`
	Status  *blog.CommentStatus `json:"status,omitempty"`
	Likes   *int                `json:"likes,omitempty"`
}
