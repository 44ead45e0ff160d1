package handler

import (
	"log/slog"
	"net/http"

	"nalevel/internal/domain/models/account"
	"nalevel/internal/domain/models/blog"
	blogSvc "nalevel/internal/domain/services/blog"
	"nalevel/internal/httputil"
)

// BlogHandler exposes the content store: posts, taxonomy and comments
type BlogHandler struct {
	store  blogSvc.ContentStore
	logger *slog.Logger
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(store blogSvc.ContentStore, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{
		store:  store,
		logger: logger,
	}
}

// authorFromUser maps the session user onto a post byline
func authorFromUser(user *account.User) blog.Author {
	if user == nil {
		return blog.Author{}
	}
	return blog.Author{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Avatar: user.AvatarURL,
	}
}

// CreatePost creates a post authored by the session user.
// An author in the body is ignored.
// POST /api/posts
func (h *BlogHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req blogSvc.CreatePostRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Author = authorFromUser(httputil.GetUser(r))

	post, err := h.store.AddPost(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("post created via api",
		"post_id", post.ID,
		"user_id", httputil.GetUserID(r),
	)
	httputil.RespondJSON(w, http.StatusCreated, post)
}

// GetPost retrieves a post by ID
// GET /api/posts/{id}
func (h *BlogHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Post ID")
	if !ok {
		return
	}

	post, err := h.store.GetPost(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, post)
}

// GetPostBySlug retrieves a post by slug
// GET /api/posts?slug=
func (h *BlogHandler) GetPostBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")
	if slug == "" {
		httputil.RespondError(w, http.StatusBadRequest, "slug query parameter is required")
		return
	}

	post, err := h.store.GetPostBySlug(r.Context(), slug)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, post)
}

// UpdatePost merges the supplied fields over a post
// PATCH /api/posts/{id}
func (h *BlogHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Post ID")
	if !ok {
		return
	}

	var req blogSvc.UpdatePostRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	// The byline belongs to whoever created the post
	req.Author = nil
	req.EditedBy = httputil.GetUserID(r)

	post, err := h.store.UpdatePost(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, post)
}

// DeletePost removes a post and its comments
// DELETE /api/posts/{id}
func (h *BlogHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Post ID")
	if !ok {
		return
	}

	if err := h.store.DeletePost(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListProjectPosts lists a project's posts, optionally filtered by status
// GET /api/projects/{id}/posts?status=
func (h *BlogHandler) ListProjectPosts(w http.ResponseWriter, r *http.Request) {
	projectID, ok := PathParam(w, r, "id", "Project ID")
	if !ok {
		return
	}
	status := blog.PostStatus(r.URL.Query().Get("status"))

	posts, err := h.store.GetProjectPosts(r.Context(), projectID, status)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, posts)
}

// SearchPosts runs a full-text search over all posts
// GET /api/posts/search?q=
func (h *BlogHandler) SearchPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.SearchPosts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, posts)
}

// RecordView increments a post's view counter
// POST /api/posts/{id}/views
func (h *BlogHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Post ID")
	if !ok {
		return
	}

	analytics, err := h.store.IncrementPostViews(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, analytics)
}

// UpdateAnalytics merges reported metrics into a post's analytics
// PATCH /api/posts/{id}/analytics
func (h *BlogHandler) UpdateAnalytics(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Post ID")
	if !ok {
		return
	}

	var req blog.AnalyticsUpdate
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	analytics, err := h.store.UpdatePostAnalytics(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, analytics)
}

// ExportPost renders a post as Markdown with frontmatter
// GET /api/posts/{id}/export
func (h *BlogHandler) ExportPost(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Post ID")
	if !ok {
		return
	}

	doc, err := h.store.ExportMarkdown(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondText(w, http.StatusOK, "text/markdown; charset=utf-8", doc)
}
