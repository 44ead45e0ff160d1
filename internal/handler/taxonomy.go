package handler

import (
	"net/http"

	blogSvc "nalevel/internal/domain/services/blog"
	"nalevel/internal/httputil"
)

// ListCategories returns every category
// GET /api/categories
func (h *BlogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.ListCategories(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, categories)
}

// CreateCategory creates a category
// POST /api/categories
func (h *BlogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req blogSvc.CreateCategoryRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.store.AddCategory(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, category)
}

// UpdateCategory updates a category
// PATCH /api/categories/{id}
func (h *BlogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Category ID")
	if !ok {
		return
	}

	var req blogSvc.UpdateCategoryRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.store.UpdateCategory(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, category)
}

// DeleteCategory deletes a category and detaches it from posts
// DELETE /api/categories/{id}
func (h *BlogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Category ID")
	if !ok {
		return
	}

	if err := h.store.DeleteCategory(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCategoryPosts returns the published posts of a category
// GET /api/categories/{id}/posts
func (h *BlogHandler) ListCategoryPosts(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Category ID")
	if !ok {
		return
	}

	posts, err := h.store.GetPostsByCategory(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, posts)
}

// ListTags returns every tag
// GET /api/tags
func (h *BlogHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.store.ListTags(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, tags)
}

// CreateTag creates a tag
// POST /api/tags
func (h *BlogHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req blogSvc.CreateTagRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tag, err := h.store.AddTag(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, tag)
}

// UpdateTag updates a tag
// PATCH /api/tags/{id}
func (h *BlogHandler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Tag ID")
	if !ok {
		return
	}

	var req blogSvc.UpdateTagRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tag, err := h.store.UpdateTag(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, tag)
}

// DeleteTag deletes a tag and detaches it from posts
// DELETE /api/tags/{id}
func (h *BlogHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Tag ID")
	if !ok {
		return
	}

	if err := h.store.DeleteTag(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTagPosts returns the published posts carrying a tag
// GET /api/tags/{id}/posts
func (h *BlogHandler) ListTagPosts(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Tag ID")
	if !ok {
		return
	}

	posts, err := h.store.GetPostsByTag(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, posts)
}
