package handler

import (
	"net/http"

	"nalevel/internal/domain/models/blog"
	blogSvc "nalevel/internal/domain/services/blog"
	"nalevel/internal/httputil"
)

// ListComments returns the visible comments of a post
// GET /api/posts/{id}/comments
func (h *BlogHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, ok := PathParam(w, r, "id", "Post ID")
	if !ok {
		return
	}

	comments, err := h.store.GetPostComments(r.Context(), postID)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, comments)
}

// CreateComment adds a pending comment authored by the session user
// POST /api/posts/{id}/comments
func (h *BlogHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	postID, ok := PathParam(w, r, "id", "Post ID")
	if !ok {
		return
	}

	var req blogSvc.CreateCommentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var author blog.CommentAuthor
	if user := httputil.GetUser(r); user != nil {
		author = blog.CommentAuthor{ID: user.ID, Name: user.Name, Avatar: user.AvatarURL}
	}

	comment, err := h.store.AddComment(r.Context(), postID, author, &req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, comment)
}

// UpdateComment edits, moderates or likes a comment
// PATCH /api/comments/{id}
func (h *BlogHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Comment ID")
	if !ok {
		return
	}

	var req blogSvc.UpdateCommentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	comment, err := h.store.UpdateComment(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, comment)
}

// DeleteComment soft-deletes a comment
// DELETE /api/comments/{id}
func (h *BlogHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Comment ID")
	if !ok {
		return
	}

	if err := h.store.DeleteComment(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
