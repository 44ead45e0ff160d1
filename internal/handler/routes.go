package handler

import (
	"net/http"
)

// RegisterRoutes wires every endpoint onto mux (Go 1.22+ enhanced patterns).
// requireSession guards blog mutations and comment writes.
func RegisterRoutes(
	mux *http.ServeMux,
	authHandler *AuthHandler,
	blogHandler *BlogHandler,
	requireSession func(http.HandlerFunc) http.HandlerFunc,
) {
	// Health check
	mux.HandleFunc("GET /health", HealthCheck)

	// Auth routes
	mux.HandleFunc("POST /api/auth/signup", authHandler.SignUp)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/session", authHandler.ValidateSession)
	mux.HandleFunc("GET /api/auth/me", authHandler.CurrentUser)
	mux.HandleFunc("POST /api/auth/password-reset", authHandler.RequestPasswordReset)
	mux.HandleFunc("POST /api/auth/password-reset/validate", authHandler.ValidateResetToken)
	mux.HandleFunc("POST /api/auth/password-reset/confirm", authHandler.ResetPassword)
	mux.HandleFunc("POST /api/auth/verify-email", authHandler.SendVerificationEmail)
	mux.HandleFunc("POST /api/auth/verify-email/confirm", authHandler.VerifyEmail)

	// Post routes
	mux.HandleFunc("GET /api/projects/{id}/posts", blogHandler.ListProjectPosts)
	mux.HandleFunc("POST /api/posts", requireSession(blogHandler.CreatePost))
	mux.HandleFunc("GET /api/posts/search", blogHandler.SearchPosts) // Must come before {id} route
	mux.HandleFunc("GET /api/posts", blogHandler.GetPostBySlug)
	mux.HandleFunc("GET /api/posts/{id}", blogHandler.GetPost)
	mux.HandleFunc("PATCH /api/posts/{id}", requireSession(blogHandler.UpdatePost))
	mux.HandleFunc("DELETE /api/posts/{id}", requireSession(blogHandler.DeletePost))
	mux.HandleFunc("GET /api/posts/{id}/export", blogHandler.ExportPost)

	// Analytics routes
	mux.HandleFunc("POST /api/posts/{id}/views", blogHandler.RecordView)
	mux.HandleFunc("PATCH /api/posts/{id}/analytics", requireSession(blogHandler.UpdateAnalytics))

	// Comment routes
	mux.HandleFunc("GET /api/posts/{id}/comments", blogHandler.ListComments)
	mux.HandleFunc("POST /api/posts/{id}/comments", requireSession(blogHandler.CreateComment))
	mux.HandleFunc("PATCH /api/comments/{id}", requireSession(blogHandler.UpdateComment))
	mux.HandleFunc("DELETE /api/comments/{id}", requireSession(blogHandler.DeleteComment))

	// Category routes
	mux.HandleFunc("GET /api/categories", blogHandler.ListCategories)
	mux.HandleFunc("POST /api/categories", requireSession(blogHandler.CreateCategory))
	mux.HandleFunc("PATCH /api/categories/{id}", requireSession(blogHandler.UpdateCategory))
	mux.HandleFunc("DELETE /api/categories/{id}", requireSession(blogHandler.DeleteCategory))
	mux.HandleFunc("GET /api/categories/{id}/posts", blogHandler.ListCategoryPosts)

	// Tag routes
	mux.HandleFunc("GET /api/tags", blogHandler.ListTags)
	mux.HandleFunc("POST /api/tags", requireSession(blogHandler.CreateTag))
	mux.HandleFunc("PATCH /api/tags/{id}", requireSession(blogHandler.UpdateTag))
	mux.HandleFunc("DELETE /api/tags/{id}", requireSession(blogHandler.DeleteTag))
	mux.HandleFunc("GET /api/tags/{id}/posts", blogHandler.ListTagPosts)
}
