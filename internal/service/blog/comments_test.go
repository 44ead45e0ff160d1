package blog

import (
	"context"
	"errors"
	"testing"

	"nalevel/internal/domain"
	models "nalevel/internal/domain/models/blog"
	blogSvc "nalevel/internal/domain/services/blog"
)

func TestAddComment(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	post := mustAddPost(t, store, &blogSvc.CreatePostRequest{Title: "Commented"})

	comment, err := store.AddComment(ctx, post.ID, models.CommentAuthor{ID: "u-1", Name: "Reader"},
		&blogSvc.CreateCommentRequest{Content: "<b>Great</b> scene <script>alert(1)</script>"})
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	if comment.Status != models.CommentPending {
		t.Errorf("status = %q, want pending", comment.Status)
	}
	if comment.Likes != 0 {
		t.Errorf("likes = %d, want 0", comment.Likes)
	}
	if comment.Content != "Great scene" {
		t.Errorf("content = %q, want markup stripped", comment.Content)
	}

	reply, err := store.AddComment(ctx, post.ID, models.CommentAuthor{}, &blogSvc.CreateCommentRequest{
		Content:  "Agreed",
		ParentID: comment.ID,
	})
	if err != nil {
		t.Fatalf("AddComment reply failed: %v", err)
	}
	if reply.Author.ID != "unknown" || reply.Author.Name != "Unknown" {
		t.Errorf("reply author = %+v, want defaults", reply.Author)
	}
}

func TestAddComment_Errors(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	post := mustAddPost(t, store, &blogSvc.CreatePostRequest{Title: "Target"})
	author := models.CommentAuthor{ID: "u-1", Name: "Reader"}

	tests := []struct {
		name    string
		postID  string
		req     *blogSvc.CreateCommentRequest
		wantErr error
	}{
		{"unknown post", "missing", &blogSvc.CreateCommentRequest{Content: "hello"}, domain.ErrNotFound},
		{"empty content", post.ID, &blogSvc.CreateCommentRequest{Content: "  "}, domain.ErrValidation},
		{"markup only", post.ID, &blogSvc.CreateCommentRequest{Content: "<img src=x>"}, domain.ErrValidation},
		{"unknown parent", post.ID, &blogSvc.CreateCommentRequest{Content: "hello", ParentID: "nope"}, domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.AddComment(ctx, tt.postID, author, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateComment_RecordsEditHistory(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	post := mustAddPost(t, store, &blogSvc.CreatePostRequest{Title: "Edits"})

	comment, err := store.AddComment(ctx, post.ID, models.CommentAuthor{ID: "u-1", Name: "Reader"},
		&blogSvc.CreateCommentRequest{Content: "first draft"})
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	updated, err := store.UpdateComment(ctx, comment.ID, &blogSvc.UpdateCommentRequest{Content: strPtr("second draft")})
	if err != nil {
		t.Fatalf("UpdateComment failed: %v", err)
	}
	updated, err = store.UpdateComment(ctx, comment.ID, &blogSvc.UpdateCommentRequest{Content: strPtr("final")})
	if err != nil {
		t.Fatalf("UpdateComment failed: %v", err)
	}

	if updated.Content != "final" {
		t.Errorf("content = %q, want final", updated.Content)
	}
	if len(updated.EditHistory) != 2 {
		t.Fatalf("edit history has %d entries, want 2", len(updated.EditHistory))
	}
	if updated.EditHistory[0].PriorContent != "first draft" || updated.EditHistory[1].PriorContent != "second draft" {
		t.Errorf("edit history = %+v", updated.EditHistory)
	}
	if !updated.EditHistory[1].EditedAt.After(updated.EditHistory[0].EditedAt) {
		t.Error("expected edit timestamps to increase")
	}

	// Moderation without content leaves the history alone
	approved := models.CommentApproved
	updated, err = store.UpdateComment(ctx, comment.ID, &blogSvc.UpdateCommentRequest{Status: &approved, Likes: intPtr(4)})
	if err != nil {
		t.Fatalf("UpdateComment moderation failed: %v", err)
	}
	if updated.Status != models.CommentApproved || updated.Likes != 4 {
		t.Errorf("comment = %+v, want approved with 4 likes", updated)
	}
	if len(updated.EditHistory) != 2 {
		t.Errorf("edit history grew to %d on moderation", len(updated.EditHistory))
	}

	if _, err := store.UpdateComment(ctx, comment.ID, &blogSvc.UpdateCommentRequest{Likes: intPtr(-1)}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected negative likes to be rejected, got %v", err)
	}
	if _, err := store.UpdateComment(ctx, "missing", &blogSvc.UpdateCommentRequest{Content: strPtr("x")}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestDeleteComment_IsSoft(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	post := mustAddPost(t, store, &blogSvc.CreatePostRequest{Title: "Soft"})
	author := models.CommentAuthor{ID: "u-1", Name: "Reader"}

	gone, _ := store.AddComment(ctx, post.ID, author, &blogSvc.CreateCommentRequest{Content: "remove me"})
	store.AddComment(ctx, post.ID, author, &blogSvc.CreateCommentRequest{Content: "keep me"})

	if err := store.DeleteComment(ctx, gone.ID); err != nil {
		t.Fatalf("DeleteComment failed: %v", err)
	}

	visible, err := store.GetPostComments(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetPostComments failed: %v", err)
	}
	if len(visible) != 1 || visible[0].Content != "keep me" {
		t.Errorf("visible comments = %+v, want only the kept one", visible)
	}

	cs := store.(*contentStore)
	cs.read(func(state *models.State) {
		c := state.FindComment(gone.ID)
		if c == nil {
			t.Fatal("soft-deleted comment was physically removed")
		}
		if c.Status != models.CommentDeleted {
			t.Errorf("status = %q, want deleted", c.Status)
		}
	})

	if err := store.DeleteComment(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
