package blog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"nalevel/internal/domain"
	models "nalevel/internal/domain/models/blog"
	blogSvc "nalevel/internal/domain/services/blog"
)

func TestAddPost(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	post, err := store.AddPost(ctx, &blogSvc.CreatePostRequest{
		ProjectID: "project-1",
		Title:     "Hello, World!",
		Excerpt:   "first post",
		Content: []models.ContentSection{
			textSection(strings.Repeat("word ", 450)),
			{Type: models.SectionHeading, Content: "Not counted at all"},
		},
		Author: models.Author{ID: "user-1", Name: "Ada"},
	})
	if err != nil {
		t.Fatalf("AddPost failed: %v", err)
	}

	if post.Slug != "hello-world" {
		t.Errorf("slug = %q, want %q", post.Slug, "hello-world")
	}
	if post.Metadata.Revision != 1 {
		t.Errorf("revision = %d, want 1", post.Metadata.Revision)
	}
	if post.Metadata.WordCount != 450 {
		t.Errorf("word count = %d, want 450", post.Metadata.WordCount)
	}
	if post.Metadata.ReadingTime != 3 {
		t.Errorf("reading time = %d, want 3", post.Metadata.ReadingTime)
	}
	if post.Status != models.PostStatusDraft {
		t.Errorf("status = %q, want draft", post.Status)
	}
	if post.Visibility != models.VisibilityPublic {
		t.Errorf("visibility = %q, want public", post.Visibility)
	}
	if post.ID == "" {
		t.Error("expected id to be assigned")
	}
	for i, section := range post.Content {
		if section.ID == "" {
			t.Errorf("section %d has no id", i)
		}
	}
	if !post.CreatedAt.Equal(post.UpdatedAt) {
		t.Errorf("createdAt %v != updatedAt %v", post.CreatedAt, post.UpdatedAt)
	}
}

func TestAddPost_PublishedSetsPublishedAt(t *testing.T) {
	store, _ := newTestStore(t)

	post := mustAddPost(t, store, &blogSvc.CreatePostRequest{
		Title:  "Live now",
		Status: models.PostStatusPublished,
	})
	if post.PublishedAt == nil {
		t.Fatal("expected publishedAt to be set for a published post")
	}
}

func TestAddPost_Validation(t *testing.T) {
	tests := []struct {
		name      string
		req       *blogSvc.CreatePostRequest
		wantField string
	}{
		{
			name:      "missing title",
			req:       &blogSvc.CreatePostRequest{ProjectID: "p", Title: "   "},
			wantField: "title",
		},
		{
			name:      "missing project",
			req:       &blogSvc.CreatePostRequest{Title: "No project"},
			wantField: "projectId",
		},
		{
			name:      "unknown status",
			req:       &blogSvc.CreatePostRequest{ProjectID: "p", Title: "Bad status", Status: "hidden"},
			wantField: "status",
		},
		{
			name:      "unknown visibility",
			req:       &blogSvc.CreatePostRequest{ProjectID: "p", Title: "Bad visibility", Visibility: "everyone"},
			wantField: "visibility",
		},
		{
			name: "unknown section type",
			req: &blogSvc.CreatePostRequest{
				ProjectID: "p",
				Title:     "Bad section",
				Content:   []models.ContentSection{textSection("ok"), {Type: "widget"}},
			},
			wantField: "content.1.type",
		},
		{
			name:      "title without slug characters",
			req:       &blogSvc.CreatePostRequest{ProjectID: "p", Title: "!!!"},
			wantField: "slug",
		},
		{
			name:      "title too long",
			req:       &blogSvc.CreatePostRequest{ProjectID: "p", Title: strings.Repeat("a", 201)},
			wantField: "title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := newTestStore(t)

			_, err := store.AddPost(context.Background(), tt.req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			fields := validationFields(t, err)
			if _, ok := fields[tt.wantField]; !ok {
				t.Errorf("fields = %v, want entry for %q", fields, tt.wantField)
			}
		})
	}
}

func TestAddPost_DuplicateSlug(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	mustAddPost(t, store, &blogSvc.CreatePostRequest{Title: "Same Title"})

	_, err := store.AddPost(ctx, &blogSvc.CreatePostRequest{ProjectID: "project-1", Title: "Same title!"})
	var dup *domain.DuplicateSlugError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateSlugError, got %v", err)
	}
	if dup.Slug != "same-title" {
		t.Errorf("duplicate slug = %q, want %q", dup.Slug, "same-title")
	}

	// An explicit slug avoids the clash
	post, err := store.AddPost(ctx, &blogSvc.CreatePostRequest{ProjectID: "project-1", Title: "Same title!", Slug: "Same Title 2"})
	if err != nil {
		t.Fatalf("AddPost with explicit slug failed: %v", err)
	}
	if post.Slug != "same-title-2" {
		t.Errorf("slug = %q, want %q", post.Slug, "same-title-2")
	}
}

func TestUpdatePost_Revision(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	post := mustAddPost(t, store, &blogSvc.CreatePostRequest{
		Title:   "Revisions",
		Content: []models.ContentSection{textSection("one two")},
	})

	// Title only: revision unchanged
	updated, err := store.UpdatePost(ctx, post.ID, &blogSvc.UpdatePostRequest{Title: strPtr("Revisions Renamed")})
	if err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}
	if updated.Metadata.Revision != 1 {
		t.Errorf("revision after title update = %d, want 1", updated.Metadata.Revision)
	}
	if updated.Slug != "revisions" {
		t.Errorf("slug changed on title update: %q", updated.Slug)
	}
	if !updated.UpdatedAt.After(post.UpdatedAt) {
		t.Error("expected updatedAt to advance")
	}

	// Content: revision +1 and metadata recomputed
	content := []models.ContentSection{textSection("one two three four")}
	updated, err = store.UpdatePost(ctx, post.ID, &blogSvc.UpdatePostRequest{Content: &content, EditedBy: "user-2"})
	if err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}
	if updated.Metadata.Revision != 2 {
		t.Errorf("revision after content update = %d, want 2", updated.Metadata.Revision)
	}
	if updated.Metadata.WordCount != 4 {
		t.Errorf("word count = %d, want 4", updated.Metadata.WordCount)
	}
	if updated.Metadata.ReadingTime != 1 {
		t.Errorf("reading time = %d, want 1", updated.Metadata.ReadingTime)
	}
	if updated.Metadata.LastEditedBy != "user-2" {
		t.Errorf("lastEditedBy = %q, want user-2", updated.Metadata.LastEditedBy)
	}

	updated, err = store.UpdatePost(ctx, post.ID, &blogSvc.UpdatePostRequest{Content: &content})
	if err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}
	if updated.Metadata.Revision != 3 {
		t.Errorf("revision after second content update = %d, want 3", updated.Metadata.Revision)
	}
}

func TestUpdatePost_NotFound(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.UpdatePost(context.Background(), "missing", &blogSvc.UpdatePostRequest{Title: strPtr("x")})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdatePost_SlugStaysUnique(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	first := mustAddPost(t, store, &blogSvc.CreatePostRequest{Title: "First"})
	second := mustAddPost(t, store, &blogSvc.CreatePostRequest{Title: "Second"})

	_, err := store.UpdatePost(ctx, second.ID, &blogSvc.UpdatePostRequest{Slug: strPtr("first")})
	if !errors.Is(err, domain.ErrDuplicateSlug) {
		t.Fatalf("expected duplicate slug, got %v", err)
	}

	// Re-saving a post's own slug is allowed
	if _, err := store.UpdatePost(ctx, first.ID, &blogSvc.UpdatePostRequest{Slug: strPtr("first")}); err != nil {
		t.Fatalf("UpdatePost with own slug failed: %v", err)
	}

	posts, _ := store.GetProjectPosts(ctx, "project-1", "")
	seen := map[string]bool{}
	for _, p := range posts {
		if seen[p.Slug] {
			t.Errorf("slug %q used twice", p.Slug)
		}
		seen[p.Slug] = true
	}
}

func TestUpdatePost_NormalizesAuthors(t *testing.T) {
	store, _ := newTestStore(t)
	post := mustAddPost(t, store, &blogSvc.CreatePostRequest{Title: "Authors"})

	coAuthors := []models.Author{{Name: "Grace"}, {ID: "u-3"}}
	updated, err := store.UpdatePost(context.Background(), post.ID, &blogSvc.UpdatePostRequest{
		Author:    &models.Author{Email: "a@example.com"},
		CoAuthors: &coAuthors,
	})
	if err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}

	if updated.Author.ID != "unknown" || updated.Author.Name != "Unknown" {
		t.Errorf("author = %+v, want unknown/Unknown defaults", updated.Author)
	}
	if updated.Author.Email != "a@example.com" {
		t.Errorf("author email = %q, want kept", updated.Author.Email)
	}
	if updated.CoAuthors[0].ID != "unknown" || updated.CoAuthors[0].Name != "Grace" {
		t.Errorf("co-author 0 = %+v", updated.CoAuthors[0])
	}
	if updated.CoAuthors[1].ID != "u-3" || updated.CoAuthors[1].Name != "Unknown" {
		t.Errorf("co-author 1 = %+v", updated.CoAuthors[1])
	}
	if updated.Metadata.Revision != 1 {
		t.Errorf("revision = %d, want 1 for an author-only update", updated.Metadata.Revision)
	}
}

func TestDeletePost_CascadesCommentsAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	doomed := mustAddPost(t, store, &blogSvc.CreatePostRequest{Title: "Doomed"})
	kept := mustAddPost(t, store, &blogSvc.CreatePostRequest{Title: "Kept"})

	author := models.CommentAuthor{ID: "u-1", Name: "Reader"}
	for _, postID := range []string{doomed.ID, doomed.ID, kept.ID} {
		if _, err := store.AddComment(ctx, postID, author, &blogSvc.CreateCommentRequest{Content: "Nice read"}); err != nil {
			t.Fatalf("AddComment failed: %v", err)
		}
	}

	if err := store.DeletePost(ctx, doomed.ID); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if err := store.DeletePost(ctx, doomed.ID); err != nil {
		t.Fatalf("second DeletePost should be a no-op, got %v", err)
	}

	if _, err := store.GetPost(ctx, doomed.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected deleted post to be gone, got %v", err)
	}
	if _, err := store.GetPostComments(ctx, doomed.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected comments lookup on deleted post to fail, got %v", err)
	}

	comments, err := store.GetPostComments(ctx, kept.ID)
	if err != nil {
		t.Fatalf("GetPostComments failed: %v", err)
	}
	if len(comments) != 1 {
		t.Errorf("kept post has %d comments, want 1", len(comments))
	}

	cs := store.(*contentStore)
	cs.read(func(state *models.State) {
		for _, c := range state.Comments {
			if c.PostID == doomed.ID {
				t.Errorf("comment %s of deleted post still stored", c.ID)
			}
		}
	})
}

func TestGetPostBySlug(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	post := mustAddPost(t, store, &blogSvc.CreatePostRequest{Title: "Find Me"})

	got, err := store.GetPostBySlug(ctx, "find-me")
	if err != nil {
		t.Fatalf("GetPostBySlug failed: %v", err)
	}
	if got.ID != post.ID {
		t.Errorf("id = %q, want %q", got.ID, post.ID)
	}

	if _, err := store.GetPostBySlug(ctx, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestGetProjectPosts(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	mustAddPost(t, store, &blogSvc.CreatePostRequest{ProjectID: "a", Title: "Draft A"})
	mustAddPost(t, store, &blogSvc.CreatePostRequest{ProjectID: "a", Title: "Live A", Status: models.PostStatusPublished})
	mustAddPost(t, store, &blogSvc.CreatePostRequest{ProjectID: "b", Title: "Live B", Status: models.PostStatusPublished})

	tests := []struct {
		name      string
		projectID string
		status    models.PostStatus
		want      int
	}{
		{"all statuses", "a", "", 2},
		{"published only", "a", models.PostStatusPublished, 1},
		{"drafts of b", "b", models.PostStatusDraft, 0},
		{"unknown project", "c", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := store.GetProjectPosts(ctx, tt.projectID, tt.status)
			if err != nil {
				t.Fatalf("GetProjectPosts failed: %v", err)
			}
			if len(posts) != tt.want {
				t.Errorf("got %d posts, want %d", len(posts), tt.want)
			}
		})
	}
}
