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

func TestExportMarkdown(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	category, _ := store.AddCategory(ctx, &blogSvc.CreateCategoryRequest{Name: "Production Notes"})
	post := mustAddPost(t, store, &blogSvc.CreatePostRequest{
		Title:      "Export Me",
		Excerpt:    "A short summary",
		Status:     models.PostStatusPublished,
		Categories: []string{category.ID},
		Author:     models.Author{ID: "u-1", Name: "Ada"},
		Content: []models.ContentSection{
			{Type: models.SectionHeading, Content: "Heading One", Metadata: map[string]any{"level": float64(1)}},
			textSection("Plain paragraph"),
			{Type: models.SectionHTML, Content: "<p>Hello <strong>world</strong></p><script>alert(1)</script>"},
			{Type: models.SectionImage, Content: "https://cdn.example.com/still.jpg", Metadata: map[string]any{"alt": "Set still"}},
			{Type: models.SectionCode, Content: "fmt.Println(1)", Metadata: map[string]any{"language": "go"}},
			{Type: models.SectionQuote, Content: "line one\nline two"},
		},
	})

	doc, err := store.ExportMarkdown(ctx, post.ID)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}

	wantContains := []string{
		"---\ntitle: Export Me\n",
		"slug: export-me\n",
		"status: published\n",
		"- production-notes\n",
		"author: Ada\n",
		"# Heading One",
		"Plain paragraph",
		"Hello **world**",
		"![Set still](https://cdn.example.com/still.jpg)",
		"```go\nfmt.Println(1)\n```",
		"> line one\n> line two",
	}
	for _, want := range wantContains {
		if !strings.Contains(doc, want) {
			t.Errorf("export missing %q\n%s", want, doc)
		}
	}
	if strings.Contains(doc, "alert") {
		t.Errorf("export kept script content:\n%s", doc)
	}

	if _, err := store.ExportMarkdown(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestImportMarkdown_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	category, _ := store.AddCategory(ctx, &blogSvc.CreateCategoryRequest{Name: "Casting"})
	original := mustAddPost(t, store, &blogSvc.CreatePostRequest{
		Title:      "Casting Call",
		Excerpt:    "Open roles",
		Status:     models.PostStatusPublished,
		Visibility: models.VisibilityTeam,
		Categories: []string{category.ID},
		Content:    []models.ContentSection{textSection("We are looking for extras")},
	})

	doc, err := store.ExportMarkdown(ctx, original.ID)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	if err := store.DeletePost(ctx, original.ID); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}

	imported, err := store.ImportMarkdown(ctx, "project-2", models.Author{ID: "u-9"}, []byte(doc))
	if err != nil {
		t.Fatalf("ImportMarkdown failed: %v", err)
	}

	if imported.Title != original.Title || imported.Slug != original.Slug || imported.Excerpt != original.Excerpt {
		t.Errorf("imported = %q/%q/%q, want %q/%q/%q",
			imported.Title, imported.Slug, imported.Excerpt, original.Title, original.Slug, original.Excerpt)
	}
	if imported.Status != models.PostStatusPublished || imported.Visibility != models.VisibilityTeam {
		t.Errorf("status/visibility = %s/%s", imported.Status, imported.Visibility)
	}
	if imported.ProjectID != "project-2" {
		t.Errorf("project = %q, want project-2", imported.ProjectID)
	}
	if len(imported.Categories) != 1 || imported.Categories[0] != category.ID {
		t.Errorf("categories = %v, want existing category %s", imported.Categories, category.ID)
	}
	if imported.Metadata.WordCount != 5 {
		t.Errorf("word count = %d, want 5", imported.Metadata.WordCount)
	}
	if imported.PublishedAt == nil || !imported.PublishedAt.Equal(*original.PublishedAt) {
		t.Errorf("publishedAt = %v, want %v", imported.PublishedAt, original.PublishedAt)
	}
}

func TestImportMarkdown_CreatesMissingTaxonomy(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	doc := "---\ntitle: Fresh Import\ncategories: [premieres]\ntags: [red-carpet]\n---\n\nBody text here\n"
	post, err := store.ImportMarkdown(ctx, "project-1", models.Author{ID: "u-1", Name: "Ada"}, []byte(doc))
	if err != nil {
		t.Fatalf("ImportMarkdown failed: %v", err)
	}

	categories, _ := store.ListCategories(ctx)
	tags, _ := store.ListTags(ctx)
	if len(categories) != 1 || categories[0].Slug != "premieres" {
		t.Errorf("categories = %+v, want premieres", categories)
	}
	if len(tags) != 1 || tags[0].Slug != "red-carpet" {
		t.Errorf("tags = %+v, want red-carpet", tags)
	}
	if len(post.Categories) != 1 || len(post.Tags) != 1 {
		t.Errorf("post taxonomy = %v / %v", post.Categories, post.Tags)
	}
	if post.Status != models.PostStatusDraft {
		t.Errorf("status = %q, want draft default", post.Status)
	}

	if _, err := store.ImportMarkdown(ctx, "project-1", models.Author{}, []byte("no frontmatter")); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}
