// Package seed bulk-imports Markdown posts into the content store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"nalevel/internal/domain"
	"nalevel/internal/domain/models/blog"
	blogSvc "nalevel/internal/domain/services/blog"
)

// Result summarizes one ImportDir run
type Result struct {
	Imported []string // slugs of the created posts
	Skipped  []string // files whose slug already existed
}

// MarkdownSeeder imports *.md files with YAML frontmatter
type MarkdownSeeder struct {
	store  blogSvc.ContentStore
	logger *slog.Logger
}

// NewMarkdownSeeder creates a new Markdown seeder
func NewMarkdownSeeder(store blogSvc.ContentStore, logger *slog.Logger) *MarkdownSeeder {
	return &MarkdownSeeder{
		store:  store,
		logger: logger,
	}
}

// ImportDir imports every *.md file in dir, in name order, into projectID.
// Files whose slug is already taken are skipped so the seed can be re-run.
func (s *MarkdownSeeder) ImportDir(ctx context.Context, dir, projectID string, author blog.Author) (*Result, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	sort.Strings(files)

	result := &Result{}
	for _, path := range files {
		doc, err := os.ReadFile(path)
		if err != nil {
			return result, fmt.Errorf("read %s: %w", path, err)
		}

		post, err := s.store.ImportMarkdown(ctx, projectID, author, doc)
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateSlug) {
				s.logger.Info("post already seeded", "file", path)
				result.Skipped = append(result.Skipped, path)
				continue
			}
			return result, fmt.Errorf("import %s: %w", path, err)
		}

		s.logger.Info("post seeded",
			"file", path,
			"post_id", post.ID,
			"slug", post.Slug,
		)
		result.Imported = append(result.Imported, post.Slug)
	}

	return result, nil
}
