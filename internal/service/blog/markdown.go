package blog

import (
	"context"
	"fmt"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"nalevel/internal/domain"
	models "nalevel/internal/domain/models/blog"
	blogSvc "nalevel/internal/domain/services/blog"
	"nalevel/internal/utils"
)

// postFrontmatter is the YAML header of an exported post.
// Categories and tags are referenced by slug.
type postFrontmatter struct {
	Title       string     `yaml:"title"`
	Slug        string     `yaml:"slug,omitempty"`
	Excerpt     string     `yaml:"excerpt,omitempty"`
	Status      string     `yaml:"status,omitempty"`
	Visibility  string     `yaml:"visibility,omitempty"`
	Categories  []string   `yaml:"categories,omitempty"`
	Tags        []string   `yaml:"tags,omitempty"`
	Author      string     `yaml:"author,omitempty"`
	PublishedAt *time.Time `yaml:"published_at,omitempty"`
}

func (s *contentStore) ExportMarkdown(ctx context.Context, postID string) (string, error) {
	var (
		post       *models.Post
		categories []string
		tags       []string
	)
	s.read(func(state *models.State) {
		p := state.FindPost(postID)
		if p == nil {
			return
		}
		c := p.Clone()
		post = &c
		for _, id := range p.Categories {
			if cat := state.FindCategory(id); cat != nil {
				categories = append(categories, cat.Slug)
			}
		}
		for _, id := range p.Tags {
			if tag := state.FindTag(id); tag != nil {
				tags = append(tags, tag.Slug)
			}
		}
	})
	if post == nil {
		return "", &domain.NotFoundError{Resource: "post", ID: postID}
	}

	body, err := s.renderSections(post.Content)
	if err != nil {
		return "", err
	}

	meta := postFrontmatter{
		Title:       post.Title,
		Slug:        post.Slug,
		Excerpt:     post.Excerpt,
		Status:      string(post.Status),
		Visibility:  string(post.Visibility),
		Categories:  categories,
		Tags:        tags,
		Author:      post.Author.Name,
		PublishedAt: post.PublishedAt,
	}

	doc, err := utils.RenderFrontmatter(meta, body)
	if err != nil {
		return "", err
	}
	return string(doc), nil
}

// renderSections converts content sections to a markdown body
func (s *contentStore) renderSections(sections []models.ContentSection) (string, error) {
	converter := md.NewConverter("", true, nil)

	blocks := make([]string, 0, len(sections))
	for _, section := range sections {
		var block string
		switch section.Type {
		case models.SectionHeading:
			block = strings.Repeat("#", headingLevel(section.Metadata)) + " " + section.Content
		case models.SectionQuote:
			lines := strings.Split(section.Content, "\n")
			for i, line := range lines {
				lines[i] = "> " + line
			}
			block = strings.Join(lines, "\n")
		case models.SectionCode:
			block = "```" + metadataString(section.Metadata, "language") + "\n" + section.Content + "\n```"
		case models.SectionHTML, models.SectionEmbed:
			converted, err := converter.ConvertString(s.ugc.Sanitize(section.Content))
			if err != nil {
				return "", fmt.Errorf("failed to convert section %s to markdown: %w", section.ID, err)
			}
			block = converted
		case models.SectionImage:
			block = fmt.Sprintf("![%s](%s)", metadataString(section.Metadata, "alt"), section.Content)
		case models.SectionVideo:
			block = fmt.Sprintf("[%s](%s)", "Video", section.Content)
		default:
			block = section.Content
		}
		if strings.TrimSpace(block) != "" {
			blocks = append(blocks, block)
		}
	}

	if len(blocks) == 0 {
		return "", nil
	}
	return strings.Join(blocks, "\n\n") + "\n", nil
}

// headingLevel reads metadata.level (a JSON number), defaulting to 2
func headingLevel(meta map[string]any) int {
	level := 2
	switch v := meta["level"].(type) {
	case float64:
		level = int(v)
	case int:
		level = v
	}
	if level < 1 || level > 6 {
		return 2
	}
	return level
}

func metadataString(meta map[string]any, key string) string {
	if v, ok := meta[key].(string); ok {
		return v
	}
	return ""
}

// ImportMarkdown creates a post from a frontmatter document. The body becomes
// one text section; unknown category and tag slugs are created.
func (s *contentStore) ImportMarkdown(ctx context.Context, projectID string, author models.Author, document []byte) (*models.Post, error) {
	var meta postFrontmatter
	body, err := utils.ParseFrontmatter(document, &meta)
	if err != nil {
		return nil, domain.NewValidationError("document", err.Error())
	}

	if author.Name == "" {
		author.Name = meta.Author
	}

	categoryIDs, err := s.resolveCategories(ctx, meta.Categories)
	if err != nil {
		return nil, err
	}
	tagIDs, err := s.resolveTags(ctx, meta.Tags)
	if err != nil {
		return nil, err
	}

	req := &blogSvc.CreatePostRequest{
		ProjectID:   projectID,
		Title:       meta.Title,
		Slug:        meta.Slug,
		Excerpt:     meta.Excerpt,
		Status:      models.PostStatus(meta.Status),
		Visibility:  models.Visibility(meta.Visibility),
		Categories:  categoryIDs,
		Tags:        tagIDs,
		Author:      author,
		PublishedAt: meta.PublishedAt,
	}
	if text := strings.TrimSpace(body); text != "" {
		req.Content = []models.ContentSection{{Type: models.SectionText, Content: text}}
	}

	return s.AddPost(ctx, req)
}

func (s *contentStore) resolveCategories(ctx context.Context, slugs []string) ([]string, error) {
	ids := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		var id string
		s.read(func(state *models.State) {
			for _, c := range state.Categories {
				if c.Slug == slug {
					id = c.ID
					return
				}
			}
		})
		if id == "" {
			created, err := s.AddCategory(ctx, &blogSvc.CreateCategoryRequest{Name: slug, Slug: slug})
			if err != nil {
				return nil, fmt.Errorf("create category %q: %w", slug, err)
			}
			id = created.ID
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *contentStore) resolveTags(ctx context.Context, slugs []string) ([]string, error) {
	ids := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		var id string
		s.read(func(state *models.State) {
			for _, t := range state.Tags {
				if t.Slug == slug {
					id = t.ID
					return
				}
			}
		})
		if id == "" {
			created, err := s.AddTag(ctx, &blogSvc.CreateTagRequest{Name: slug, Slug: slug})
			if err != nil {
				return nil, fmt.Errorf("create tag %q: %w", slug, err)
			}
			id = created.ID
		}
		ids = append(ids, id)
	}
	return ids, nil
}
