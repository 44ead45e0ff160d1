package blog

import (
	"context"
	"strings"

	"nalevel/internal/domain"
	models "nalevel/internal/domain/models/blog"
	blogSvc "nalevel/internal/domain/services/blog"
)

const (
	unknownAuthorID   = "unknown"
	unknownAuthorName = "Unknown"
)

// normalizeAuthor keeps the stored author subset and fills missing display fields
func normalizeAuthor(a models.Author) models.Author {
	out := models.Author{
		ID:     strings.TrimSpace(a.ID),
		Name:   strings.TrimSpace(a.Name),
		Email:  strings.TrimSpace(a.Email),
		Avatar: a.Avatar,
	}
	if out.ID == "" {
		out.ID = unknownAuthorID
	}
	if out.Name == "" {
		out.Name = unknownAuthorName
	}
	return out
}

func normalizeAuthors(authors []models.Author) []models.Author {
	if len(authors) == 0 {
		return nil
	}
	out := make([]models.Author, len(authors))
	for i, a := range authors {
		out[i] = normalizeAuthor(a)
	}
	return out
}

// resolveSlug slugifies an explicit slug, or the title when none is given
func resolveSlug(slug, title string) (string, error) {
	source := slug
	if strings.TrimSpace(source) == "" {
		source = title
	}
	resolved := Slugify(source)
	if resolved == "" {
		return "", domain.NewValidationError("slug", "cannot be derived from title")
	}
	return resolved, nil
}

// prepareSections copies sections and assigns ids to new ones
func (s *contentStore) prepareSections(sections []models.ContentSection) []models.ContentSection {
	out := make([]models.ContentSection, len(sections))
	for i, section := range sections {
		if section.ID == "" {
			section.ID = s.newID()
		}
		out[i] = section
	}
	return out
}

func idSet(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func (s *contentStore) AddPost(ctx context.Context, req *blogSvc.CreatePostRequest) (*models.Post, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validateCreatePost(req); err != nil {
		return nil, err
	}

	slug, err := resolveSlug(req.Slug, req.Title)
	if err != nil {
		return nil, err
	}

	now := s.now()
	author := normalizeAuthor(req.Author)
	sections := s.prepareSections(req.Content)
	words := s.analyzer.CountWords(sections)

	post := models.Post{
		ID:            s.newID(),
		ProjectID:     req.ProjectID,
		Title:         req.Title,
		Slug:          slug,
		Excerpt:       req.Excerpt,
		Content:       sections,
		Status:        req.Status,
		Visibility:    req.Visibility,
		Categories:    idSet(req.Categories),
		Tags:          idSet(req.Tags),
		Author:        author,
		CoAuthors:     normalizeAuthors(req.CoAuthors),
		FeaturedImage: req.FeaturedImage,
		PublishedAt:   req.PublishedAt,
		ScheduledFor:  req.ScheduledFor,
		Metadata: models.PostMetadata{
			WordCount:    words,
			ReadingTime:  s.analyzer.ReadingTime(words),
			Revision:     1,
			LastEditedBy: author.ID,
			CustomFields: req.CustomFields,
		},
		Analytics: models.NewPostAnalytics(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if post.Status == "" {
		post.Status = models.PostStatusDraft
	}
	if post.Visibility == "" {
		post.Visibility = models.VisibilityPublic
	}
	if post.Status == models.PostStatusPublished && post.PublishedAt == nil {
		post.PublishedAt = &now
	}

	err = s.commit(ctx, func(state *models.State) error {
		if state.SlugTaken(post.Slug, "") {
			return &domain.DuplicateSlugError{Slug: post.Slug}
		}
		state.Posts = append(state.Posts, post)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("post created",
		"id", post.ID,
		"slug", post.Slug,
		"project_id", post.ProjectID,
		"word_count", words,
	)

	created := post.Clone()
	return &created, nil
}

func (s *contentStore) UpdatePost(ctx context.Context, id string, req *blogSvc.UpdatePostRequest) (*models.Post, error) {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		req.Title = &title
	}
	if err := validateUpdatePost(req); err != nil {
		return nil, err
	}

	var slug string
	if req.Slug != nil {
		resolved, err := resolveSlug(*req.Slug, "")
		if err != nil {
			return nil, err
		}
		slug = resolved
	}

	var updated models.Post
	err := s.commit(ctx, func(state *models.State) error {
		post := state.FindPost(id)
		if post == nil {
			return &domain.NotFoundError{Resource: "post", ID: id}
		}

		if slug != "" && slug != post.Slug {
			if state.SlugTaken(slug, post.ID) {
				return &domain.DuplicateSlugError{Slug: slug}
			}
			post.Slug = slug
		}

		s.applyPostUpdate(post, req)
		updated = post.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("post updated",
		"id", updated.ID,
		"revision", updated.Metadata.Revision,
		"content_changed", req.Content != nil,
	)

	return &updated, nil
}

// applyPostUpdate merges the supplied fields over post
func (s *contentStore) applyPostUpdate(post *models.Post, req *blogSvc.UpdatePostRequest) {
	now := s.now()

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Status != nil {
		post.Status = *req.Status
		if post.Status == models.PostStatusPublished && post.PublishedAt == nil && req.PublishedAt == nil {
			post.PublishedAt = &now
		}
	}
	if req.Visibility != nil {
		post.Visibility = *req.Visibility
	}
	if req.Categories != nil {
		post.Categories = idSet(*req.Categories)
	}
	if req.Tags != nil {
		post.Tags = idSet(*req.Tags)
	}
	if req.Author != nil {
		post.Author = normalizeAuthor(*req.Author)
	}
	if req.CoAuthors != nil {
		post.CoAuthors = normalizeAuthors(*req.CoAuthors)
	}
	if req.FeaturedImage != nil {
		img := *req.FeaturedImage
		post.FeaturedImage = &img
	}
	if req.PublishedAt != nil {
		t := *req.PublishedAt
		post.PublishedAt = &t
	}
	if req.ScheduledFor != nil {
		t := *req.ScheduledFor
		post.ScheduledFor = &t
	}
	if req.CustomFields != nil {
		if post.Metadata.CustomFields == nil {
			post.Metadata.CustomFields = map[string]any{}
		}
		for k, v := range req.CustomFields {
			post.Metadata.CustomFields[k] = v
		}
	}

	if req.Content != nil {
		post.Content = s.prepareSections(*req.Content)
		words := s.analyzer.CountWords(post.Content)
		post.Metadata.WordCount = words
		post.Metadata.ReadingTime = s.analyzer.ReadingTime(words)
		post.Metadata.Revision++
	}
	if req.EditedBy != "" {
		post.Metadata.LastEditedBy = req.EditedBy
	}

	post.UpdatedAt = now
}

func (s *contentStore) DeletePost(ctx context.Context, id string) error {
	removedComments := 0
	found := false

	err := s.commit(ctx, func(state *models.State) error {
		posts := state.Posts[:0]
		for _, p := range state.Posts {
			if p.ID == id {
				found = true
				continue
			}
			posts = append(posts, p)
		}
		state.Posts = posts

		comments := state.Comments[:0]
		for _, c := range state.Comments {
			if c.PostID == id {
				removedComments++
				continue
			}
			comments = append(comments, c)
		}
		state.Comments = comments
		return nil
	})
	if err != nil {
		return err
	}

	if found {
		s.logger.Info("post deleted",
			"id", id,
			"comments_removed", removedComments,
		)
	}
	return nil
}

func (s *contentStore) GetPost(ctx context.Context, id string) (*models.Post, error) {
	var post *models.Post
	s.read(func(state *models.State) {
		if p := state.FindPost(id); p != nil {
			c := p.Clone()
			post = &c
		}
	})
	if post == nil {
		return nil, &domain.NotFoundError{Resource: "post", ID: id}
	}
	return post, nil
}

func (s *contentStore) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post *models.Post
	s.read(func(state *models.State) {
		for i := range state.Posts {
			if state.Posts[i].Slug == slug {
				c := state.Posts[i].Clone()
				post = &c
				return
			}
		}
	})
	if post == nil {
		return nil, &domain.NotFoundError{Resource: "post", ID: slug}
	}
	return post, nil
}

func (s *contentStore) GetProjectPosts(ctx context.Context, projectID string, status models.PostStatus) ([]models.Post, error) {
	var posts []models.Post
	s.read(func(state *models.State) {
		posts = clonePosts(state.Posts, func(p *models.Post) bool {
			return p.ProjectID == projectID && (status == "" || p.Status == status)
		})
	})
	return posts, nil
}

func (s *contentStore) GetPostsByCategory(ctx context.Context, categoryID string) ([]models.Post, error) {
	var posts []models.Post
	s.read(func(state *models.State) {
		posts = clonePosts(state.Posts, func(p *models.Post) bool {
			return p.Status == models.PostStatusPublished && p.HasCategory(categoryID)
		})
	})
	return posts, nil
}

func (s *contentStore) GetPostsByTag(ctx context.Context, tagID string) ([]models.Post, error) {
	var posts []models.Post
	s.read(func(state *models.State) {
		posts = clonePosts(state.Posts, func(p *models.Post) bool {
			return p.Status == models.PostStatusPublished && p.HasTag(tagID)
		})
	})
	return posts, nil
}
