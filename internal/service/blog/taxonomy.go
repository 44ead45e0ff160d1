package blog

import (
	"context"
	"strings"

	"nalevel/internal/domain"
	models "nalevel/internal/domain/models/blog"
	blogSvc "nalevel/internal/domain/services/blog"
)

func (s *contentStore) AddCategory(ctx context.Context, req *blogSvc.CreateCategoryRequest) (*models.Category, error) {
	if err := validateTaxonomy(&req.Name, &req.Slug, &req.Description); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	slug, err := resolveSlug(req.Slug, name)
	if err != nil {
		return nil, err
	}

	now := s.now()
	category := models.Category{
		ID:          s.newID(),
		Name:        name,
		Slug:        slug,
		Description: req.Description,
		ParentID:    req.ParentID,
		Color:       req.Color,
		CoverImage:  req.CoverImage,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.commit(ctx, func(state *models.State) error {
		if category.ParentID != "" && state.FindCategory(category.ParentID) == nil {
			return domain.NewValidationError("parentId", "unknown category")
		}
		state.Categories = append(state.Categories, category)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("category created",
		"id", category.ID,
		"slug", category.Slug,
	)

	return &category, nil
}

func (s *contentStore) UpdateCategory(ctx context.Context, id string, req *blogSvc.UpdateCategoryRequest) (*models.Category, error) {
	if err := validateTaxonomy(req.Name, req.Slug, req.Description); err != nil {
		return nil, err
	}

	var updated models.Category
	err := s.commit(ctx, func(state *models.State) error {
		category := state.FindCategory(id)
		if category == nil {
			return &domain.NotFoundError{Resource: "category", ID: id}
		}

		if req.Name != nil {
			category.Name = strings.TrimSpace(*req.Name)
		}
		if req.Slug != nil {
			slug, err := resolveSlug(*req.Slug, category.Name)
			if err != nil {
				return err
			}
			category.Slug = slug
		}
		if req.Description != nil {
			category.Description = *req.Description
		}
		if req.ParentID != nil {
			parentID := *req.ParentID
			if parentID == id {
				return domain.NewValidationError("parentId", "a category cannot be its own parent")
			}
			if parentID != "" && state.FindCategory(parentID) == nil {
				return domain.NewValidationError("parentId", "unknown category")
			}
			category.ParentID = parentID
		}
		if req.Color != nil {
			category.Color = *req.Color
		}
		if req.CoverImage != nil {
			category.CoverImage = *req.CoverImage
		}
		category.UpdatedAt = s.now()

		updated = *category
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("category updated", "id", id)
	return &updated, nil
}

// DeleteCategory removes the category, detaches it from every post and
// re-parents its children to the root
func (s *contentStore) DeleteCategory(ctx context.Context, id string) error {
	detached := 0

	err := s.commit(ctx, func(state *models.State) error {
		categories := state.Categories[:0]
		for _, c := range state.Categories {
			if c.ID == id {
				continue
			}
			if c.ParentID == id {
				c.ParentID = ""
			}
			categories = append(categories, c)
		}
		state.Categories = categories

		for i := range state.Posts {
			if state.Posts[i].HasCategory(id) {
				state.Posts[i].Categories = removeID(state.Posts[i].Categories, id)
				detached++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("category deleted",
		"id", id,
		"posts_detached", detached,
	)
	return nil
}

func (s *contentStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	s.read(func(state *models.State) {
		categories = append([]models.Category{}, state.Categories...)
	})
	return categories, nil
}

func (s *contentStore) AddTag(ctx context.Context, req *blogSvc.CreateTagRequest) (*models.Tag, error) {
	if err := validateTaxonomy(&req.Name, &req.Slug, &req.Description); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	slug, err := resolveSlug(req.Slug, name)
	if err != nil {
		return nil, err
	}

	now := s.now()
	tag := models.Tag{
		ID:          s.newID(),
		Name:        name,
		Slug:        slug,
		Description: req.Description,
		Color:       req.Color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.commit(ctx, func(state *models.State) error {
		state.Tags = append(state.Tags, tag)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("tag created",
		"id", tag.ID,
		"slug", tag.Slug,
	)

	return &tag, nil
}

func (s *contentStore) UpdateTag(ctx context.Context, id string, req *blogSvc.UpdateTagRequest) (*models.Tag, error) {
	if err := validateTaxonomy(req.Name, req.Slug, req.Description); err != nil {
		return nil, err
	}

	var updated models.Tag
	err := s.commit(ctx, func(state *models.State) error {
		tag := state.FindTag(id)
		if tag == nil {
			return &domain.NotFoundError{Resource: "tag", ID: id}
		}

		if req.Name != nil {
			tag.Name = strings.TrimSpace(*req.Name)
		}
		if req.Slug != nil {
			slug, err := resolveSlug(*req.Slug, tag.Name)
			if err != nil {
				return err
			}
			tag.Slug = slug
		}
		if req.Description != nil {
			tag.Description = *req.Description
		}
		if req.Color != nil {
			tag.Color = *req.Color
		}
		tag.UpdatedAt = s.now()

		updated = *tag
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("tag updated", "id", id)
	return &updated, nil
}

// DeleteTag removes the tag and detaches it from every post
func (s *contentStore) DeleteTag(ctx context.Context, id string) error {
	detached := 0

	err := s.commit(ctx, func(state *models.State) error {
		tags := state.Tags[:0]
		for _, t := range state.Tags {
			if t.ID != id {
				tags = append(tags, t)
			}
		}
		state.Tags = tags

		for i := range state.Posts {
			if state.Posts[i].HasTag(id) {
				state.Posts[i].Tags = removeID(state.Posts[i].Tags, id)
				detached++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("tag deleted",
		"id", id,
		"posts_detached", detached,
	)
	return nil
}

func (s *contentStore) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	s.read(func(state *models.State) {
		tags = append([]models.Tag{}, state.Tags...)
	})
	return tags, nil
}

func removeID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
