package blog

import (
	"context"
	"strings"

	"nalevel/internal/domain"
	models "nalevel/internal/domain/models/blog"
	blogSvc "nalevel/internal/domain/services/blog"
)

// sanitizeComment strips all markup from user-supplied comment text
func (s *contentStore) sanitizeComment(content string) string {
	return strings.TrimSpace(s.strict.Sanitize(content))
}

func (s *contentStore) AddComment(ctx context.Context, postID string, author models.CommentAuthor, req *blogSvc.CreateCommentRequest) (*models.Comment, error) {
	if err := validateCommentContent(req.Content); err != nil {
		return nil, err
	}

	content := s.sanitizeComment(req.Content)
	if content == "" {
		return nil, domain.NewValidationError("content", "cannot be blank")
	}

	if strings.TrimSpace(author.ID) == "" {
		author.ID = unknownAuthorID
	}
	if strings.TrimSpace(author.Name) == "" {
		author.Name = unknownAuthorName
	}

	now := s.now()
	comment := models.Comment{
		ID:        s.newID(),
		PostID:    postID,
		ParentID:  req.ParentID,
		Author:    author,
		Content:   content,
		Status:    models.CommentPending,
		Likes:     0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.commit(ctx, func(state *models.State) error {
		if state.FindPost(postID) == nil {
			return &domain.NotFoundError{Resource: "post", ID: postID}
		}
		if comment.ParentID != "" {
			parent := state.FindComment(comment.ParentID)
			if parent == nil || parent.PostID != postID {
				return domain.NewValidationError("parentId", "unknown comment on this post")
			}
		}
		state.Comments = append(state.Comments, comment)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("comment added",
		"id", comment.ID,
		"post_id", postID,
		"author_id", author.ID,
	)

	return &comment, nil
}

func (s *contentStore) UpdateComment(ctx context.Context, id string, req *blogSvc.UpdateCommentRequest) (*models.Comment, error) {
	if err := validateUpdateComment(req); err != nil {
		return nil, err
	}

	var content string
	if req.Content != nil {
		content = s.sanitizeComment(*req.Content)
		if content == "" {
			return nil, domain.NewValidationError("content", "cannot be blank")
		}
	}

	var updated models.Comment
	err := s.commit(ctx, func(state *models.State) error {
		comment := state.FindComment(id)
		if comment == nil {
			return &domain.NotFoundError{Resource: "comment", ID: id}
		}

		now := s.now()
		if req.Content != nil {
			comment.EditHistory = append(comment.EditHistory, models.CommentEdit{
				PriorContent: comment.Content,
				EditedAt:     now,
			})
			comment.Content = content
		}
		if req.Status != nil {
			comment.Status = *req.Status
		}
		if req.Likes != nil {
			comment.Likes = *req.Likes
		}
		comment.UpdatedAt = now

		updated = comment.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("comment updated",
		"id", id,
		"status", updated.Status,
		"edits", len(updated.EditHistory),
	)

	return &updated, nil
}

// DeleteComment soft-deletes: the record stays with status deleted
func (s *contentStore) DeleteComment(ctx context.Context, id string) error {
	err := s.commit(ctx, func(state *models.State) error {
		comment := state.FindComment(id)
		if comment == nil {
			return &domain.NotFoundError{Resource: "comment", ID: id}
		}
		comment.Status = models.CommentDeleted
		comment.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("comment deleted", "id", id)
	return nil
}

func (s *contentStore) GetPostComments(ctx context.Context, postID string) ([]models.Comment, error) {
	comments := []models.Comment{}
	found := false

	s.read(func(state *models.State) {
		found = state.FindPost(postID) != nil
		for i := range state.Comments {
			c := &state.Comments[i]
			if c.PostID == postID && c.Status != models.CommentDeleted {
				comments = append(comments, c.Clone())
			}
		}
	})

	if !found {
		return nil, &domain.NotFoundError{Resource: "post", ID: postID}
	}
	return comments, nil
}
