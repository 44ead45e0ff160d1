package blog

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"nalevel/internal/config"
	"nalevel/internal/domain"
	models "nalevel/internal/domain/models/blog"
	blogSvc "nalevel/internal/domain/services/blog"
)

var (
	postStatuses = []interface{}{
		models.PostStatusDraft,
		models.PostStatusPublished,
		models.PostStatusScheduled,
		models.PostStatusArchived,
	}
	visibilities = []interface{}{
		models.VisibilityPublic,
		models.VisibilityPrivate,
		models.VisibilityTeam,
	}
	sectionTypes = []interface{}{
		models.SectionText,
		models.SectionHeading,
		models.SectionHTML,
		models.SectionImage,
		models.SectionVideo,
		models.SectionEmbed,
		models.SectionQuote,
		models.SectionCode,
	}
	commentStatuses = []interface{}{
		models.CommentPending,
		models.CommentApproved,
		models.CommentSpam,
		models.CommentDeleted,
	}
)

// fieldErrors collects ozzo errors under dotted field paths
type fieldErrors map[string]string

// add flattens err (possibly nested validation.Errors) under prefix.
// Internal rule errors are returned unchanged.
func (f fieldErrors) add(prefix string, err error) error {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		var internal validation.InternalError
		if errors.As(err, &internal) {
			return internal
		}
		f[prefix] = err.Error()
		return nil
	}

	for name, fieldErr := range errs {
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}
		if err := f.add(key, fieldErr); err != nil {
			return err
		}
	}
	return nil
}

// result converts the collected violations into a ValidationError
func (f fieldErrors) result() error {
	if len(f) == 0 {
		return nil
	}
	return &domain.ValidationError{Message: "validation failed", Fields: f}
}

func validateSections(fields fieldErrors, sections []models.ContentSection) error {
	for i := range sections {
		section := &sections[i]
		err := validation.ValidateStruct(section,
			validation.Field(&section.Type, validation.Required, validation.In(sectionTypes...)),
		)
		if err := fields.add(fmt.Sprintf("content.%d", i), err); err != nil {
			return err
		}
	}
	return nil
}

func validateCreatePost(req *blogSvc.CreatePostRequest) error {
	fields := fieldErrors{}

	err := validation.ValidateStruct(req,
		validation.Field(&req.ProjectID, validation.Required),
		validation.Field(&req.Title, validation.Required, validation.Length(1, config.MaxPostTitleLength)),
		validation.Field(&req.Slug, validation.Length(0, config.MaxSlugLength)),
		validation.Field(&req.Excerpt, validation.Length(0, config.MaxExcerptLength)),
		validation.Field(&req.Content, validation.Length(0, config.MaxContentSections)),
		validation.Field(&req.Status, validation.In(postStatuses...)),
		validation.Field(&req.Visibility, validation.In(visibilities...)),
	)
	if err := fields.add("", err); err != nil {
		return err
	}
	if err := validateSections(fields, req.Content); err != nil {
		return err
	}

	return fields.result()
}

func validateUpdatePost(req *blogSvc.UpdatePostRequest) error {
	fields := fieldErrors{}

	err := validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.NilOrNotEmpty, validation.Length(1, config.MaxPostTitleLength)),
		validation.Field(&req.Slug, validation.Length(0, config.MaxSlugLength)),
		validation.Field(&req.Excerpt, validation.Length(0, config.MaxExcerptLength)),
		validation.Field(&req.Status, validation.In(postStatuses...)),
		validation.Field(&req.Visibility, validation.In(visibilities...)),
	)
	if err := fields.add("", err); err != nil {
		return err
	}

	if req.Content != nil {
		if len(*req.Content) > config.MaxContentSections {
			fields["content"] = fmt.Sprintf("the length must be no more than %d", config.MaxContentSections)
		}
		if err := validateSections(fields, *req.Content); err != nil {
			return err
		}
	}

	return fields.result()
}

func validateTaxonomy(name, slug, description *string) error {
	fields := fieldErrors{}

	if name != nil {
		err := validation.Validate(strings.TrimSpace(*name),
			validation.Required, validation.Length(1, config.MaxTaxonomyNameLength))
		if err := fields.add("name", err); err != nil {
			return err
		}
	}
	if slug != nil {
		err := validation.Validate(*slug, validation.Length(0, config.MaxSlugLength))
		if err := fields.add("slug", err); err != nil {
			return err
		}
	}
	if description != nil {
		err := validation.Validate(*description, validation.Length(0, config.MaxDescriptionLength))
		if err := fields.add("description", err); err != nil {
			return err
		}
	}

	return fields.result()
}

func validateCommentContent(content string) error {
	fields := fieldErrors{}
	err := validation.Validate(strings.TrimSpace(content),
		validation.Required, validation.Length(1, config.MaxCommentLength))
	if err := fields.add("content", err); err != nil {
		return err
	}
	return fields.result()
}

func validateUpdateComment(req *blogSvc.UpdateCommentRequest) error {
	fields := fieldErrors{}

	err := validation.ValidateStruct(req,
		validation.Field(&req.Status, validation.In(commentStatuses...)),
		validation.Field(&req.Likes, validation.Min(0)),
	)
	if err := fields.add("", err); err != nil {
		return err
	}
	if req.Content != nil {
		err := validation.Validate(strings.TrimSpace(*req.Content),
			validation.Required, validation.Length(1, config.MaxCommentLength))
		if err := fields.add("content", err); err != nil {
			return err
		}
	}

	return fields.result()
}

// validateAnalytics checks a merged snapshot: every counter non-negative,
// bounce rate a percentage
func validateAnalytics(a *models.PostAnalytics) error {
	fields := fieldErrors{}

	err := validation.ValidateStruct(a,
		validation.Field(&a.Views, validation.Min(0)),
		validation.Field(&a.UniqueVisitors, validation.Min(0)),
		validation.Field(&a.AvgTimeOnPage, validation.Min(0.0)),
		validation.Field(&a.BounceRate, validation.Min(0.0), validation.Max(100.0)),
	)
	if err := fields.add("", err); err != nil {
		return err
	}

	err = validation.ValidateStruct(&a.Shares,
		validation.Field(&a.Shares.Facebook, validation.Min(0)),
		validation.Field(&a.Shares.Twitter, validation.Min(0)),
		validation.Field(&a.Shares.LinkedIn, validation.Min(0)),
		validation.Field(&a.Shares.Email, validation.Min(0)),
	)
	if err := fields.add("shares", err); err != nil {
		return err
	}

	err = validation.ValidateStruct(&a.DeviceBreakdown,
		validation.Field(&a.DeviceBreakdown.Desktop, validation.Min(0)),
		validation.Field(&a.DeviceBreakdown.Mobile, validation.Min(0)),
		validation.Field(&a.DeviceBreakdown.Tablet, validation.Min(0)),
	)
	if err := fields.add("deviceBreakdown", err); err != nil {
		return err
	}

	for country, views := range a.GeoData {
		if views < 0 {
			fields["geoData."+country] = "must be no less than 0"
		}
	}

	return fields.result()
}
