package config

const (
	// MaxPostTitleLength is the maximum length for post titles.
	MaxPostTitleLength = 200

	// MaxSlugLength bounds post, category and tag slugs.
	MaxSlugLength = 200

	// MaxExcerptLength is the maximum length for post excerpts.
	MaxExcerptLength = 500

	// MaxContentSections bounds the number of sections in one post.
	MaxContentSections = 500

	// MaxTaxonomyNameLength is the maximum length for category and tag names.
	MaxTaxonomyNameLength = 100

	// MaxDescriptionLength is the maximum length for category and tag descriptions.
	MaxDescriptionLength = 1000

	// MaxCommentLength is the maximum length for comment bodies.
	MaxCommentLength = 5000

	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 8

	// MaxUserNameLength is the maximum length for display names.
	MaxUserNameLength = 100

	// WordsPerMinute is the reading speed used for reading time estimates.
	WordsPerMinute = 200
)
