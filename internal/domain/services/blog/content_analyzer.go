package blog

import "nalevel/internal/domain/models/blog"

// ContentAnalyzer derives post metadata from content sections
type ContentAnalyzer interface {
	// CountWords counts whitespace-delimited tokens in text sections
	CountWords(sections []blog.ContentSection) int

	// ReadingTime converts a word count to whole minutes, rounding up
	ReadingTime(words int) int
}
