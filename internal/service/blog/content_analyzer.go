package blog

import (
	"strings"

	"nalevel/internal/config"
	models "nalevel/internal/domain/models/blog"
	blogSvc "nalevel/internal/domain/services/blog"
)

type contentAnalyzerService struct{}

// NewContentAnalyzer creates a new content analyzer service
func NewContentAnalyzer() blogSvc.ContentAnalyzer {
	return &contentAnalyzerService{}
}

// CountWords counts whitespace-delimited tokens of text sections.
// Headings, quotes, code and media sections do not count towards reading time.
func (s *contentAnalyzerService) CountWords(sections []models.ContentSection) int {
	count := 0
	for _, section := range sections {
		if section.Type != models.SectionText {
			continue
		}
		count += len(strings.Fields(section.Content))
	}
	return count
}

// ReadingTime returns ceil(words / WordsPerMinute)
func (s *contentAnalyzerService) ReadingTime(words int) int {
	if words <= 0 {
		return 0
	}
	return (words + config.WordsPerMinute - 1) / config.WordsPerMinute
}
