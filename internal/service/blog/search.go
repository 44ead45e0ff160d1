package blog

import (
	"context"
	"strings"

	models "nalevel/internal/domain/models/blog"
)

// SearchPosts matches posts whose title, excerpt and content bodies together
// contain every query term. There is no ranking; collection order is kept.
func (s *contentStore) SearchPosts(ctx context.Context, query string) ([]models.Post, error) {
	terms := strings.Fields(strings.ToLower(query))

	var posts []models.Post
	s.read(func(state *models.State) {
		posts = clonePosts(state.Posts, func(p *models.Post) bool {
			return matchesAll(searchText(p), terms)
		})
	})
	return posts, nil
}

func searchText(p *models.Post) string {
	var b strings.Builder
	b.WriteString(p.Title)
	b.WriteByte(' ')
	b.WriteString(p.Excerpt)
	for _, section := range p.Content {
		b.WriteByte(' ')
		b.WriteString(section.Content)
	}
	return strings.ToLower(b.String())
}

func matchesAll(haystack string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}
