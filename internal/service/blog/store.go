package blog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	models "nalevel/internal/domain/models/blog"
	"nalevel/internal/domain/repositories"
	blogSvc "nalevel/internal/domain/services/blog"
)

// contentStore implements ContentStore over a single persisted state document.
// Readers share the current state; writers are serialized by mu and stage
// their change on a deep copy, which replaces the state only after it is saved.
type contentStore struct {
	mu    sync.RWMutex
	state *models.State

	repo     repositories.BlogStateRepository
	analyzer blogSvc.ContentAnalyzer
	strict   *bluemonday.Policy
	ugc      *bluemonday.Policy
	now      func() time.Time
	newID    func() string
	logger   *slog.Logger
}

// Option customizes a content store
type Option func(*contentStore)

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(s *contentStore) { s.now = now }
}

// WithIDGenerator overrides the uuid generator
func WithIDGenerator(newID func() string) Option {
	return func(s *contentStore) { s.newID = newID }
}

// NewContentStore loads the persisted state and returns a ready store
func NewContentStore(
	ctx context.Context,
	repo repositories.BlogStateRepository,
	analyzer blogSvc.ContentAnalyzer,
	logger *slog.Logger,
	opts ...Option,
) (blogSvc.ContentStore, error) {
	s := &contentStore{
		repo:     repo,
		analyzer: analyzer,
		strict:   bluemonday.StrictPolicy(),
		ugc:      bluemonday.UGCPolicy(),
		now:      time.Now,
		newID:    uuid.NewString,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	state, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load content state: %w", err)
	}
	s.state = state

	logger.Debug("content store loaded",
		"posts", len(state.Posts),
		"categories", len(state.Categories),
		"tags", len(state.Tags),
		"comments", len(state.Comments),
	)

	return s, nil
}

// commit runs fn on a copy of the state, persists the copy and swaps it in.
// When fn or the save fails the current state is left untouched.
func (s *contentStore) commit(ctx context.Context, fn func(state *models.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.state.Clone()
	if err := fn(staged); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, staged); err != nil {
		return fmt.Errorf("save content state: %w", err)
	}

	s.state = staged
	return nil
}

// read runs fn against the current state under the read lock
func (s *contentStore) read(fn func(state *models.State)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

// clonePosts copies the posts matching keep
func clonePosts(posts []models.Post, keep func(p *models.Post) bool) []models.Post {
	out := []models.Post{}
	for i := range posts {
		if keep(&posts[i]) {
			out = append(out, posts[i].Clone())
		}
	}
	return out
}
