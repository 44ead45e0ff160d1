package repositories

import (
	"context"

	"nalevel/internal/domain/models/blog"
)

// BlogStateRepository loads and saves the whole content collection.
// The content store loads once on init and saves after every mutation.
type BlogStateRepository interface {
	// Load returns the persisted state, or an empty state when none exists yet
	Load(ctx context.Context) (*blog.State, error)

	// Save replaces the persisted state
	Save(ctx context.Context, state *blog.State) error
}
