package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"nalevel/internal/domain"
	"nalevel/internal/domain/models/blog"
	"nalevel/internal/domain/repositories"
)

// BlogStateRepository persists the content collection as one document under a single key
type BlogStateRepository struct {
	store repositories.KeyValueStore
	key   string
}

// NewBlogStateRepository creates a repository writing under key
func NewBlogStateRepository(store repositories.KeyValueStore, key string) repositories.BlogStateRepository {
	return &BlogStateRepository{store: store, key: key}
}

// Load returns an empty state when nothing has been saved yet
func (r *BlogStateRepository) Load(ctx context.Context) (*blog.State, error) {
	raw, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return blog.NewState(), nil
		}
		return nil, fmt.Errorf("load blog state: %w", err)
	}

	state := blog.NewState()
	if err := json.Unmarshal(raw, state); err != nil {
		return nil, fmt.Errorf("decode blog state: %w", err)
	}
	state.Normalize()

	return state, nil
}

func (r *BlogStateRepository) Save(ctx context.Context, state *blog.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode blog state: %w", err)
	}

	if err := r.store.Apply(ctx, repositories.Put(r.key, raw)); err != nil {
		return fmt.Errorf("save blog state: %w", err)
	}
	return nil
}
