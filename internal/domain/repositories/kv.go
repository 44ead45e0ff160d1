package repositories

import (
	"context"
)

// Mutation is one write applied by KeyValueStore.Apply.
// Delete=true removes Key and ignores Value.
type Mutation struct {
	Key    string
	Value  []byte
	Delete bool
}

// Put builds a set mutation
func Put(key string, value []byte) Mutation {
	return Mutation{Key: key, Value: value}
}

// Remove builds a delete mutation
func Remove(key string) Mutation {
	return Mutation{Key: key, Delete: true}
}

// KeyValueStore is the persisted dictionary both the content store and the
// account service write through. Values are JSON documents.
type KeyValueStore interface {
	// Get returns the value for key.
	// Returns an error wrapping domain.ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Apply writes all mutations atomically: either every mutation is
	// visible afterwards or none is. Deleting an absent key is not an error.
	Apply(ctx context.Context, mutations ...Mutation) error

	// Close releases connections or file handles held by the store
	Close() error
}
