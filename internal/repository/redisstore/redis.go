// Package redisstore implements the key-value store on Redis
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"nalevel/internal/domain"
	"nalevel/internal/domain/repositories"
)

// Store keeps every key under a common namespace prefix
type Store struct {
	client *redis.Client
	prefix string
}

var _ repositories.KeyValueStore = (*Store)(nil)

// Open connects to addr and verifies the connection with PING
func Open(ctx context.Context, addr, password string, db int, prefix string) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}

	return New(client, prefix), nil
}

// New wraps an existing client
func New(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("key %s: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get key %s: %w", key, err)
	}
	return value, nil
}

// Apply sends all mutations in one MULTI/EXEC block
func (s *Store) Apply(ctx context.Context, mutations ...repositories.Mutation) error {
	if len(mutations) == 0 {
		return nil
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, m := range mutations {
			if m.Delete {
				pipe.Del(ctx, s.key(m.Key))
			} else {
				pipe.Set(ctx, s.key(m.Key), m.Value, 0)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("apply %d mutations: %w", len(mutations), err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
