package cache

import (
	"context"
	"errors"
)

// ErrInvalidResultType is returned when a cached value cannot be asserted
// back to the type the caller requested. This indicates two callers sharing
// one key with different result types.
var ErrInvalidResultType = errors.New("cached value does not match requested type")

// KeySerializer builds a cache key from a method name + arbitrary args.
// It is responsible for producing stable keys across calls: deep-equal
// arguments must serialize to identical keys.
type KeySerializer interface {
	SerializeKey(method string, args ...any) string
}

// FetchFn is the function signature CacheService expects when fetching from
// the source of truth.
type FetchFn[T any] func(ctx context.Context) (T, error)

// CacheService exposes the read-through caching operations needed when
// binding request execution to a cache engine. Concurrent callers of
// GetOrFetch with the same key share a single in-flight fetch; that
// guarantee is owned by the backing engine.
type CacheService interface {
	GetOrFetch(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error)
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	InvalidateKeys(ctx context.Context, keys []string) error
}

// GetOrFetch is the type-safe wrapper over CacheService.GetOrFetch. It erases
// the fetch function's result type on the way in and asserts it back on the
// way out.
func GetOrFetch[T any](ctx context.Context, service CacheService, key string, fetch FetchFn[T]) (T, error) {
	var zero T

	result, err := service.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}

	if result == nil {
		return zero, nil
	}

	typed, ok := result.(T)
	if !ok {
		return zero, ErrInvalidResultType
	}

	return typed, nil
}
