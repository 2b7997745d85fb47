package fetchcache

import (
	"context"
	"sync"

	"github.com/goliatone/go-client-cache/cache"
	"github.com/goliatone/go-client-cache/client"
)

// Requester executes one typed HTTP request and returns a discriminated
// envelope. *client.Client satisfies this interface.
type Requester interface {
	Execute(ctx context.Context, method, urlPath string, opts client.RequestOptions) (*client.Envelope, error)
}

// Binding ties a request executor to a cache service and key serializer.
// It is the factory state shared by Query, PageSequence, and Mutation: all
// three construct keys and fetchers against the same client and cache.
type Binding struct {
	client        Requester
	cache         cache.CacheService
	keySerializer cache.KeySerializer
	keyRegistry   *sync.Map // key -> []string tags, for tag invalidation
}

// New creates a Binding around the given requester, cache service, and key
// serializer.
func New(requester Requester, cacheService cache.CacheService, keySerializer cache.KeySerializer) *Binding {
	return &Binding{
		client:        requester,
		cache:         cacheService,
		keySerializer: keySerializer,
		keyRegistry:   &sync.Map{},
	}
}

// QueryOptions configures one cached query. D is the type the response body
// decodes into; T is the type the caller receives after MapData.
type QueryOptions[D, T any] struct {
	// Params identifies the request instance and participates in the cache key.
	Params client.Params

	// Body is forwarded to the client untouched. It does not participate in
	// the cache key; queries with request bodies should encode the
	// distinguishing values in Params or Tags.
	Body any

	// Pause suppresses fetching entirely: no network call, no cache entry
	// touched, zero value returned.
	Pause bool

	// Tags is an opaque label set that participates in key identity and can
	// be used for invalidation via Binding.InvalidateTags.
	Tags []string

	// MapData transforms the decoded response data. When nil, the decoded
	// value is returned as-is and D must be assignable to T.
	MapData MapDataFunc[D, T]

	// MapError transforms the API error before it is surfaced. When nil, the
	// *client.APIError is returned unchanged.
	MapError MapErrorFunc
}

// Query performs a cached request for {method, urlPath, opts.Params}.
//
// The cache key is built from {method, url, params, tags}; requests that are
// deep-equal by value share one cache entry and one in-flight fetch. On a
// cache miss or stale entry the bound client executes the request, the
// envelope's error branch is mapped through MapError, and the data branch is
// decoded into D and mapped through MapData. The mapped value is what the
// cache stores and returns.
func Query[D, T any](ctx context.Context, b *Binding, method, urlPath string, opts QueryOptions[D, T]) (T, error) {
	var zero T
	if opts.Pause {
		return zero, nil
	}

	key := b.queryKey(method, urlPath, opts.Params, opts.Tags)
	b.trackKey(key, opts.Tags)

	return cache.GetOrFetch(ctx, b.cache, key, func(ctx context.Context) (T, error) {
		requestOpts := client.RequestOptions{Params: opts.Params, Body: opts.Body}

		return execute(ctx, b.client, method, urlPath, requestOpts, opts.MapData, opts.MapError)
	})
}

// InvalidateQuery removes the cache entry for one exact request so the next
// Query call refetches it.
func (b *Binding) InvalidateQuery(ctx context.Context, method, urlPath string, params client.Params, tags ...string) error {
	key := b.queryKey(method, urlPath, params, tags)
	b.keyRegistry.Delete(key)

	return b.cache.Delete(ctx, key)
}

// InvalidateTags removes every tracked cache entry whose tag set intersects
// the given tags. Only keys issued through this binding are tracked.
func (b *Binding) InvalidateTags(ctx context.Context, tags ...string) error {
	if len(tags) == 0 {
		return nil
	}

	wanted := make(map[string]bool, len(tags))
	for _, tag := range tags {
		wanted[tag] = true
	}

	var stale []string

	b.keyRegistry.Range(func(k, v any) bool {
		keyTags, ok := v.([]string)
		if !ok {
			return true
		}

		for _, tag := range keyTags {
			if wanted[tag] {
				stale = append(stale, k.(string))

				break
			}
		}

		return true
	})

	for _, key := range stale {
		b.keyRegistry.Delete(key)
	}

	return b.cache.InvalidateKeys(ctx, stale)
}

// queryKey builds the structural cache key for one request instance.
func (b *Binding) queryKey(method, urlPath string, params client.Params, tags []string) string {
	return b.keySerializer.SerializeKey(method, urlPath, params, tags)
}

// mutationKey builds the static bucket key for a mutation. Params are
// excluded: mutations are keyed by endpoint, not by trigger argument.
func (b *Binding) mutationKey(method, urlPath string, tags []string) string {
	return b.keySerializer.SerializeKey(method, urlPath, tags)
}

// trackKey registers a cache key and its tags for later invalidation.
func (b *Binding) trackKey(key string, tags []string) {
	b.keyRegistry.Store(key, append([]string(nil), tags...))
}
