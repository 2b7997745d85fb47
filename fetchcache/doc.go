// Package fetchcache binds a typed HTTP client to a stale-while-revalidate
// cache engine.
//
// # Overview
//
// A Binding closes over three collaborators: a Requester (the typed client
// that performs network I/O and returns a discriminated {data}|{error}
// envelope), a cache.CacheService (the engine that owns the store, request
// deduplication, and revalidation policy), and a cache.KeySerializer (which
// turns request descriptors into stable keys). From one binding you get the
// three operation families:
//
//   - Query: a single cached request keyed by {method, url, params, tags}
//   - PageSequence: a growable sequence of cached page requests with
//     automatic end-of-data detection
//   - Mutation: an on-demand request bucket, executed only via Trigger
//
// This package performs no caching, retrying, or transport work of its own;
// it is a translation layer between the client's request/response shape and
// the cache engine's key/fetch shape.
//
// # Basic Usage
//
//	httpClient, _ := client.New(client.Config{BaseURL: "https://api.example.com"})
//	cacheService, _ := cache.NewCacheService(cache.DefaultConfig())
//	binding := fetchcache.New(httpClient, cacheService, cache.NewDefaultKeySerializer())
//
//	users, err := fetchcache.Query[[]User, []User](ctx, binding, "GET", "/users", fetchcache.QueryOptions[[]User, []User]{
//		Params: client.Params{Query: url.Values{"page": {"0"}, "per": {"10"}}},
//	})
//
// # Key Identity and Deduplication
//
// Two queries whose {method, url, params, tags} are deep-equal by value
// serialize to the same key and therefore share one cache entry and one
// in-flight fetch; the engine coalesces concurrent callers onto a single
// network call. Any difference in those fields produces a distinct key and a
// distinct request. Tags have no behavior beyond key identity and
// tag-targeted invalidation.
//
// # Response Mapping
//
// Each operation decodes the envelope's data branch into the decode type D
// and passes it through an optional MapData func(D) (T, error). The mapped
// value is what the cache stores and the caller receives. The error branch
// passes through an optional MapError. A MapData failure is wrapped in
// *MappingError so a broken mapper is distinguishable from a failing
// endpoint, but it travels the same error channel: callers should keep
// MapData total over the success shape.
//
// # Pagination Termination
//
// A PageSequence fetches pages in ascending index order. The termination
// predicate is strict emptiness of the previous mapped page: a slice or
// array of length zero stops growth; any other shape never does. Callers who
// need a different strategy (an explicit hasNextPage field, say) can encode
// it in GetParams by capping the requested size.
//
// # Pausing
//
// Pause on a query or page sequence suppresses fetching entirely: no network
// call is made, no cache entry is touched, and the zero value (or nil page
// slice) is returned.
//
// # Invalidation
//
// Queries register their keys and tags on the binding. InvalidateTags
// removes every tracked entry sharing a tag; InvalidateQuery removes one
// exact request's entry. Both delegate to the cache engine's delete API.
// Mutations never touch the cache; their Key is exposed for callers who
// manage invalidation themselves.
//
// # Error Handling
//
// Transport errors from the client and API errors from the envelope are
// propagated (after MapError) unchanged in structure: errors.Is/As work
// against client.APIError and the package sentinels. No retry or recovery
// happens at this layer; resilience policy belongs to the client's retry
// configuration and the cache engine's refresh settings.
//
// # See Also
//
// For cache configuration and key serialization details, see the cache
// package. For the request executor, see the client package. For wiring, see
// pkg/di.
package fetchcache
