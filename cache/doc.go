// Package cache provides caching interfaces and key serialization for
// request caching.
//
// # Overview
//
// This package exports two main interfaces and their default implementations:
//
//   - CacheService: A read-through caching interface backed by a
//     stale-while-revalidate engine
//   - KeySerializer: Builds stable cache keys from a method name and the
//     request parameters that identify one cacheable unit of work
//
// The cache package is designed to work with the fetchcache binding, which
// caches read requests against a typed HTTP client while maintaining type
// safety through generics.
//
// # Basic Usage
//
// The simplest way to use the cache package is with the default key serializer:
//
//	serializer := cache.NewDefaultKeySerializer()
//	key := serializer.SerializeKey("GET", "/users", params, tags)
//
// For request caching you would typically combine this with a CacheService
// implementation:
//
//	users, err := cache.GetOrFetch(ctx, cacheService, key, func(ctx context.Context) ([]User, error) {
//		return fetchUsers(ctx, params)
//	})
//
// # Key Serialization Strategy
//
// The default key serializer produces deterministic keys for the value shapes
// that appear in request descriptors:
//
//   - url.Values and http.Header: canonical sorted key=value encoding, so
//     construction order never changes the key
//   - Basic types: direct string representation
//   - Slices/arrays: recursive serialization of elements
//   - Maps: sorted pairs for deterministic output
//   - Structs: exported fields as name:value pairs
//   - Anything else: JSON fallback
//
// Two requests whose {method, url, params, tags} are deep-equal by value are
// guaranteed to serialize to the same key, and therefore share one cache
// entry and one in-flight fetch.
//
// # Custom Key Serializers
//
// You can implement your own KeySerializer for specialized key generation:
//
//	type prefixedSerializer struct {
//		prefix string
//	}
//
//	func (s *prefixedSerializer) SerializeKey(method string, args ...any) string {
//		// Custom logic here
//	}
//
// This is useful when you need stable keys across process restarts, backend
// specific key formats, or application-specific namespacing.
//
// # Error Handling
//
// The package prioritizes stability over perfection. When JSON marshaling
// fails during serialization, the key serializer falls back to type
// information rather than panicking, so cache operations continue even with
// problematic parameter types.
//
// # See Also
//
// For the request binding that consumes these interfaces, see the fetchcache
// package. For the sturdyc-backed CacheService, see NewCacheService.
package cache
