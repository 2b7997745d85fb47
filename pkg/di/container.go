package di

import (
	"github.com/goliatone/go-client-cache/cache"
	"github.com/goliatone/go-client-cache/client"
	"github.com/goliatone/go-client-cache/fetchcache"
)

// Container provides dependency injection for the request caching components.
// It manages singleton instances of the cache service and key serializer and
// provides factory methods for creating client bindings.
type Container struct {
	cacheService  cache.CacheService
	keySerializer cache.KeySerializer
	config        cache.Config
}

// NewContainer creates a new DI container with the provided cache
// configuration. It initializes the cache service using the sturdyc adapter
// and sets up the default key serializer.
func NewContainer(config cache.Config) (*Container, error) {
	cacheService, err := cache.NewCacheService(config)
	if err != nil {
		return nil, err
	}

	return &Container{
		cacheService:  cacheService,
		keySerializer: cache.NewDefaultKeySerializer(),
		config:        config,
	}, nil
}

// NewContainerWithDefaults creates a new DI container using default
// configuration. This is a convenience constructor for typical use cases
// where custom configuration is not required.
func NewContainerWithDefaults() (*Container, error) {
	return NewContainer(cache.DefaultConfig())
}

// CacheService returns the singleton cache service instance. This allows
// access to the underlying cache for advanced use cases such as manual
// invalidation.
func (c *Container) CacheService() cache.CacheService {
	return c.cacheService
}

// KeySerializer returns the singleton key serializer instance.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keySerializer
}

// Config returns a copy of the cache configuration used by this container.
func (c *Container) Config() cache.Config {
	return c.config
}

// NewBinding creates a fetchcache binding around the provided requester,
// wired to the container's cache service and key serializer.
func (c *Container) NewBinding(requester fetchcache.Requester) *fetchcache.Binding {
	return fetchcache.New(requester, c.cacheService, c.keySerializer)
}

// NewBindingForClient builds the typed HTTP client from the given
// configuration and wraps it in a binding in one step.
func (c *Container) NewBindingForClient(cfg client.Config, opts ...client.Option) (*fetchcache.Binding, error) {
	httpClient, err := client.New(cfg, opts...)
	if err != nil {
		return nil, err
	}

	return c.NewBinding(httpClient), nil
}
