package fetchcache

import (
	"context"
	"sync"

	"github.com/goliatone/go-client-cache/client"
)

// MutationOptions configures a mutation handle. Mutations take no Params at
// construction: the full request options arrive with each Trigger call.
type MutationOptions[D, T any] struct {
	// Tags participates in the bucket key.
	Tags []string

	// MapData and MapError behave exactly as in QueryOptions.
	MapData  MapDataFunc[D, T]
	MapError MapErrorFunc
}

// Mutation is an on-demand request bucket for one endpoint. Construction
// performs no I/O; every Trigger call executes exactly one request, bypassing
// the cache, and records the mapped outcome as the bucket's state.
type Mutation[D, T any] struct {
	binding *Binding
	method  string
	urlPath string
	opts    MutationOptions[D, T]
	key     string

	mu       sync.Mutex
	inFlight int
	data     T
	hasData  bool
	err      error
}

// NewMutation creates a mutation handle for {method, urlPath}.
func NewMutation[D, T any](b *Binding, method, urlPath string, opts MutationOptions[D, T]) *Mutation[D, T] {
	return &Mutation[D, T]{
		binding: b,
		method:  method,
		urlPath: urlPath,
		opts:    opts,
		key:     b.mutationKey(method, urlPath, opts.Tags),
	}
}

// Key returns the static {method, url, tags} bucket key. It identifies the
// mutation's state bucket and can be handed to the cache service's
// invalidation API; it never causes fetching by itself.
func (m *Mutation[D, T]) Key() string {
	return m.key
}

// Trigger executes the mutation once with the given request options and
// returns the mapped result. The outcome is also recorded on the handle:
// on success Data reflects the new value and Err is cleared, on failure Err
// holds the mapped error and Data keeps its last-known value.
func (m *Mutation[D, T]) Trigger(ctx context.Context, arg client.RequestOptions) (T, error) {
	m.mu.Lock()
	m.inFlight++
	m.mu.Unlock()

	result, err := execute(ctx, m.binding.client, m.method, m.urlPath, arg, m.opts.MapData, m.opts.MapError)

	m.mu.Lock()
	m.inFlight--

	if err != nil {
		m.err = err
	} else {
		m.data = result
		m.hasData = true
		m.err = nil
	}
	m.mu.Unlock()

	return result, err
}

// Data returns the bucket's last successful mapped result, and whether one
// exists.
func (m *Mutation[D, T]) Data() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.data, m.hasData
}

// Err returns the error from the most recent Trigger, nil after a success.
func (m *Mutation[D, T]) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.err
}

// IsMutating reports whether any Trigger call is currently in flight.
func (m *Mutation[D, T]) IsMutating() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.inFlight > 0
}
