package fetchcache

import (
	"context"
	"errors"
	"reflect"
	"sync"

	"github.com/goliatone/go-client-cache/cache"
	"github.com/goliatone/go-client-cache/client"
)

// ErrGetParamsRequired is returned when a page sequence is constructed
// without a GetParams function.
var ErrGetParamsRequired = errors.New("GetParams is required for a page sequence")

// PageParamsFunc computes the request parameters for one page. previous is
// the previous page's mapped data, nil for page 0.
type PageParamsFunc[T any] func(pageIndex int, previous *T) client.Params

// PagesOptions configures an infinite query. D is the per-page decode type;
// T is the per-page mapped type.
type PagesOptions[D, T any] struct {
	// GetParams computes per-page parameters. Required.
	GetParams PageParamsFunc[T]

	// Body is forwarded to the client untouched on every page request.
	Body any

	// Pause suppresses all fetching; Load returns a nil page slice.
	Pause bool

	// Tags participates in every per-page key.
	Tags []string

	// MapData and MapError behave exactly as in QueryOptions, applied per page.
	MapData  MapDataFunc[D, T]
	MapError MapErrorFunc
}

// PageSequence is a growable, cached sequence of pages for one endpoint.
// Pages are fetched in ascending index order, each through its own cache key
// derived from GetParams, so growing the sequence reuses already-fetched
// pages. The sequence stops early when a page's mapped data is an empty
// slice or array; see emptyPage for the exact predicate.
type PageSequence[D, T any] struct {
	binding *Binding
	method  string
	urlPath string
	opts    PagesOptions[D, T]

	mu   sync.Mutex
	size int
	last []T
}

// NewPageSequence creates a page sequence for {method, urlPath} with an
// initial requested size of one page.
func NewPageSequence[D, T any](b *Binding, method, urlPath string, opts PagesOptions[D, T]) (*PageSequence[D, T], error) {
	if opts.GetParams == nil {
		return nil, ErrGetParamsRequired
	}

	return &PageSequence[D, T]{
		binding: b,
		method:  method,
		urlPath: urlPath,
		opts:    opts,
		size:    1,
	}, nil
}

// Size returns the currently requested page count.
func (s *PageSequence[D, T]) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.size
}

// SetSize changes the requested page count and reloads the sequence.
// Growing the size fetches only the newly required page indices; shrinking
// just truncates the view, keeping cached pages intact.
func (s *PageSequence[D, T]) SetSize(ctx context.Context, n int) ([]T, error) {
	s.mu.Lock()
	if n < 0 {
		n = 0
	}
	s.size = n
	s.mu.Unlock()

	return s.Load(ctx)
}

// Pages returns the pages from the most recent successful Load without
// fetching.
func (s *PageSequence[D, T]) Pages() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]T(nil), s.last...)
}

// Load fetches pages 0..Size()-1 in ascending index order. Already-cached
// pages are served by the cache engine without a network call. A failing
// page returns the pages fetched before it along with the error; the
// sequence's stored view is not advanced past the failure.
func (s *PageSequence[D, T]) Load(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	size := s.size
	s.mu.Unlock()

	if s.opts.Pause || size == 0 {
		return nil, nil
	}

	var (
		pages []T
		prev  *T
	)

	for i := 0; i < size; i++ {
		if prev != nil && emptyPage(*prev) {
			break
		}

		params := s.opts.GetParams(i, prev)
		key := s.binding.queryKey(s.method, s.urlPath, params, s.opts.Tags)
		s.binding.trackKey(key, s.opts.Tags)

		page, err := cache.GetOrFetch(ctx, s.binding.cache, key, func(ctx context.Context) (T, error) {
			requestOpts := client.RequestOptions{Params: params, Body: s.opts.Body}

			return execute(ctx, s.binding.client, s.method, s.urlPath, requestOpts, s.opts.MapData, s.opts.MapError)
		})
		if err != nil {
			return pages, err
		}

		pages = append(pages, page)
		prev = &pages[len(pages)-1]
	}

	s.mu.Lock()
	s.last = pages
	s.mu.Unlock()

	return pages, nil
}

// emptyPage is the sequence termination predicate: a mapped page that is a
// slice or array of length zero signals end-of-data. Non-sequence page types
// never terminate; growth then stops only via SetSize.
func emptyPage(page any) bool {
	rv := reflect.ValueOf(page)

	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return false
		}

		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len() == 0
	default:
		return false
	}
}
