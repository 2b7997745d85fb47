package fetchcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-client-cache/client"
)

// MapDataFunc transforms the decoded success payload before it reaches the
// cache and the caller. It must be total over the success shape: a returned
// error is surfaced through the same channel as a transport failure, wrapped
// in *MappingError.
type MapDataFunc[D, T any] func(D) (T, error)

// MapErrorFunc transforms the API error before it is surfaced. The returned
// error is what callers see; returning the input unchanged is the identity.
type MapErrorFunc func(error) error

// ErrUnmappedType is returned when no MapData is configured and the decoded
// payload type does not match the requested result type.
var ErrUnmappedType = errors.New("decoded payload does not match result type and no MapData is set")

// MappingError marks a failure inside the success path: the request itself
// succeeded, but decoding or MapData failed. It is distinct from a transport
// or API error so callers can tell a broken mapper apart from a failing
// endpoint.
type MappingError struct {
	Err error
}

// Error implements the error interface.
func (e *MappingError) Error() string {
	return "mapping response data: " + e.Err.Error()
}

// Unwrap exposes the underlying cause.
func (e *MappingError) Unwrap() error {
	return e.Err
}

// execute runs one request through the bound client and translates the
// envelope into a (value, error) pair:
//
//   - transport failure: returned as-is
//   - envelope error branch: mapped through mapError
//   - envelope data branch: decoded into D, mapped through mapData; any
//     failure there becomes a *MappingError
func execute[D, T any](ctx context.Context, r Requester, method, urlPath string, opts client.RequestOptions, mapData MapDataFunc[D, T], mapError MapErrorFunc) (T, error) {
	var zero T

	envelope, err := r.Execute(ctx, method, urlPath, opts)
	if err != nil {
		return zero, err
	}

	if envelope.Err != nil {
		if mapError != nil {
			return zero, mapError(envelope.Err)
		}

		return zero, envelope.Err
	}

	var decoded D
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &decoded); err != nil {
			return zero, &MappingError{Err: fmt.Errorf("decoding response: %w", err)}
		}
	}

	if mapData == nil {
		mapped, ok := any(decoded).(T)
		if !ok {
			return zero, fmt.Errorf("%w: %T", ErrUnmappedType, decoded)
		}

		return mapped, nil
	}

	mapped, err := mapData(decoded)
	if err != nil {
		return zero, &MappingError{Err: err}
	}

	return mapped, nil
}
