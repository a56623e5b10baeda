package failure

import "errors"

var (
	// ErrNetworkFailure is any transport failure or unexpected non-2xx answer from a provider.
	ErrNetworkFailure = errors.New("network failure")
	// ErrMalformedSource is a provider payload missing a required field.
	ErrMalformedSource = errors.New("malformed source")
	// ErrLocationUnavailable means no usable coordinate was supplied.
	ErrLocationUnavailable = errors.New("location unavailable")
	// ErrSearchFailure is a failed city search.
	ErrSearchFailure = errors.New("search failure")
	// ErrUnauthorized is an authorization failure on a provider endpoint, the signal to fall back.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrStaleLoad marks a weather load superseded by a newer one for the same client.
	ErrStaleLoad      = errors.New("stale load")
	ErrInvalidUnits   = errors.New("invalid unit system")
	ErrInvalidRequest = errors.New("invalid request")
	// ErrRefreshUnavailable means no refresh queue is configured.
	ErrRefreshUnavailable = errors.New("refresh unavailable")
)
