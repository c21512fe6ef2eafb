package fakestore

import (
	"errors"
	"fmt"
)

// Upstream failure classes
var (
	// ErrUpstreamUnavailable means the request never produced a response
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrUpstreamRequestFailed means the upstream answered with a non-2xx status
	ErrUpstreamRequestFailed = errors.New("upstream request failed")
	// ErrUpstreamInvalidResponse means the body could not be decoded
	ErrUpstreamInvalidResponse = errors.New("upstream returned an invalid response")
)

// Upstream resources
const (
	ResourceProducts = "products"
	ResourceCarts    = "carts"
)

// UpstreamFetchError describes a failed fetch of one upstream resource.
// StatusCode is zero when no response was received.
type UpstreamFetchError struct {
	Resource   string
	StatusCode int
	Err        error
}

func (e *UpstreamFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: %v (HTTP %d)", e.Resource, e.Err, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.Resource, e.Err)
}

func (e *UpstreamFetchError) Unwrap() error {
	return e.Err
}
