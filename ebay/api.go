package ebay

import "context"

// API is the surface the inventory and listing services depend on.
type API interface {
	// Authenticate eagerly obtains an access token so credential problems
	// surface before any inventory call is attempted.
	Authenticate() error

	// Do performs one authenticated, throttled call against the Sell
	// Inventory API. Path is relative to the inventory API root. A non-nil
	// body is sent as JSON; a non-nil out receives the decoded response.
	// Non-2xx responses return *APIError.
	Do(ctx context.Context, method, path string, body, out interface{}) error
}
