// Package client talks to the authkeeper HTTP API on behalf of the CLI.
//
// HTTPClient covers the three account operations: Register, Login and
// CurrentUser. Non-2xx answers come back as *APIError, which matches one of
// the sentinels ErrRejected, ErrUnauthorized, ErrNotFound or ErrServer with
// errors.Is. Transport failures match ErrUnavailable.
//
// All operations accept context.Context and honor cancellation.
package client
