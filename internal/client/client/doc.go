// Package client talks to the meal planner HTTP API on behalf of the CLI.
//
// HTTPClient keeps the session's token pair in memory, sends the access
// token as a bearer header and, when the server reports it expired,
// refreshes the pair once and retries the call.
//
// Failures are reported as sentinel errors (ErrUnavailable, ErrUnauthorized,
// ErrNotLoggedIn) or as *APIError carrying the server's message.
package client
