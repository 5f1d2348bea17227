// Package client talks to the alumniauth HTTP API.
//
// HTTPClient keeps the access and refresh tokens of the current session.
// When a protected call fails because the access token expired, it exchanges
// the refresh token for a new access token once and retries the call.
//
// # Error Handling
//
// Transport failures are reported as ErrUnavailable, missing local tokens as
// ErrUnauthorized, and a rejected refresh token as ErrSessionExpired. Any
// other non-2xx response is an *APIError carrying the server's message.
package client
