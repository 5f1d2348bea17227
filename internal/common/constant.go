// Package common contains shared constants and sentinel errors used across
// the server and the CLI client.
package common

// AccessTokenHeaderName carries the raw access token (no "Bearer " scheme).
const AccessTokenHeaderName = "Authorization"

// RefreshTokenHeaderName carries the raw refresh token on /refresh-token.
const RefreshTokenHeaderName = "x-refresh-token"

// RequestIDHeaderName is echoed back on every response.
const RequestIDHeaderName = "X-Request-ID"

// TokenExpiredMessage is the error body returned for an expired access token.
// Clients match on it to decide whether a refresh is worth trying.
const TokenExpiredMessage = "Token expired. Please refresh your token."
