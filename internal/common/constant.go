// Package common contains shared constants and sentinel errors used across
// the chat application components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token on
// protected requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is the expected scheme in the Authorization header.
const BearerPrefix = "Bearer"

// DefaultAvatar is assigned to every account at registration.
const DefaultAvatar = "👤"
