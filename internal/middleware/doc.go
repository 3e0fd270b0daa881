// Package middleware provides the HTTP middleware chain: request IDs,
// structured request logging, panic recovery, CORS, gzip compression,
// token bucket rate limiting, and the auth guard that resolves the
// session cookie or bearer token into a user ID on the request context.
package middleware
