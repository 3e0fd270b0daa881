// Package handler contains the HTTP handlers for the Gather API. Handlers
// decode and validate request bodies, delegate to services, and render the
// {success, data} response envelope. Service errors are translated to HTTP
// responses in one place, MapServiceError.
package handler
