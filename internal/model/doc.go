// Package model defines the domain entities and request/response types for
// the Gather API.
//
// Request types carry their own validation: each has a pure
// Validate() []FieldError method that runs all rules and reports every
// failing field before any handler logic touches persistence. The event
// category enum lives here once (Categories) and is consumed by both the
// request validators and the categories endpoint.
package model
