// Package repository holds the in-memory stores backing the storefront
// services and the sentinel errors shared across them.  These sentinel
// values allow higher layers such as handlers to distinguish between
// different failure scenarios, e.g. translating ErrEmailExists into an
// HTTP 409 response while ErrInvalidRefresh becomes a 401.
package repository

import "errors"

// ErrEmailExists is returned when registration would violate the
// one-user-per-normalized-email invariant.  Handlers translate this
// into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when no user matches the given email or id.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidRefresh is returned when a refresh token is not present in the
// refresh index: never issued, revoked by logout, or lost to a restart.
// Handlers translate this into an HTTP 401 response.
var ErrInvalidRefresh = errors.New("invalid refresh token")

// ErrProductNotFound is returned for lookups and mutations of unknown
// catalog items.
var ErrProductNotFound = errors.New("product not found")

// ErrOrderNotFound is returned for lookups of unknown orders.
var ErrOrderNotFound = errors.New("order not found")
