// Package datastore holds the process-lifetime registries backing the
// API. Every registry is an in-memory map guarded by its own RWMutex;
// entries are never evicted. The constructors and context-first method
// signatures are kept compatible with a future durable backend.
package datastore

import "errors"

var (
	// ErrNotFound is returned when a lookup key has no entry.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when registering an email that
	// already has an account.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials is returned on any login failure. Unknown
	// email and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
