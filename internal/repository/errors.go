// Package repository translates domain entities into lease-store keys and
// back. It owns the key layout exclusively; no other component addresses
// the store directly. The sentinel errors below let the service layer
// distinguish absent records from store failures, which are surfaced
// unmodified for the service to classify.
package repository

import "errors"

// ErrEventNotFound is returned when no event metadata exists for the
// requested event ID.
var ErrEventNotFound = errors.New("event not found")

// ErrHoldNotFound is returned when no hold record, pending or permanent,
// exists for the requested (event, seat) pair.
var ErrHoldNotFound = errors.New("hold not found")
