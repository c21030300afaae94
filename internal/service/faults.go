// Package service holds the order-assembly workflow.  Faults are typed so
// HTTP handlers can map them to statuses with errors.As without parsing
// messages: validation faults are client input errors returned before any
// write, not-found faults reference missing catalog records, and conflict
// faults carry the exact seat keys that were already taken.  Anything else
// is a store fault and must not be masked as a conflict.
package service

import (
	"fmt"
	"strings"
)

// ValidationError reports malformed client input: missing ids, negative
// coordinates, out-of-range seats.  Never retried automatically.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// NotFoundError reports a referenced film or session that does not exist.
type NotFoundError struct {
	Resource  string // "film" or "session"
	FilmID    string
	SessionID string
}

func (e *NotFoundError) Error() string {
	if e.Resource == "session" {
		return fmt.Sprintf("session %s not found for film %s", e.SessionID, e.FilmID)
	}
	return fmt.Sprintf("film %s not found", e.FilmID)
}

// ConflictError reports seats already taken, whether detected at pre-check
// or at atomic-commit time.  Seats may be empty when the store could not
// name the overlap; the message then degrades to a generic failure.
type ConflictError struct {
	Seats []string
}

func (e *ConflictError) Error() string {
	if len(e.Seats) == 0 {
		return "reservation failed"
	}
	return "already taken: " + strings.Join(e.Seats, ", ")
}
