package service

import "errors"

var (
	// ErrMissingPhaseTypes indicates the logistics phase types have not
	// been seeded; the assignment operation aborts without side effects.
	ErrMissingPhaseTypes = errors.New("logistics phase types missing")

	// ErrPersistFailed indicates the store rejected a write during a
	// draft commit. The error message carries the offending phase id and
	// the caller's draft set must stay intact for retry.
	ErrPersistFailed = errors.New("persisting phase window failed")

	// ErrAvailabilityCheck indicates the cross-event conflict query
	// errored. Callers treat availability as unknown and warn, never as
	// a silent yes or no.
	ErrAvailabilityCheck = errors.New("availability check failed")
)
