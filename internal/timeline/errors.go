package timeline

import "errors"

var (
	// ErrInvalidDuration indicates a negative duration input.
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrInvalidEventWindow indicates an event whose end precedes its start.
	ErrInvalidEventWindow = errors.New("event end before event start")
)
