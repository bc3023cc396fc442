package timetable

import (
	"errors"
	"fmt"
)

var (
	ErrNoBands       = errors.New("no bands to schedule")
	ErrSlotNotFound  = errors.New("slot not found")
	ErrUnknownBand   = errors.New("band is not on the roster")
	ErrDuplicateBand = errors.New("band listed twice")
)

// ValidationError reports a single rejected field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
