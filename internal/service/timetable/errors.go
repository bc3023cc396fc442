package timetable

import (
	"errors"
	"fmt"
	"time"

	"github.com/kirinyoku/ttgo/internal/timetable"
)

var (
	ErrEventNotFound = errors.New("event not found")
	// ErrConfirmationRequired is returned by Generate when the event already
	// has slots and the caller did not confirm replacing them.
	ErrConfirmationRequired = errors.New("existing slots would be replaced")
	ErrSlotConflict         = errors.New("slot belongs to another event")
	ErrUnknownDraftOp       = errors.New("unknown draft operation")

	ErrSlotNotFound = timetable.ErrSlotNotFound
	ErrNoBands      = timetable.ErrNoBands
)

type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry in %s", e.RetryAfter)
}
