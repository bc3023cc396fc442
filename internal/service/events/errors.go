package events

import (
	"errors"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrEventConflict = errors.New("event already exists")
)
