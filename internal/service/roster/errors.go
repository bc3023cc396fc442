package roster

import (
	"errors"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrBandNotFound  = errors.New("band not found")
)
