package ir

import (
	"errors"
)

var (
	// ErrTypeMismatch is returned when a path segment is applied to a node
	// of a kind it cannot address, e.g. an index into an object.
	ErrTypeMismatch = errors.New("type mismatch")

	ErrBadFormat = errors.New("bad format")
)
