package proto

import (
	"errors"
)

var (
	// ErrInvalidObjectType is returned when an object type is neither a blob
	// nor a tree.
	ErrInvalidObjectType = errors.New("invalid object type")
)
