package proto

import (
	"encoding/json"
	"fmt"
)

// ObjectType is the type of a git object in a tree. It is either
// ObjectBlob or ObjectTree; the zero value is invalid.
type ObjectType int

const (
	// ObjectBlob is a file.
	ObjectBlob ObjectType = iota + 1
	// ObjectTree is a directory.
	ObjectTree
)

const (
	objectBlobName = "BLOB"
	objectTreeName = "TREE"
)

// String implements fmt.Stringer.
func (t ObjectType) String() string {
	switch t {
	case ObjectBlob:
		return objectBlobName
	case ObjectTree:
		return objectTreeName
	default:
		return fmt.Sprintf("ObjectType(%d)", int(t))
	}
}

// Valid reports whether t is a blob or a tree.
func (t ObjectType) Valid() bool {
	return t == ObjectBlob || t == ObjectTree
}

// ParseObjectType parses the wire name of an object type.
func ParseObjectType(s string) (ObjectType, error) {
	switch s {
	case objectBlobName:
		return ObjectBlob, nil
	case objectTreeName:
		return ObjectTree, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidObjectType, s)
	}
}

// MarshalJSON implements json.Marshaler.
func (t ObjectType) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidObjectType, int(t))
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *ObjectType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidObjectType, b)
	}

	ot, err := ParseObjectType(s)
	if err != nil {
		return err
	}

	*t = ot
	return nil
}
