// FILE: benchconf/errors.go
package benchconf

import "errors"

// Sentinel errors returned by the package. Callers should test with errors.Is
// since most return paths wrap these with additional context.
var (
	// ErrInvalidDescriptor indicates a descriptor was declared with an empty
	// id, an invalid owner name, or a missing value type.
	ErrInvalidDescriptor = errors.New("invalid descriptor")

	// ErrDuplicateDescriptor indicates the (owner, id) pair is already
	// registered. The registry is append-only; re-declaration is a conflict.
	ErrDuplicateDescriptor = errors.New("descriptor already registered")

	// ErrNotSet indicates a direct explicit-value read on a descriptor that
	// has no explicit value. Resolve never returns this; only Explicit does.
	ErrNotSet = errors.New("no explicit value")

	// ErrFrozen indicates a mutation attempt on a frozen container or one of
	// its descendants. Treat as a programming error: clone before mutating.
	ErrFrozen = errors.New("container is frozen")

	// ErrNotNested indicates a child-container access through a descriptor
	// that does not declare child settings.
	ErrNotNested = errors.New("descriptor has no child settings")

	// ErrInvalidValue indicates a value whose type is not assignable to the
	// descriptor's declared value type.
	ErrInvalidValue = errors.New("value type mismatch")

	// ErrFileNotFound indicates the requested settings file does not exist.
	ErrFileNotFound = errors.New("settings file not found")
)
