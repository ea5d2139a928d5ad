package filter

import "errors"

var (
	// ErrMissingPaths signals the document has no top-level paths section.
	ErrMissingPaths = errors.New("filter: document has no paths section")
	// ErrInvalidPaths signals the paths section is not a mapping.
	ErrInvalidPaths = errors.New("filter: paths section is not a mapping")
	// ErrInvalidDocument signals the document root is not a mapping.
	ErrInvalidDocument = errors.New("filter: document root is not a mapping")
	// ErrUnknownPolicy is returned by LookupPolicy for unregistered names.
	ErrUnknownPolicy = errors.New("filter: unknown policy")
	// ErrNilPredicate is returned when a policy carries no predicate.
	ErrNilPredicate = errors.New("filter: policy predicate is nil")
)
