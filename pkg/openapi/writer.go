package openapi

import (
	"context"
	"errors"
	"io/fs"
)

var (
	// ErrOutputExists is returned when the destination exists and overwriting
	// is disabled.
	ErrOutputExists = errors.New("openapi writer: destination already exists")
	// ErrWriteDeclined is returned when the confirmation hook refuses an
	// overwrite.
	ErrWriteDeclined = errors.New("openapi writer: overwrite declined")
)

// Writer persists a document to a destination path.
type Writer interface {
	Write(ctx context.Context, path string, doc Document) error
}

// ConfirmFunc is asked before an existing destination is replaced.
type ConfirmFunc func(ctx context.Context, path string) (bool, error)

// WriterOptions configures Writer implementations.
type WriterOptions struct {
	// Overwrite allows replacing an existing destination. Defaults to true.
	Overwrite bool

	// Confirm, when set, is consulted for existing destinations and takes
	// precedence over Overwrite.
	Confirm ConfirmFunc

	// FileMode applied to newly written files. Defaults to 0o644.
	FileMode fs.FileMode
}

// WriterOption mutates WriterOptions during construction.
type WriterOption func(*WriterOptions)

// WithOverwrite toggles replacing existing destinations.
func WithOverwrite(enabled bool) WriterOption {
	return func(opts *WriterOptions) {
		opts.Overwrite = enabled
	}
}

// WithConfirm registers a confirmation hook for existing destinations.
func WithConfirm(fn ConfirmFunc) WriterOption {
	return func(opts *WriterOptions) {
		opts.Confirm = fn
	}
}

// WithFileMode overrides the permissions of written files.
func WithFileMode(mode fs.FileMode) WriterOption {
	return func(opts *WriterOptions) {
		opts.FileMode = mode
	}
}

// NewWriterOptions applies WriterOption functions over the defaults.
func NewWriterOptions(options ...WriterOption) WriterOptions {
	cfg := WriterOptions{
		Overwrite: true,
		FileMode:  0o644,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
