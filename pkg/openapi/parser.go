package openapi

import (
	"context"
	"fmt"
	"sort"
)

// Parser lists the operations contained in a document. It is used to report
// what survived filtering, not to validate the document.
type Parser interface {
	Operations(ctx context.Context, doc Document) (map[string]Operation, error)
}

// ParserOptions exposes parser toggles.
type ParserOptions struct {
	// AllowEmptyPaths accepts documents whose paths section has no entries.
	// A filter that matched nothing produces exactly that, so it defaults to
	// true.
	AllowEmptyPaths bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithEmptyPaths toggles acceptance of documents without paths.
func WithEmptyPaths(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowEmptyPaths = enabled
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		AllowEmptyPaths: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// Operation is the subset of operation metadata surfaced in reports.
type Operation struct {
	ID         string
	Method     string
	Path       string
	Summary    string
	Tags       []string
	Deprecated bool
}

// String renders the operation as a single report line.
func (op Operation) String() string {
	line := fmt.Sprintf("%-7s %s", op.Method, op.Path)
	if op.ID != "" {
		line += " (" + op.ID + ")"
	}
	if op.Deprecated {
		line += " [deprecated]"
	}
	return line
}

// SortOperations flattens an operations map ordered by path, then method.
func SortOperations(operations map[string]Operation) []Operation {
	out := make([]Operation, 0, len(operations))
	for _, op := range operations {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path == out[j].Path {
			if out[i].Method == out[j].Method {
				return out[i].ID < out[j].ID
			}
			return out[i].Method < out[j].Method
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// Construction helpers live in the top-level specfilter package to avoid import cycles.
