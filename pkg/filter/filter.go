package filter

import (
	"context"

	pkgopenapi "github.com/goliatone/go-specfilter/pkg/openapi"
)

// PathsSection is the top-level key filtered entry by entry.
const PathsSection = "paths"

// DefaultSections is the allow-list of top-level sections kept in the output.
var DefaultSections = []string{"paths", "openapi", "tags", "info", "security", "servers"}

// Filter prunes a document according to a Request.
type Filter interface {
	Apply(ctx context.Context, req Request) (Result, error)
}

// Request carries the inputs of a single filter pass.
type Request struct {
	Document pkgopenapi.Document
	Policy   Policy

	// Format selects the output format. Empty keeps the input format.
	Format pkgopenapi.Format
}

// Result describes the filtered document and what was removed. All slices
// follow document order.
type Result struct {
	Document        pkgopenapi.Document
	Sections        []string
	DroppedSections []string
	Kept            []string
	Dropped         []string
}

// Options configures Filter implementations.
type Options struct {
	// Sections is the allow-list of top-level keys. PathsSection is always
	// included.
	Sections []string
}

// Option mutates Options during construction.
type Option func(*Options)

// WithSections replaces the allow-list. PathsSection is re-added if missing.
func WithSections(sections ...string) Option {
	return func(opts *Options) {
		opts.Sections = append([]string(nil), sections...)
	}
}

// NewOptions applies Option functions over the defaults.
func NewOptions(options ...Option) Options {
	cfg := Options{
		Sections: append([]string(nil), DefaultSections...),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if !contains(cfg.Sections, PathsSection) {
		cfg.Sections = append(cfg.Sections, PathsSection)
	}
	return cfg
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
