package specfilter

import (
	internalFilter "github.com/goliatone/go-specfilter/internal/openapi/filter"
	internalLoader "github.com/goliatone/go-specfilter/internal/openapi/loader"
	internalParser "github.com/goliatone/go-specfilter/internal/openapi/parser"
	internalWriter "github.com/goliatone/go-specfilter/internal/openapi/writer"
	pkgfilter "github.com/goliatone/go-specfilter/pkg/filter"
	pkgopenapi "github.com/goliatone/go-specfilter/pkg/openapi"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	cfg := pkgopenapi.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a parser backed by the internal implementation.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	cfg := pkgopenapi.NewParserOptions(options...)
	return internalParser.New(cfg)
}

// NewFilter constructs the section/path filter.
func NewFilter(options ...pkgfilter.Option) pkgfilter.Filter {
	cfg := pkgfilter.NewOptions(options...)
	return internalFilter.New(cfg)
}

// NewWriter constructs an atomic file writer.
func NewWriter(options ...pkgopenapi.WriterOption) pkgopenapi.Writer {
	cfg := pkgopenapi.NewWriterOptions(options...)
	return internalWriter.New(cfg)
}
