package orchestrator

import (
	"context"
	"errors"
	"fmt"

	internalFilter "github.com/goliatone/go-specfilter/internal/openapi/filter"
	internalLoader "github.com/goliatone/go-specfilter/internal/openapi/loader"
	internalParser "github.com/goliatone/go-specfilter/internal/openapi/parser"
	internalWriter "github.com/goliatone/go-specfilter/internal/openapi/writer"
	pkgfilter "github.com/goliatone/go-specfilter/pkg/filter"
	pkgopenapi "github.com/goliatone/go-specfilter/pkg/openapi"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithFilter injects a custom filter.
func WithFilter(filter pkgfilter.Filter) Option {
	return func(o *Orchestrator) {
		o.filter = filter
	}
}

// WithParser injects the parser used for operation reports.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithWriter injects a custom writer.
func WithWriter(writer pkgopenapi.Writer) Option {
	return func(o *Orchestrator) {
		o.writer = writer
	}
}

// Orchestrator coordinates the pipeline from source document to filtered
// output file. Missing dependencies fall back to the built-in implementations.
type Orchestrator struct {
	loader          pkgopenapi.Loader
	filter          pkgfilter.Filter
	parser          pkgopenapi.Parser
	writer          pkgopenapi.Writer
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes a single filter run.
type Request struct {
	// Source identifies where the document lives. Optional when Document is
	// supplied.
	Source pkgopenapi.Source

	// Document allows callers to bypass the loader.
	Document *pkgopenapi.Document

	// Output is the destination path. Empty skips the write stage.
	Output string

	// Policy selects path entries. When its Predicate is nil the policy is
	// resolved from PolicyName and Match.
	Policy     pkgfilter.Policy
	PolicyName string
	Match      string

	// Format overrides the output format. Empty keeps the input format.
	Format pkgopenapi.Format

	// Report lists the operations retained in the output.
	Report bool
}

// Result summarises a run.
type Result struct {
	pkgfilter.Result

	// Policy is the resolved policy that was applied.
	Policy pkgfilter.Policy

	// Output is the path written, empty when the write stage was skipped.
	Output string

	// Operations is populated when Request.Report is set, ordered by path and
	// method.
	Operations []pkgopenapi.Operation
}

// Run executes the loader → filter → parser → writer sequence. The output is
// written last, so any earlier failure leaves the destination untouched.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
	}

	policy, err := resolvePolicy(req)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: %w", err)
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return Result{}, err
	}

	filtered, err := o.filter.Apply(ctx, pkgfilter.Request{
		Document: doc,
		Policy:   policy,
		Format:   req.Format,
	})
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: filter document: %w", err)
	}

	result := Result{Result: filtered, Policy: policy}

	if req.Report {
		operations, err := o.parser.Operations(ctx, filtered.Document)
		if err != nil {
			return Result{}, fmt.Errorf("orchestrator: report operations: %w", err)
		}
		result.Operations = pkgopenapi.SortOperations(operations)
	}

	if req.Output != "" {
		if err := o.writer.Write(ctx, req.Output, filtered.Document); err != nil {
			return Result{}, fmt.Errorf("orchestrator: write output: %w", err)
		}
		result.Output = req.Output
	}

	return result, nil
}

func resolvePolicy(req Request) (pkgfilter.Policy, error) {
	if req.Policy.Predicate != nil {
		return req.Policy, nil
	}
	return pkgfilter.LookupPolicy(req.PolicyName, req.Match)
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (pkgopenapi.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return pkgopenapi.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}
	if o.loader == nil {
		o.loader = internalLoader.New(pkgopenapi.NewLoaderOptions())
	}
	if o.filter == nil {
		o.filter = internalFilter.New(pkgfilter.NewOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if o.writer == nil {
		o.writer = internalWriter.New(pkgopenapi.NewWriterOptions())
	}
	o.defaultsApplied = true
}
