package specfilter

import (
	"context"

	pkgfilter "github.com/goliatone/go-specfilter/pkg/filter"
	pkgopenapi "github.com/goliatone/go-specfilter/pkg/openapi"
	"github.com/goliatone/go-specfilter/pkg/orchestrator"
)

// Result aliases orchestrator.Result for callers that only import the root
// package.
type Result = orchestrator.Result

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// FilterFile reads input, keeps the paths selected by policy and writes the
// result to output in the input's format. Nothing is written when any stage
// fails.
func FilterFile(ctx context.Context, input, output string, policy pkgfilter.Policy, options ...orchestrator.Option) (Result, error) {
	return orchestrator.New(options...).Run(ctx, orchestrator.Request{
		Source: pkgopenapi.SourceFromFile(input),
		Output: output,
		Policy: policy,
	})
}

// FilterDocument filters a pre-loaded document without touching the file
// system.
func FilterDocument(ctx context.Context, doc pkgopenapi.Document, policy pkgfilter.Policy, options ...orchestrator.Option) (pkgopenapi.Document, error) {
	result, err := orchestrator.New(options...).Run(ctx, orchestrator.Request{
		Document: &doc,
		Policy:   policy,
	})
	if err != nil {
		return pkgopenapi.Document{}, err
	}
	return result.Document, nil
}
