package parser

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-specfilter/pkg/openapi"
)

func TestOperationsFromJSONIgnoresDanglingReferences(t *testing.T) {
	t.Parallel()

	const document = `{
  "openapi": "3.0.3",
  "info": {"title": "Cloudflare API", "version": "4.0.0"},
  "paths": {
    "/accounts/{account_id}/ai/run/{model_name}": {
      "parameters": [{"$ref": "#/components/parameters/account_id"}],
      "post": {
        "operationId": "workers-ai-post-run-model",
        "summary": "Execute AI model",
        "tags": ["Workers AI"],
        "responses": {"200": {"$ref": "#/components/responses/ok"}}
      }
    },
    "/accounts/{account_id}/ai/run/@cf/openai/whisper": {
      "post": {"deprecated": true, "responses": {"200": {"description": "ok"}}}
    }
  }
}`

	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile("filtered.json"), []byte(document))
	if err != nil {
		t.Fatalf("construct document: %v", err)
	}

	operations, err := New(pkgopenapi.NewParserOptions()).Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("parse operations: %v", err)
	}

	want := map[string]pkgopenapi.Operation{
		"workers-ai-post-run-model": {
			ID:      "workers-ai-post-run-model",
			Method:  "POST",
			Path:    "/accounts/{account_id}/ai/run/{model_name}",
			Summary: "Execute AI model",
			Tags:    []string{"Workers AI"},
		},
		"post:/accounts/{account_id}/ai/run/@cf/openai/whisper": {
			ID:         "post:/accounts/{account_id}/ai/run/@cf/openai/whisper",
			Method:     "POST",
			Path:       "/accounts/{account_id}/ai/run/@cf/openai/whisper",
			Deprecated: true,
		},
	}
	if diff := cmp.Diff(want, operations); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
}

func TestOperationsFromYAML(t *testing.T) {
	t.Parallel()

	const document = `openapi: 3.0.3
info:
  title: Cloudflare API
  version: 4.0.0
paths:
  /accounts/{account_id}/ai/run/{model_name}:
    get:
      operationId: workers-ai-get-run
    post:
      operationId: workers-ai-post-run
`
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile("filtered.yaml"), []byte(document))
	if err != nil {
		t.Fatalf("construct document: %v", err)
	}

	operations, err := New(pkgopenapi.NewParserOptions()).Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("parse operations: %v", err)
	}
	sorted := pkgopenapi.SortOperations(operations)
	if len(sorted) != 2 || sorted[0].Method != "GET" || sorted[1].Method != "POST" {
		t.Fatalf("operations = %+v", sorted)
	}
}

func TestOperationsEmptyPaths(t *testing.T) {
	t.Parallel()

	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("filtered.json"), []byte(`{"openapi":"3.0.3","paths":{}}`))

	operations, err := New(pkgopenapi.NewParserOptions()).Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("parse operations: %v", err)
	}
	if len(operations) != 0 {
		t.Fatalf("expected no operations, got %d", len(operations))
	}

	strict := New(pkgopenapi.NewParserOptions(pkgopenapi.WithEmptyPaths(false)))
	if _, err := strict.Operations(context.Background(), doc); err == nil {
		t.Fatalf("expected error when empty paths are rejected")
	}
}
