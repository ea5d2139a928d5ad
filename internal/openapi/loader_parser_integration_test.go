package openapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	specfilter "github.com/goliatone/go-specfilter"
	pkgfilter "github.com/goliatone/go-specfilter/pkg/filter"
	pkgopenapi "github.com/goliatone/go-specfilter/pkg/openapi"
)

func TestLoaderFilterParserIntegration(t *testing.T) {
	ctx := context.Background()

	fixture := filepath.Join("..", "..", "pkg", "orchestrator", "testdata", "cloudflare.yaml")
	data, err := os.ReadFile(fixture)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	tmp := t.TempDir()
	filePath := filepath.Join(tmp, "cloudflare.yaml")
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		t.Fatalf("write temp fixture: %v", err)
	}

	loader := specfilter.NewLoader()
	filter := specfilter.NewFilter()
	parser := specfilter.NewParser()

	// File source
	docFile, err := loader.Load(ctx, pkgopenapi.SourceFromFile(filePath))
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	assertSingleOperation(t, ctx, filter, parser, docFile)

	// HTTP source without an extension falls back to content sniffing.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}))
	defer server.Close()

	loaderHTTP := specfilter.NewLoader(pkgopenapi.WithHTTPFallback(0))
	docHTTP, err := loaderHTTP.Load(ctx, pkgopenapi.SourceFromURL(server.URL))
	if err != nil {
		t.Fatalf("load http: %v", err)
	}
	if docHTTP.Format() != pkgopenapi.FormatYAML {
		t.Fatalf("expected sniffed yaml format, got %q", docHTTP.Format())
	}
	assertSingleOperation(t, ctx, filter, parser, docHTTP)
}

func assertSingleOperation(t *testing.T, ctx context.Context, filter pkgfilter.Filter, parser pkgopenapi.Parser, doc pkgopenapi.Document) {
	t.Helper()

	result, err := filter.Apply(ctx, pkgfilter.Request{Document: doc, Policy: pkgfilter.DefaultPolicy()})
	if err != nil {
		t.Fatalf("filter %s: %v", doc.Location(), err)
	}
	operations, err := parser.Operations(ctx, result.Document)
	if err != nil {
		t.Fatalf("parse %s: %v", doc.Location(), err)
	}
	if len(operations) != 1 {
		t.Fatalf("expected 1 operation, got %d: %v", len(operations), operations)
	}
	if _, ok := operations["workers-ai-post-run-model"]; !ok {
		t.Fatalf("expected workers-ai-post-run-model, got %v", operations)
	}
}
