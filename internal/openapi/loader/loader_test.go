package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	pkgopenapi "github.com/goliatone/go-specfilter/pkg/openapi"
)

const sampleYAML = "openapi: 3.0.3\npaths: {}\n"

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "cloudflare.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	loader := New(pkgopenapi.NewLoaderOptions())
	doc, err := loader.Load(context.Background(), pkgopenapi.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Format() != pkgopenapi.FormatYAML {
		t.Fatalf("format = %q, want yaml", doc.Format())
	}
	if string(doc.Raw()) != sampleYAML {
		t.Fatalf("raw = %q", doc.Raw())
	}
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	loader := New(pkgopenapi.NewLoaderOptions())
	_, err := loader.Load(context.Background(), pkgopenapi.SourceFromFile(filepath.Join(t.TempDir(), "missing.json")))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestLoadFromFS(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{
		"specs/cloudflare": {Data: []byte(`{"openapi":"3.0.3","paths":{}}`)},
	}
	loader := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(files)))
	doc, err := loader.Load(context.Background(), pkgopenapi.SourceFromFS("specs/cloudflare"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Format() != pkgopenapi.FormatJSON {
		t.Fatalf("format = %q, want sniffed json", doc.Format())
	}
}

func TestLoadFromFSWithoutFileSystem(t *testing.T) {
	t.Parallel()

	loader := New(pkgopenapi.NewLoaderOptions())
	if _, err := loader.Load(context.Background(), pkgopenapi.SourceFromFS("spec.json")); err == nil {
		t.Fatalf("expected error when fs is not configured")
	}
}

func TestLoadHTTP(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cloudflare.yaml" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(sampleYAML))
	}))
	defer server.Close()

	disabled := New(pkgopenapi.NewLoaderOptions())
	if _, err := disabled.Load(context.Background(), pkgopenapi.SourceFromURL(server.URL+"/cloudflare.yaml")); err == nil {
		t.Fatalf("expected http to be disabled by default")
	}

	loader := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithHTTPFallback(0)))
	doc, err := loader.Load(context.Background(), pkgopenapi.SourceFromURL(server.URL+"/cloudflare.yaml"))
	if err != nil {
		t.Fatalf("load http: %v", err)
	}
	if doc.Format() != pkgopenapi.FormatYAML {
		t.Fatalf("format = %q, want yaml", doc.Format())
	}

	if _, err := loader.Load(context.Background(), pkgopenapi.SourceFromURL(server.URL+"/missing.json")); err == nil {
		t.Fatalf("expected error for 404 response")
	}
}

func TestLoadForcedFormat(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{"spec.txt": {Data: []byte(`{"openapi":"3.0.3"}`)}}
	loader := New(pkgopenapi.NewLoaderOptions(
		pkgopenapi.WithFileSystem(files),
		pkgopenapi.WithInputFormat(pkgopenapi.FormatYAML),
	))
	doc, err := loader.Load(context.Background(), pkgopenapi.SourceFromFS("spec.txt"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Format() != pkgopenapi.FormatYAML {
		t.Fatalf("format = %q, want forced yaml", doc.Format())
	}
}

func TestLoadCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := New(pkgopenapi.NewLoaderOptions())
	_, err := loader.Load(ctx, pkgopenapi.SourceFromFile("cloudflare.json"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
