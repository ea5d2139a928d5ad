package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-specfilter/pkg/testsupport"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "specfilter.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	want := Config{Input: "cloudflare.json", Policy: "path"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
input: specs/cloudflare.yaml
policy: method
match: gateway
sections: [openapi, info]
no_clobber: true
`)
	t.Setenv("SPECFILTER_MATCH", "ai")
	t.Setenv("SPECFILTER_VERBOSE", "true")

	cfg, err := loadConfig([]string{"-config", path, "-policy", "path", "-sections", "openapi,servers"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	want := Config{
		Input:     "specs/cloudflare.yaml",
		Policy:    "path",
		Match:     "ai",
		Sections:  []string{"openapi", "servers"},
		NoClobber: true,
		Verbose:   true,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := loadConfig([]string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestRun_ConfigSections(t *testing.T) {
	dir := t.TempDir()
	input := testsupport.CopyFixture(t, filepath.Join(fixtureDir, "cloudflare.json"), dir)
	path := writeConfig(t, dir, "sections:\n  - openapi\n")

	if err := run(context.Background(), []string{"-config", path, "-input", input}, &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := testsupport.MustReadGoldenString(t, filepath.Join(dir, "cloudflare-filtered.json"))
	if strings.Contains(got, `"info"`) || strings.Contains(got, `"servers"`) {
		t.Fatalf("expected only openapi and paths sections:\n%s", got)
	}
	if !strings.HasPrefix(got, "{\n  \"openapi\": \"3.0.3\",\n  \"paths\": {") {
		t.Fatalf("unexpected output prefix:\n%s", got)
	}
}
