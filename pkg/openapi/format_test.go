package openapi

import "testing"

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		location string
		raw      string
		want     Format
	}{
		{name: "json extension", location: "cloudflare.json", raw: "openapi: 3.0.0", want: FormatJSON},
		{name: "yaml extension", location: "cloudflare.yaml", raw: `{"openapi":"3.0.0"}`, want: FormatYAML},
		{name: "yml extension", location: "specs/CLOUDFLARE.YML", raw: "", want: FormatYAML},
		{name: "url with query", location: "https://example.com/spec.json?ref=main", raw: "", want: FormatJSON},
		{name: "sniff object", location: "spec", raw: "  \n{\"openapi\":\"3.0.0\"}", want: FormatJSON},
		{name: "sniff yaml", location: "spec", raw: "openapi: 3.0.0\n", want: FormatYAML},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := DetectFormat(tc.location, []byte(tc.raw)); got != tc.want {
				t.Fatalf("DetectFormat(%q) = %q, want %q", tc.location, got, tc.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]Format{"json": FormatJSON, " YAML ": FormatYAML, "yml": FormatYAML} {
		got, err := ParseFormat(input)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseFormat(%q) = %q, want %q", input, got, want)
		}
	}

	if _, err := ParseFormat("toml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestFormatExtension(t *testing.T) {
	t.Parallel()

	if got := FormatJSON.Extension(); got != ".json" {
		t.Fatalf("json extension = %q", got)
	}
	if got := FormatYAML.Extension(); got != ".yaml" {
		t.Fatalf("yaml extension = %q", got)
	}
}
