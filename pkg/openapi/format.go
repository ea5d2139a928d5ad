package openapi

import (
	"bytes"
	"fmt"
	"path"
	"strings"
)

// Format names the serialization syntax of a document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat resolves user input such as "json", "YAML" or "yml".
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("openapi: unsupported format %q", raw)
	}
}

// Extension returns the canonical file extension including the leading dot.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	default:
		return ""
	}
}

// FormatFromExtension reports the format implied by a file name. The boolean
// is false when the extension is not recognised.
func FormatFromExtension(location string) (Format, bool) {
	ext := strings.ToLower(path.Ext(stripQuery(location)))
	switch ext {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return "", false
	}
}

// DetectFormat picks the format from the location extension and falls back to
// sniffing the payload: a leading '{' or '[' means JSON, anything else YAML.
func DetectFormat(location string, raw []byte) Format {
	if format, ok := FormatFromExtension(location); ok {
		return format
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

func stripQuery(location string) string {
	if idx := strings.IndexAny(location, "?#"); idx >= 0 {
		return location[:idx]
	}
	return location
}
