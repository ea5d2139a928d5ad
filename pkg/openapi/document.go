package openapi

import (
	"errors"
	"fmt"
)

// Document wraps the raw specification payload, its origin and its format.
// Exposing this type instead of parser trees keeps the public API decoupled
// from the codec in internal/openapi/codec.
type Document struct {
	source Source
	raw    []byte
	format Format
}

// NewDocument constructs a Document, detecting the format from the source
// location and the payload.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("openapi: source is required")
	}
	return NewDocumentWithFormat(src, raw, DetectFormat(src.Location(), raw))
}

// NewDocumentWithFormat constructs a Document with an explicit format.
func NewDocumentWithFormat(src Source, raw []byte, format Format) (Document, error) {
	if src == nil {
		return Document{}, errors.New("openapi: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("openapi: raw document is empty")
	}
	switch format {
	case FormatJSON, FormatYAML:
	default:
		return Document{}, fmt.Errorf("openapi: unsupported format %q", format)
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone, format: format}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Len reports the payload size in bytes.
func (d Document) Len() int {
	return len(d.raw)
}

// Format returns the serialization format of the payload.
func (d Document) Format() Format {
	return d.format
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}
