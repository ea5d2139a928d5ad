// Package codec converts specification payloads to and from an ordered
// yaml.v3 node tree. Both formats share the tree so key order survives a
// decode/filter/encode cycle regardless of syntax.
package codec

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	pkgopenapi "github.com/goliatone/go-specfilter/pkg/openapi"
)

const (
	strTag   = "!!str"
	intTag   = "!!int"
	floatTag = "!!float"
	boolTag  = "!!bool"
	nullTag  = "!!null"
	mapTag   = "!!map"
	seqTag   = "!!seq"
)

var (
	// ErrEmptyDocument is returned when the payload holds no document.
	ErrEmptyDocument = errors.New("codec: document is empty")
	// ErrUnsupportedFormat is returned for formats other than JSON and YAML.
	ErrUnsupportedFormat = errors.New("codec: unsupported format")
)

// Decode parses raw into a document node.
func Decode(format pkgopenapi.Format, raw []byte) (*yaml.Node, error) {
	switch format {
	case pkgopenapi.FormatJSON:
		return decodeJSON(raw)
	case pkgopenapi.FormatYAML:
		return decodeYAML(raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Encode serializes a tree produced by Decode. YAML encoding clears flow
// styles on the tree in place.
func Encode(format pkgopenapi.Format, root *yaml.Node) ([]byte, error) {
	if root == nil {
		return nil, ErrEmptyDocument
	}
	switch format {
	case pkgopenapi.FormatJSON:
		return encodeJSON(root)
	case pkgopenapi.FormatYAML:
		return encodeYAML(root)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Content returns the top-level value of a document node, following aliases.
func Content(root *yaml.Node) *yaml.Node {
	if root == nil {
		return nil
	}
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil
		}
		return Resolve(root.Content[0])
	}
	return Resolve(root)
}

// Resolve follows alias nodes to their anchor.
func Resolve(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

// KindName names a node kind for error messages.
func KindName(node *yaml.Node) string {
	if node == nil {
		return "nothing"
	}
	switch node.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		if node.ShortTag() == nullTag {
			return "null"
		}
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
