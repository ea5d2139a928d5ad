package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func decodeJSON(raw []byte) (*yaml.Node, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyDocument
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	value, err := readJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("codec: decode json: %w", unexpectedEOF(err))
	}
	if tok, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = fmt.Errorf("unexpected trailing data %v", tok)
		}
		return nil, fmt.Errorf("codec: decode json: %w", err)
	}

	return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{value}}, nil
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

func readJSONValue(dec *json.Decoder) (*yaml.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch value := tok.(type) {
	case json.Delim:
		switch value {
		case '{':
			return readJSONObject(dec)
		case '[':
			return readJSONArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", rune(value))
	case string:
		return scalarNode(strTag, value), nil
	case json.Number:
		tag := intTag
		if strings.ContainsAny(value.String(), ".eE") {
			tag = floatTag
		}
		return scalarNode(tag, value.String()), nil
	case bool:
		return scalarNode(boolTag, strconv.FormatBool(value)), nil
	case nil:
		return scalarNode(nullTag, "null"), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

// readJSONObject keeps the first position of a duplicated key and the last
// value, matching what a map-based decoder observes.
func readJSONObject(dec *json.Decoder) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: mapTag}
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key %v is not a string", tok)
		}
		value, err := readJSONValue(dec)
		if err != nil {
			return nil, err
		}
		if at, seen := index[key]; seen {
			node.Content[at+1] = value
			continue
		}
		index[key] = len(node.Content)
		node.Content = append(node.Content, scalarNode(strTag, key), value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return node, nil
}

func readJSONArray(dec *json.Decoder) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: seqTag}
	for dec.More() {
		value, err := readJSONValue(dec)
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return node, nil
}

func encodeJSON(root *yaml.Node) ([]byte, error) {
	w := newJSONWriter()
	if err := w.value(root); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, w.buf.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("codec: indent json: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

type jsonWriter struct {
	buf    bytes.Buffer
	enc    *json.Encoder
	active map[*yaml.Node]bool
}

func newJSONWriter() *jsonWriter {
	w := &jsonWriter{active: make(map[*yaml.Node]bool)}
	w.enc = json.NewEncoder(&w.buf)
	w.enc.SetEscapeHTML(false)
	return w
}

func (w *jsonWriter) value(node *yaml.Node) error {
	if node == nil {
		w.buf.WriteString("null")
		return nil
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			w.buf.WriteString("null")
			return nil
		}
		return w.value(node.Content[0])
	case yaml.AliasNode:
		if node.Alias == nil {
			return fmt.Errorf("codec: alias %q has no anchor", node.Value)
		}
		if w.active[node.Alias] {
			return fmt.Errorf("codec: alias %q is recursive", node.Value)
		}
		w.active[node.Alias] = true
		err := w.value(node.Alias)
		delete(w.active, node.Alias)
		return err
	case yaml.MappingNode:
		return w.object(node)
	case yaml.SequenceNode:
		w.buf.WriteByte('[')
		for i, item := range node.Content {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			if err := w.value(item); err != nil {
				return err
			}
		}
		w.buf.WriteByte(']')
		return nil
	case yaml.ScalarNode:
		return w.scalar(node)
	default:
		return fmt.Errorf("codec: unsupported node kind %d at line %d", node.Kind, node.Line)
	}
}

func (w *jsonWriter) object(node *yaml.Node) error {
	w.buf.WriteByte('{')
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := Resolve(node.Content[i])
		if key == nil || key.Kind != yaml.ScalarNode {
			return fmt.Errorf("codec: mapping key at line %d is not a scalar", node.Content[i].Line)
		}
		if i > 0 {
			w.buf.WriteByte(',')
		}
		if err := w.str(key.Value); err != nil {
			return err
		}
		w.buf.WriteByte(':')
		if err := w.value(node.Content[i+1]); err != nil {
			return err
		}
	}
	w.buf.WriteByte('}')
	return nil
}

func (w *jsonWriter) scalar(node *yaml.Node) error {
	switch node.ShortTag() {
	case nullTag:
		w.buf.WriteString("null")
		return nil
	case boolTag:
		var b bool
		if err := node.Decode(&b); err != nil {
			return fmt.Errorf("codec: scalar %q: %w", node.Value, err)
		}
		w.buf.WriteString(strconv.FormatBool(b))
		return nil
	case intTag, floatTag:
		if isJSONNumber(node.Value) {
			w.buf.WriteString(node.Value)
			return nil
		}
		var v any
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("codec: scalar %q: %w", node.Value, err)
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("codec: scalar %q: %w", node.Value, err)
		}
		w.buf.Write(raw)
		return nil
	default:
		return w.str(node.Value)
	}
}

func (w *jsonWriter) str(s string) error {
	if err := w.enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	w.buf.Truncate(w.buf.Len() - 1)
	return nil
}

func isJSONNumber(s string) bool {
	if s == "" {
		return false
	}
	if c := s[0]; c != '-' && (c < '0' || c > '9') {
		return false
	}
	return json.Valid([]byte(s))
}
