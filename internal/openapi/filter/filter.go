package filter

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-specfilter/internal/openapi/codec"
	pkgfilter "github.com/goliatone/go-specfilter/pkg/filter"
	pkgopenapi "github.com/goliatone/go-specfilter/pkg/openapi"
)

// Filter implements pkgfilter.Filter on the ordered codec tree.
type Filter struct {
	sections map[string]struct{}
}

// Ensure the implementation satisfies the public interface.
var _ pkgfilter.Filter = (*Filter)(nil)

// New constructs a Filter from pre-resolved options.
func New(options pkgfilter.Options) pkgfilter.Filter {
	sections := make(map[string]struct{}, len(options.Sections)+1)
	for _, name := range options.Sections {
		sections[name] = struct{}{}
	}
	sections[pkgfilter.PathsSection] = struct{}{}
	return &Filter{sections: sections}
}

// Apply decodes the document, prunes it, and encodes the result. Nothing is
// returned unless every stage succeeds.
func (f *Filter) Apply(ctx context.Context, req pkgfilter.Request) (pkgfilter.Result, error) {
	if err := ctx.Err(); err != nil {
		return pkgfilter.Result{}, err
	}
	if req.Policy.Predicate == nil {
		return pkgfilter.Result{}, pkgfilter.ErrNilPredicate
	}

	doc := req.Document
	tree, err := codec.Decode(doc.Format(), doc.Raw())
	if err != nil {
		return pkgfilter.Result{}, fmt.Errorf("filter: parse %s: %w", doc.Location(), err)
	}

	result, err := f.prune(tree, req.Policy)
	if err != nil {
		return pkgfilter.Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return pkgfilter.Result{}, err
	}

	format := req.Format
	if format == "" {
		format = doc.Format()
	}
	raw, err := codec.Encode(format, tree)
	if err != nil {
		return pkgfilter.Result{}, fmt.Errorf("filter: encode %s: %w", format, err)
	}

	filtered, err := pkgopenapi.NewDocumentWithFormat(doc.Source(), raw, format)
	if err != nil {
		return pkgfilter.Result{}, err
	}
	result.Document = filtered
	return result, nil
}

func (f *Filter) prune(tree *yaml.Node, policy pkgfilter.Policy) (pkgfilter.Result, error) {
	root := codec.Content(tree)
	if root == nil || root.Kind != yaml.MappingNode {
		return pkgfilter.Result{}, fmt.Errorf("%w: got %s", pkgfilter.ErrInvalidDocument, codec.KindName(root))
	}

	pathsValue, ok := lookup(root, pkgfilter.PathsSection)
	if !ok {
		return pkgfilter.Result{}, pkgfilter.ErrMissingPaths
	}
	paths := codec.Resolve(pathsValue)
	if paths == nil || paths.Kind != yaml.MappingNode {
		return pkgfilter.Result{}, fmt.Errorf("%w: got %s", pkgfilter.ErrInvalidPaths, codec.KindName(paths))
	}

	var result pkgfilter.Result

	sections := make([]*yaml.Node, 0, len(root.Content))
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		if _, allowed := f.sections[key.Value]; !allowed {
			result.DroppedSections = append(result.DroppedSections, key.Value)
			continue
		}
		result.Sections = append(result.Sections, key.Value)
		sections = append(sections, key, root.Content[i+1])
	}

	entries := make([]*yaml.Node, 0, len(paths.Content))
	for i := 0; i+1 < len(paths.Content); i += 2 {
		key := paths.Content[i]
		item := pkgfilter.PathItem{
			Path: key.Value,
			Keys: mappingKeys(codec.Resolve(paths.Content[i+1])),
		}
		if !policy.Keep(item) {
			result.Dropped = append(result.Dropped, key.Value)
			continue
		}
		result.Kept = append(result.Kept, key.Value)
		entries = append(entries, key, paths.Content[i+1])
	}

	root.Content = sections
	paths.Content = entries

	inlineDanglingAliases(root)
	return result, nil
}

func lookup(mapping *yaml.Node, key string) (*yaml.Node, bool) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1], true
		}
	}
	return nil, false
}

func mappingKeys(node *yaml.Node) []string {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return keys
}
