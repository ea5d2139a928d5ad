package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"sigs.k8s.io/yaml"

	pkgopenapi "github.com/goliatone/go-specfilter/pkg/openapi"
)

// methodOrder fixes the traversal order of path item operations.
var methodOrder = []string{
	http.MethodGet,
	http.MethodPut,
	http.MethodPost,
	http.MethodDelete,
	http.MethodPatch,
	http.MethodHead,
	http.MethodOptions,
	http.MethodTrace,
}

// Parser implements pkgopenapi.Parser using kin-openapi types. References are
// never resolved: filtered documents drop components, so $refs dangle.
type Parser struct {
	options pkgopenapi.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	return &Parser{options: options}
}

// Operations converts a Document into a map keyed by operationId.
func (p *Parser) Operations(ctx context.Context, doc pkgopenapi.Document) (map[string]pkgopenapi.Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	payload := raw
	if doc.Format() != pkgopenapi.FormatJSON {
		converted, err := yaml.YAMLToJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("openapi parser: convert yaml: %w", err)
		}
		payload = converted
	}

	var spec openapi3.T
	if err := json.Unmarshal(payload, &spec); err != nil {
		return nil, fmt.Errorf("openapi parser: decode document: %w", err)
	}

	if spec.Paths == nil || spec.Paths.Len() == 0 {
		if !p.options.AllowEmptyPaths {
			return nil, errors.New("openapi parser: document does not contain any paths")
		}
		return map[string]pkgopenapi.Operation{}, nil
	}

	operations := make(map[string]pkgopenapi.Operation)
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, method := range methodOrder {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			collectOperation(operations, method, path, item.GetOperation(method))
		}
	}
	return operations, nil
}

func collectOperation(target map[string]pkgopenapi.Operation, method, path string, operation *openapi3.Operation) {
	if operation == nil {
		return
	}
	opID := operation.OperationID
	if opID == "" {
		opID = strings.ToLower(method) + ":" + path
	}
	target[opID] = pkgopenapi.Operation{
		ID:         opID,
		Method:     method,
		Path:       path,
		Summary:    operation.Summary,
		Tags:       append([]string(nil), operation.Tags...),
		Deprecated: operation.Deprecated,
	}
}
