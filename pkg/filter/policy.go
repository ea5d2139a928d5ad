package filter

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// PolicyPath keeps paths whose template contains the match string.
	PolicyPath = "path"
	// PolicyMethod keeps paths with at least one child key containing the
	// match string.
	PolicyMethod = "method"

	// DefaultPathMatch is the substring used by the path policy.
	DefaultPathMatch = "ai/run"
	// DefaultMethodMatch is the substring used by the method policy.
	DefaultMethodMatch = "ai"
)

// PathItem is the view of a paths entry handed to predicates.
type PathItem struct {
	// Path is the URL template, e.g. /accounts/{account_id}/ai/run/{model_name}.
	Path string
	// Keys are the child keys of the entry in document order, usually HTTP
	// methods plus fields such as parameters or summary.
	Keys []string
}

// Predicate decides whether a path entry survives filtering.
type Predicate func(item PathItem) bool

// Policy is a named predicate.
type Policy struct {
	Name      string
	Match     string
	Predicate Predicate
}

// Keep applies the policy predicate.
func (p Policy) Keep(item PathItem) bool {
	if p.Predicate == nil {
		return false
	}
	return p.Predicate(item)
}

// String renders the policy for logs.
func (p Policy) String() string {
	if p.Match == "" {
		return p.Name
	}
	return fmt.Sprintf("%s(%q)", p.Name, p.Match)
}

// PathContains keeps entries whose path template contains substr.
func PathContains(substr string) Policy {
	return Policy{
		Name:  PolicyPath,
		Match: substr,
		Predicate: func(item PathItem) bool {
			return strings.Contains(item.Path, substr)
		},
	}
}

// MethodKeyContains keeps entries where at least one child key contains
// substr.
func MethodKeyContains(substr string) Policy {
	return Policy{
		Name:  PolicyMethod,
		Match: substr,
		Predicate: func(item PathItem) bool {
			for _, key := range item.Keys {
				if strings.Contains(key, substr) {
					return true
				}
			}
			return false
		},
	}
}

// DefaultPolicy is the path policy with DefaultPathMatch.
func DefaultPolicy() Policy {
	return PathContains(DefaultPathMatch)
}

var policyFactories = map[string]struct {
	match string
	build func(string) Policy
}{
	PolicyPath:   {match: DefaultPathMatch, build: PathContains},
	PolicyMethod: {match: DefaultMethodMatch, build: MethodKeyContains},
}

// LookupPolicy resolves a policy by name. An empty name selects the path
// policy and an empty match selects the policy's default substring.
func LookupPolicy(name, match string) (Policy, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = PolicyPath
	}
	factory, ok := policyFactories[key]
	if !ok {
		return Policy{}, fmt.Errorf("%w %q (known: %s)", ErrUnknownPolicy, name, strings.Join(Policies(), ", "))
	}
	if match == "" {
		match = factory.match
	}
	return factory.build(match), nil
}

// Policies lists the registered policy names.
func Policies() []string {
	names := make([]string, 0, len(policyFactories))
	for name := range policyFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
