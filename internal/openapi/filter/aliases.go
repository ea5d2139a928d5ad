package filter

import "gopkg.in/yaml.v3"

// inlineDanglingAliases replaces aliases whose anchors were pruned with a copy
// of the anchored value so the output never references a missing anchor.
func inlineDanglingAliases(root *yaml.Node) {
	anchors := make(map[*yaml.Node]bool)
	collectAnchors(root, anchors)
	replaceAliases(root, anchors)
}

func collectAnchors(node *yaml.Node, anchors map[*yaml.Node]bool) {
	if node == nil {
		return
	}
	if node.Anchor != "" {
		anchors[node] = true
	}
	for _, child := range node.Content {
		collectAnchors(child, anchors)
	}
}

func replaceAliases(node *yaml.Node, anchors map[*yaml.Node]bool) {
	for i, child := range node.Content {
		if child.Kind == yaml.AliasNode {
			if child.Alias != nil && !anchors[child.Alias] {
				node.Content[i] = expand(child.Alias, make(map[*yaml.Node]bool))
			}
			continue
		}
		replaceAliases(child, anchors)
	}
}

// expand deep-copies node without anchors, expanding nested aliases. An alias
// pointing at one of its own ancestors is left in place.
func expand(node *yaml.Node, active map[*yaml.Node]bool) *yaml.Node {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		if active[node.Alias] {
			return node
		}
		return expand(node.Alias, active)
	}

	active[node] = true
	defer delete(active, node)

	out := *node
	out.Anchor = ""
	out.Content = nil
	if len(node.Content) > 0 {
		out.Content = make([]*yaml.Node, 0, len(node.Content))
		for _, child := range node.Content {
			out.Content = append(out.Content, expand(child, active))
		}
	}
	return &out
}
