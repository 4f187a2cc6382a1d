package jsonvalue

import (
	"gopkg.in/yaml.v3"
)

// ParseYAML decodes data into a yaml.v3 node tree and wraps it.
// YAML is a superset of JSON, so JSON documents parse as well.
func ParseYAML(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return FromYAML(&doc), nil
}

// FromYAML wraps a yaml.v3 node. Document and alias nodes are resolved to
// the node they point to. A nil node is Invalid.
func FromYAML(n *yaml.Node) Value {
	return yamlValue{n: resolve(n)}
}

type yamlValue struct {
	n *yaml.Node
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch {
		case n.Kind == yaml.DocumentNode && len(n.Content) > 0:
			n = n.Content[0]
		case n.Kind == yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

func (y yamlValue) Kind() Kind {
	if y.n == nil {
		return Invalid
	}

	switch y.n.Kind {
	case yaml.MappingNode:
		return Object
	case yaml.SequenceNode:
		return Array
	case yaml.ScalarNode:
		switch y.n.ShortTag() {
		case "!!null":
			return Null
		case "!!bool":
			return Bool
		case "!!int", "!!float":
			return Number
		case "!!str":
			return String
		}
	}

	return Invalid
}

func (y yamlValue) lookup(key string) (*yaml.Node, bool) {
	return lookupNode(y.n, key, 0)
}

// maxMergeDepth bounds merge key expansion on self-referencing documents.
const maxMergeDepth = 32

// lookupNode finds key in a mapping node. Explicit keys win over merged
// ones (<<: *anchor); within a merge list the earlier mapping wins.
func lookupNode(n *yaml.Node, key string, depth int) (*yaml.Node, bool) {
	n = resolve(n)
	if n == nil || n.Kind != yaml.MappingNode || depth > maxMergeDepth {
		return nil, false
	}

	// Content alternates key and value nodes.
	var merges []*yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			merges = append(merges, n.Content[i+1])
			continue
		}
		if k.Value == key {
			return n.Content[i+1], true
		}
	}

	for _, m := range merges {
		m = resolve(m)
		sources := []*yaml.Node{m}
		if m != nil && m.Kind == yaml.SequenceNode {
			sources = m.Content
		}
		for _, src := range sources {
			if v, ok := lookupNode(src, key, depth+1); ok {
				return v, true
			}
		}
	}

	return nil, false
}

func (y yamlValue) Has(key string) bool {
	_, ok := y.lookup(key)
	return ok
}

func (y yamlValue) Member(key string) Value {
	v, ok := y.lookup(key)
	if !ok {
		return invalid{}
	}
	return FromYAML(v)
}

func (y yamlValue) Len() int {
	if y.n == nil {
		return 0
	}

	switch y.n.Kind {
	case yaml.SequenceNode:
		return len(y.n.Content)
	case yaml.MappingNode:
		return len(y.n.Content) / 2
	}

	return 0
}

func (y yamlValue) Index(i int) Value {
	if y.n == nil || y.n.Kind != yaml.SequenceNode || i < 0 || i >= len(y.n.Content) {
		return invalid{}
	}
	return FromYAML(y.n.Content[i])
}

func (y yamlValue) Float() float64 {
	if y.Kind() != Number {
		return 0
	}

	var f float64
	if err := y.n.Decode(&f); err != nil {
		return 0
	}
	return f
}

func (y yamlValue) Str() string {
	if y.Kind() != String {
		return ""
	}
	return y.n.Value
}
