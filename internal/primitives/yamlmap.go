package primitives

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a YAML mapping, keeping document order. Values are
// decoded with node.Decode, so value types may implement yaml.Unmarshaler.
// Duplicate keys are rejected.
func (m *OrderedMap[K, V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected mapping, got %s", node.Line, kindName(node.Kind))
	}

	seen := make(map[string]struct{}, len(node.Content)/2)
	for i := 0; i < len(node.Content); i += 2 {
		key := node.Content[i]
		if key.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: mapping key must be a scalar", key.Line)
		}
		if _, dup := seen[key.Value]; dup {
			return fmt.Errorf("line %d: duplicate key %q", key.Line, key.Value)
		}
		seen[key.Value] = struct{}{}
	}

	om := orderedmap.New[K, V]()
	if err := om.UnmarshalYAML(node); err != nil {
		return err
	}
	m.om = om
	return nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown node"
	}
}
