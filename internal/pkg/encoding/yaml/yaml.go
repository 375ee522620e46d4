// Package yaml wraps gopkg.in/yaml.v3 and converts YAML mappings to ordered maps, so the key order is kept.
package yaml

import (
	"bytes"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"gopkg.in/yaml.v3"

	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

const indent = 2

func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(v); err != nil {
		return nil, errors.Errorf("yaml encode error: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Errorf("yaml encode error: %w", err)
	}
	return buf.Bytes(), nil
}

func Decode(data []byte, v any) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		return errors.Errorf("yaml decode error: %w", err)
	}
	return nil
}

// DecodeOrderedMap decodes a YAML mapping, nested mappings are decoded as ordered maps too.
// An empty document results in an empty map.
func DecodeOrderedMap(data []byte) (*orderedmap.OrderedMap, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Errorf("yaml decode error: %w", err)
	}
	if len(doc.Content) == 0 {
		return orderedmap.New(), nil
	}
	value, err := nodeToValue(doc.Content[0])
	if err != nil {
		return nil, err
	}
	m, ok := value.(*orderedmap.OrderedMap)
	if !ok {
		return nil, errors.Errorf(`yaml decode error: expected mapping, found "%T"`, value)
	}
	return m, nil
}

// EncodeOrderedMap encodes the map with keys in the insertion order.
func EncodeOrderedMap(m *orderedmap.OrderedMap) ([]byte, error) {
	node, err := valueToNode(m)
	if err != nil {
		return nil, err
	}
	return Encode(node)
}

func nodeToValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.MappingNode:
		out := orderedmap.New()
		for i := 0; i+1 < len(node.Content); i += 2 {
			value, err := nodeToValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			out.Set(node.Content[i].Value, value)
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			value, err := nodeToValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, value)
		}
		return out, nil
	case yaml.AliasNode:
		return nodeToValue(node.Alias)
	default:
		var out any
		if err := node.Decode(&out); err != nil {
			return nil, errors.Errorf("yaml decode error: %w", err)
		}
		return out, nil
	}
}

func valueToNode(value any) (*yaml.Node, error) {
	switch v := value.(type) {
	case *orderedmap.OrderedMap:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range v.Keys() {
			item, _ := v.Get(key)
			itemNode, err := valueToNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, itemNode)
		}
		return node, nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v {
			itemNode, err := valueToNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, itemNode)
		}
		return node, nil
	default:
		node := &yaml.Node{}
		if err := node.Encode(v); err != nil {
			return nil, errors.Errorf("yaml encode error: %w", err)
		}
		return node, nil
	}
}
