package ordered

import (
	"fmt"
	"gopkg.in/yaml.v3"
)

// ParseYAML parses YAML document, mappings are returned as *Map, sequences as []interface{}
func ParseYAML(data []byte) (interface{}, error) {
	node := &yaml.Node{}
	if err := yaml.Unmarshal(data, node); err != nil {
		return nil, err
	}
	return fromNode(node)
}

const mergeTag = "!!merge"

// merge copies entries of a merged mapping (or a sequence of mappings) into result,
// keys already present win, so explicit keys and earlier mappings take precedence
func merge(result *Map, value interface{}, line int) error {
	switch actual := value.(type) {
	case *Map:
		for _, key := range actual.Keys() {
			if _, ok := result.Get(key); ok {
				continue
			}
			item, _ := actual.Get(key)
			result.Set(key, item)
		}
		return nil
	case []interface{}:
		for _, item := range actual {
			if err := merge(result, item, line); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("invalid yaml merge value at line %d: %T", line, value)
}

func fromNode(node *yaml.Node) (interface{}, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return fromNode(node.Content[0])
	case yaml.AliasNode:
		return fromNode(node.Alias)
	case yaml.MappingNode:
		result := NewMap()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("unsupported yaml key at line %d", keyNode.Line)
			}
			value, err := fromNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			if keyNode.ShortTag() == mergeTag {
				if err = merge(result, value, keyNode.Line); err != nil {
					return nil, err
				}
				continue
			}
			result.Set(keyNode.Value, value)
		}
		return result, nil
	case yaml.SequenceNode:
		result := make([]interface{}, 0, len(node.Content))
		for _, item := range node.Content {
			value, err := fromNode(item)
			if err != nil {
				return nil, err
			}
			result = append(result, value)
		}
		return result, nil
	default:
		var value interface{}
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("failed to decode yaml scalar at line %d: %w", node.Line, err)
		}
		return value, nil
	}
}
