package convert

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/signadot/ogdl-format/go-ogdl/graph"
)

// FromYAML reads the first YAML document in data into a tree rooted at
// graph.RootName. Mapping order is kept.
func FromYAML(data []byte) (*graph.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadInput, err)
	}
	root := graph.MustNew(graph.RootName)
	if v == nil {
		return root, nil
	}
	if err := fromYAML(root, v); err != nil {
		return nil, err
	}
	return root, nil
}

func fromYAML(parent *graph.Node, v any) error {
	switch x := v.(type) {
	case yaml.MapSlice:
		for _, item := range x {
			n, err := leaf(parent, yamlScalar(item.Key))
			if err != nil {
				return err
			}
			if err := fromYAML(n, item.Value); err != nil {
				return err
			}
		}
	case []any:
		for i, item := range x {
			target := parent
			switch item.(type) {
			case yaml.MapSlice, []any:
				var err error
				if target, err = parent.Add(strconv.Itoa(i)); err != nil {
					return err
				}
			}
			if err := fromYAML(target, item); err != nil {
				return err
			}
		}
	default:
		_, err := leaf(parent, yamlScalar(x))
		return err
	}
	return nil
}

func yamlScalar(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
