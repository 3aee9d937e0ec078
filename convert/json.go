package convert

import (
	"strconv"

	"github.com/signadot/ogdl-format/go-ogdl/graph"
	"github.com/tidwall/gjson"
)

// FromJSON reads a JSON document into a tree rooted at graph.RootName.
// Numbers keep their source text; true, false and null are written as
// such.
func FromJSON(data []byte) (*graph.Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrBadInput
	}
	root := graph.MustNew(graph.RootName)
	if err := fromJSON(root, gjson.ParseBytes(data)); err != nil {
		return nil, err
	}
	return root, nil
}

func fromJSON(parent *graph.Node, v gjson.Result) error {
	var err error
	switch {
	case v.IsObject():
		v.ForEach(func(k, item gjson.Result) bool {
			var n *graph.Node
			if n, err = leaf(parent, k.String()); err != nil {
				return false
			}
			err = fromJSON(n, item)
			return err == nil
		})
	case v.IsArray():
		i := 0
		v.ForEach(func(_, item gjson.Result) bool {
			target := parent
			if item.IsObject() || item.IsArray() {
				if target, err = parent.Add(strconv.Itoa(i)); err != nil {
					return false
				}
			}
			i++
			err = fromJSON(target, item)
			return err == nil
		})
	default:
		_, err = leaf(parent, jsonScalar(v))
	}
	return err
}

func jsonScalar(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.String()
	case gjson.Null:
		return "null"
	default:
		// numbers, true and false
		return v.Raw
	}
}
