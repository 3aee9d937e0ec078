package convert

import (
	"errors"

	"github.com/signadot/ogdl-format/go-ogdl/graph"
)

// EmptyName stands for an empty string value.
const EmptyName = "''"

var ErrBadInput = errors.New("bad input")

func value(s string) string {
	if s == "" {
		return EmptyName
	}
	return s
}

// leaf adds a node holding s. Values too long for a node name are
// rejected by graph.
func leaf(parent *graph.Node, s string) (*graph.Node, error) {
	return parent.Add(value(s))
}
