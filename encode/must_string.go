package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/ogdl-format/go-ogdl/graph"
)

func MustString(node *graph.Node, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimRight(buf.String(), "\n")
}
