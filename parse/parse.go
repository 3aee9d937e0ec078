package parse

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/signadot/ogdl-format/go-ogdl/graph"
)

// Parse parses d into a tree rooted at a node named graph.RootName.
func Parse(d []byte, opts ...ParseOption) (*graph.Node, error) {
	return ParseReader(bytes.NewReader(d), opts...)
}

func ParseString(s string, opts ...ParseOption) (*graph.Node, error) {
	return ParseReader(strings.NewReader(s), opts...)
}

// ParseReader parses r. On error the tree built before the failure is
// returned along with the error.
func ParseReader(r io.Reader, opts ...ParseOption) (*graph.Node, error) {
	p := New(opts...)
	err := p.Parse(r)
	return p.Detach(), err
}

// Load parses the named file.
func Load(file string, opts ...ParseOption) (*graph.Node, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseReader(f, opts...)
}
