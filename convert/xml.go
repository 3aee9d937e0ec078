package convert

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/ogdl-format/go-ogdl/graph"
)

// ContentName names the node holding character content with
// XMLContentNode.
const ContentName = "_"

type xmlOpts struct {
	contentNode bool
}

type XMLOption func(*xmlOpts)

// XMLContentNode places element content under a child named ContentName
// rather than directly below the element.
func XMLContentNode(v bool) XMLOption {
	return func(o *xmlOpts) { o.contentNode = v }
}

// FromXML reads an XML document into a tree rooted at graph.RootName.
// Character content is trimmed and added after an element's children;
// blank content is dropped. Comments, processing instructions and
// directives are ignored.
func FromXML(r io.Reader, opts ...XMLOption) (*graph.Node, error) {
	o := &xmlOpts{}
	for _, opt := range opts {
		opt(o)
	}
	dec := xml.NewDecoder(r)
	root := graph.MustNew(graph.RootName)
	type open struct {
		node    *graph.Node
		content strings.Builder
	}
	stack := []*open{{node: root}}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadInput, err)
		}
		top := stack[len(stack)-1]
		switch t := tok.(type) {
		case xml.StartElement:
			n, err := top.node.Add(t.Name.Local)
			if err != nil {
				return nil, err
			}
			for _, a := range t.Attr {
				an, err := n.Add(a.Name.Local)
				if err != nil {
					return nil, err
				}
				if _, err := leaf(an, a.Value); err != nil {
					return nil, err
				}
			}
			stack = append(stack, &open{node: n})
		case xml.CharData:
			if len(stack) > 1 {
				top.content.Write(t)
			}
		case xml.EndElement:
			if err := addContent(top.node, top.content.String(), o); err != nil {
				return nil, err
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("%w: unclosed element %q", ErrBadInput, stack[len(stack)-1].node.Name)
	}
	return root, nil
}

func addContent(n *graph.Node, s string, o *xmlOpts) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if o.contentNode {
		c, err := n.Add(ContentName)
		if err != nil {
			return err
		}
		n = c
	}
	_, err := n.Add(s)
	return err
}
