package graph

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/ogdl-format/go-ogdl/graph/gpath"
)

// Get resolves path against g. The empty path addresses g itself.
//
// A name descends into the first child with that name. "." ends a hop. An
// index [n] directly after a name selects the n-th sibling carrying that
// name; otherwise it selects the n-th child of the current node. [] after a
// name collects the children of every sibling with that name into a new,
// detached node named VectorName.
//
// Misses are reported as ErrNotFound, malformed paths as ErrInvalidArgument.
// Get never modifies g.
func (g *Node) Get(path string) (*Node, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil node", ErrInvalidArgument)
	}
	return g.walk(path, false)
}

// GetString returns the name of the first child of the node addressed by
// path.
func (g *Node) GetString(path string) (string, bool) {
	n, err := g.Get(path)
	if err != nil {
		return "", false
	}
	return n.NameAt(0)
}

// MakePath resolves path like Get, creating childless nodes for names that
// are missing. Indexes never create nodes and vectors are rejected.
func (g *Node) MakePath(path string) (*Node, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil node", ErrInvalidArgument)
	}
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidArgument)
	}
	return g.walk(path, true)
}

// Set stores value under the node addressed by path, creating the path if
// needed. When the target already has children its first child is released
// and replaced by value, otherwise value is appended. value must be
// detached.
func (g *Node) Set(path string, value *Node) error {
	if g == nil {
		return fmt.Errorf("%w: nil node", ErrInvalidArgument)
	}
	if value == nil || value.parent != nil {
		return fmt.Errorf("%w: value must be a detached node", ErrInvalidArgument)
	}
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidArgument)
	}
	target, err := g.Get(path)
	switch {
	case err == nil:
		if target != g && target.parent == nil {
			return fmt.Errorf("%w: %q addresses a copy", ErrInvalidArgument, path)
		}
		if len(target.Children) == 0 {
			return target.AddNode(value)
		}
		return target.replace(0, value)
	case errors.Is(err, ErrNotFound):
		target, err = g.MakePath(path)
		if err != nil {
			return err
		}
		return target.AddNode(value)
	default:
		return err
	}
}

func (g *Node) walk(path string, create bool) (*Node, error) {
	var (
		cur   = g
		up    *Node
		named string
	)
	for e, err := range gpath.Elements(path) {
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
		switch e.Kind {
		case gpath.Name:
			next := cur.Node(e.Text)
			if next == nil {
				if !create {
					return nil, fmt.Errorf("%w: %s in %q", ErrNotFound, e, path)
				}
				next, err = cur.Add(e.Text)
				if err != nil {
					return nil, err
				}
			}
			up, cur, named = cur, next, e.Text
		case gpath.Sep:
			named = ""
		case gpath.Index:
			var next *Node
			if named == "" {
				next = cur.Index(e.Index)
			} else {
				next = up.nth(named, e.Index)
			}
			if next == nil {
				if create {
					return nil, fmt.Errorf("%w: cannot create %s in %q", ErrInvalidArgument, e, path)
				}
				return nil, fmt.Errorf("%w: %s in %q", ErrNotFound, e, path)
			}
			cur, named = next, ""
		case gpath.Vector:
			if create {
				return nil, fmt.Errorf("%w: cannot create %s in %q", ErrInvalidArgument, e, path)
			}
			if named == "" {
				return nil, fmt.Errorf("%w: [] without a name in %q", ErrInvalidArgument, path)
			}
			cur, named = up.collect(named), ""
		default:
			return nil, fmt.Errorf("%w: unsupported element %s in %q", ErrInvalidArgument, e, path)
		}
	}
	return cur, nil
}

// nth returns the i-th child of g named name.
func (g *Node) nth(name string, i int) *Node {
	for _, c := range g.Children {
		if c.Name != name {
			continue
		}
		if i == 0 {
			return c
		}
		i--
	}
	return nil
}

func (g *Node) collect(name string) *Node {
	res := &Node{Name: VectorName}
	for _, c := range g.Children {
		if c.Name != name {
			continue
		}
		for _, cc := range c.Children {
			cp := cc.Clone()
			cp.parent = res
			res.Children = append(res.Children, cp)
		}
	}
	return res
}

// Path returns the path of g relative to its root, such that
// g.Root().Get(g.Path()) returns g.
func (g *Node) Path() string {
	if g == nil || g.parent == nil {
		return ""
	}
	p := g.parent
	k := 0
	for _, c := range p.Children {
		if c == g {
			break
		}
		if c.Name == g.Name {
			k++
		}
	}
	var sb strings.Builder
	if prefix := p.Path(); prefix != "" {
		sb.WriteString(prefix)
		sb.WriteByte('.')
	}
	if gpath.NeedsQuote(g.Name) {
		sb.WriteString(gpath.Quote(g.Name))
	} else {
		sb.WriteString(g.Name)
	}
	if k != 0 {
		sb.WriteString("[" + strconv.Itoa(k) + "]")
	}
	return sb.String()
}
