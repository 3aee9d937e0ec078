package graph

import (
	"errors"
	"testing"
)

// sample builds r{a{b{x} b{y}} c{d{e}}}.
func sample() *Node {
	return tree(RootName,
		tree("a", tree("b", tree("x")), tree("b", tree("y"))),
		tree("c", tree("d", tree("e"))),
	)
}

func TestGet(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"", RootName + "{a{b{x} b{y}} c{d{e}}}"},
		{"a", "a{b{x} b{y}}"},
		{"a.b", "b{x}"},
		{"a.b[1]", "b{y}"},
		{"a.b[0]", "b{x}"},
		{"a.[1]", "b{y}"},
		{"a.[1].[0]", "y"},
		{"c.d.e", "e"},
		{"[1].d", "d{e}"},
		{"a.b[]", VectorName + "{x y}"},
		{"'c'.\"d\"", "d{e}"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			root := sample()
			before := root.String()
			got, err := root.Get(tt.path)
			if err != nil {
				t.Fatalf("Get(%q): %v", tt.path, err)
			}
			if got.String() != tt.want {
				t.Errorf("Get(%q) = %s, want %s", tt.path, got, tt.want)
			}
			if root.String() != before {
				t.Errorf("Get modified the tree: %s", root)
			}
		})
	}
}

func TestGetIdentity(t *testing.T) {
	root := sample()
	b1, err := root.Get("a.b[1]")
	if err != nil {
		t.Fatal(err)
	}
	if b1 != root.Index(0).Index(1) {
		t.Errorf("a.b[1] should address the second b itself")
	}
}

func TestGetVectorIsDetached(t *testing.T) {
	root := sample()
	v, err := root.Get("a.b[]")
	if err != nil {
		t.Fatal(err)
	}
	if v.Parent() != nil {
		t.Errorf("vector must be detached")
	}
	if v.Index(0) == root.Index(0).Index(0).Index(0) {
		t.Errorf("vector must hold copies")
	}
	v.Index(0).Name = "changed"
	if got := root.Index(0).String(); got != "a{b{x} b{y}}" {
		t.Errorf("original changed: %s", got)
	}
}

func TestGetErrors(t *testing.T) {
	tests := []struct {
		path string
		want error
	}{
		{"z", ErrNotFound},
		{"a.z", ErrNotFound},
		{"a.b[2]", ErrNotFound},
		{"[5]", ErrNotFound},
		{"[]", ErrInvalidArgument},
		{"a.[]", ErrInvalidArgument},
		{"a{b}", ErrInvalidArgument},
		{"a[x]", ErrInvalidArgument},
		{"a,b", ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := sample().Get(tt.path)
			if !errors.Is(err, tt.want) {
				t.Errorf("Get(%q): expected %v, got %v", tt.path, tt.want, err)
			}
		})
	}
}

func TestGetString(t *testing.T) {
	root := sample()
	if s, ok := root.GetString("c.d"); !ok || s != "e" {
		t.Errorf("GetString(c.d) = %q, %v", s, ok)
	}
	if _, ok := root.GetString("c.d.e"); ok {
		t.Errorf("leaf has no value")
	}
	if _, ok := root.GetString("q"); ok {
		t.Errorf("missing path has no value")
	}
}

func TestMakePath(t *testing.T) {
	root := MustNew(RootName)
	r, err := root.MakePath("p.q.r")
	if err != nil {
		t.Fatal(err)
	}
	if r.Name != "r" || r.Len() != 0 {
		t.Errorf("got %s", r)
	}
	if got := root.String(); got != RootName+"{p{q{r}}}" {
		t.Errorf("got %s", got)
	}
	again, err := root.MakePath("p.q.r")
	if err != nil {
		t.Fatal(err)
	}
	if again != r {
		t.Errorf("second MakePath returned a different node")
	}
	if got := root.String(); got != RootName+"{p{q{r}}}" {
		t.Errorf("second MakePath changed the tree: %s", got)
	}
}

func TestMakePathErrors(t *testing.T) {
	for _, path := range []string{"", "a.[7]", "a.b[3]", "a.b[]", "x{y}"} {
		root := sample()
		if _, err := root.MakePath(path); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("MakePath(%q): expected ErrInvalidArgument, got %v", path, err)
		}
	}
	root := sample()
	n, err := root.MakePath("a.b[1].z")
	if err != nil {
		t.Fatal(err)
	}
	if got := root.Index(0).Index(1).String(); got != "b{y z}" || n.Name != "z" {
		t.Errorf("got %s", got)
	}
}

func TestSet(t *testing.T) {
	root := sample()

	if err := root.Set("c.d.e", MustNew("1")); err != nil {
		t.Fatal(err)
	}
	if s, _ := root.GetString("c.d.e"); s != "1" {
		t.Errorf("childless target should get the value appended, got %q", s)
	}

	old := root.Index(0).Index(0).Index(0)
	if err := root.Set("a.b", MustNew("new")); err != nil {
		t.Fatal(err)
	}
	if got := root.Index(0).String(); got != "a{b{new} b{y}}" {
		t.Errorf("got %s", got)
	}
	if old.Name != "" || old.Parent() != nil {
		t.Errorf("replaced child should be released")
	}

	if err := root.Set("m.n", MustNew("v")); err != nil {
		t.Fatal(err)
	}
	if s, ok := root.GetString("m.n"); !ok || s != "v" {
		t.Errorf("Set on a missing path: %q %v", s, ok)
	}
	if root.Len() != 3 {
		t.Errorf("expected one new top level node, got %s", root)
	}
}

func TestSetErrors(t *testing.T) {
	root := sample()
	attached := root.Index(1)
	for _, tt := range []struct {
		name  string
		path  string
		value *Node
	}{
		{"nil value", "a", nil},
		{"attached value", "a", attached},
		{"empty path", "", MustNew("v")},
		{"vector", "a.b[]", MustNew("v")},
		{"self", "a", root},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if err := root.Set(tt.path, tt.value); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestPathRoundTrip(t *testing.T) {
	root := tree(RootName,
		tree("a", tree("b", tree("x")), tree("b", tree("y"))),
		tree("has space", tree("v")),
	)
	err := root.Visit(func(n *Node, isPost bool) (bool, error) {
		if isPost || n == root {
			return true, nil
		}
		got, err := root.Get(n.Path())
		if err != nil {
			t.Errorf("Get(%q): %v", n.Path(), err)
			return true, nil
		}
		if got != n {
			t.Errorf("Get(%q) returned another node", n.Path())
		}
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if p := root.Index(0).Index(1).Index(0).Path(); p != "a.b[1].y" {
		t.Errorf("got %q", p)
	}
}
