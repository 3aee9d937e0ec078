package convert

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/ogdl-format/go-ogdl/graph"
	"github.com/signadot/ogdl-format/go-ogdl/parse"
)

// want parses an OGDL rendition of the expected tree.
func want(t *testing.T, s string) string {
	t.Helper()
	n, err := parse.ParseString(s)
	if err != nil {
		t.Fatal(err)
	}
	return n.String()
}

func TestFromXML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts []XMLOption
		want string
	}{
		{
			name: "elements and attributes",
			in:   `<?xml version="1.0"?><config><server host="example.com" port="80"/><!-- note --><client/></config>`,
			want: "config\n  server\n    host example.com\n    port 80\n  client",
		},
		{
			name: "content",
			in:   "<doc>\n  <title>  Hello world </title>\n  <empty></empty>\n</doc>",
			want: "doc\n  title 'Hello world'\n  empty",
		},
		{
			name: "content node",
			in:   `<p class="x">text</p>`,
			opts: []XMLOption{XMLContentNode(true)},
			want: "p\n  class x\n  _ text",
		},
		{
			name: "empty attribute",
			in:   `<a b=""/>`,
			want: "a\n  b ''",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromXML(strings.NewReader(tt.in), tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(want(t, tt.want), got.String()); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromXMLErrors(t *testing.T) {
	for _, in := range []string{"<a><b></a>", "<a>", "<a x=></a>"} {
		if _, err := FromXML(strings.NewReader(in)); !errors.Is(err, ErrBadInput) {
			t.Errorf("%q: expected ErrBadInput, got %v", in, err)
		}
	}
}

func TestFromJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "object order",
			in:   `{"z": 1, "a": "two", "m": true}`,
			want: "z 1\na two\nm true",
		},
		{
			name: "arrays",
			in:   `{"tags": ["x", 2, null], "items": [{"id": 1}, [3, 4]]}`,
			want: "tags (x, 2, null)\nitems\n  0\n    id 1\n  1 (3, 4)",
		},
		{
			name: "scalars",
			in:   `{"empty": "", "num": -1.5e3, "nested": {"deep": {"x": false}}}`,
			want: "empty ''\nnum -1.5e3\nnested deep x false",
		},
		{
			name: "top level scalar",
			in:   `"hello"`,
			want: "hello",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromJSON([]byte(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(want(t, tt.want), got.String()); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
	if _, err := FromJSON([]byte(`{"a":`)); !errors.Is(err, ErrBadInput) {
		t.Errorf("expected ErrBadInput, got %v", err)
	}
}

func TestFromYAML(t *testing.T) {
	in := `
z: 1
a: two
list:
  - x
  - 2
  - id: 3
    name: n
  - [4, 5]
empty: ""
nothing:
flag: true
`
	got, err := FromYAML([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	w := "z 1\na two\nlist\n  x\n  2\n  2\n    id 3\n    name n\n  3 (4, 5)\nempty ''\nnothing null\nflag true"
	if diff := cmp.Diff(want(t, w), got.String()); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
	if _, err := FromYAML([]byte("a: [b")); !errors.Is(err, ErrBadInput) {
		t.Errorf("expected ErrBadInput, got %v", err)
	}
	empty, err := FromYAML(nil)
	if err != nil {
		t.Fatal(err)
	}
	if empty.Len() != 0 {
		t.Errorf("got %s", empty)
	}
}

func TestFromJSONMatchesYAML(t *testing.T) {
	doc := `{"a": {"b": [1, {"c": "d"}]}, "e": "f g"}`
	j, err := FromJSON([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	y, err := FromYAML([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if !j.Equal(y) {
		t.Errorf("json %s, yaml %s", j, y)
	}
}

func TestToDot(t *testing.T) {
	root, err := parse.ParseString("a\n  b\n  'say \"hi\"'\nc")
	if err != nil {
		t.Fatal(err)
	}
	buf := bytes.NewBuffer(nil)
	if err := ToDot(root, buf); err != nil {
		t.Fatal(err)
	}
	w := "digraph _name_ {\n\n" +
		"  rankdir=\"LR\";\n  node [ color = \"#ff8000\" ];\n  edge [ color = \"#cccccc\" ];\n" +
		"  1 [ label = \"a\" ];\n" +
		"  2 [ label = \"b\" ];\n" +
		"  1 -> 2;\n" +
		"  3 [ label = \"say \\\"hi\\\"\" ];\n" +
		"  1 -> 3;\n" +
		"  4 [ label = \"c\" ];\n" +
		"}\n"
	if diff := cmp.Diff(w, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestToDotOptions(t *testing.T) {
	root := graph.MustNew("top")
	a, _ := root.Add("a")
	b, _ := a.Add("line1\nline2")
	b.Add("deeper")

	buf := bytes.NewBuffer(nil)
	if err := ToDot(root, buf, DotRoot(true), DotDepth(3)); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	for _, s := range []string{
		"  1 [ label = \"top\" ];\n",
		"  1 -> 2;\n",
		"  3 [ label = \"line1\\nline2\" ];\n",
		"  2 -> 3;\n",
	} {
		if !strings.Contains(got, s) {
			t.Errorf("missing %q in\n%s", s, got)
		}
	}
	if strings.Contains(got, "deeper") {
		t.Errorf("depth not applied:\n%s", got)
	}
}
