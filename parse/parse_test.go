package parse

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/ogdl-format/go-ogdl/graph"
)

type event struct {
	Level int
	Kind  string
	Text  string
}

type recorder struct {
	events []event
	fail   error
}

func (r *recorder) add(level int, kind, text string) error {
	r.events = append(r.events, event{level, kind, text})
	return r.fail
}

func (r *recorder) Format(level int, text string) error  { return r.add(level, "format", text) }
func (r *recorder) Text(level int, text string) error    { return r.add(level, "text", text) }
func (r *recorder) Binary(level int, data []byte) error  { return r.add(level, "binary", string(data)) }
func (r *recorder) Comment(level int, text string) error { return r.add(level, "comment", text) }

func (r *recorder) texts() []event {
	var res []event
	for _, e := range r.events {
		if e.Kind == "text" {
			res = append(res, e)
		}
	}
	return res
}

func TestParseTrees(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"words", "a b c", "{a{b{c}}}"},
		{"empty", "", ""},
		{"blank lines", "\n\n  \na\n\n", "{a}"},
		{"indentation", "a\n  b\n    c\n  d\ne\n", "{a{b{c} d} e}"},
		{"tabs", "a\n\tb\n\t\tc\n", "{a{b{c}}}"},
		{"crlf", "a\r\n  b\r\nc\r\n", "{a{b} c}"},
		{"cr", "a\r  b\r", "{a{b}}"},
		{"indented first line", "  a\n  b\nc", "{a b c}"},
		{"group", "a(b,c)", "{a{b c}}"},
		{"group spaced", "a (b, c) d", "{a{b c d}}"},
		{"group nesting", "a (b c) d", "{a{b{c} d}}"},
		{"comma", "a b, c", "{a{b} c}"},
		{"lone comma", "a , b", "{a b}"},
		{"quoted", "name 'John Smith'", "{name{John Smith}}"},
		{"double quoted", `name "a 'b'" c`, "{name{a 'b'{c}}}"},
		{"escaped quote", `q 'it\'s'`, "{q{it's}}"},
		{"escaped backslash", `q 'a\\b'`, `{q{a\b}}`},
		{"trailing escaped backslash", `q 'x\\' r`, `{q{x\{r}}}`},
		{"literal backslash", `q 'a\b'`, `{q{a\b}}`},
		{"empty quoted", "a ''", "{a{''}}"},
		{"quoted paren", "a '(' b", "{a{({b}}}"},
		{"quoted comma", "a 'x,' b", "{a{x,{b}}}"},
		{"quoted continuation", "a 'x\n  y'", "{a{x\n y}}"},
		{"unterminated quote", "a 'xy", "{a{xy}}"},
		{"comment", "a # comment here\nb", "{a b}"},
		{"comment line", "# header\na", "{a}"},
		{"hash value", "#x y", "{#x{y}}"},
		{"lone hash", "a #", "{a{#}}"},
		{"block", "text \\\n  line one\n  line two\nnext", "{text{line one\nline two} next}"},
		{"block extra indent", "t \\\n  a\n    b\n", "{t{a\n  b}}"},
		{"block blank line", "t \\\n  a\n\n  b\nc", "{t{a\n\nb} c}"},
		{"block at eof", "t \\\n  a", "{t{a}}"},
		{"backslash word", `a \x`, `{a{\x}}`},
		{"pipe word", "a | b", "{a{|{b}}}"},
		{"table", "t |\n  a b\n  c\nd", "{t{0{a{b}} 1{c}} d}"},
		{"table at eof", "t |\n  a\n  b\n", "{t{0{a} 1{b}}}"},
		{"table blank row", "t |\n  a\n\n  b", "{t{0{a} 1{b}}}"},
		{"utf8", "año ünï\n  ß", "{año{ünï ß}}"},
		{"end byte", "a\x0cb", "{a}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := ParseString(tt.in)
			if err != nil {
				t.Fatalf("ParseString(%q): %v", tt.in, err)
			}
			if root.Name != graph.RootName {
				t.Errorf("root named %q", root.Name)
			}
			got := strings.TrimPrefix(root.String(), graph.RootName)
			if got != tt.want {
				t.Errorf("ParseString(%q)\n got %q\nwant %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIndentationLevels(t *testing.T) {
	rec := &recorder{}
	p := New(ParseSink(rec))
	if err := p.ParseString("a\n  b\n    c\n  d\ne\n"); err != nil {
		t.Fatal(err)
	}
	want := []event{
		{0, "text", "a"},
		{1, "text", "b"},
		{2, "text", "c"},
		{1, "text", "d"},
		{0, "text", "e"},
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if p.Root() != nil {
		t.Errorf("no tree is built with a custom sink")
	}
}

func TestGroupEvents(t *testing.T) {
	rec := &recorder{}
	if err := New(ParseSink(rec)).ParseString("a(b,c)"); err != nil {
		t.Fatal(err)
	}
	want := []event{
		{0, "text", "a"},
		{1, "format", "("},
		{1, "text", "b"},
		{1, "text", "c"},
		{1, "format", ")"},
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestTableEvents(t *testing.T) {
	rec := &recorder{}
	if err := New(ParseSink(rec)).ParseString("t |\n  a b\n  c\n"); err != nil {
		t.Fatal(err)
	}
	want := []event{
		{0, "text", "t"},
		{1, "text", "0"},
		{2, "text", "a"},
		{3, "text", "b"},
		{1, "text", "1"},
		{2, "text", "c"},
	}
	if diff := cmp.Diff(want, rec.texts()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestComments(t *testing.T) {
	in := "a # first\n# second\nb"
	rec := &recorder{}
	if err := New(ParseSink(rec), ParseComments(true)).ParseString(in); err != nil {
		t.Fatal(err)
	}
	want := []event{
		{0, "text", "a"},
		{1, "comment", "# first"},
		{0, "comment", "# second"},
		{0, "text", "b"},
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	rec = &recorder{}
	if err := New(ParseSink(rec)).ParseString(in); err != nil {
		t.Fatal(err)
	}
	if len(rec.events) != 2 {
		t.Errorf("comments should be dropped by default: %v", rec.events)
	}

	root, err := ParseString(in, ParseComments(true))
	if err != nil {
		t.Fatal(err)
	}
	if got := root.String(); got != graph.RootName+"{a b}" {
		t.Errorf("builder should ignore comments, got %s", got)
	}
}

func TestMixedTabsSpaces(t *testing.T) {
	for _, in := range []string{
		"a\n  b\n\tc\n",
		"a\n \tb\n",
		"a\n\tb\n  c\n",
	} {
		var handled []State
		p := New(ParseErrorHandler(func(err error, st State) {
			handled = append(handled, st)
		}))
		err := p.ParseString(in)
		if !errors.Is(err, ErrMixedTabsSpaces) {
			t.Errorf("%q: expected ErrMixedTabsSpaces, got %v", in, err)
			continue
		}
		if len(handled) != 1 {
			t.Errorf("%q: error handler called %d times", in, len(handled))
		}
		var pe *Error
		if !errors.As(err, &pe) || pe.Op != "indent" {
			t.Errorf("%q: expected *Error with op indent, got %#v", in, err)
		}
		if !strings.HasPrefix(p.Root().String(), graph.RootName+"{a") {
			t.Errorf("%q: partial tree lost: %s", in, p.Root())
		}
	}
}

func TestMixedTabsSpacesLine(t *testing.T) {
	p := New()
	err := p.ParseString("a\n  b\n\tc\n")
	var pe *Error
	if !errors.As(err, &pe) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if pe.Line != 3 {
		t.Errorf("expected line 3, got %d", pe.Line)
	}
}

func TestBufferOverflow(t *testing.T) {
	tests := []struct {
		name string
		in   string
		op   string
	}{
		{"word", "short\nabcdefghijk\n", "word"},
		{"quoted", "short\n'abcdefghijk'\n", "quoted"},
		{"block", "short\nb \\\n  abcdefghijk\n", "block"},
		{"comment", "short\n# abcdefghijk\n", "comment"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(MaxToken(8), ParseComments(true))
			err := p.ParseString(tt.in)
			if !errors.Is(err, ErrBufferOverflow) {
				t.Fatalf("expected ErrBufferOverflow, got %v", err)
			}
			var pe *Error
			if !errors.As(err, &pe) || pe.Op != tt.op {
				t.Errorf("expected op %q, got %v", tt.op, err)
			}
			if p.Root().Node("short") == nil {
				t.Errorf("prior lines lost: %s", p.Root())
			}
		})
	}
	if _, err := ParseString("abcdefgh", MaxToken(8)); err != nil {
		t.Errorf("a token of exactly MaxToken bytes: %v", err)
	}
	tree, err := ParseString("a\nabcdefghij", MaxToken(8))
	if !errors.Is(err, ErrBufferOverflow) {
		t.Fatalf("expected ErrBufferOverflow, got %v", err)
	}
	if tree == nil || tree.Node("a") == nil {
		t.Errorf("partial tree not returned: %v", tree)
	}
}

func TestNestingErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts []ParseOption
		want error
		op   string
	}{
		{"close without open", "a )", nil, ErrNegativeNesting, "group"},
		{"too many groups", "a ((b", []ParseOption{MaxGroups(1)}, ErrMaxNesting, "group"},
		{"too deep", "a b c d e", []ParseOption{MaxLevels(4)}, ErrMaxNesting, "event"},
		{"too indented", "a\n b\n  c\n   d\n", []ParseOption{MaxLevels(3), ParseSink(&recorder{})}, ErrMaxNesting, "indent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.in, tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var pe *Error
			if !errors.As(err, &pe) || pe.Op != tt.op {
				t.Errorf("expected op %q, got %v", tt.op, err)
			}
		})
	}
}

func TestSinkError(t *testing.T) {
	boom := errors.New("boom")
	rec := &recorder{fail: boom}
	err := New(ParseSink(rec)).ParseString("a b")
	if !errors.Is(err, boom) {
		t.Errorf("expected sink error, got %v", err)
	}
	if len(rec.events) != 1 {
		t.Errorf("parse should stop at the first sink error")
	}
}

func TestResetAndDetach(t *testing.T) {
	p := New()
	if err := p.ParseString("a\n\tb"); err != nil {
		t.Fatal(err)
	}
	root := p.Detach()
	if got := root.String(); got != graph.RootName+"{a{b}}" {
		t.Errorf("got %s", got)
	}
	if p.Root().Len() != 0 {
		t.Errorf("parser kept the detached tree")
	}
	// Reset forgets the indentation character.
	if err := p.ParseString("x\n  y"); err != nil {
		t.Fatalf("after detach: %v", err)
	}
	if got := p.Root().String(); got != graph.RootName+"{x{y}}" {
		t.Errorf("got %s", got)
	}
	p.Reset()
	if p.Root().Len() != 0 || p.Line() != 1 {
		t.Errorf("Reset left state behind")
	}
}

func TestPrintSink(t *testing.T) {
	var sb strings.Builder
	if err := New(ParseSink(NewPrintSink(&sb))).ParseString("a (b, c)\nd"); err != nil {
		t.Fatal(err)
	}
	want := "a\n    b\n    c\nd\n"
	if sb.String() != want {
		t.Errorf("got %q want %q", sb.String(), want)
	}

	sb.Reset()
	if err := New(ParseSink(NewPrintSink(&sb))).ParseString("a \\\nb"); err != nil {
		t.Fatal(err)
	}
	if want := "a\nb\n"; sb.String() != want {
		t.Errorf("empty block: got %q want %q", sb.String(), want)
	}
}

func TestLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "x.ogdl")
	if err := os.WriteFile(file, []byte("server\n  port 80\n"), 0644); err != nil {
		t.Fatal(err)
	}
	root, err := Load(file)
	if err != nil {
		t.Fatal(err)
	}
	if s, ok := root.GetString("server.port"); !ok || s != "80" {
		t.Errorf("got %q", s)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Errorf("expected error for a missing file")
	}
}
