package parse

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/ogdl-format/go-ogdl/graph"
)

// Parser turns OGDL text into events. It reads one byte at a time with a
// single byte of lookahead and never recurses, except once per table row.
//
// A Parser is not safe for concurrent use. Use Reset between unrelated
// documents.
type Parser struct {
	opts    *parseOpts
	sink    Sink
	builder *Builder
	src     *source

	level       int
	lineLevel   int
	indentation []int
	groups      []int
	buf         []byte
	savedSpace  int
	lineNo      int
	indentChar  byte
}

// New creates a parser. Unless ParseSink is given, events are assembled
// into a tree available from Root.
func New(opts ...ParseOption) *Parser {
	o := defaultOpts()
	for _, f := range opts {
		f(o)
	}
	o.maxLevels = max(o.maxLevels, 2)
	p := &Parser{
		opts:        o,
		sink:        o.sink,
		indentation: make([]int, o.maxLevels),
	}
	if p.sink == nil {
		p.builder = NewBuilder(BuildMaxLevels(o.maxLevels))
		p.sink = p.builder
	}
	return p
}

// Parse reads r up to its end, or up to the first byte which cannot start
// a line. On error, the tree built so far remains available from Root.
func (p *Parser) Parse(r io.Reader) error {
	p.src = newSource(r)
	for {
		more, err := p.line()
		if err == nil && p.src.err != nil {
			err = p.newErr("read", p.src.err)
		}
		if err != nil {
			return p.fail(err)
		}
		if !more {
			return nil
		}
	}
}

func (p *Parser) ParseString(s string) error {
	return p.Parse(strings.NewReader(s))
}

// Root returns the tree built so far, or nil when events go to a custom
// sink.
func (p *Parser) Root() *graph.Node {
	if p.builder == nil {
		return nil
	}
	return p.builder.Root()
}

// Detach returns the built tree and resets the parser.
func (p *Parser) Detach() *graph.Node {
	var res *graph.Node
	if p.builder != nil {
		res = p.builder.Detach()
	}
	p.Reset()
	return res
}

// Reset discards the built tree along with all indentation, group and
// level state.
func (p *Parser) Reset() {
	p.level = 0
	p.lineLevel = 0
	clear(p.indentation)
	p.groups = p.groups[:0]
	p.buf = p.buf[:0]
	p.savedSpace = 0
	p.lineNo = 0
	p.indentChar = 0
	if p.builder != nil {
		p.builder.Reset()
	}
}

// Line returns the current line number, starting at 1.
func (p *Parser) Line() int {
	return p.lineNo + 1
}

func (p *Parser) newErr(op string, err error) error {
	return &Error{Err: err, Op: op, Line: p.Line(), Level: p.level}
}

func (p *Parser) fail(err error) error {
	var pe *Error
	if !errors.As(err, &pe) {
		err = p.newErr("", err)
	}
	if p.opts.onError != nil {
		p.opts.onError(err, State{Line: p.Line(), Level: p.level, LineLevel: p.lineLevel})
	}
	return err
}

func (p *Parser) trace(kind, text string) {
	if !p.opts.tracing() {
		return
	}
	p.opts.logger.Debug("event", "kind", kind, "level", p.level, "line", p.Line(), "text", text)
}

func (p *Parser) text(s string) error {
	p.trace("text", s)
	if err := p.sink.Text(p.level, s); err != nil {
		return p.newErr("event", err)
	}
	return nil
}

func (p *Parser) format(s string) error {
	p.trace("format", s)
	if err := p.sink.Format(p.level, s); err != nil {
		return p.newErr("event", err)
	}
	return nil
}

func (p *Parser) comment(s string) error {
	p.trace("comment", s)
	if err := p.sink.Comment(p.level, s); err != nil {
		return p.newErr("event", err)
	}
	return nil
}

func (p *Parser) grow(op string, c byte) error {
	if len(p.buf) >= p.opts.maxToken {
		return p.newErr(op, ErrBufferOverflow)
	}
	p.buf = append(p.buf, c)
	return nil
}

// space skips spaces and tabs and returns how many it skipped. With check
// set, the run is indentation and must not mix tabs and spaces, neither
// within itself nor with earlier indentation.
func (p *Parser) space(check bool) (int, error) {
	if p.savedSpace > 0 {
		n := p.savedSpace
		p.savedSpace = 0
		return n, nil
	}
	sps, tabs := 0, 0
	for {
		c := p.src.read()
		if c == ' ' {
			sps++
		} else if c == '\t' {
			tabs++
		} else {
			p.src.unread()
			break
		}
	}
	if check {
		if (sps > 0 && tabs > 0) || (p.indentChar == ' ' && tabs > 0) || (p.indentChar == '\t' && sps > 0) {
			return 0, p.newErr("indent", ErrMixedTabsSpaces)
		}
		if sps > 0 {
			p.indentChar = ' '
		} else if tabs > 0 {
			p.indentChar = '\t'
		}
	}
	return sps + tabs, nil
}

// newline consumes one of CR LF, CR or LF.
func (p *Parser) newline() bool {
	switch p.src.read() {
	case '\r':
		if p.src.read() != '\n' {
			p.src.unread()
		}
	case '\n':
	default:
		p.src.unread()
		return false
	}
	p.lineNo++
	return true
}

func (p *Parser) eos() bool {
	return classOf(p.src.peek()) == cEnd
}

// line parses one line and reports whether more may follow.
func (p *Parser) line() (bool, error) {
	n, err := p.space(true)
	if err != nil {
		return false, err
	}
	if p.newline() {
		return true, nil
	}
	if p.eos() {
		return false, nil
	}
	switch {
	case p.level == 0:
		p.indentation[0] = n
		p.lineLevel = 0
	case n > p.indentation[p.lineLevel]:
		if p.lineLevel+1 >= len(p.indentation) {
			return false, p.newErr("indent", ErrMaxNesting)
		}
		p.lineLevel++
		p.indentation[p.lineLevel] = n
	default:
		for p.lineLevel > 0 && n < p.indentation[p.lineLevel] {
			p.lineLevel--
		}
	}
	p.level = p.lineLevel
	if err := p.nodes(); err != nil {
		return false, err
	}
	return !p.eos(), nil
}

func (p *Parser) nodes() error {
	for {
		more, err := p.node()
		if err != nil || !more {
			return err
		}
		if _, err := p.space(false); err != nil {
			return err
		}
	}
}

// node parses one node and reports whether more nodes may follow on the
// same line.
func (p *Parser) node() (bool, error) {
	n := p.indentation[p.lineLevel] + 1
	c := p.src.read()
	switch c {
	case '\\':
		if p.newline() {
			if err := p.block(n); err != nil {
				return false, err
			}
			return false, p.text(string(p.buf))
		}
		p.buf = append(p.buf[:0], '\\')
		return p.word()
	case '|':
		if p.newline() {
			return false, p.table(n)
		}
		p.buf = append(p.buf[:0], '|')
		return p.word()
	case '\'', '"':
		if err := p.quoted(byte(c), n); err != nil {
			return false, err
		}
		s := string(p.buf)
		if s == "" {
			s = "''"
		}
		if err := p.text(s); err != nil {
			return false, err
		}
		p.level++
		return true, nil
	default:
		p.src.unread()
		p.buf = p.buf[:0]
		return p.word()
	}
}

// word extends p.buf with word bytes. A word stops before a space, a line
// break or the end of the stream, and before a parenthesis, which is a
// word of its own. A comma ends a word and is kept.
func (p *Parser) word() (bool, error) {
	for {
		c := p.src.read()
		if classOf(c) != cWord {
			p.src.unread()
			break
		}
		if c == '(' || c == ')' {
			if len(p.buf) == 0 {
				p.buf = append(p.buf, byte(c))
			} else {
				p.src.unread()
			}
			break
		}
		if err := p.grow("word", byte(c)); err != nil {
			return false, err
		}
		if c == ',' {
			break
		}
		if c == '#' && len(p.buf) == 1 && classOf(p.src.peek()) == cSpace {
			return false, p.commentLine()
		}
	}
	return p.token()
}

// commentLine consumes the rest of a line starting with "# ".
func (p *Parser) commentLine() error {
	for {
		c := p.src.read()
		if t := classOf(c); t == cBreak || t == cEnd {
			p.src.unread()
			break
		}
		if !p.opts.comments {
			continue
		}
		if err := p.grow("comment", byte(c)); err != nil {
			return err
		}
	}
	if !p.opts.comments {
		return nil
	}
	return p.comment(string(p.buf))
}

// token emits the word in p.buf, handling group markers and a trailing
// comma.
func (p *Parser) token() (bool, error) {
	s := p.buf
	switch {
	case len(s) == 0:
		return false, nil
	case len(s) == 1 && s[0] == '(':
		if len(p.groups) >= p.opts.maxGroups {
			return false, p.newErr("group", ErrMaxNesting)
		}
		p.groups = append(p.groups, p.level)
		return true, p.format("(")
	case len(s) == 1 && s[0] == ')':
		if len(p.groups) == 0 {
			return false, p.newErr("group", ErrNegativeNesting)
		}
		p.level = p.groups[len(p.groups)-1]
		p.groups = p.groups[:len(p.groups)-1]
		return true, p.format(")")
	}
	comma := s[len(s)-1] == ','
	if comma {
		s = s[:len(s)-1]
	}
	if len(s) != 0 {
		if err := p.text(string(s)); err != nil {
			return false, err
		}
	}
	switch {
	case !comma:
		p.level++
	case len(p.groups) != 0:
		p.level = p.groups[len(p.groups)-1]
	default:
		p.level = p.lineLevel
	}
	return true, nil
}

// quoted reads up to the closing quote q. A backslash before q or before
// another backslash stands for that character; any other backslash is
// literal. After a line break, up to n spaces or tabs of continuation
// indentation are dropped.
func (p *Parser) quoted(q byte, n int) error {
	p.buf = p.buf[:0]
	skip := 0
	for {
		c := p.src.read()
		if c == eof || c == int(q) {
			break
		}
		if skip > 0 {
			if c == ' ' || c == '\t' {
				skip--
				continue
			}
			skip = 0
		}
		if c == '\\' {
			if d := p.src.peek(); d == int(q) || d == '\\' {
				c = p.src.read()
			}
		}
		if err := p.grow("quoted", byte(c)); err != nil {
			return err
		}
		if c == '\n' {
			skip = n
			p.lineNo++
		}
	}
	return nil
}

// block reads the lines following a '\' line. Every line indented at least
// n belongs to the block, as do less indented empty lines. Indentation
// beyond that of the first line is kept.
func (p *Parser) block(n int) error {
	p.buf = p.buf[:0]
	ind := -1
	for {
		m, err := p.space(true)
		if err != nil {
			return err
		}
		if m < n {
			if !p.newline() {
				p.savedSpace = m
				break
			}
			if err := p.grow("block", '\n'); err != nil {
				return err
			}
			continue
		}
		if ind < 0 {
			ind = m
		}
		for range m - ind {
			if err := p.grow("block", ' '); err != nil {
				return err
			}
		}
		c := p.src.read()
		for c != eof && c != '\n' {
			if err := p.grow("block", byte(c)); err != nil {
				return err
			}
			c = p.src.read()
		}
		if err := p.grow("block", '\n'); err != nil {
			return err
		}
		if c == eof {
			break
		}
		p.lineNo++
	}
	for range 2 {
		if k := len(p.buf); k > 0 && classOf(int(p.buf[k-1])) == cBreak {
			p.buf = p.buf[:k-1]
		}
	}
	return nil
}

// table reads the lines following a '|' line. Each line indented at least
// n is a row: its index is emitted at the current level and its content
// is parsed one level deeper.
func (p *Parser) table(n int) error {
	level, lineLevel := p.level, p.lineLevel
	for i := 0; ; {
		m, err := p.space(true)
		if err != nil {
			return err
		}
		if p.newline() {
			continue
		}
		if p.eos() {
			break
		}
		if m < n {
			p.savedSpace = m
			break
		}
		if err := p.text(strconv.Itoa(i)); err != nil {
			return err
		}
		if level+1 >= len(p.indentation) {
			return p.newErr("table", ErrMaxNesting)
		}
		p.level = level + 1
		p.lineLevel = p.level
		p.indentation[p.lineLevel] = m
		if err := p.nodes(); err != nil {
			return err
		}
		p.level, p.lineLevel = level, lineLevel
		i++
	}
	return nil
}
