package bin

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/ogdl-format/go-ogdl/graph"
	"github.com/signadot/ogdl-format/go-ogdl/parse"
)

// Header is the text of the first node of every stream.
const Header = "G"

// binaryTag introduces a chunked binary node.
const binaryTag = 0x01

var (
	ErrBadHeader = errors.New("missing binary header")
	ErrBadStream = errors.New("malformed binary stream")
)

type opts struct {
	maxToken int
}

type Option func(*opts)

// MaxToken bounds the size of a single node.
func MaxToken(n int) Option {
	return func(o *opts) { o.maxToken = n }
}

func newOpts(options []Option) *opts {
	o := &opts{maxToken: parse.DefaultMaxToken}
	for _, f := range options {
		f(o)
	}
	return o
}

// Decoder reads a binary stream.
type Decoder struct {
	r    *bufio.Reader
	opts *opts
	buf  []byte
}

func NewDecoder(r io.Reader, options ...Option) *Decoder {
	return &Decoder{r: bufio.NewReader(r), opts: newOpts(options)}
}

// Decode sends every node of the stream, the header included, to sink.
func (d *Decoder) Decode(sink parse.Sink) error {
	level, text, data, err := d.node()
	if err != nil {
		return err
	}
	if level != 0 || data != nil || text != Header {
		return ErrBadHeader
	}
	if err := sink.Text(level, text); err != nil {
		return err
	}
	for {
		level, text, data, err = d.node()
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		case data != nil:
			err = sink.Binary(level, data)
		default:
			err = sink.Text(level, text)
		}
		if err != nil {
			return err
		}
	}
}

// node reads one node. It returns io.EOF at the terminator.
func (d *Decoder) node() (int, string, []byte, error) {
	lv, err := binary.ReadUvarint(d.r)
	if err != nil {
		return 0, "", nil, truncated(err)
	}
	if lv == 0 {
		return 0, "", nil, io.EOF
	}
	level := int(lv - 1)
	c, err := d.r.ReadByte()
	if err != nil {
		return 0, "", nil, truncated(err)
	}
	switch c {
	case 0:
		return 0, "", nil, fmt.Errorf("%w: empty node at level %d", ErrBadStream, level)
	case binaryTag:
		data, err := d.chunks()
		return level, "", data, err
	}
	d.buf = append(d.buf[:0], c)
	for {
		c, err := d.r.ReadByte()
		if err != nil {
			return 0, "", nil, truncated(err)
		}
		if c == 0 {
			break
		}
		if len(d.buf) >= d.opts.maxToken {
			return 0, "", nil, &parse.Error{Err: parse.ErrBufferOverflow, Op: "text", Level: level}
		}
		d.buf = append(d.buf, c)
	}
	return level, string(d.buf), nil, nil
}

func (d *Decoder) chunks() ([]byte, error) {
	data := []byte{}
	for {
		n, err := binary.ReadUvarint(d.r)
		if err != nil {
			return nil, truncated(err)
		}
		if n == 0 {
			return data, nil
		}
		if uint64(len(data))+n > uint64(d.opts.maxToken) {
			return nil, &parse.Error{Err: parse.ErrBufferOverflow, Op: "binary"}
		}
		start := len(data)
		data = append(data, make([]byte, n)...)
		if _, err := io.ReadFull(d.r, data[start:]); err != nil {
			return nil, truncated(err)
		}
	}
}

func truncated(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: %w", ErrBadStream, io.ErrUnexpectedEOF)
	}
	return err
}

// Decode reads a binary stream into a tree rooted at a node named
// graph.RootName.
func Decode(r io.Reader, options ...Option) (*graph.Node, error) {
	b := parse.NewBuilder(parse.SkipHeader())
	if err := NewDecoder(r, options...).Decode(b); err != nil {
		return nil, err
	}
	return b.Detach(), nil
}

// Encoder is a parse.Sink writing a binary stream. The header is written
// before the first node; Close writes the terminator.
type Encoder struct {
	w      *bufio.Writer
	header bool
	closed bool
	tmp    []byte
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

func (e *Encoder) Format(int, string) error { return nil }

func (e *Encoder) Comment(int, string) error { return nil }

func (e *Encoder) Text(level int, text string) error {
	if text == "" {
		return nil
	}
	if text[0] == binaryTag || strings.IndexByte(text, 0) >= 0 {
		return e.Binary(level, []byte(text))
	}
	if err := e.level(level); err != nil {
		return err
	}
	e.w.WriteString(text)
	return e.w.WriteByte(0)
}

func (e *Encoder) Binary(level int, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if err := e.level(level); err != nil {
		return err
	}
	e.w.WriteByte(binaryTag)
	e.uvarint(uint64(len(data)))
	e.w.Write(data)
	return e.w.WriteByte(0)
}

func (e *Encoder) level(level int) error {
	if e.closed {
		return fmt.Errorf("%w: write after close", ErrBadStream)
	}
	if level < 0 {
		return fmt.Errorf("%w: level %d", parse.ErrNegativeNesting, level)
	}
	if !e.header {
		e.header = true
		e.uvarint(1)
		e.w.WriteString(Header)
		e.w.WriteByte(0)
	}
	e.uvarint(uint64(level) + 1)
	return nil
}

func (e *Encoder) uvarint(v uint64) {
	e.tmp = binary.AppendUvarint(e.tmp[:0], v)
	e.w.Write(e.tmp)
}

// Close terminates the stream and flushes it.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	if !e.header {
		e.header = true
		e.uvarint(1)
		e.w.WriteString(Header)
		e.w.WriteByte(0)
	}
	e.closed = true
	e.w.WriteByte(0)
	return e.w.Flush()
}

// Encode writes the descendants of node as a complete stream.
func Encode(node *graph.Node, w io.Writer) error {
	e := NewEncoder(w)
	level := -2
	err := node.Visit(func(n *graph.Node, isPost bool) (bool, error) {
		if isPost {
			level--
			return true, nil
		}
		level++
		if n == node {
			return true, nil
		}
		return true, e.Text(level, n.Name)
	})
	if err != nil {
		return err
	}
	return e.Close()
}
