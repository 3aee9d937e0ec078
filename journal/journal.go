package journal

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/signadot/ogdl-format/go-ogdl/encode"
	"github.com/signadot/ogdl-format/go-ogdl/graph"
	"github.com/signadot/ogdl-format/go-ogdl/parse"
)

// EOS ends every entry. The parser treats it as the end of the stream.
const EOS = 0x0c

var (
	ErrClosed    = errors.New("journal closed")
	ErrBadOffset = errors.New("bad offset")
	ErrCorrupt   = errors.New("corrupt entry")
)

// Journal is an append-only log of trees. It is safe for concurrent use.
type Journal struct {
	path string
	file *os.File
	mu   sync.RWMutex
	end  int64 // write position
	pos  int64 // read position used by Next

	logger *slog.Logger
}

// Open opens or creates the journal at path. A nil logger means
// slog.Default().
func Open(path string, logger *slog.Logger) (*Journal, error) {
	if logger == nil {
		logger = slog.Default()
	}
	// Not O_APPEND: entries are written with WriteAt at the tracked end.
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal %q: %w", path, err)
	}
	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat journal %q: %w", path, err)
	}
	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to seek to end of journal %q: %w", path, err)
	}
	logger.Debug("opened journal", "path", path, "size", stat.Size())
	return &Journal{
		path:   path,
		file:   file,
		end:    stat.Size(),
		logger: logger,
	}, nil
}

// Add appends the top level nodes of node as one entry and returns the
// offset at which the entry starts.
func (j *Journal) Add(node *graph.Node) (int64, error) {
	if node == nil {
		return 0, fmt.Errorf("%w: nil node", graph.ErrInvalidArgument)
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf, encode.Indent(1)); err != nil {
		return 0, fmt.Errorf("failed to encode entry: %w", err)
	}
	buf.WriteByte(EOS)
	buf.WriteByte('\n')

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.file == nil {
		return 0, ErrClosed
	}
	offset := j.end
	n, err := j.file.WriteAt(buf.Bytes(), offset)
	if err != nil {
		return 0, fmt.Errorf("failed to write entry at %d: %w", offset, err)
	}
	j.end += int64(n)
	j.logger.Debug("journal add", "path", j.path, "offset", offset, "bytes", n)
	return offset, nil
}

// Get parses the entry starting at offset.
func (j *Journal) Get(offset int64) (*graph.Node, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.file == nil {
		return nil, ErrClosed
	}
	if offset < 0 || offset >= j.end {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrBadOffset, offset, j.end)
	}
	node, _, err := j.read(offset)
	return node, err
}

// Next parses the entry at the read position and advances past it. It
// returns io.EOF once every entry has been read.
func (j *Journal) Next() (*graph.Node, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.file == nil {
		return nil, ErrClosed
	}
	if j.pos >= j.end {
		return nil, io.EOF
	}
	node, n, err := j.read(j.pos)
	if err != nil {
		return nil, err
	}
	j.pos += n
	return node, nil
}

// Position returns the read position used by Next.
func (j *Journal) Position() int64 {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.pos
}

// SetPosition moves the read position used by Next, typically to an
// offset returned by Add.
func (j *Journal) SetPosition(offset int64) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if offset < 0 || offset > j.end {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrBadOffset, offset, j.end)
	}
	j.pos = offset
	return nil
}

// Size returns the number of bytes in the journal.
func (j *Journal) Size() int64 {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.end
}

func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.file == nil {
		return nil
	}
	err := j.file.Close()
	j.file = nil
	if err != nil {
		return fmt.Errorf("failed to close journal %q: %w", j.path, err)
	}
	return nil
}

// read parses one entry at offset and returns it with the number of bytes
// it spans, terminator included. Offset may point at a bare terminator,
// which reads as an empty tree. An entry cut short by the end of the file
// is accepted.
func (j *Journal) read(offset int64) (*graph.Node, int64, error) {
	cs := &countingScanner{r: bufio.NewReader(io.NewSectionReader(j.file, offset, j.end-offset))}
	p := parse.New(parse.ParseLogger(j.logger))
	if err := p.Parse(cs); err != nil {
		return nil, 0, fmt.Errorf("failed to parse entry at %d: %w", offset, err)
	}
	ok := cs.terminator()
	if cs.err != nil {
		return nil, 0, fmt.Errorf("failed to read entry at %d: %w", offset, cs.err)
	}
	if !ok && !cs.eof {
		return nil, 0, fmt.Errorf("%w: at %d, stopped at byte %d", ErrCorrupt, offset, offset+cs.n)
	}
	return p.Detach(), cs.n, nil
}

// countingScanner counts the bytes consumed from r.
type countingScanner struct {
	r   *bufio.Reader
	n   int64
	eof bool
	err error
}

func (c *countingScanner) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func (c *countingScanner) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err != nil {
		return 0, err
	}
	c.n++
	return b, nil
}

func (c *countingScanner) UnreadByte() error {
	if err := c.r.UnreadByte(); err != nil {
		return err
	}
	c.n--
	return nil
}

// terminator consumes an EOS byte and the line break after it, and
// reports whether there was one.
func (c *countingScanner) terminator() bool {
	b, err := c.ReadByte()
	if err != nil {
		c.setErr(err)
		return false
	}
	if b != EOS {
		c.UnreadByte()
		return false
	}
	switch b, err := c.ReadByte(); {
	case err != nil:
		c.setErr(err)
		return true
	case b == '\r':
		if b, err := c.ReadByte(); err == nil && b != '\n' {
			c.UnreadByte()
		}
	case b != '\n':
		c.UnreadByte()
	}
	return true
}

func (c *countingScanner) setErr(err error) {
	if err == io.EOF {
		c.eof = true
		return
	}
	c.err = err
}
