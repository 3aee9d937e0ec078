package parse

import (
	"bufio"
	"io"
)

const eof = -1

// source reads bytes with one byte of pushback.
type source struct {
	r   io.ByteScanner
	ok  bool // whether the last read returned a byte
	err error
}

func newSource(r io.Reader) *source {
	bs, ok := r.(io.ByteScanner)
	if !ok {
		bs = bufio.NewReader(r)
	}
	return &source{r: bs}
}

func (s *source) read() int {
	c, err := s.r.ReadByte()
	if err != nil {
		if err != io.EOF && s.err == nil {
			s.err = err
		}
		s.ok = false
		return eof
	}
	s.ok = true
	return int(c)
}

func (s *source) unread() {
	if !s.ok {
		return
	}
	s.ok = false
	if err := s.r.UnreadByte(); err != nil && s.err == nil {
		s.err = err
	}
}

func (s *source) peek() int {
	c := s.read()
	s.unread()
	return c
}

type class int

const (
	cWord class = iota + 1
	cSpace
	cBreak
	cEnd
)

func classOf(c int) class {
	switch {
	case c == ' ' || c == '\t':
		return cSpace
	case c == '\n' || c == '\r':
		return cBreak
	case c < ' ' || c == 0x7f:
		return cEnd
	default:
		return cWord
	}
}
