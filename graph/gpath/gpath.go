package gpath

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
)

// MaxElement bounds the length of a single element's text, matching the
// longest node name.
const MaxElement = 65534

var ErrInvalidPath = errors.New("invalid path")

type Kind int

const (
	// Name is a bare word or a quoted literal.
	Name Kind = iota
	// Sep is the "." separator.
	Sep
	// Index is [n].
	Index
	// Vector is [].
	Vector
	// Brace is {...}.
	Brace
)

func (k Kind) String() string {
	switch k {
	case Name:
		return "name"
	case Sep:
		return "sep"
	case Index:
		return "index"
	case Vector:
		return "vector"
	case Brace:
		return "brace"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Element is one step of a path.
type Element struct {
	Kind Kind
	// Text is the name for Name elements and the bracket contents for
	// Brace elements.
	Text   string
	Index  int
	Quoted bool
}

func (e Element) String() string {
	switch e.Kind {
	case Sep:
		return "."
	case Index:
		return "[" + strconv.Itoa(e.Index) + "]"
	case Vector:
		return "[]"
	case Brace:
		return "{" + e.Text + "}"
	default:
		if e.Quoted || NeedsQuote(e.Text) {
			return Quote(e.Text)
		}
		return e.Text
	}
}

// Next consumes the next element of path and returns it together with the
// remaining path. It returns io.EOF once path is empty.
func Next(path string) (Element, string, error) {
	if path == "" {
		return Element{}, "", io.EOF
	}
	switch c := path[0]; c {
	case '.':
		return Element{Kind: Sep}, path[1:], nil
	case '[':
		body, rest := bracket(path[1:], ']')
		return indexElement(body, rest)
	case '{':
		body, rest := bracket(path[1:], '}')
		if len(body) > MaxElement {
			return Element{}, "", tooLong(len(body))
		}
		return Element{Kind: Brace, Text: body}, rest, nil
	case '\'', '"':
		return quoted(path, c)
	default:
		n := 0
		for n < len(path) && isWordChar(path[n]) {
			n++
		}
		if n == 0 {
			return Element{}, "", fmt.Errorf("%w: unexpected %q in %q", ErrInvalidPath, c, path)
		}
		if n > MaxElement {
			return Element{}, "", tooLong(n)
		}
		return Element{Kind: Name, Text: path[:n]}, path[n:], nil
	}
}

func tooLong(n int) error {
	return fmt.Errorf("%w: element of %d bytes exceeds %d", ErrInvalidPath, n, MaxElement)
}

// bracket splits s at the first close, which is consumed. An unterminated
// bracket runs to the end of s.
func bracket(s string, close byte) (string, string) {
	i := strings.IndexByte(s, close)
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i+1:]
}

func indexElement(body, rest string) (Element, string, error) {
	if body == "" {
		return Element{Kind: Vector}, rest, nil
	}
	for i := 0; i < len(body); i++ {
		if body[i] < '0' || body[i] > '9' {
			return Element{}, "", fmt.Errorf("%w: bad index [%s]", ErrInvalidPath, body)
		}
	}
	n, err := strconv.Atoi(body)
	if err != nil {
		return Element{}, "", fmt.Errorf("%w: bad index [%s]: %w", ErrInvalidPath, body, err)
	}
	return Element{Kind: Index, Index: n}, rest, nil
}

// quoted reads a quote delimited name. Inside, a doubled quote character
// stands for one literal quote.
func quoted(path string, q byte) (Element, string, error) {
	var sb strings.Builder
	i := 1
	for i < len(path) {
		c := path[i]
		if c == q {
			if i+1 < len(path) && path[i+1] == q {
				sb.WriteByte(q)
				i += 2
				continue
			}
			i++
			break
		}
		sb.WriteByte(c)
		i++
	}
	if sb.Len() > MaxElement {
		return Element{}, "", tooLong(sb.Len())
	}
	return Element{Kind: Name, Text: sb.String(), Quoted: true}, path[i:], nil
}

func isWordChar(c byte) bool {
	switch c {
	case '.', '[', '(', '{', ']', ')', '}', '"', ';', ',', ' ', '\t', 0:
		return false
	}
	return true
}

// Elements returns the lazy sequence of elements of path. Iteration stops
// after the first error.
func Elements(path string) iter.Seq2[Element, error] {
	return func(yield func(Element, error) bool) {
		rest := path
		for {
			e, next, err := Next(rest)
			if err == io.EOF {
				return
			}
			if !yield(e, err) || err != nil {
				return
			}
			rest = next
		}
	}
}

// Parse splits path into all of its elements.
func Parse(path string) ([]Element, error) {
	var res []Element
	for e, err := range Elements(path) {
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, nil
}

// Join renders elements back into a path string.
func Join(elems []Element) string {
	var sb strings.Builder
	for _, e := range elems {
		sb.WriteString(e.String())
	}
	return sb.String()
}

// NeedsQuote reports whether name must be quoted to be read back as a single
// Name element.
func NeedsQuote(name string) bool {
	if name == "" {
		return true
	}
	if name[0] == '\'' {
		return true
	}
	for i := 0; i < len(name); i++ {
		if !isWordChar(name[i]) {
			return true
		}
	}
	return false
}

// Quote quotes name with single quotes, doubling embedded ones.
func Quote(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
