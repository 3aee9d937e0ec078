package parse

import (
	"errors"
	"fmt"
)

var (
	ErrParse           = errors.New("parse error")
	ErrMixedTabsSpaces = fmt.Errorf("%w: mixed tabs and spaces in indentation", ErrParse)
	ErrBufferOverflow  = fmt.Errorf("%w: token buffer overflow", ErrParse)
	ErrMaxNesting      = fmt.Errorf("%w: maximum nesting reached", ErrParse)
	ErrNegativeNesting = fmt.Errorf("%w: negative nesting", ErrParse)
	ErrInternal        = fmt.Errorf("%w: internal error", ErrParse)
)

// Error locates a parse failure. Op names the scanning or building step
// which failed, for example "word", "quoted", "block", "group" or "event".
type Error struct {
	Err   error
	Op    string
	Line  int
	Level int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s at line %d", e.Err.Error(), e.Line)
	}
	return fmt.Sprintf("%s in %s at line %d", e.Err.Error(), e.Op, e.Line)
}
