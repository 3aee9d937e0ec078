package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Parse bool
	Path  bool
	Build bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("O_DEBUG_PARSE")
	d.Path = boolEnv("O_DEBUG_PATH")
	d.Build = boolEnv("O_DEBUG_BUILD")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Parse reports whether parser events should be traced.
func Parse() bool {
	return d.Parse
}

// Path reports whether path evaluation should be traced.
func Path() bool {
	return d.Path
}

// Build reports whether trees should be dumped after they are built.
func Build() bool {
	return d.Build
}

// Logf writes a formatted line to stderr. Values implementing
// fmt.Stringer, such as trees, print in their compact form.
func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
	if len(format) == 0 || format[len(format)-1] != '\n' {
		fmt.Fprintln(os.Stderr)
	}
}
