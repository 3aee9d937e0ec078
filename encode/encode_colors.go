package encode

import (
	"strings"

	"github.com/fatih/color"
)

type ColorAttr int

const (
	// NameColor colors values which have children.
	NameColor ColorAttr = iota
	// LeafColor colors values without children.
	LeafColor
	QuotedColor
	BlockColor
	// MarkerColor colors the '\' introducing a block.
	MarkerColor
	DeleteColor
	InsertColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map: map[ColorAttr]func(string, ...any) string{
			NameColor:   color.RGB(128, 168, 196).SprintfFunc(),
			LeafColor:   color.RGB(8, 196, 16).SprintfFunc(),
			QuotedColor: color.RGB(88, 158, 86).SprintfFunc(),
			BlockColor:  color.RGB(198, 198, 46).SprintfFunc(),
			MarkerColor: color.RGB(255, 0, 196).SprintfFunc(),
			DeleteColor: color.RGB(220, 50, 47).SprintfFunc(),
			InsertColor: color.RGB(64, 200, 64).SprintfFunc(),
		},
	}
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

// Color colors s. A nil Colors leaves s unchanged.
func (c *Colors) Color(a ColorAttr, s string) string {
	if c == nil {
		return s
	}
	return c.Get(a)(s)
}

func (c *Colors) Get(a ColorAttr) func(string, ...any) string {
	f := c.Map[a]
	if f == nil {
		return c.Default
	}
	return f
}
