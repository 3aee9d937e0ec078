package encode

type EncodeOption func(*EncState)

// Depth limits output to n levels. A negative depth means no limit.
func Depth(n int) EncodeOption {
	return func(es *EncState) { es.depth = n }
}

// Indent sets the number of spaces per level, at least 1.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = max(n, 1) }
}

// EncodeRoot writes the node passed to Encode as well, rather than only
// its children.
func EncodeRoot(v bool) EncodeOption {
	return func(es *EncState) { es.root = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}
