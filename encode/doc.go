// Package encode writes trees as OGDL text.
//
// Each node is written on its own line, indented by its depth. Values
// holding whitespace are written as '\' blocks, or quoted when the node
// has children of its own, so that parsing the output yields the same
// tree.
//
//	root, _ := parse.ParseString("a (b, c)")
//	encode.Encode(root, os.Stdout, encode.Indent(2))
//	// a
//	//   b
//	//   c
package encode
