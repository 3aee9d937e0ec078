// Package bin implements the binary OGDL stream.
//
// A stream is a sequence of nodes followed by a zero byte:
//
//	stream := (level node)* 0x00
//	node   := text 0x00 | 0x01 (length byte{length})* 0x00
//
// level is the node's depth plus one and length a chunk size, both
// unsigned varints. The first node is a header, the text "G" at level 0.
//
// Decoding produces the same events as package parse, so any parse.Sink
// can consume a binary stream.
package bin
