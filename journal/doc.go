// Package journal provides an append-only file of OGDL entries.
//
// Each entry is the text form of a tree's top level nodes followed by an
// end of stream byte (0x0c) and a newline. Entries are addressed by the
// file offset at which they start, so a reader may jump straight to an
// entry with Get or walk the file in order with Next.
//
//	j, err := journal.Open("events.ogdl", logger)
//	off, err := j.Add(tree)
//	back, err := j.Get(off)
package journal
