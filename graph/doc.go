// Package graph provides the ordered tree underlying OGDL documents.
//
// A Node carries a name and an ordered list of children which it owns
// exclusively. Paths in the language of package gpath address subtrees,
// see Node.Get, Node.MakePath and Node.Set.
package graph
