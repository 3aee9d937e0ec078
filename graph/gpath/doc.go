// Package gpath tokenizes OGDL paths.
//
// A path is a sequence of elements read left to right:
//
//	a.b          names, separated by '.'
//	'a b'."c.d"  quoted names; a doubled quote stands for one quote
//	a[1]         the second sibling named a
//	a.[1]        the second child of a
//	a.b[]        all children of every b under a, collected
//	{x}          brace elements, tokenized but not evaluated
//
// The grammar is resolved one element at a time by the leading character,
// see Next. Evaluation against a tree lives in package graph.
package gpath
