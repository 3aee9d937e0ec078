// Package libdiff compares OGDL trees.
//
// Children are aligned by name with a sequence diff, so inserting one node
// in a long list of siblings yields one change rather than a change for
// every following sibling. Aligned nodes are compared recursively. A run
// of deleted nodes directly followed by a run of inserted ones is reported
// as replacements, pairwise.
package libdiff
