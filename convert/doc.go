// Package convert maps other tree formats onto OGDL trees and renders
// trees as Graphviz graphs.
//
// XML elements become nodes named by their tag, with attributes as
// children holding the attribute value. JSON and YAML mappings become
// nodes named by their keys in document order. Sequence items that are
// scalars become children directly, while nested mappings and sequences
// are placed under children named by their position, 0, 1 and so on.
//
// Empty strings are represented by the name '' since nodes cannot have
// empty names.
package convert
