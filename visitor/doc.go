// Package visitor enumerates the properties of object-like values.
// It supports ordered objects, string keyed maps, slices and structs
// (own fields first, then promoted fields of embedded structs), with simple
// callback-based traversal.
package visitor
