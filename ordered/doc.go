// Package ordered provides an insertion-ordered object model for untyped data.
// Parsed JSON and YAML documents keep their key order, so converting them onto
// structured types visits properties in the order they were written.
package ordered
