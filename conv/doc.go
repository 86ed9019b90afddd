// Package conv provides primitive value coercion.
// Each coercer interprets an arbitrary value as one target primitive (string, number,
// boolean, date or plain object) under a fixed rule set; nil always passes through,
// except for booleans where nil is false.
package conv
