// Package morph converts loosely typed data (parsed JSON or YAML, maps, ordered objects, structs)
// into Go types, coercing every property to the type its destination declares.
//
// A Converter keeps a registry of coercers keyed by reflect.Type, resolves per type options
// (exclusions, visibility, error suppression) and populates structs and maps recursively.
//
//	converter := morph.New(morph.WithVisibility(morph.VisibilityTyped))
//	person, err := morph.As[Person](converter, map[string]interface{}{"age": "42"})
//
// Field level declarations use the `convert` tag:
//
//	type Event struct {
//		_     struct{}               `convert:"excludes={internal,/^tmp/}"`
//		At    string                 `convert:"at,type=date"`
//		Extra map[string]interface{} `convert:",remain"`
//	}
package morph
