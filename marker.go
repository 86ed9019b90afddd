package morph

// Unconvertible marks a property that is never converted, a field declared with
// `convert:"type=unconvertible"` or of this type is left unset.
type Unconvertible struct{}

// UndefinedValue is the type of Undefined
type UndefinedValue struct{}

// Undefined is returned by a coercer to leave destination unset
var Undefined = UndefinedValue{}

func isUndefined(value interface{}) bool {
	_, ok := value.(UndefinedValue)
	return ok
}
