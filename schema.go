package morph

import (
	"reflect"
)

type (
	// Schema overlays explicit declarations on top of another provider,
	// it describes types without editing their tags.
	Schema struct {
		base  Provider
		types map[reflect.Type]*schemaType
	}

	// Declaration declares a property of a type
	Declaration struct {
		// Type overrides ambient type, ignored when Untyped
		Type reflect.Type
		// Untyped declares property without type, its raw value is installed with VisibilityAll only
		Untyped    bool
		DateLayout string
	}

	schemaType struct {
		fields  map[string]*Declaration
		options []Option
	}
)

func (s *Schema) ensureType(target reflect.Type) *schemaType {
	ret, ok := s.types[target]
	if !ok {
		ret = &schemaType{fields: map[string]*Declaration{}}
		s.types[target] = ret
	}
	return ret
}

// Declare declares a property, declared properties are annotated
func (s *Schema) Declare(target reflect.Type, name string, declaration Declaration) *Schema {
	s.ensureType(target).fields[name] = &declaration
	return s
}

// DeclareOptions declares type level options, they follow options declared by the base provider
func (s *Schema) DeclareOptions(target reflect.Type, options ...Option) *Schema {
	declared := s.ensureType(target)
	declared.options = append(declared.options, options...)
	return s
}

// Lookup returns base field merged with declaration
func (s *Schema) Lookup(target reflect.Type, name string) (*Field, error) {
	field, err := s.base.Lookup(target, name)
	if err != nil {
		return nil, err
	}
	declared, ok := s.types[target]
	if !ok {
		return field, nil
	}
	declaration, ok := declared.fields[name]
	if !ok || field == nil {
		return field, nil
	}
	ret := *field
	ret.Annotated = true
	if declaration.DateLayout != "" {
		ret.DateLayout = declaration.DateLayout
	}
	if declaration.Untyped {
		ret.Type = nil
		ret.Override = nil
	} else if declaration.Type != nil {
		ret.Override = declaration.Type
	}
	if field.Remain {
		ret.Name = name
	}
	return &ret, nil
}

// DeclaredOptions returns base options followed by declared ones
func (s *Schema) DeclaredOptions(target reflect.Type) ([]Option, error) {
	options, err := s.base.DeclaredOptions(target)
	if err != nil {
		return nil, err
	}
	if declared, ok := s.types[target]; ok {
		options = append(append([]Option{}, options...), declared.options...)
	}
	return options, nil
}

// NewSchema creates a schema over base provider, nil base uses a new TagProvider
func NewSchema(base Provider) *Schema {
	if base == nil {
		base = NewTagProvider()
	}
	return &Schema{base: base, types: map[reflect.Type]*schemaType{}}
}
