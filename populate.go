package morph

import (
	"fmt"
	"github.com/viant/morph/visitor"
	"reflect"
)

// populate installs source properties on dest, an addressable struct or a map
func (c *Converter) populate(s *session, source interface{}, dest reflect.Value, options *Options) error {
	leave, err := s.enter(source)
	if err != nil {
		return err
	}
	defer leave()
	visit, err := visitor.PropertiesOf(source)
	if err != nil {
		// scalars have no properties, dest stays empty
		options.Logger.Trace().Str("type", dest.Type().String()).Str("source", fmt.Sprintf("%T", source)).Msg("no properties")
		return nil
	}
	nested := options.inherited()
	return visit(func(name string, value interface{}) (bool, error) {
		if options.Excludes.Match(name) {
			options.Logger.Trace().Str("type", dest.Type().String()).Str("property", name).Msg("excluded")
			return true, nil
		}
		var err error
		if dest.Kind() == reflect.Map {
			err = c.populateEntry(s, name, value, dest, nested)
		} else {
			err = c.populateField(s, name, value, dest, options, nested)
		}
		if err != nil {
			return false, fmt.Errorf("field %q: %w", name, err)
		}
		return true, nil
	})
}

func (c *Converter) populateField(s *session, name string, value interface{}, dest reflect.Value, options *Options, nested []Option) error {
	field, err := c.provider.Lookup(dest.Type(), name)
	if err != nil {
		return err
	}
	if field == nil {
		options.Logger.Trace().Str("type", dest.Type().String()).Str("property", name).Msg("no field")
		return nil
	}
	if options.Visibility == VisibilityDecorated && !field.Annotated {
		options.Logger.Trace().Str("type", dest.Type().String()).Str("property", name).Msg("not decorated")
		return nil
	}
	declared := field.Override
	if !field.Remain {
		declared = field.DeclaredType()
	}
	if declared == nil {
		if options.Visibility != VisibilityAll {
			options.Logger.Trace().Str("type", dest.Type().String()).Str("property", name).Msg("untyped")
			return nil
		}
		return c.install(s, dest, field, name, value, nested)
	}
	call := nested
	if field.DateLayout != "" {
		call = append(append([]Option{}, nested...), WithDateLayout(field.DateLayout))
	}
	result, err := c.convert(s, value, declared, call)
	if err != nil {
		return err
	}
	if isUndefined(result) {
		return nil
	}
	return c.install(s, dest, field, name, result, call)
}

func (c *Converter) install(s *session, dest reflect.Value, field *Field, name string, value interface{}, call []Option) error {
	target := fieldByIndex(dest, field.Index)
	if !field.Remain {
		return c.assign(s, target, value, call)
	}
	if target.IsNil() {
		target.Set(reflect.MakeMap(target.Type()))
	}
	entry := reflect.New(target.Type().Elem()).Elem()
	if value != nil {
		entry.Set(reflect.ValueOf(value))
	}
	target.SetMapIndex(reflect.ValueOf(name), entry)
	return nil
}

// populateEntry installs a map entry, the map element type is the declared type of every entry
func (c *Converter) populateEntry(s *session, name string, value interface{}, dest reflect.Value, nested []Option) error {
	elemType := dest.Type().Elem()
	result, err := c.convert(s, value, elemType, nested)
	if err != nil {
		return err
	}
	if isUndefined(result) {
		return nil
	}
	entry := reflect.New(elemType).Elem()
	if err = c.assign(s, entry, result, nested); err != nil {
		return err
	}
	dest.SetMapIndex(reflect.ValueOf(name).Convert(dest.Type().Key()), entry)
	return nil
}

// fieldByIndex returns nested field, nil embedded pointers are allocated
func fieldByIndex(value reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 && value.Kind() == reflect.Ptr {
			if value.IsNil() {
				value.Set(reflect.New(value.Type().Elem()))
			}
			value = value.Elem()
		}
		value = value.Field(x)
	}
	return value
}
