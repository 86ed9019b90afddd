package morph

import (
	"fmt"
	"github.com/viant/morph/ordered"
	"reflect"
)

// UnmarshalJSON decodes JSON keeping key order and converts it into dest
func (c *Converter) UnmarshalJSON(data []byte, dest interface{}, options ...Option) error {
	value, err := ordered.ParseJSON(data)
	if err != nil {
		return fmt.Errorf("failed to parse json: %w", err)
	}
	return c.decode(value, dest, options)
}

// UnmarshalYAML decodes YAML keeping key order and converts it into dest
func (c *Converter) UnmarshalYAML(data []byte, dest interface{}, options ...Option) error {
	value, err := ordered.ParseYAML(data)
	if err != nil {
		return fmt.Errorf("failed to parse yaml: %w", err)
	}
	return c.decode(value, dest, options)
}

// decode populates structs and maps in place, other destinations are replaced
func (c *Converter) decode(value interface{}, dest interface{}, options []Option) error {
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() == reflect.Ptr && !destValue.IsNil() {
		switch destValue.Elem().Kind() {
		case reflect.Struct:
			if _, isObject := value.(ordered.Object); isObject {
				return c.Populate(value, dest, options...)
			}
		case reflect.Map:
			if _, isObject := value.(ordered.Object); isObject && destValue.Elem().Type().Key().Kind() == reflect.String {
				return c.Populate(value, dest, options...)
			}
		}
	}
	return c.Into(value, dest, options...)
}
