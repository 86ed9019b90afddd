package visitor

import (
	"fmt"
	"github.com/viant/morph/ordered"
	"reflect"
)

// PropertiesOf returns a visitor of object properties: ordered objects in insertion order,
// maps in sorted key order, structs in field order (own fields first, then promoted ones).
// Func valued properties are skipped.
func PropertiesOf(value interface{}) (Visitor[string, interface{}], error) {
	var visit Visitor[string, interface{}]
	var err error
	switch actual := value.(type) {
	case ordered.Object:
		visit = ObjectVisitorOf(actual)
	case map[string]interface{}:
		visit = MapVisitorOf[interface{}](actual)
	default:
		switch reflect.Indirect(reflect.ValueOf(value)).Kind() {
		case reflect.Map:
			visit, err = AnyMapVisitorOf(reflect.Indirect(reflect.ValueOf(value)).Interface())
		case reflect.Struct:
			visit, err = StructVisitorOf(value)
		default:
			return nil, fmt.Errorf("expected object, got %T", value)
		}
	}
	if err != nil {
		return nil, err
	}
	return func(f func(key string, element interface{}) (bool, error)) error {
		return visit(func(key string, element interface{}) (bool, error) {
			if element != nil && reflect.TypeOf(element).Kind() == reflect.Func {
				return true, nil
			}
			return f(key, element)
		})
	}, nil
}
