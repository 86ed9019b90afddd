package visitor

import (
	"fmt"
	"github.com/viant/morph/ordered"
	"reflect"
	"sort"
)

// MapVisitorOf creates a visitor of a map with string keys, keys are visited in sorted order.
func MapVisitorOf[E any](aMap map[string]E) Visitor[string, E] {
	return func(f func(key string, element E) (bool, error)) error {
		keys := make([]string, 0, len(aMap))
		for k := range aMap {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			continueVisit, err := f(k, aMap[k])
			if err != nil {
				return err
			}
			if !continueVisit {
				break
			}
		}
		return nil
	}
}

// ObjectVisitorOf creates a visitor of an ordered object, keys are visited in insertion order.
func ObjectVisitorOf(object ordered.Object) Visitor[string, interface{}] {
	return func(f func(key string, element interface{}) (bool, error)) error {
		for _, k := range object.Keys() {
			e, _ := object.Get(k)
			continueVisit, err := f(k, e)
			if err != nil {
				return err
			}
			if !continueVisit {
				break
			}
		}
		return nil
	}
}

// AnyMapVisitorOf dynamically creates a visitor from any map value, keys are formatted as strings
// and visited in sorted order.
func AnyMapVisitorOf(value interface{}) (Visitor[string, interface{}], error) {
	switch actual := value.(type) {
	case map[string]interface{}:
		return MapVisitorOf[interface{}](actual), nil
	case map[string]string:
		return anyTyped[string](actual), nil
	case map[string]bool:
		return anyTyped[bool](actual), nil
	case map[string]int:
		return anyTyped[int](actual), nil
	case map[string]float64:
		return anyTyped[float64](actual), nil
	}
	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Map {
		return nil, fmt.Errorf("expected map, got %T", value)
	}
	visitor := &AnyMapVisitor{data: val}
	return visitor.Visit, nil
}

func anyTyped[E any](aMap map[string]E) Visitor[string, interface{}] {
	visit := MapVisitorOf[E](aMap)
	return func(f func(key string, element interface{}) (bool, error)) error {
		return visit(func(key string, element E) (bool, error) {
			return f(key, element)
		})
	}
}

// AnyMapVisitor visits any map via reflection
type AnyMapVisitor struct {
	data reflect.Value
}

// Visit iterates over the map and calls f for each entry.
func (v *AnyMapVisitor) Visit(f func(key string, element interface{}) (bool, error)) error {
	mapKeys := v.data.MapKeys()
	keys := make([]string, len(mapKeys))
	byKey := make(map[string]reflect.Value, len(mapKeys))
	for i, mapKey := range mapKeys {
		keys[i] = fmt.Sprint(mapKey.Interface())
		byKey[keys[i]] = mapKey
	}
	sort.Strings(keys)
	for _, key := range keys {
		continueVisit, err := f(key, v.data.MapIndex(byKey[key]).Interface())
		if err != nil {
			return err
		}
		if !continueVisit {
			break
		}
	}
	return nil
}
