package visitor

import (
	"fmt"
	"reflect"
)

// SliceVisitorOf creates a visitor of typed slice elements, the key is the element index
func SliceVisitorOf[E any](slice []E) Visitor[int, E] {
	return func(f func(key int, element E) (bool, error)) error {
		for i, elem := range slice {
			continueVisit, err := f(i, elem)
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

// AnySliceVisitorOf dynamically creates a visitor from any slice or array value.
func AnySliceVisitorOf(value interface{}) (Visitor[int, any], error) {
	switch actual := value.(type) {
	case []interface{}:
		return SliceVisitorOf[interface{}](actual), nil
	case []string:
		return anyTypedSlice[string](actual), nil
	case []int:
		return anyTypedSlice[int](actual), nil
	case []float64:
		return anyTypedSlice[float64](actual), nil
	}
	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
		return nil, fmt.Errorf("expected slice, got %T", value)
	}
	visitor := &AnySliceVisitor{data: val}
	return visitor.Visit, nil
}

func anyTypedSlice[E any](slice []E) Visitor[int, any] {
	visit := SliceVisitorOf[E](slice)
	return func(f func(key int, element any) (bool, error)) error {
		return visit(func(key int, element E) (bool, error) {
			return f(key, element)
		})
	}
}

// AnySliceVisitor visits slices and arrays of any type via reflection.
type AnySliceVisitor struct {
	data reflect.Value
}

// Visit iterates over elements, calling the provided function for each element.
func (v *AnySliceVisitor) Visit(f func(key int, element any) (bool, error)) error {
	for i := 0; i < v.data.Len(); i++ {
		continueVisit, err := f(i, v.data.Index(i).Interface())
		if err != nil {
			return err
		}
		if !continueVisit {
			break
		}
	}
	return nil
}
