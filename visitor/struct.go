package visitor

import (
	"fmt"
	"github.com/viant/xunsafe"
	"reflect"
	"sort"
	"unsafe"
)

// StructVisitor implements Visitor[string, interface{}] for structs, fields are read with xunsafe.
type StructVisitor struct {
	value  interface{}
	ptr    unsafe.Pointer
	fields *Fields
}

// StructVisitorOf creates a StructVisitor from any struct value or non nil struct pointer.
func StructVisitorOf(value interface{}) (Visitor[string, interface{}], error) {
	valueType := reflect.TypeOf(value)
	if valueType == nil {
		return nil, fmt.Errorf("expected struct or pointer to struct, got %T", value)
	}
	isPtr := false
	var structType reflect.Type
	switch valueType.Kind() {
	case reflect.Ptr:
		isPtr = true
		structType = valueType.Elem()
	case reflect.Struct:
		structType = valueType
	}
	if structType == nil || structType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected struct or pointer to struct, got %T", value)
	}
	if !isPtr {
		rPointer := reflect.New(structType)
		rPointer.Elem().Set(reflect.ValueOf(value))
		value = rPointer.Interface()
	} else if reflect.ValueOf(value).IsNil() {
		return nil, fmt.Errorf("expected non nil pointer, got nil %T", value)
	}
	visitor := &StructVisitor{
		value:  value,
		ptr:    xunsafe.AsPointer(value),
		fields: FieldsOf(structType),
	}
	return visitor.Visit, nil
}

// Visit iterates over struct fields, calling the provided function with each field name and value.
// Func fields and fields behind nil embedded pointers are skipped, entries of a remain map
// follow the fields unless shadowed by them.
func (w *StructVisitor) Visit(f func(key string, element interface{}) (bool, error)) error {
	for _, field := range w.fields.Fields {
		if field.Type.Kind() == reflect.Func {
			continue
		}
		fieldValue, ok := field.Value(w.ptr)
		if !ok {
			continue
		}
		continueVisit, err := f(field.Name, fieldValue)
		if err != nil {
			return err
		}
		if !continueVisit {
			return nil
		}
	}
	if w.fields.Remain == nil {
		return nil
	}
	value, ok := w.fields.Remain.Value(w.ptr)
	if !ok {
		return nil
	}
	remain, _ := value.(map[string]interface{})
	keys := make([]string, 0, len(remain))
	for key := range remain {
		if _, shadowed := w.fields.Lookup(key); !shadowed {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		continueVisit, err := f(key, remain[key])
		if err != nil {
			return err
		}
		if !continueVisit {
			break
		}
	}
	return nil
}
