package morph

import (
	"encoding"
	"reflect"
	"strconv"
	"time"
)

var (
	timeType            = reflect.TypeOf(time.Time{})
	interfaceType       = reflect.TypeOf((*interface{})(nil)).Elem()
	stringType          = reflect.TypeOf("")
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	unconvertibleType   = reflect.TypeOf(Unconvertible{})
)

// TypeOf returns reflect.Type of T, interface types included
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func isTextUnmarshaler(t reflect.Type) bool {
	return t.Kind() != reflect.Ptr && t.Kind() != reflect.Interface && reflect.PtrTo(t).Implements(textUnmarshalerType)
}

// isSequence returns true for slices that are mapped over, []byte is a scalar
func isSequence(value interface{}) bool {
	if value == nil {
		return false
	}
	rValue := reflect.ValueOf(value)
	return rValue.Kind() == reflect.Slice && !rValue.IsNil() && rValue.Type().Elem().Kind() != reflect.Uint8
}

// kindType returns the builtin type of a scalar kind
func kindType(kind reflect.Kind) reflect.Type {
	switch kind {
	case reflect.String:
		return stringType
	case reflect.Bool:
		return reflect.TypeOf(false)
	case reflect.Int:
		return reflect.TypeOf(int(0))
	case reflect.Int8:
		return reflect.TypeOf(int8(0))
	case reflect.Int16:
		return reflect.TypeOf(int16(0))
	case reflect.Int32:
		return reflect.TypeOf(int32(0))
	case reflect.Int64:
		return reflect.TypeOf(int64(0))
	case reflect.Uint:
		return reflect.TypeOf(uint(0))
	case reflect.Uint8:
		return reflect.TypeOf(uint8(0))
	case reflect.Uint16:
		return reflect.TypeOf(uint16(0))
	case reflect.Uint32:
		return reflect.TypeOf(uint32(0))
	case reflect.Uint64:
		return reflect.TypeOf(uint64(0))
	case reflect.Uintptr:
		return reflect.TypeOf(uintptr(0))
	case reflect.Float32:
		return reflect.TypeOf(float32(0))
	case reflect.Float64:
		return reflect.TypeOf(float64(0))
	}
	return nil
}

func bitSize(kind reflect.Kind) int {
	switch kind {
	case reflect.Int8, reflect.Uint8:
		return 8
	case reflect.Int16, reflect.Uint16:
		return 16
	case reflect.Int32, reflect.Uint32, reflect.Float32:
		return 32
	case reflect.Int, reflect.Uint, reflect.Uintptr:
		return strconv.IntSize
	}
	return 64
}
