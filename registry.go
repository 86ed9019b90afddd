package morph

import (
	"github.com/viant/morph/conv"
	"reflect"
)

// Coercer converts a value into a registered type with effective options
type Coercer func(value interface{}, options *Options) (interface{}, error)

type registry map[reflect.Type]Coercer

func newRegistry() registry {
	ret := registry{
		stringType: func(value interface{}, options *Options) (interface{}, error) {
			return conv.ToString(value), nil
		},
		reflect.TypeOf(false): func(value interface{}, options *Options) (interface{}, error) {
			return conv.ToBool(value), nil
		},
		timeType: func(value interface{}, options *Options) (interface{}, error) {
			return conv.ToDate(value, options.DateLayout, options.SuppressErrors)
		},
		interfaceType: func(value interface{}, options *Options) (interface{}, error) {
			return conv.ToObject(value)
		},
		unconvertibleType: func(value interface{}, options *Options) (interface{}, error) {
			return Undefined, nil
		},
	}
	for _, kind := range []reflect.Kind{reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64} {
		ret[kindType(kind)] = intCoercer(kindType(kind))
	}
	for _, kind := range []reflect.Kind{reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr} {
		ret[kindType(kind)] = uintCoercer(kindType(kind))
	}
	for _, kind := range []reflect.Kind{reflect.Float32, reflect.Float64} {
		ret[kindType(kind)] = floatCoercer(kindType(kind))
	}
	return ret
}

func intCoercer(target reflect.Type) Coercer {
	size := bitSize(target.Kind())
	return func(value interface{}, options *Options) (interface{}, error) {
		result, err := conv.ToInt(value, size, options.SuppressErrors)
		if err != nil || result == nil {
			return nil, err
		}
		return reflect.ValueOf(result).Convert(target).Interface(), nil
	}
}

func uintCoercer(target reflect.Type) Coercer {
	size := bitSize(target.Kind())
	return func(value interface{}, options *Options) (interface{}, error) {
		result, err := conv.ToUint(value, size, options.SuppressErrors)
		if err != nil || result == nil {
			return nil, err
		}
		return reflect.ValueOf(result).Convert(target).Interface(), nil
	}
}

func floatCoercer(target reflect.Type) Coercer {
	return func(value interface{}, options *Options) (interface{}, error) {
		result, err := conv.ToNumber(value, options.SuppressErrors)
		if err != nil || result == nil {
			return nil, err
		}
		return reflect.ValueOf(result).Convert(target).Interface(), nil
	}
}
