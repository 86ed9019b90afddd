package morph

import (
	"encoding"
	"fmt"
	"github.com/rs/zerolog"
	"github.com/viant/morph/conv"
	"github.com/viant/morph/visitor"
	"reflect"
)

// Converter converts values into Go types.
//
// Coercer registration is not synchronized: register coercers before the converter is shared,
// conversions themselves are safe for concurrent use.
type Converter struct {
	registry registry
	provider Provider
	defaults []Option
	logger   zerolog.Logger
}

// Provider returns type descriptor provider
func (c *Converter) Provider() Provider {
	return c.provider
}

// Register installs or replaces a coercer for the target type
func (c *Converter) Register(target reflect.Type, coercer Coercer) {
	if _, ok := c.registry[target]; ok {
		c.logger.Debug().Str("type", target.String()).Msg("overriding coercer")
	}
	c.registry[target] = coercer
}

// RegisterFunc registers typed coercer for T
func RegisterFunc[T any](c *Converter, fn func(value interface{}, options *Options) (T, error)) {
	c.Register(TypeOf[T](), func(value interface{}, options *Options) (interface{}, error) {
		result, err := fn(value, options)
		if err != nil {
			return nil, err
		}
		return result, nil
	})
}

// Convert converts value into the target type
func (c *Converter) Convert(value interface{}, target reflect.Type, options ...Option) (interface{}, error) {
	if target == nil {
		return nil, fmt.Errorf("target type was nil")
	}
	return c.convert(newSession(), value, target, options)
}

// As converts value into T, a nil converter uses a new one with default settings
func As[T any](c *Converter, value interface{}, options ...Option) (T, error) {
	var zero T
	if c == nil {
		c = New()
	}
	target := TypeOf[T]()
	result, err := c.Convert(value, target, options...)
	if err != nil || result == nil || isUndefined(result) {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, conv.NewError(value, target.String(), fmt.Sprintf("result type mismatch: %T", result))
	}
	return typed, nil
}

// Populate copies source properties into dest, a non nil pointer to struct or string keyed map
func (c *Converter) Populate(source interface{}, dest interface{}, options ...Option) error {
	destValue := reflect.ValueOf(dest)
	if !destValue.IsValid() || destValue.Kind() != reflect.Ptr || destValue.IsNil() {
		return fmt.Errorf("%w: expected non nil pointer, got %T", ErrInvalidDestination, dest)
	}
	elem := destValue.Elem()
	switch elem.Kind() {
	case reflect.Struct:
	case reflect.Map:
		if elem.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("%w: unsupported map key in %T", ErrInvalidDestination, dest)
		}
		if elem.IsNil() {
			elem.Set(reflect.MakeMap(elem.Type()))
		}
	default:
		return fmt.Errorf("%w: expected pointer to struct or map, got %T", ErrInvalidDestination, dest)
	}
	if conv.IsNil(source) {
		return nil
	}
	s := newSession()
	opts, err := c.resolve(elem.Type(), options)
	if err != nil {
		return err
	}
	ascend, err := s.descend(opts.MaxDepth)
	if err != nil {
		return err
	}
	defer ascend()
	return c.populate(s, source, elem, opts)
}

// Into converts source into the type dest points to and stores the result
func (c *Converter) Into(source interface{}, dest interface{}, options ...Option) error {
	destValue := reflect.ValueOf(dest)
	if !destValue.IsValid() || destValue.Kind() != reflect.Ptr || destValue.IsNil() {
		return fmt.Errorf("%w: expected non nil pointer, got %T", ErrInvalidDestination, dest)
	}
	s := newSession()
	result, err := c.convert(s, source, destValue.Elem().Type(), options)
	if err != nil {
		return err
	}
	return c.assign(s, destValue.Elem(), result, options)
}

func (c *Converter) resolve(target reflect.Type, call []Option) (*Options, error) {
	declared, err := c.provider.DeclaredOptions(target)
	if err != nil {
		return nil, err
	}
	return newOptions(c.defaults, declared, call), nil
}

func (c *Converter) convert(s *session, value interface{}, target reflect.Type, call []Option) (interface{}, error) {
	options, err := c.resolve(target, call)
	if err != nil {
		return nil, err
	}
	ascend, err := s.descend(options.MaxDepth)
	if err != nil {
		return nil, err
	}
	defer ascend()
	if target == unconvertibleType {
		return c.registry[target](value, options)
	}
	if isSequence(value) && target.Kind() != reflect.Slice && target.Kind() != reflect.Array && target != interfaceType {
		return c.mapOver(s, value, target, call)
	}
	if value != nil {
		if rValue := reflect.ValueOf(value); rValue.Kind() == reflect.Ptr && !rValue.IsNil() && rValue.Elem().Kind() != reflect.Struct {
			leave, err := s.enter(value)
			if err != nil {
				return nil, err
			}
			defer leave()
			return c.convert(s, rValue.Elem().Interface(), target, call)
		}
	}
	if coercer, ok := c.registry[target]; ok {
		return coercer(value, options)
	}
	if isTextUnmarshaler(target) {
		return c.unmarshalText(value, target)
	}
	switch target.Kind() {
	case reflect.Ptr:
		return c.convertPointer(s, value, target, call)
	case reflect.Interface:
		if conv.IsNil(value) {
			return nil, nil
		}
		if reflect.TypeOf(value).Implements(target) {
			return value, nil
		}
	case reflect.Slice, reflect.Array:
		return c.convertSequence(s, value, target, call)
	case reflect.Map:
		return c.convertMap(s, value, target, options)
	case reflect.Struct:
		return c.convertStruct(s, value, target, options)
	default:
		if builtin := kindType(target.Kind()); builtin != nil {
			return c.convertNamed(value, target, builtin, options)
		}
	}
	return nil, conv.NewError(value, target.String(), "unsupported target type")
}

// mapOver converts every element of a sequence into target, the result is []target
func (c *Converter) mapOver(s *session, value interface{}, target reflect.Type, call []Option) (interface{}, error) {
	leave, err := s.enter(value)
	if err != nil {
		return nil, err
	}
	defer leave()
	visit, err := visitor.AnySliceVisitorOf(value)
	if err != nil {
		return nil, err
	}
	result := reflect.MakeSlice(reflect.SliceOf(target), 0, reflect.ValueOf(value).Len())
	err = visit(func(index int, element interface{}) (bool, error) {
		item, err := c.convert(s, element, target, call)
		if err != nil {
			return false, fmt.Errorf("[%d]: %w", index, err)
		}
		itemValue := reflect.New(target).Elem()
		if err = c.assign(s, itemValue, item, call); err != nil {
			return false, fmt.Errorf("[%d]: %w", index, err)
		}
		result = reflect.Append(result, itemValue)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return result.Interface(), nil
}

func (c *Converter) convertPointer(s *session, value interface{}, target reflect.Type, call []Option) (interface{}, error) {
	if conv.IsNil(value) {
		return nil, nil
	}
	elem, err := c.convert(s, value, target.Elem(), call)
	if err != nil || elem == nil || isUndefined(elem) {
		return elem, err
	}
	ptr := reflect.New(target.Elem())
	if err = c.assign(s, ptr.Elem(), elem, call); err != nil {
		return nil, err
	}
	return ptr.Interface(), nil
}

// convertSequence converts elements of a slice or array, a scalar becomes a single element
func (c *Converter) convertSequence(s *session, value interface{}, target reflect.Type, call []Option) (interface{}, error) {
	if conv.IsNil(value) {
		return nil, nil
	}
	if target.Kind() == reflect.Slice && target.Elem().Kind() == reflect.Uint8 {
		if text, ok := value.(string); ok {
			return reflect.ValueOf([]byte(text)).Convert(target).Interface(), nil
		}
	}
	if kind := reflect.TypeOf(value).Kind(); kind != reflect.Slice && kind != reflect.Array {
		value = []interface{}{value}
	}
	leave, err := s.enter(value)
	if err != nil {
		return nil, err
	}
	defer leave()
	visit, err := visitor.AnySliceVisitorOf(value)
	if err != nil {
		return nil, err
	}
	var result reflect.Value
	if target.Kind() == reflect.Slice {
		size := reflect.ValueOf(value).Len()
		result = reflect.MakeSlice(target, size, size)
	} else {
		if size := reflect.ValueOf(value).Len(); size > target.Len() {
			return nil, conv.NewError(value, target.String(), fmt.Sprintf("array length exceeded: %d", size))
		}
		result = reflect.New(target).Elem()
	}
	err = visit(func(index int, element interface{}) (bool, error) {
		item, err := c.convert(s, element, target.Elem(), call)
		if err != nil {
			return false, fmt.Errorf("[%d]: %w", index, err)
		}
		if err = c.assign(s, result.Index(index), item, call); err != nil {
			return false, fmt.Errorf("[%d]: %w", index, err)
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return result.Interface(), nil
}

func (c *Converter) convertMap(s *session, value interface{}, target reflect.Type, options *Options) (interface{}, error) {
	if conv.IsNil(value) {
		return nil, nil
	}
	if target.Key().Kind() != reflect.String {
		return nil, conv.NewError(value, target.String(), "unsupported map key type")
	}
	result := reflect.MakeMap(target)
	if err := c.populate(s, value, result, options); err != nil {
		return nil, err
	}
	return result.Interface(), nil
}

func (c *Converter) convertStruct(s *session, value interface{}, target reflect.Type, options *Options) (interface{}, error) {
	if conv.IsNil(value) {
		return nil, nil
	}
	if reflect.TypeOf(value) == target && len(visitor.FieldsOf(target).Fields) == 0 {
		return value, nil
	}
	result := reflect.New(target).Elem()
	if err := c.populate(s, value, result, options); err != nil {
		return nil, err
	}
	return result.Interface(), nil
}

// convertNamed converts value with a builtin coercer of target kind, i.e. type Code string
func (c *Converter) convertNamed(value interface{}, target reflect.Type, builtin reflect.Type, options *Options) (interface{}, error) {
	result, err := c.registry[builtin](value, options)
	if err != nil || result == nil || isUndefined(result) {
		return result, err
	}
	rValue := reflect.ValueOf(result)
	if !rValue.Type().ConvertibleTo(target) {
		return nil, conv.NewError(value, target.String(), fmt.Sprintf("result type mismatch: %T", result))
	}
	return rValue.Convert(target).Interface(), nil
}

func (c *Converter) unmarshalText(value interface{}, target reflect.Type) (interface{}, error) {
	if conv.IsNil(value) {
		return nil, nil
	}
	if reflect.TypeOf(value) == target {
		return value, nil
	}
	var data []byte
	switch actual := value.(type) {
	case []byte:
		data = actual
	default:
		text, _ := conv.ToString(value).(string)
		data = []byte(text)
	}
	ptr := reflect.New(target)
	if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText(data); err != nil {
		return nil, conv.NewError(value, target.String(), err.Error())
	}
	return ptr.Elem().Interface(), nil
}

// assign sets converted result on dest, nil and Undefined set zero value,
// results of a different type are converted again into dest type
func (c *Converter) assign(s *session, dest reflect.Value, result interface{}, call []Option) error {
	if result == nil || isUndefined(result) {
		dest.Set(reflect.Zero(dest.Type()))
		return nil
	}
	rValue := reflect.ValueOf(result)
	if rValue.Type().AssignableTo(dest.Type()) {
		dest.Set(rValue)
		return nil
	}
	if rValue.Kind() == dest.Kind() && kindType(rValue.Kind()) != nil && rValue.Type().ConvertibleTo(dest.Type()) {
		dest.Set(rValue.Convert(dest.Type()))
		return nil
	}
	converted, err := c.convert(s, result, dest.Type(), call)
	if err != nil {
		return err
	}
	if converted == nil || isUndefined(converted) {
		dest.Set(reflect.Zero(dest.Type()))
		return nil
	}
	convertedValue := reflect.ValueOf(converted)
	if !convertedValue.Type().AssignableTo(dest.Type()) {
		return conv.NewError(result, dest.Type().String(), fmt.Sprintf("result type mismatch: %T", converted))
	}
	dest.Set(convertedValue)
	return nil
}

// New creates a converter with tag provider, options are converter level defaults
func New(options ...Option) *Converter {
	return NewWithProvider(nil, options...)
}

// NewWithProvider creates a converter with supplied provider, nil uses a tag provider
func NewWithProvider(provider Provider, options ...Option) *Converter {
	if provider == nil {
		provider = NewTagProvider()
	}
	return &Converter{
		registry: newRegistry(),
		provider: provider,
		defaults: options,
		logger:   newOptions(options, nil, nil).Logger,
	}
}
