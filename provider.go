package morph

import (
	"fmt"
	"github.com/viant/morph/tags"
	"github.com/viant/morph/visitor"
	"github.com/viant/tagly/format/text"
	"reflect"
	"strings"
	"sync"
)

type (
	// Field describes a destination property
	Field struct {
		Name string
		// Type is the ambient (Go) type, nil for an untyped declaration
		Type reflect.Type
		// Override is an explicitly declared type taking precedence over Type
		Override reflect.Type
		// Annotated is set for fields with an explicit declaration
		Annotated bool
		// Remain is set for a map collecting properties without a field
		Remain     bool
		DateLayout string
		// Index is the struct field index path
		Index []int
	}

	// Provider describes destination types
	Provider interface {
		// Lookup returns a field for a property name, or nil when target has none
		Lookup(target reflect.Type, name string) (*Field, error)
		// DeclaredOptions returns type level options
		DeclaredOptions(target reflect.Type) ([]Option, error)
	}

	// OptionsDeclarer is implemented by types declaring their own conversion options
	OptionsDeclarer interface {
		ConvertOptions() []Option
	}

	// TagProvider describes struct types with `convert` tags, json tags and Go field names,
	// names that do not match are looked up case-insensitively ignoring case format
	TagProvider struct {
		types     sync.Map
		typeNames map[string]reflect.Type
		mux       sync.RWMutex
	}

	descriptor struct {
		fields  map[string]*Field
		folded  map[string]*Field
		remain  *Field
		options []Option
		err     error
	}
)

// DeclaredType returns explicit type if set, otherwise ambient type
func (f *Field) DeclaredType() reflect.Type {
	if f.Override != nil {
		return f.Override
	}
	return f.Type
}

var optionsDeclarerType = reflect.TypeOf((*OptionsDeclarer)(nil)).Elem()

// RegisterType registers a type name usable in `convert:"type=name"`
func (p *TagProvider) RegisterType(name string, t reflect.Type) {
	p.mux.Lock()
	defer p.mux.Unlock()
	p.typeNames[strings.ToLower(name)] = t
}

// TypeByName returns a type registered under name
func (p *TagProvider) TypeByName(name string) (reflect.Type, bool) {
	p.mux.RLock()
	defer p.mux.RUnlock()
	t, ok := p.typeNames[strings.ToLower(name)]
	return t, ok
}

// Lookup returns a field for a property name
func (p *TagProvider) Lookup(target reflect.Type, name string) (*Field, error) {
	desc := p.describe(target)
	if desc == nil {
		return nil, nil
	}
	if desc.err != nil {
		return nil, desc.err
	}
	if field, ok := desc.fields[name]; ok {
		return field, nil
	}
	if field, ok := desc.folded[foldName(name)]; ok {
		return field, nil
	}
	return desc.remain, nil
}

// DeclaredOptions returns options declared with OptionsDeclarer or a blank marker field tag
func (p *TagProvider) DeclaredOptions(target reflect.Type) ([]Option, error) {
	desc := p.describe(target)
	if desc == nil {
		if target == nil {
			return nil, nil
		}
		return declaredOptions(target), nil
	}
	return desc.options, desc.err
}

func (p *TagProvider) describe(target reflect.Type) *descriptor {
	if target == nil || target.Kind() != reflect.Struct {
		return nil
	}
	if cached, ok := p.types.Load(target); ok {
		return cached.(*descriptor)
	}
	desc := p.newDescriptor(target)
	actual, _ := p.types.LoadOrStore(target, desc)
	return actual.(*descriptor)
}

func (p *TagProvider) newDescriptor(target reflect.Type) *descriptor {
	fields := visitor.FieldsOf(target)
	desc := &descriptor{fields: map[string]*Field{}, folded: map[string]*Field{}}
	for _, field := range fields.Fields {
		if field.Type.Kind() == reflect.Func {
			continue
		}
		described, err := p.field(field)
		if err != nil {
			desc.err = err
			return desc
		}
		desc.fields[field.Name] = described
		folded := foldName(field.Name)
		if _, ok := desc.folded[folded]; !ok {
			desc.folded[folded] = described
		}
	}
	if fields.Remain != nil {
		if fields.Remain.Type != reflect.TypeOf(map[string]interface{}{}) {
			desc.err = fmt.Errorf("%v.%v: remain field has to be map[string]interface{}", target.String(), fields.Remain.Struct.Name)
			return desc
		}
		remain, err := p.field(fields.Remain)
		if err != nil {
			desc.err = err
			return desc
		}
		remain.Remain = true
		desc.remain = remain
	}
	if fields.Marker != nil {
		tag, err := tags.ParseOptions(fields.Marker.Tag.Get(tags.TagName))
		if err != nil {
			desc.err = fmt.Errorf("%v: %w", target.String(), err)
			return desc
		}
		if desc.options, err = tagOptions(tag); err != nil {
			desc.err = fmt.Errorf("%v: %w", target.String(), err)
			return desc
		}
	}
	desc.options = append(desc.options, declaredOptions(target)...)
	return desc
}

func declaredOptions(target reflect.Type) []Option {
	if target.Kind() == reflect.Interface || target.Kind() == reflect.Ptr {
		return nil
	}
	if target.Implements(optionsDeclarerType) {
		return reflect.Zero(target).Interface().(OptionsDeclarer).ConvertOptions()
	}
	if reflect.PtrTo(target).Implements(optionsDeclarerType) {
		return reflect.New(target).Interface().(OptionsDeclarer).ConvertOptions()
	}
	return nil
}

func (p *TagProvider) field(field *visitor.Field) (*Field, error) {
	if field.TagErr != nil {
		return nil, fmt.Errorf("field %v: %w", field.Struct.Name, field.TagErr)
	}
	ret := &Field{Name: field.Name, Type: field.Type, Index: field.Index}
	tag := field.Tag
	if tag == nil {
		return ret, nil
	}
	ret.Annotated = true
	ret.DateLayout = tag.DateLayout
	if tag.Type != "" {
		override, ok := p.TypeByName(tag.Type)
		if !ok {
			return nil, fmt.Errorf("field %v: unknown type %q", field.Struct.Name, tag.Type)
		}
		ret.Override = override
	}
	return ret, nil
}

// foldName normalizes name to lower case ignoring case format, first_name and FirstName fold the same
func foldName(name string) string {
	if format := text.DetectCaseFormat(name); format.IsDefined() && format != text.CaseFormatUpperCamel {
		name = format.Format(name, text.CaseFormatUpperCamel)
	}
	return strings.ToLower(name)
}

// NewTagProvider creates a provider with builtin type names
func NewTagProvider() *TagProvider {
	return &TagProvider{typeNames: map[string]reflect.Type{
		"string":        stringType,
		"number":        reflect.TypeOf(float64(0)),
		"float":         reflect.TypeOf(float64(0)),
		"int":           reflect.TypeOf(int(0)),
		"integer":       reflect.TypeOf(int(0)),
		"bool":          reflect.TypeOf(false),
		"boolean":       reflect.TypeOf(false),
		"date":          timeType,
		"time":          timeType,
		"object":        interfaceType,
		"unconvertible": unconvertibleType,
	}}
}
