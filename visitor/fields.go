package visitor

import (
	"github.com/viant/morph/tags"
	"github.com/viant/xunsafe"
	"reflect"
	"strings"
	"unsafe"
)

var fieldsCache = NewSyncMap[reflect.Type, *Fields]()

type (
	// Field represents an exported struct field reachable from a struct type,
	// promoted fields of embedded structs included
	Field struct {
		Name   string
		Type   reflect.Type
		Struct reflect.StructField
		// Index is the full index path, usable with reflect.Value.FieldByIndex
		Index []int
		// Explicit is set when the name comes from a tag
		Explicit bool
		// Tag is the parsed conversion tag, nil when the field has none
		Tag    *tags.Tag
		TagErr error

		embedded []*hop
		xField   *xunsafe.Field
	}

	hop struct {
		field *xunsafe.Field
		deref bool
	}

	// Fields represents struct fields in visiting order
	Fields struct {
		Type   reflect.Type
		Fields []*Field
		// Remain holds a field collecting unmatched properties
		Remain *Field
		// Marker holds a blank marker field with type level conversion tag
		Marker *reflect.StructField
		byName map[string]*Field
	}
)

// Lookup returns a field by name
func (f *Fields) Lookup(name string) (*Field, bool) {
	field, ok := f.byName[name]
	return field, ok
}

// holder returns the address of the struct holding the field, embedded pointers are followed,
// nil is returned when an embedded pointer on the path is nil
func (f *Field) holder(ptr unsafe.Pointer) unsafe.Pointer {
	for _, step := range f.embedded {
		ptr = step.field.Pointer(ptr)
		if step.deref {
			ptr = *(*unsafe.Pointer)(ptr)
			if ptr == nil {
				return nil
			}
		}
	}
	return ptr
}

// Value returns field value for the supplied struct pointer
func (f *Field) Value(structPtr unsafe.Pointer) (interface{}, bool) {
	ptr := f.holder(structPtr)
	if ptr == nil {
		return nil, false
	}
	return f.xField.Value(ptr), true
}

// FieldsOf returns exported fields of a struct type, each name visited once,
// a shallower field shadows deeper promoted ones
func FieldsOf(structType reflect.Type) *Fields {
	return fieldsCache.GetOrCompute(structType, func() *Fields {
		return newFields(structType)
	})
}

func newFields(structType reflect.Type) *Fields {
	type queued struct {
		Type     reflect.Type
		index    []int
		embedded []*hop
	}
	ret := &Fields{Type: structType, byName: map[string]*Field{}}
	candidates := map[string][]*Field{}
	var order []string
	queue := []queued{{Type: structType}}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		for i := 0; i < item.Type.NumField(); i++ {
			structField := item.Type.Field(i)
			if structField.Name == "_" {
				if _, ok := structField.Tag.Lookup(tags.TagName); ok && ret.Marker == nil && len(item.index) == 0 {
					marker := structField
					ret.Marker = &marker
				}
				continue
			}
			if !structField.IsExported() {
				continue
			}
			index := append(item.index[:len(item.index):len(item.index)], i)
			tag, hasTag, tagErr := tags.Parse(structField.Tag)
			if hasTag && tag != nil && tag.Ignore {
				continue
			}
			name, explicit := nameOf(structField, tag)
			if name == "" {
				continue
			}
			if structField.Anonymous && !explicit {
				embeddedType := structField.Type
				if embeddedType.Kind() == reflect.Ptr {
					embeddedType = embeddedType.Elem()
				}
				if embeddedType.Kind() == reflect.Struct {
					hops := append(item.embedded[:len(item.embedded):len(item.embedded)], &hop{field: xunsafe.NewField(structField), deref: structField.Type.Kind() == reflect.Ptr})
					queue = append(queue, queued{Type: embeddedType, index: index, embedded: hops})
					continue
				}
			}
			field := &Field{
				Name:     name,
				Type:     structField.Type,
				Struct:   structField,
				Index:    index,
				Explicit: explicit,
				TagErr:   tagErr,
				embedded: item.embedded,
				xField:   xunsafe.NewField(structField),
			}
			if hasTag {
				field.Tag = tag
			}
			if field.Tag != nil && field.Tag.Remain {
				if ret.Remain == nil {
					ret.Remain = field
				}
				continue
			}
			if len(candidates[name]) == 0 {
				order = append(order, name)
			}
			candidates[name] = append(candidates[name], field)
		}
	}
	for _, name := range order {
		if field := visible(candidates[name]); field != nil {
			ret.Fields = append(ret.Fields, field)
			ret.byName[name] = field
		}
	}
	return ret
}

// visible returns the shallowest candidate, on a tie a single explicitly named one wins,
// otherwise the name is ambiguous and dropped
func visible(candidates []*Field) *Field {
	if len(candidates) == 1 {
		return candidates[0]
	}
	depth := len(candidates[0].Index)
	var shallowest []*Field
	for _, candidate := range candidates {
		if len(candidate.Index) == depth {
			shallowest = append(shallowest, candidate)
		}
	}
	if len(shallowest) == 1 {
		return shallowest[0]
	}
	var explicit *Field
	for _, candidate := range shallowest {
		if candidate.Explicit {
			if explicit != nil {
				return nil
			}
			explicit = candidate
		}
	}
	return explicit
}

func nameOf(field reflect.StructField, tag *tags.Tag) (string, bool) {
	if tag != nil && tag.Name != "" {
		return tag.Name, true
	}
	jsonTag := field.Tag.Get("json")
	if jsonTag == "-" {
		return "", true
	}
	if index := strings.IndexByte(jsonTag, ','); index != -1 {
		jsonTag = jsonTag[:index]
	}
	if jsonTag != "" {
		return jsonTag, true
	}
	return field.Name, false
}
