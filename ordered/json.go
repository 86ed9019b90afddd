package ordered

import (
	"bytes"
	"fmt"
	"github.com/francoispqt/gojay"
)

type jsonObject struct {
	m *Map
}

func (o *jsonObject) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	value, err := decodeEmbedded(dec)
	if err != nil {
		return fmt.Errorf("failed to decode %q: %w", key, err)
	}
	o.m.Set(key, value)
	return nil
}

func (o *jsonObject) NKeys() int {
	return 0
}

type jsonArray struct {
	items []interface{}
}

func (a *jsonArray) UnmarshalJSONArray(dec *gojay.Decoder) error {
	value, err := decodeEmbedded(dec)
	if err != nil {
		return fmt.Errorf("failed to decode item %d: %w", len(a.items), err)
	}
	a.items = append(a.items, value)
	return nil
}

func decodeEmbedded(dec *gojay.Decoder) (interface{}, error) {
	var raw gojay.EmbeddedJSON
	if err := dec.EmbeddedJSON(&raw); err != nil {
		return nil, err
	}
	return ParseJSON(raw)
}

// ParseJSON parses JSON document, objects are returned as *Map, arrays as []interface{},
// numbers as float64
func ParseJSON(data []byte) (interface{}, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty JSON document")
	}
	switch data[0] {
	case '{':
		object := &jsonObject{m: NewMap()}
		if err := gojay.UnmarshalJSONObject(data, object); err != nil {
			return nil, err
		}
		return object.m, nil
	case '[':
		array := &jsonArray{items: []interface{}{}}
		if err := gojay.UnmarshalJSONArray(data, array); err != nil {
			return nil, err
		}
		return array.items, nil
	case '"':
		var text string
		err := gojay.Unmarshal(data, &text)
		return text, err
	case 't', 'f':
		var flag bool
		err := gojay.Unmarshal(data, &flag)
		return flag, err
	case 'n':
		if !bytes.Equal(data, []byte("null")) {
			return nil, fmt.Errorf("invalid JSON literal: %s", data)
		}
		return nil, nil
	default:
		var number float64
		if err := gojay.Unmarshal(data, &number); err != nil {
			return nil, fmt.Errorf("invalid JSON number %s: %w", data, err)
		}
		return number, nil
	}
}
