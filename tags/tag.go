package tags

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

//TagName represents conversion tag name
const TagName = "convert"

type (
	//Tag represents a conversion tag
	//
	//Field form:  `convert:"name,type=date,dateLayout=YYYY-MM-DD"`, `convert:",remain"`, `convert:"-"`
	//Type form (blank marker field): `convert:"visibility=all,excludes={n,/^tmp/},suppressErrors"`
	Tag struct {
		Name       string
		Ignore     bool
		Type       string
		Remain     bool
		DateLayout string

		Visibility     string
		Excludes       []string
		SuppressErrors *bool
		MaxDepth       int
	}
)

func (t *Tag) update(key string, value string) error {
	switch strings.ToLower(key) {
	case "type":
		t.Type = value
	case "remain":
		t.Remain = true
	case "datelayout", "dateformat", "timelayout":
		t.DateLayout = value
	case "visibility", "target":
		t.Visibility = value
	case "exclude", "excludes":
		t.Excludes = append(t.Excludes, Values(value).Elements()...)
	case "suppresserrors", "suppressconversionerror":
		flag := true
		if value != "" {
			parsed, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid %v value: %w", key, err)
			}
			flag = parsed
		}
		t.SuppressErrors = &flag
	case "maxdepth":
		depth, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %v value: %w", key, err)
		}
		t.MaxDepth = depth
	default:
		return fmt.Errorf("unsupported %v tag key: %q", TagName, key)
	}
	return nil
}

// HasOptions returns true if tag declares type level options
func (t *Tag) HasOptions() bool {
	return t.Visibility != "" || t.Excludes != nil || t.SuppressErrors != nil || t.MaxDepth != 0
}

// Parse parses conversion tag of struct field, it returns false when the field has no conversion tag
func Parse(tag reflect.StructTag) (*Tag, bool, error) {
	literal, ok := tag.Lookup(TagName)
	if !ok {
		return nil, false, nil
	}
	ret, err := ParseField(literal)
	return ret, true, err
}

// ParseField parses field tag literal, the first element is a field name
func ParseField(literal string) (*Tag, error) {
	ret := &Tag{}
	if literal == "-" {
		ret.Ignore = true
		return ret, nil
	}
	name, rest := literal, ""
	if index := strings.IndexByte(literal, ','); index != -1 {
		name, rest = literal[:index], literal[index+1:]
	}
	if strings.Contains(name, "=") {
		name, rest = "", literal
	}
	ret.Name = strings.TrimSpace(name)
	if err := ret.parse(rest); err != nil {
		return nil, err
	}
	if ret.HasOptions() {
		return nil, fmt.Errorf("%v: type level options are not allowed on a field: %q", TagName, literal)
	}
	return ret, nil
}

// ParseOptions parses type level tag literal, all elements are key/value pairs
func ParseOptions(literal string) (*Tag, error) {
	ret := &Tag{}
	if err := ret.parse(literal); err != nil {
		return nil, err
	}
	return ret, nil
}

func (t *Tag) parse(literal string) error {
	if literal == "" {
		return nil
	}
	return Values(literal).MatchPairs(func(key, value string) error {
		return t.update(strings.TrimSpace(key), strings.TrimSpace(value))
	})
}
