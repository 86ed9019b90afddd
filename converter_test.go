package morph

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"testing"
	"time"
)

type nestedRecord struct {
	S string `json:"s"`
}

type record struct {
	S           string        `json:"s"`
	B           bool          `json:"b"`
	N           float64       `json:"n"`
	NoConvert   string        `json:"noConvert"`
	NestedPlain interface{}   `json:"nestedPlain"`
	NestedClass *nestedRecord `json:"nestedClass"`
	D           time.Time     `json:"d"`
}

type openRecord struct {
	S     string                 `json:"s"`
	Extra map[string]interface{} `convert:",remain"`
}

type decoratedRecord struct {
	A string `convert:"a"`
	B string `json:"b"`
}

type declaredRecord struct {
	_     struct{}               `convert:"visibility=all,excludes={x}"`
	S     string                 `json:"s"`
	Extra map[string]interface{} `convert:",remain"`
}

type declarerRecord struct {
	A string `json:"a"`
	B string `json:"b"`
}

func (declarerRecord) ConvertOptions() []Option {
	return []Option{WithExcludes(Name("b"))}
}

type money struct {
	Cents int64
}

type invoice struct {
	Total money `json:"total"`
}

type typedRecord struct {
	At     string    `convert:"at,type=date"`
	Day    time.Time `convert:"day,dateLayout=YYYY/MM/DD"`
	Secret string    `convert:"secret,type=unconvertible"`
	Raw    Unconvertible
	Items  []int     `json:"items"`
	ID     uuid.UUID `json:"id"`
	Code   code      `json:"code"`
	Count  int8      `json:"count"`
}

type code string

type person struct {
	FirstName string
	LastName  string
}

type chain struct {
	Next *chain `json:"next"`
}

func TestConverter_Convert(t *testing.T) {
	day := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	var testCases = []struct {
		description string
		value       interface{}
		target      reflect.Type
		options     []Option
		expect      interface{}
	}{
		{
			description: "exclusions by name, predicate and pattern",
			value:       map[string]interface{}{"s": "abc", "b": true, "n": 123, "noConvert": "abc"},
			target:      TypeOf[record](),
			options: []Option{WithExcludes(Name("b"), Predicate(func(name string) bool {
				return name == "n"
			}), Pattern{Regexp: regexp.MustCompile("no")})},
			expect: record{S: "abc"},
		},
		{
			description: "nested structured field",
			value:       map[string]interface{}{"nestedClass": map[string]interface{}{"s": 123}},
			target:      TypeOf[record](),
			expect:      record{NestedClass: &nestedRecord{S: "123"}},
		},
		{
			description: "plain object is deep copied, date parsed",
			value: map[string]interface{}{
				"nestedPlain": map[string]interface{}{"k": []interface{}{1, "x"}},
				"d":           "2024-03-01T10:00:00.000Z",
				"b":           "",
			},
			target: TypeOf[record](),
			expect: record{NestedPlain: map[string]interface{}{"k": []interface{}{1, "x"}}, D: day},
		},
		{
			description: "visibility all installs undeclared property",
			value:       map[string]interface{}{"s": "x", "notDecorated": 1},
			target:      TypeOf[openRecord](),
			options:     []Option{WithVisibility(VisibilityAll)},
			expect:      openRecord{S: "x", Extra: map[string]interface{}{"notDecorated": 1}},
		},
		{
			description: "visibility typed skips undeclared property",
			value:       map[string]interface{}{"s": "x", "notDecorated": 1},
			target:      TypeOf[openRecord](),
			expect:      openRecord{S: "x"},
		},
		{
			description: "visibility decorated skips fields without convert tag",
			value:       map[string]interface{}{"a": 1, "b": 2},
			target:      TypeOf[decoratedRecord](),
			options:     []Option{WithVisibility(VisibilityDecorated)},
			expect:      decoratedRecord{A: "1"},
		},
		{
			description: "type level options declared by marker field",
			value:       map[string]interface{}{"s": 1, "x": 2, "y": 3},
			target:      TypeOf[declaredRecord](),
			expect:      declaredRecord{S: "1", Extra: map[string]interface{}{"y": 3}},
		},
		{
			description: "type level options declared by method",
			value:       map[string]interface{}{"a": "1", "b": "2"},
			target:      TypeOf[declarerRecord](),
			expect:      declarerRecord{A: "1"},
		},
		{
			description: "explicit field types",
			value: map[string]interface{}{
				"at":     0,
				"day":    "2024/03/01",
				"secret": "s3cr3t",
				"Raw":    1,
				"items":  []interface{}{"1", 2, 3.5},
				"id":     "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
				"code":   12,
				"count":  "7 days",
			},
			target: TypeOf[typedRecord](),
			expect: typedRecord{
				At:    "1970-01-01T00:00:00.000Z",
				Day:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
				Items: []int{1, 2, 3},
				ID:    uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
				Code:  "12",
				Count: 7,
			},
		},
		{
			description: "case insensitive field match",
			value:       map[string]interface{}{"first_name": "Ann", "lastName": "Lee"},
			target:      TypeOf[person](),
			expect:      person{FirstName: "Ann", LastName: "Lee"},
		},
		{
			description: "nil structured value passes through",
			value:       nil,
			target:      TypeOf[record](),
			expect:      nil,
		},
		{
			description: "sequence is mapped over",
			value:       []interface{}{"1", 2, nil},
			target:      TypeOf[int](),
			expect:      []int{1, 2, 0},
		},
		{
			description: "scalar into slice",
			value:       "a",
			target:      TypeOf[[]string](),
			expect:      []string{"a"},
		},
		{
			description: "pointer target",
			value:       "12",
			target:      TypeOf[*int](),
			expect:      intPtr(12),
		},
		{
			description: "string keyed map",
			value:       map[string]interface{}{"a": "1", "b": 2.5},
			target:      TypeOf[map[string]int](),
			expect:      map[string]int{"a": 1, "b": 2},
		},
		{
			description: "parent options apply to nested types",
			value:       map[string]interface{}{"s": 1, "nestedClass": map[string]interface{}{"s": 2}},
			target:      TypeOf[record](),
			options:     []Option{WithExcludes(Name("s"))},
			expect:      record{NestedClass: &nestedRecord{}},
		},
	}

	for _, testCase := range testCases {
		converter := New()
		actual, err := converter.Convert(testCase.value, testCase.target, testCase.options...)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestConverter_Convert_Precedence(t *testing.T) {
	value := map[string]interface{}{"s": 1, "x": 2, "y": 3}
	var testCases = []struct {
		description string
		defaults    []Option
		options     []Option
		expect      declaredRecord
	}{
		{
			description: "type level overrides converter defaults",
			defaults:    []Option{WithVisibility(VisibilityDecorated), WithExcludes(Name("y"))},
			expect:      declaredRecord{S: "1", Extra: map[string]interface{}{"y": 3}},
		},
		{
			description: "call site overrides type level per key",
			options:     []Option{WithVisibility(VisibilityTyped)},
			expect:      declaredRecord{S: "1"},
		},
		{
			description: "empty exclusion list replaces declared one",
			options:     []Option{WithExcludes()},
			expect:      declaredRecord{S: "1", Extra: map[string]interface{}{"x": 2, "y": 3}},
		},
	}
	for _, testCase := range testCases {
		converter := New(testCase.defaults...)
		actual, err := As[declaredRecord](converter, value, testCase.options...)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestConverter_Convert_RoundTrip(t *testing.T) {
	expect := record{
		S:           "abc",
		B:           true,
		N:           12.5,
		NestedPlain: map[string]interface{}{"k": "v"},
		NestedClass: &nestedRecord{S: "x"},
		D:           time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	actual, err := As[record](New(), expect)
	require.Nil(t, err)
	assert.EqualValues(t, expect, actual)
	assert.True(t, expect.D.Equal(actual.D))
}

func TestConverter_Convert_Errors(t *testing.T) {
	converter := New()

	_, err := converter.Convert(map[string]interface{}{"n": "abc"}, TypeOf[record]())
	require.NotNil(t, err)
	conversionErr := &ConversionError{}
	require.True(t, errors.As(err, &conversionErr))
	assert.Equal(t, "number", conversionErr.Target)
	assert.Contains(t, err.Error(), `field "n"`)

	actual, err := As[record](converter, map[string]interface{}{"n": "abc", "d": "not a date"}, WithSuppressErrors(true))
	require.Nil(t, err)
	assert.True(t, math.IsNaN(actual.N))
	assert.True(t, actual.D.IsZero())

	_, err = converter.Convert(map[string]interface{}{"d": "not a date"}, TypeOf[record]())
	assert.True(t, errors.As(err, &conversionErr))

	_, err = converter.Convert(map[string]interface{}{"count": 300}, TypeOf[typedRecord]())
	assert.True(t, errors.As(err, &conversionErr))

	_, err = converter.Convert(1, TypeOf[chan int]())
	assert.True(t, errors.As(err, &conversionErr))

	type invalid struct {
		A string `convert:"a,type=nope"`
	}
	_, err = converter.Convert(map[string]interface{}{"a": 1}, TypeOf[invalid]())
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "unknown type")
}

func TestConverter_Convert_ScalarToObject(t *testing.T) {
	converter := New()
	var testCases = []struct {
		description string
		value       interface{}
		target      reflect.Type
		expect      interface{}
	}{
		{description: "int to struct", value: 123, target: TypeOf[record](), expect: record{}},
		{description: "string to struct", value: "abc", target: TypeOf[record](), expect: record{}},
		{description: "bool to struct", value: true, target: TypeOf[record](), expect: record{}},
		{description: "int to map", value: 1, target: TypeOf[map[string]int](), expect: map[string]int{}},
		{description: "string to struct pointer", value: "abc", target: TypeOf[*nestedRecord](), expect: &nestedRecord{}},
		{
			description: "nested scalar",
			value:       map[string]interface{}{"nestedClass": "oops", "n": 1},
			target:      TypeOf[record](),
			expect:      record{N: 1, NestedClass: &nestedRecord{}},
		},
	}
	for _, testCase := range testCases {
		actual, err := converter.Convert(testCase.value, testCase.target)
		require.Nil(t, err, testCase.description)
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestConverter_Convert_ArrayOverflow(t *testing.T) {
	converter := New()
	actual, err := converter.Convert([]interface{}{1, 2}, TypeOf[[2]int]())
	require.Nil(t, err)
	assert.Equal(t, [2]int{1, 2}, actual)

	_, err = converter.Convert([]interface{}{1, 2, 3}, TypeOf[[2]int]())
	conversionErr := &ConversionError{}
	require.True(t, errors.As(err, &conversionErr))
	assert.Contains(t, err.Error(), "array length exceeded")
}

func TestConverter_Convert_Cycle(t *testing.T) {
	converter := New()
	cyclic := map[string]interface{}{}
	cyclic["next"] = cyclic
	_, err := converter.Convert(cyclic, TypeOf[chain]())
	assert.True(t, errors.Is(err, ErrCycle))

	_, err = converter.Convert(cyclic, TypeOf[interface{}]())
	assert.True(t, errors.Is(err, ErrCycle))

	node := &chain{}
	node.Next = node
	_, err = converter.Convert(node, TypeOf[chain]())
	assert.True(t, errors.Is(err, ErrCycle))

	shared := map[string]interface{}{}
	_, err = converter.Convert(map[string]interface{}{"a": shared, "b": shared}, TypeOf[map[string]chain]())
	assert.Nil(t, err)
}

func TestConverter_Convert_MaxDepth(t *testing.T) {
	value := map[string]interface{}{"next": map[string]interface{}{"next": map[string]interface{}{"next": map[string]interface{}{}}}}
	converter := New()
	_, err := converter.Convert(value, TypeOf[chain](), WithMaxDepth(3))
	assert.True(t, errors.Is(err, ErrMaxDepth))

	actual, err := As[chain](converter, value)
	require.Nil(t, err)
	assert.NotNil(t, actual.Next.Next.Next)
}

func TestConverter_Register(t *testing.T) {
	converter := New()
	calls := 0
	RegisterFunc[money](converter, func(value interface{}, options *Options) (money, error) {
		calls++
		text := fmt.Sprint(value)
		amount, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return money{}, err
		}
		return money{Cents: int64(math.Round(amount * 100))}, nil
	})

	actual, err := As[money](converter, "12.5")
	require.Nil(t, err)
	assert.Equal(t, money{Cents: 1250}, actual)

	nested, err := As[invoice](converter, map[string]interface{}{"total": 3})
	require.Nil(t, err)
	assert.Equal(t, invoice{Total: money{Cents: 300}}, nested)
	assert.Equal(t, 2, calls)

	converter.Register(TypeOf[string](), func(value interface{}, options *Options) (interface{}, error) {
		return "overridden", nil
	})
	text, err := As[string](converter, 1)
	require.Nil(t, err)
	assert.Equal(t, "overridden", text)
}

func TestConverter_Populate(t *testing.T) {
	converter := New()

	target := &record{S: "keep", N: 1}
	err := converter.Populate(map[string]interface{}{"n": "42"}, target)
	require.Nil(t, err)
	assert.Equal(t, &record{S: "keep", N: 42}, target)

	var counts map[string]int
	err = converter.Populate(map[string]interface{}{"a": "1"}, &counts)
	require.Nil(t, err)
	assert.Equal(t, map[string]int{"a": 1}, counts)

	err = converter.Populate(map[string]interface{}{}, record{})
	assert.True(t, errors.Is(err, ErrInvalidDestination))
	err = converter.Populate(map[string]interface{}{}, intPtr(1))
	assert.True(t, errors.Is(err, ErrInvalidDestination))
}

func TestConverter_Into(t *testing.T) {
	converter := New()
	var items []int
	require.Nil(t, converter.Into([]interface{}{"1", "2"}, &items))
	assert.Equal(t, []int{1, 2}, items)
	assert.True(t, errors.Is(converter.Into(1, nil), ErrInvalidDestination))
}

func intPtr(i int) *int {
	return &i
}
