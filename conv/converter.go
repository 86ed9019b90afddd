package conv

import (
	"fmt"
	"github.com/viant/morph/ordered"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// ISOLayout matches JavaScript Date.toISOString output
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

// IsNil returns true for nil and typed nil values
func IsNil(value interface{}) bool {
	if value == nil {
		return true
	}
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rValue.IsNil()
	}
	return false
}

// FormatISO formats time as ISO-8601 UTC timestamp with milliseconds
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// ToString converts value to string, nil passes through
func ToString(value interface{}) interface{} {
	if IsNil(value) {
		return nil
	}
	switch actual := value.(type) {
	case string:
		return actual
	case time.Time:
		return FormatISO(actual)
	case *time.Time:
		return FormatISO(*actual)
	case []byte:
		return string(actual)
	case bool:
		return strconv.FormatBool(actual)
	case int:
		return strconv.Itoa(actual)
	case int64:
		return strconv.FormatInt(actual, 10)
	case float64:
		return formatFloat(actual, 64)
	case float32:
		return formatFloat(float64(actual), 32)
	case fmt.Stringer:
		return actual.String()
	}
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.String:
		return rValue.String()
	case reflect.Bool:
		return strconv.FormatBool(rValue.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rValue.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rValue.Uint(), 10)
	case reflect.Float32:
		return formatFloat(rValue.Float(), 32)
	case reflect.Float64:
		return formatFloat(rValue.Float(), 64)
	}
	return fmt.Sprint(value)
}

var expPadding = strings.NewReplacer("e-0", "e-", "e+0", "e+")

func formatFloat(value float64, bitSize int) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "Infinity"
	case math.IsInf(value, -1):
		return "-Infinity"
	}
	abs := math.Abs(value)
	if abs >= 1e21 || (abs != 0 && abs < 1e-6) {
		formatted := strconv.FormatFloat(value, 'g', -1, bitSize)
		return expPadding.Replace(formatted)
	}
	return strconv.FormatFloat(value, 'f', -1, bitSize)
}

// ToBool converts value using truthiness rules: nil, false, 0, NaN and empty string are false
func ToBool(value interface{}) bool {
	if IsNil(value) {
		return false
	}
	switch actual := value.(type) {
	case bool:
		return actual
	case string:
		return actual != ""
	}
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Bool:
		return rValue.Bool()
	case reflect.String:
		return rValue.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rValue.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rValue.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rValue.Float()
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

// ToObject deep copies plain data: maps and ordered objects become map[string]interface{},
// []interface{} is mapped recursively, any other value is returned as is
func ToObject(value interface{}) (interface{}, error) {
	return cloneObject(value, map[uintptr]bool{})
}

func cloneObject(value interface{}, visited map[uintptr]bool) (interface{}, error) {
	switch actual := value.(type) {
	case nil:
		return nil, nil
	case map[string]interface{}:
		if actual == nil {
			return actual, nil
		}
		key := reflect.ValueOf(actual).Pointer()
		if visited[key] {
			return nil, ErrCycle
		}
		visited[key] = true
		defer delete(visited, key)
		result := make(map[string]interface{}, len(actual))
		for k, v := range actual {
			cloned, err := cloneObject(v, visited)
			if err != nil {
				return nil, err
			}
			result[k] = cloned
		}
		return result, nil
	case []interface{}:
		if len(actual) == 0 {
			return actual, nil
		}
		key := reflect.ValueOf(actual).Pointer()
		if visited[key] {
			return nil, ErrCycle
		}
		visited[key] = true
		defer delete(visited, key)
		result := make([]interface{}, len(actual))
		for i, v := range actual {
			cloned, err := cloneObject(v, visited)
			if err != nil {
				return nil, err
			}
			result[i] = cloned
		}
		return result, nil
	case ordered.Object:
		if IsNil(actual) {
			return value, nil
		}
		rValue := reflect.ValueOf(actual)
		if rValue.Kind() == reflect.Ptr {
			key := rValue.Pointer()
			if visited[key] {
				return nil, ErrCycle
			}
			visited[key] = true
			defer delete(visited, key)
		}
		keys := actual.Keys()
		result := make(map[string]interface{}, len(keys))
		for _, k := range keys {
			v, _ := actual.Get(k)
			cloned, err := cloneObject(v, visited)
			if err != nil {
				return nil, err
			}
			result[k] = cloned
		}
		return result, nil
	}
	return value, nil
}
