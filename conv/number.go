package conv

import (
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	//NumberTarget number target name
	NumberTarget = "number"
)

// ToNumber converts value to float64, numbers pass through (NaN included),
// any other value is parsed as a base-10 integer from its string form.
// A value without leading digits is NaN and fails unless suppress is set.
func ToNumber(value interface{}, suppress bool) (interface{}, error) {
	if IsNil(value) {
		return nil, nil
	}
	if number, ok := asFloat(value); ok {
		return number, nil
	}
	digits := integerPrefix(value)
	if digits == "" {
		if suppress {
			return math.NaN(), nil
		}
		return nil, NewError(value, NumberTarget, "not a number")
	}
	number, _ := strconv.ParseFloat(digits, 64)
	return number, nil
}

// ToInt converts value to int64 fitting in bitSize, fractions are truncated.
// NaN, infinities and out of range values fail unless suppress is set, in which case 0 is returned
func ToInt(value interface{}, bitSize int, suppress bool) (interface{}, error) {
	if IsNil(value) {
		return nil, nil
	}
	target := "int" + strconv.Itoa(bitSize)
	result, reason := toInt(value, bitSize)
	if reason == "" {
		return result, nil
	}
	if suppress {
		return int64(0), nil
	}
	return nil, NewError(value, target, reason)
}

func toInt(value interface{}, bitSize int) (int64, string) {
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := rValue.Int()
		if !fitsInt(v, bitSize) {
			return 0, "out of range"
		}
		return v, ""
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := rValue.Uint()
		if v > math.MaxInt64 || !fitsInt(int64(v), bitSize) {
			return 0, "out of range"
		}
		return int64(v), ""
	case reflect.Float32, reflect.Float64:
		f := rValue.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, "not a finite number"
		}
		f = math.Trunc(f)
		if f < math.MinInt64 || f >= math.MaxInt64 || !fitsInt(int64(f), bitSize) {
			return 0, "out of range"
		}
		return int64(f), ""
	}
	digits := integerPrefix(value)
	if digits == "" {
		return 0, "not a number"
	}
	v, err := strconv.ParseInt(digits, 10, bitSize)
	if err != nil {
		return 0, "out of range"
	}
	return v, ""
}

// ToUint converts value to uint64 fitting in bitSize, negative values fail unless suppress is set
func ToUint(value interface{}, bitSize int, suppress bool) (interface{}, error) {
	if IsNil(value) {
		return nil, nil
	}
	target := "uint" + strconv.Itoa(bitSize)
	result, reason := toUint(value, bitSize)
	if reason == "" {
		return result, nil
	}
	if suppress {
		return uint64(0), nil
	}
	return nil, NewError(value, target, reason)
}

func toUint(value interface{}, bitSize int) (uint64, string) {
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := rValue.Uint()
		if !fitsUint(v, bitSize) {
			return 0, "out of range"
		}
		return v, ""
	}
	v, reason := toInt(value, 64)
	if reason == "out of range" {
		//values above MaxInt64 only parse as unsigned
		if digits := integerPrefix(value); digits != "" && digits[0] != '-' {
			if u, err := strconv.ParseUint(strings.TrimPrefix(digits, "+"), 10, bitSize); err == nil {
				return u, ""
			}
		}
	}
	if reason != "" {
		return 0, reason
	}
	if v < 0 {
		return 0, "negative value"
	}
	if !fitsUint(uint64(v), bitSize) {
		return 0, "out of range"
	}
	return uint64(v), ""
}

func fitsInt(v int64, bitSize int) bool {
	if bitSize >= 64 || bitSize <= 0 {
		return true
	}
	limit := int64(1) << (bitSize - 1)
	return v >= -limit && v < limit
}

func fitsUint(v uint64, bitSize int) bool {
	if bitSize >= 64 || bitSize <= 0 {
		return true
	}
	return v < uint64(1)<<bitSize
}

func asFloat(value interface{}) (float64, bool) {
	switch actual := value.(type) {
	case float64:
		return actual, true
	case int:
		return float64(actual), true
	}
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rValue.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rValue.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rValue.Float(), true
	}
	return 0, false
}

// integerPrefix returns optional sign and leading decimal digits of value string form
func integerPrefix(value interface{}) string {
	switch value.(type) {
	case time.Time, *time.Time:
		return ""
	}
	text, _ := ToString(value).(string)
	text = strings.TrimLeftFunc(text, unicode.IsSpace)
	start := 0
	if start < len(text) && (text[start] == '-' || text[start] == '+') {
		start++
	}
	end := start
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}
	if end == start {
		return ""
	}
	return text[:end]
}
