package conv

import (
	"fmt"
	ftime "github.com/viant/tagly/format/time"
	"math"
	"strings"
	"time"
)

const (
	//DateTarget date target name
	DateTarget = "date"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	time.UnixDate,
	time.ANSIC,
	"Mon Jan 02 2006",
}

// ToDate converts value to time.Time, time values pass through, numbers are Unix milliseconds,
// anything else is parsed from its string form. Unparsable values fail unless suppress is set,
// in which case the zero (invalid) time is returned.
func ToDate(value interface{}, layout string, suppress bool) (interface{}, error) {
	if IsNil(value) {
		return nil, nil
	}
	switch actual := value.(type) {
	case time.Time:
		return actual, nil
	case *time.Time:
		return *actual, nil
	}
	if number, ok := asFloat(value); ok {
		if math.IsNaN(number) || math.IsInf(number, 0) {
			return time.Time{}, nil
		}
		return time.UnixMilli(int64(number)).UTC(), nil
	}
	text, _ := ToString(value).(string)
	result, err := ParseTime(text, layout)
	if err != nil {
		if suppress {
			return time.Time{}, nil
		}
		return nil, NewError(value, DateTarget, err.Error())
	}
	return result, nil
}

// ParseTime parses text with supplied layout first, then with common ISO and RFC layouts.
// Layout can be either go time layout or ISO date format i.e. YYYY-MM-DD
func ParseTime(text string, layout string) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if layout != "" {
		if strings.Contains(layout, "YYYY") {
			layout = ftime.DateFormatToTimeLayout(layout)
		}
		if result, err := time.ParseInLocation(layout, text, time.UTC); err == nil {
			return result, nil
		}
	}
	for _, candidate := range timeLayouts {
		if result, err := time.ParseInLocation(candidate, text, time.UTC); err == nil {
			return result, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %q", text)
}
