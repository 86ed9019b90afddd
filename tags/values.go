package tags

import (
	"github.com/viant/parsly"
	"strings"
)

// Values represents tag values
type Values string

// MatchPairs matches key[=value] pairs separated by coma
func (v Values) MatchPairs(onMatch func(key, value string) error) error {
	cursor := parsly.NewCursor("", []byte(v), 0)
	for cursor.Pos < len(cursor.Input) {
		segment := nextSegment(cursor)
		key, value := segment, ""
		if index := strings.IndexByte(segment, '='); index != -1 {
			key, value = segment[:index], segment[index+1:]
		}
		if key = strings.TrimSpace(key); key == "" {
			continue
		}
		if err := onMatch(key, unquote(strings.TrimSpace(value))); err != nil {
			return err
		}
	}
	return nil
}

// Elements returns coma separated elements, enclosing {} are removed, quoted elements keep comas
func (v Values) Elements() []string {
	text := strings.TrimSpace(string(v))
	if strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") {
		text = text[1 : len(text)-1]
	}
	var result []string
	cursor := parsly.NewCursor("", []byte(text), 0)
	for cursor.Pos < len(cursor.Input) {
		if element := unquote(strings.TrimSpace(nextSegment(cursor))); element != "" {
			result = append(result, element)
		}
	}
	return result
}
