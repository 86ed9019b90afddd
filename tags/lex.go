package tags

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	comaToken = iota
	scopeBlockToken
	quotedToken
)

var (
	comaMatcher       = parsly.NewToken(comaToken, ",", matcher.NewByte(','))
	scopeBlockMatcher = parsly.NewToken(scopeBlockToken, "{ .... }", matcher.NewBlock('{', '}', '\\'))
	quotedMatcher     = parsly.NewToken(quotedToken, "' .... '", matcher.NewQuote('\'', '\\'))
)

// nextSegment returns text up to the next top level coma, {} blocks and quoted text are kept whole
func nextSegment(cursor *parsly.Cursor) string {
	var segment []byte
	for cursor.Pos < len(cursor.Input) {
		match := cursor.MatchAny(comaMatcher, scopeBlockMatcher, quotedMatcher)
		switch match.Code {
		case comaToken:
			return string(segment)
		case scopeBlockToken, quotedToken:
			segment = append(segment, match.Text(cursor)...)
		default:
			segment = append(segment, cursor.Input[cursor.Pos])
			cursor.Pos++
		}
	}
	return string(segment)
}

func unquote(text string) string {
	if len(text) > 1 && text[0] == '\'' && text[len(text)-1] == '\'' {
		return text[1 : len(text)-1]
	}
	return text
}
