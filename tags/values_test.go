package tags

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestValues_MatchPairs(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expect      map[string]string
	}{
		{
			description: "mixed",
			input:       ",remain,type=date",
			expect: map[string]string{
				"remain": "",
				"type":   "date",
			},
		},
		{
			description: "scoped value",
			input:       "excludes={a,b},visibility=all",
			expect: map[string]string{
				"excludes":   "{a,b}",
				"visibility": "all",
			},
		},
		{
			description: "quoted value",
			input:       "dateLayout='YYYY-MM-DD, HH',type = date",
			expect: map[string]string{
				"dateLayout": "YYYY-MM-DD, HH",
				"type":       "date",
			},
		},
	}
	for _, testCase := range testCases {
		values := Values(testCase.input)
		actual := map[string]string{}
		err := values.MatchPairs(func(key, value string) error {
			actual[key] = value
			return nil
		})
		assert.Nil(t, err)
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestValues_Elements(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expect      []string
	}{
		{description: "single", input: "n", expect: []string{"n"}},
		{description: "block", input: "{b, n,/no/}", expect: []string{"b", "n", "/no/"}},
		{description: "quoted", input: "{'a,b',c}", expect: []string{"a,b", "c"}},
		{description: "empty", input: "{}", expect: nil},
	}
	for _, testCase := range testCases {
		assert.EqualValues(t, testCase.expect, Values(testCase.input).Elements(), testCase.description)
	}
}
