package morph

import (
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestNewOptions(t *testing.T) {
	var testCases = []struct {
		description string
		defaults    []Option
		declared    []Option
		call        []Option
		expect      *Options
	}{
		{
			description: "defaults",
			expect:      &Options{Excludes: Exclusions{}, Visibility: VisibilityTyped, MaxDepth: DefaultMaxDepth},
		},
		{
			description: "later layer overrides per key",
			defaults:    []Option{WithVisibility(VisibilityAll), WithSuppressErrors(true), WithDateLayout("YYYY")},
			declared:    []Option{WithVisibility(VisibilityDecorated), WithMaxDepth(5)},
			call:        []Option{WithVisibility(VisibilityTyped)},
			expect: &Options{Excludes: Exclusions{}, Visibility: VisibilityTyped, SuppressErrors: true,
				DateLayout: "YYYY", MaxDepth: 5},
		},
		{
			description: "exclusions are replaced",
			defaults:    []Option{WithExcludes(Name("a"), Name("b"))},
			declared:    []Option{WithExcludes(Name("c"))},
			expect:      &Options{Excludes: Exclusions{Name("c")}, Visibility: VisibilityTyped, MaxDepth: DefaultMaxDepth},
		},
		{
			description: "invalid visibility falls back to typed",
			call:        []Option{WithVisibility("public")},
			expect:      &Options{Excludes: Exclusions{}, Visibility: VisibilityTyped, MaxDepth: DefaultMaxDepth},
		},
	}
	for _, testCase := range testCases {
		actual := newOptions(testCase.defaults, testCase.declared, testCase.call)
		assert.EqualValues(t, testCase.expect.Excludes, actual.Excludes, testCase.description)
		assert.EqualValues(t, testCase.expect.Visibility, actual.Visibility, testCase.description)
		assert.EqualValues(t, testCase.expect.SuppressErrors, actual.SuppressErrors, testCase.description)
		assert.EqualValues(t, testCase.expect.DateLayout, actual.DateLayout, testCase.description)
		assert.EqualValues(t, testCase.expect.MaxDepth, actual.MaxDepth, testCase.description)
	}
}

func TestOptions_Inherited(t *testing.T) {
	logger := zerolog.Nop()
	options := newOptions(
		[]Option{WithSuppressErrors(true), WithLogger(logger)},
		[]Option{WithExcludes(Name("x"))},
		[]Option{WithVisibility(VisibilityAll)},
	)
	nested := newOptions(nil, []Option{WithVisibility(VisibilityDecorated), WithDateLayout("YYYY")}, options.inherited())
	assert.Equal(t, VisibilityAll, nested.Visibility)
	assert.Equal(t, Exclusions{Name("x")}, nested.Excludes)
	assert.Equal(t, "YYYY", nested.DateLayout)
	assert.False(t, nested.SuppressErrors)
	assert.Len(t, options.inherited(), 2)
}
