package morph

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

type event struct {
	ID     int                    `json:"id"`
	At     time.Time              `json:"at"`
	Tags   []string               `json:"tags"`
	Owner  *nestedRecord          `json:"owner"`
	Labels map[string]string      `json:"labels"`
	Extra  map[string]interface{} `convert:",remain"`
}

func TestConverter_UnmarshalJSON(t *testing.T) {
	converter := New(WithVisibility(VisibilityAll))
	actual := &event{}
	err := converter.UnmarshalJSON([]byte(`{"id":"7","at":"2024-03-01T10:00:00Z","tags":"one","owner":{"s":1},"labels":{"a":2},"extra":[1,2]}`), actual)
	require.Nil(t, err)
	assert.Equal(t, &event{
		ID:     7,
		At:     time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Tags:   []string{"one"},
		Owner:  &nestedRecord{S: "1"},
		Labels: map[string]string{"a": "2"},
		Extra:  map[string]interface{}{"extra": []interface{}{float64(1), float64(2)}},
	}, actual)

	var ids []int
	require.Nil(t, converter.UnmarshalJSON([]byte(`["1", 2, 3.7]`), &ids))
	assert.Equal(t, []int{1, 2, 3}, ids)

	assert.NotNil(t, converter.UnmarshalJSON([]byte(`{"id":`), actual))
}

func TestConverter_UnmarshalJSON_Order(t *testing.T) {
	var visited []string
	recorder := Predicate(func(name string) bool {
		visited = append(visited, name)
		return false
	})
	actual := map[string]interface{}{}
	err := New().UnmarshalJSON([]byte(`{"z":1,"a":2,"m":3}`), &actual, WithExcludes(recorder))
	require.Nil(t, err)
	assert.Equal(t, []string{"z", "a", "m"}, visited)
	assert.Equal(t, map[string]interface{}{"z": float64(1), "a": float64(2), "m": float64(3)}, actual)
}

func TestConverter_UnmarshalYAML(t *testing.T) {
	actual := &event{}
	err := New().UnmarshalYAML([]byte(`
id: 3
at: 2024-03-01
tags: [a, b]
owner:
  s: true
`), actual)
	require.Nil(t, err)
	assert.Equal(t, 3, actual.ID)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), actual.At)
	assert.Equal(t, []string{"a", "b"}, actual.Tags)
	assert.Equal(t, &nestedRecord{S: "true"}, actual.Owner)
}

func TestConverter_UnmarshalYAML_Merge(t *testing.T) {
	type server struct {
		Host string `json:"host"`
		Port int    `json:"port"`
	}
	actual := map[string]server{}
	err := New().UnmarshalYAML([]byte(`
base: &base {host: example.org, port: 80}
server: {<<: *base, port: 8080}
`), &actual)
	require.Nil(t, err)
	assert.Equal(t, server{Host: "example.org", Port: 8080}, actual["server"])
	assert.Equal(t, server{Host: "example.org", Port: 80}, actual["base"])
}
