package ordered

//Object represents an ordered string keyed container
type Object interface {
	//Keys returns keys in discovery order
	Keys() []string
	//Get returns a value for supplied key
	Get(key string) (interface{}, bool)
}

//Map represents an insertion-ordered map
type Map struct {
	keys   []string
	values map[string]interface{}
}

// Keys returns map keys in insertion order
func (m *Map) Keys() []string {
	return m.keys
}

// Get returns value for supplied key
func (m *Map) Get(key string) (interface{}, bool) {
	value, ok := m.values[key]
	return value, ok
}

// Set sets a value, a new key is appended, existing keeps its position
func (m *Map) Set(key string, value interface{}) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// NewMap creates an ordered map
func NewMap() *Map {
	return &Map{values: map[string]interface{}{}}
}
