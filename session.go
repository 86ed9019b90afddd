package morph

import (
	"reflect"
)

type (
	// session tracks a single top level conversion
	session struct {
		active map[visitKey]bool
		depth  int
	}

	visitKey struct {
		t   reflect.Type
		ptr uintptr
	}
)

func newSession() *session {
	return &session{active: map[visitKey]bool{}}
}

func noop() {}

// enter marks source container as active on the current path, a container already on the path is a cycle
func (s *session) enter(value interface{}) (func(), error) {
	if value == nil {
		return noop, nil
	}
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Map, reflect.Ptr:
		if rValue.IsNil() {
			return noop, nil
		}
	case reflect.Slice:
		if rValue.Len() == 0 {
			return noop, nil
		}
	default:
		return noop, nil
	}
	key := visitKey{t: rValue.Type(), ptr: rValue.Pointer()}
	if s.active[key] {
		return nil, ErrCycle
	}
	s.active[key] = true
	return func() { delete(s.active, key) }, nil
}

// descend increments depth, it returns false when limit is exceeded
func (s *session) descend(limit int) (func(), error) {
	s.depth++
	if limit > 0 && s.depth > limit {
		s.depth--
		return nil, ErrMaxDepth
	}
	return func() { s.depth-- }, nil
}
