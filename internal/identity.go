package internal

import "reflect"

type pointerKey struct {
	kind    reflect.Type
	pointer uintptr
	length  int
}

// Identity returns a key identifying the given error instance, suitable for
// a visited set. Reference kinds are keyed by their pointer, dynamically
// comparable values by themselves. It returns false for values that cannot
// be keyed, such as structs holding slices.
func Identity(err error) (any, bool) {
	if err == nil {
		return nil, false
	}
	value := reflect.ValueOf(err)
	switch value.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return pointerKey{kind: value.Type(), pointer: value.Pointer()}, true
	case reflect.Slice:
		return pointerKey{kind: value.Type(), pointer: value.Pointer(), length: value.Len()}, true
	}
	if value.Comparable() {
		return err, true
	}
	return nil, false
}

// Visited is a set of error identities.
type Visited map[any]struct{}

// Visit marks err as visited and reports whether it was not visited before.
// Errors without identity are always reported as new.
func (v Visited) Visit(err error) bool {
	key, ok := Identity(err)
	if !ok {
		return true
	}
	if _, exists := v[key]; exists {
		return false
	}
	v[key] = struct{}{}
	return true
}

// Seen reports whether err was already visited.
func (v Visited) Seen(err error) bool {
	key, ok := Identity(err)
	if !ok {
		return false
	}
	_, exists := v[key]
	return exists
}
