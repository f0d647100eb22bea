package helper

import "sync"

// SyncSet is an insertion-ordered set safe for concurrent use.
type SyncSet[Value comparable] struct {
	mutex  sync.RWMutex
	values []Value
	index  map[Value]struct{}
}

func (s *SyncSet[Value]) Add(value Value) (added bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, exists := s.index[value]; exists {
		return false
	}
	if s.index == nil {
		s.index = make(map[Value]struct{})
	}
	s.index[value] = struct{}{}
	s.values = append(s.values, value)
	return true
}

func (s *SyncSet[Value]) Remove(value Value) (removed bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, exists := s.index[value]; !exists {
		return false
	}
	delete(s.index, value)
	for i, v := range s.values {
		if v == value {
			s.values = append(s.values[:i:i], s.values[i+1:]...)
			break
		}
	}
	return true
}

func (s *SyncSet[Value]) Contains(value Value) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	_, exists := s.index[value]
	return exists
}

func (s *SyncSet[Value]) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.values = nil
	s.index = nil
}

func (s *SyncSet[Value]) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.values)
}

// Values returns a copy of the set content in insertion order.
func (s *SyncSet[Value]) Values() []Value {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if len(s.values) == 0 {
		return nil
	}
	return append([]Value(nil), s.values...)
}

// ForEach calls f for each value in insertion order until f returns false.
// The set must not be modified from inside f.
func (s *SyncSet[Value]) ForEach(f func(value Value) bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	for _, value := range s.values {
		if !f(value) {
			return
		}
	}
}
