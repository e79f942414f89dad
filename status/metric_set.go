package status

import (
	"iter"
	"slices"
	"sync"
)

// MetricSet maps dotted names to lazily created metrics of type T
// Zero value is ready to use; lookups of existing names take no lock
type MetricSet[T any] struct {
	m sync.Map // string -> *T
}

// Get returns the metric for name, creating it on first use
func (s *MetricSet[T]) Get(name string) *T {
	if v, ok := s.m.Load(name); ok {
		return v.(*T)
	}
	v, _ := s.m.LoadOrStore(name, new(T))
	return v.(*T)
}

// All yields every metric in name order
func (s *MetricSet[T]) All() iter.Seq2[string, *T] {
	return func(yield func(string, *T) bool) {
		for _, name := range s.names() {
			v, _ := s.m.Load(name)
			if !yield(name, v.(*T)) {
				return
			}
		}
	}
}

// Len returns the number of registered names
func (s *MetricSet[T]) Len() int {
	return len(s.names())
}

func (s *MetricSet[T]) names() []string {
	var out []string
	s.m.Range(func(k, _ any) bool {
		out = append(out, k.(string))
		return true
	})
	slices.Sort(out)
	return out
}
