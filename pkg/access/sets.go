package access

import "sort"

// OperationSet is a set of granted operations over one operation universe.
// The zero value is not usable; construct with NewOperationSet.
type OperationSet[T ~string] map[T]struct{}

// NewOperationSet returns a set containing the given operations
func NewOperationSet[T ~string](ops ...T) OperationSet[T] {
	s := make(OperationSet[T], len(ops))
	for _, op := range ops {
		s[op] = struct{}{}
	}
	return s
}

// Has reports whether the operation is in the set
func (s OperationSet[T]) Has(op T) bool {
	_, ok := s[op]
	return ok
}

// Add inserts the given operations
func (s OperationSet[T]) Add(ops ...T) {
	for _, op := range ops {
		s[op] = struct{}{}
	}
}

// Union merges other into s and returns s. Grants are additive; there is no
// explicit deny, so union is the only combinator evaluation paths need.
func (s OperationSet[T]) Union(other OperationSet[T]) OperationSet[T] {
	for op := range other {
		s[op] = struct{}{}
	}
	return s
}

// Intersect removes every operation not present in other and returns s
func (s OperationSet[T]) Intersect(other OperationSet[T]) OperationSet[T] {
	for op := range s {
		if _, ok := other[op]; !ok {
			delete(s, op)
		}
	}
	return s
}

// Empty reports whether the set grants nothing
func (s OperationSet[T]) Empty() bool {
	return len(s) == 0
}

// Sorted returns the operations in lexical order
func (s OperationSet[T]) Sorted() []T {
	ops := make([]T, 0, len(s))
	for op := range s {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}

// Flags expands the set into a full flag map over the given universe,
// the shape returned to HTTP callers.
func (s OperationSet[T]) Flags(universe []T) map[T]bool {
	flags := make(map[T]bool, len(universe))
	for _, op := range universe {
		flags[op] = s.Has(op)
	}
	return flags
}
