package diff

// Comparator reports whether two elements are equal.
//
// A comparator must be reflexive and symmetric; the engines' minimality and
// termination guarantees assume a consistent equality relation. Comparators
// must not have side effects.
type Comparator[T any] func(a, b T) bool

// Equal returns the default comparator: structural equality via ==.
func Equal[T comparable]() Comparator[T] {
	return func(a, b T) bool { return a == b }
}
