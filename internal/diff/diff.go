package diff

// Limits bounds the inputs the exact engine will accept. Inputs exceeding
// either bound are diffed with the boundary engine instead. The bounds are a
// performance/exactness trade-off, not a correctness requirement.
type Limits struct {
	// MaxInput is the per-sequence length bound.
	MaxInput int

	// MaxTotal is the combined length bound.
	MaxTotal int
}

// DefaultLimits returns the standard exact-engine bounds.
func DefaultLimits() Limits {
	return Limits{MaxInput: 200, MaxTotal: 300}
}

// exceeded reports whether the exact engine should be bypassed.
func (l Limits) exceeded(m, n int) bool {
	return m > l.MaxInput || n > l.MaxInput || m+n > l.MaxTotal
}

// Diff compares a and b with the default comparator and limits.
func Diff[T comparable](a, b []T) []Op {
	return DiffFunc(a, b, Equal[T]())
}

// DiffFunc compares a and b with a caller-supplied comparator and the
// default limits.
func DiffFunc[T any](a, b []T, cmp Comparator[T]) []Op {
	return DiffWithLimits(a, b, cmp, DefaultLimits())
}

// DiffWithLimits compares a and b, selecting the engine by the given limits.
// Small inputs get a minimal script from the exact engine; large inputs get
// a single-region script from the boundary engine.
func DiffWithLimits[T any](a, b []T, cmp Comparator[T], lim Limits) []Op {
	if lim.exceeded(len(a), len(b)) {
		var eng BoundaryEngine[T]
		return eng.Diff(a, b, cmp)
	}

	var eng ExactEngine[T]
	ops := eng.Diff(a, b, cmp)

	// The exact engine's search records one bootstrap marker before the
	// first genuine operation; it is never surfaced to callers.
	if len(ops) > 0 && ops[0] == opSentinel {
		ops = ops[1:]
	}
	return ops
}
