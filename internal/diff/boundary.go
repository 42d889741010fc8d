package diff

// Boundary describes the single contiguous change region between two
// sequences: the first index where they diverge and the index just past the
// region in each sequence (equivalently, where the common suffix begins).
//
// First == -1 means the sequences are identical.
type Boundary struct {
	First   int
	LastOld int
	LastNew int
}

// BoundaryEngine locates only the common prefix and suffix of two sequences
// and reports everything between as one replace region. It runs in O(m+n)
// and is correct whenever edits are localized, which is the common case for
// a single user's keystroke burst. It does not produce a minimal script for
// scattered edits.
type BoundaryEngine[T any] struct{}

// Scan computes the change boundary between a and b.
func Scan[T any](a, b []T, cmp Comparator[T]) Boundary {
	m, n := len(a), len(b)

	first := 0
	for first < m && first < n && cmp(a[first], b[first]) {
		first++
	}
	if first == m && first == n {
		return Boundary{First: -1}
	}

	// Scan the remainders from the end. The suffix must not reach back into
	// the prefix, so it is bounded by the shorter remainder.
	suffix := 0
	for suffix < m-first && suffix < n-first && cmp(a[m-1-suffix], b[n-1-suffix]) {
		suffix++
	}

	return Boundary{First: first, LastOld: m - suffix, LastNew: n - suffix}
}

// Diff materializes the boundary as an atomic operation stream with the same
// shape the exact engine produces: equal prefix, insert run, delete run,
// equal suffix.
func (BoundaryEngine[T]) Diff(a, b []T, cmp Comparator[T]) []Op {
	bd := Scan(a, b, cmp)
	if bd.First < 0 {
		return appendRun(nil, OpEqual, len(b))
	}

	inserts := bd.LastNew - bd.First
	deletes := bd.LastOld - bd.First

	ops := make([]Op, 0, len(b)+deletes)
	ops = appendRun(ops, OpEqual, bd.First)
	ops = appendRun(ops, OpInsert, inserts)
	ops = appendRun(ops, OpDelete, deletes)
	ops = appendRun(ops, OpEqual, len(b)-bd.LastNew)
	return ops
}

func appendRun(ops []Op, op Op, count int) []Op {
	if ops == nil && count >= 0 {
		ops = make([]Op, 0, count)
	}
	for i := 0; i < count; i++ {
		ops = append(ops, op)
	}
	return ops
}
