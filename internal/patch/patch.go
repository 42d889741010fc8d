package patch

import (
	"fmt"
	"slices"
)

// Operation is a single compacted patch instruction. Implementations are
// Insert and Delete.
type Operation[T any] interface {
	// apply transforms seq in place and returns the result. seq must be a
	// private copy; apply may mutate it.
	apply(seq []T) ([]T, error)
}

// Insert places Values at Index.
type Insert[T any] struct {
	Index  int
	Values []T
}

// Delete removes Count elements starting at Index.
type Delete[T any] struct {
	Index int
	Count int
}

func (op Insert[T]) apply(seq []T) ([]T, error) {
	if op.Index < 0 || op.Index > len(seq) {
		return nil, fmt.Errorf("insert at %d in sequence of %d: %w", op.Index, len(seq), ErrIndexOutOfRange)
	}
	return slices.Insert(seq, op.Index, op.Values...), nil
}

func (op Delete[T]) apply(seq []T) ([]T, error) {
	if op.Count < 0 {
		return nil, fmt.Errorf("delete %d elements: %w", op.Count, ErrNegativeCount)
	}
	if op.Index < 0 || op.Index+op.Count > len(seq) {
		return nil, fmt.Errorf("delete %d at %d in sequence of %d: %w", op.Count, op.Index, len(seq), ErrIndexOutOfRange)
	}
	return slices.Delete(seq, op.Index, op.Index+op.Count), nil
}

// Apply applies ops to seq in list order and returns the patched sequence.
// seq itself is never mutated. On error the original sequence state is
// unaffected and no partial result is returned.
func Apply[T any](seq []T, ops []Operation[T]) ([]T, error) {
	out := slices.Clone(seq)
	for i, op := range ops {
		var err error
		out, err = op.apply(out)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
	}
	return out, nil
}
