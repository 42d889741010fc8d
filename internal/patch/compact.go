package patch

import (
	"slices"

	"github.com/dshills/textsync/internal/diff"
)

// Compact converts an atomic diff stream into a minimal list of patch
// operations. newSeq must be the new sequence the stream was computed
// against: inserted values are read from it.
//
// The walk tracks two positions: the read index into newSeq (advanced by
// equal and insert markers; deletes reference old elements that have no slot
// in newSeq) and the write position in the sequence as it is being patched.
// Each contiguous run of non-equal markers becomes one change region: its
// inserts merge into a single Insert at the region's write position, its
// deletes into a single Delete placed just past the inserted values.
func Compact[T any](ops []diff.Op, newSeq []T) []Operation[T] {
	var out []Operation[T]

	pos := 0  // write position in the evolving patched sequence
	next := 0 // read position in newSeq

	for i := 0; i < len(ops); {
		if ops[i] == diff.OpEqual {
			pos++
			next++
			i++
			continue
		}

		inserts, deletes := 0, 0
		for i < len(ops) && ops[i] != diff.OpEqual {
			if ops[i] == diff.OpInsert {
				inserts++
			} else {
				deletes++
			}
			i++
		}

		if inserts > 0 {
			out = append(out, Insert[T]{
				Index:  pos,
				Values: slices.Clone(newSeq[next : next+inserts]),
			})
			pos += inserts
			next += inserts
		}
		if deletes > 0 {
			out = append(out, Delete[T]{Index: pos, Count: deletes})
		}
	}

	return out
}

// FromBoundary converts a change boundary directly into patch operations,
// bypassing the atomic stream. This is the compacted output mode of the
// boundary engine.
func FromBoundary[T any](bd diff.Boundary, newSeq []T) []Operation[T] {
	if bd.First < 0 {
		return nil
	}

	var out []Operation[T]
	if inserts := bd.LastNew - bd.First; inserts > 0 {
		out = append(out, Insert[T]{
			Index:  bd.First,
			Values: slices.Clone(newSeq[bd.First:bd.LastNew]),
		})
	}
	if deletes := bd.LastOld - bd.First; deletes > 0 {
		out = append(out, Delete[T]{Index: bd.LastNew, Count: deletes})
	}
	return out
}
