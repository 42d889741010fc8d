// Package patch converts atomic diff streams into compact, positioned patch
// operations and applies them to sequences.
//
// A patch is an ordered list of Insert and Delete operations. Every index is
// relative to the sequence state after all prior operations in the same list
// have been applied. Compaction emits at most one Insert and one Delete per
// contiguous change region, with the Insert first; the Delete then references
// the position just past that region's inserted values.
package patch
