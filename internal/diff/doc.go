// Package diff computes atomic edit scripts between two sequences.
//
// Two engines are provided behind a single dispatch function. ExactEngine
// performs a furthest-reaching-point search over the edit graph and returns
// a minimal script; its cost grows with the edit distance, so it is bounded
// to small inputs. BoundaryEngine only locates the common prefix and suffix
// and reports everything between as one replace region; it is linear and is
// used for large inputs where a minimal script is not worth the cost.
//
// Both engines return the same output shape: an ordered stream of Op markers
// (OpEqual, OpInsert, OpDelete) that downstream compaction converts into
// positioned patch operations.
package diff
