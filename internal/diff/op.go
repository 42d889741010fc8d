package diff

// Op is an atomic diff operation marker.
type Op uint8

const (
	// OpEqual marks an element present in both sequences.
	OpEqual Op = iota

	// OpInsert marks an element present only in the new sequence.
	OpInsert

	// OpDelete marks an element present only in the old sequence.
	OpDelete

	// opSentinel is the bootstrap marker the exact engine records before its
	// first genuine operation. The dispatcher strips it; it never appears in
	// a stream returned by Diff.
	opSentinel
)

// String returns the marker name.
func (op Op) String() string {
	switch op {
	case OpEqual:
		return "equal"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case opSentinel:
		return "sentinel"
	default:
		return "unknown"
	}
}
