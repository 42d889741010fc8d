package transport

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/dshills/textsync/internal/patch"
)

// Kind identifies the envelope payload.
type Kind string

const (
	// KindPatch carries compacted patch operations.
	KindPatch Kind = "patch"

	// KindResync asks peers for a full-content snapshot.
	KindResync Kind = "resync"

	// KindSnapshot carries the full document content.
	KindSnapshot Kind = "snapshot"
)

// Change is one wire-encoded patch operation. Insert values travel as a
// string since the protocol synchronizes text.
type Change struct {
	Op    string `json:"op"`
	Index int    `json:"index"`
	Text  string `json:"text,omitempty"`
	Count int    `json:"count,omitempty"`
}

// Event is the envelope exchanged on the messaging channel.
type Event struct {
	Kind       Kind     `json:"kind"`
	DocumentID string   `json:"documentId"`
	Sender     string   `json:"sender"`
	Seq        int64    `json:"seq,omitempty"`
	Changes    []Change `json:"changes,omitempty"`
	Content    string   `json:"content,omitempty"`
}

// Encode serializes an event for the wire.
func Encode(ev Event) ([]byte, error) {
	if ev.DocumentID == "" {
		return nil, ErrMissingDocument
	}
	switch ev.Kind {
	case KindPatch, KindResync, KindSnapshot:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, ev.Kind)
	}
	return json.Marshal(ev)
}

// Decode parses a wire payload.
func Decode(raw []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		return Event{}, fmt.Errorf("decoding event: %w", err)
	}
	switch ev.Kind {
	case KindPatch, KindResync, KindSnapshot:
	default:
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownKind, ev.Kind)
	}
	if ev.DocumentID == "" {
		return Event{}, ErrMissingDocument
	}
	return ev, nil
}

// PeekDocumentID extracts the document ID from a raw payload without a full
// decode. The hub routes on this.
func PeekDocumentID(raw []byte) string {
	return gjson.GetBytes(raw, "documentId").String()
}

// PeekSender extracts the sender ID from a raw payload without a full
// decode. The hub excludes the sender from fanout.
func PeekSender(raw []byte) string {
	return gjson.GetBytes(raw, "sender").String()
}

// ChangesFromOps converts patch operations to their wire form.
func ChangesFromOps(ops []patch.Operation[rune]) []Change {
	changes := make([]Change, 0, len(ops))
	for _, op := range ops {
		switch o := op.(type) {
		case patch.Insert[rune]:
			changes = append(changes, Change{Op: "insert", Index: o.Index, Text: string(o.Values)})
		case patch.Delete[rune]:
			changes = append(changes, Change{Op: "delete", Index: o.Index, Count: o.Count})
		}
	}
	return changes
}

// OpsFromChanges converts wire changes back to patch operations.
func OpsFromChanges(changes []Change) ([]patch.Operation[rune], error) {
	ops := make([]patch.Operation[rune], 0, len(changes))
	for _, c := range changes {
		switch c.Op {
		case "insert":
			ops = append(ops, patch.Insert[rune]{Index: c.Index, Values: []rune(c.Text)})
		case "delete":
			ops = append(ops, patch.Delete[rune]{Index: c.Index, Count: c.Count})
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownOp, c.Op)
		}
	}
	return ops, nil
}
