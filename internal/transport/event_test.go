package transport

import (
	"errors"
	"slices"
	"testing"

	"github.com/dshills/textsync/internal/patch"
)

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
	}{
		{"patch", Event{
			Kind:       KindPatch,
			DocumentID: "doc-1",
			Sender:     "alice",
			Changes: []Change{
				{Op: "insert", Index: 6, Text: "there "},
				{Op: "delete", Index: 12, Count: 2},
			},
		}},
		{"resync", Event{Kind: KindResync, DocumentID: "doc-1", Sender: "bob"}},
		{"snapshot", Event{Kind: KindSnapshot, DocumentID: "doc-1", Sender: "bob", Content: "abc\n\n\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := Encode(tt.ev)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}

			got, err := Decode(raw)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}

			if got.Kind != tt.ev.Kind || got.DocumentID != tt.ev.DocumentID ||
				got.Sender != tt.ev.Sender || got.Content != tt.ev.Content {
				t.Errorf("decoded %+v, want %+v", got, tt.ev)
			}
			if len(got.Changes) != len(tt.ev.Changes) {
				t.Fatalf("decoded %d changes, want %d", len(got.Changes), len(tt.ev.Changes))
			}
			for i := range got.Changes {
				if got.Changes[i] != tt.ev.Changes[i] {
					t.Errorf("change %d = %+v, want %+v", i, got.Changes[i], tt.ev.Changes[i])
				}
			}
		})
	}
}

func TestEncodeRejectsBadEvents(t *testing.T) {
	if _, err := Encode(Event{Kind: KindPatch}); !errors.Is(err, ErrMissingDocument) {
		t.Errorf("missing document: got %v", err)
	}
	if _, err := Encode(Event{Kind: "bogus", DocumentID: "doc"}); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("unknown kind: got %v", err)
	}
}

func TestDecodeRejectsBadPayloads(t *testing.T) {
	if _, err := Decode([]byte("{not json")); err == nil {
		t.Error("malformed JSON accepted")
	}
	if _, err := Decode([]byte(`{"kind":"bogus","documentId":"d"}`)); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("unknown kind: got %v", err)
	}
	if _, err := Decode([]byte(`{"kind":"patch"}`)); !errors.Is(err, ErrMissingDocument) {
		t.Errorf("missing document: got %v", err)
	}
}

func TestPeekFields(t *testing.T) {
	raw, err := Encode(Event{Kind: KindPatch, DocumentID: "doc-42", Sender: "carol"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if got := PeekDocumentID(raw); got != "doc-42" {
		t.Errorf("PeekDocumentID = %q, want %q", got, "doc-42")
	}
	if got := PeekSender(raw); got != "carol" {
		t.Errorf("PeekSender = %q, want %q", got, "carol")
	}
}

func TestChangeConversionRoundTrip(t *testing.T) {
	ops := []patch.Operation[rune]{
		patch.Insert[rune]{Index: 1, Values: []rune("héllo")},
		patch.Delete[rune]{Index: 6, Count: 3},
	}

	got, err := OpsFromChanges(ChangesFromOps(ops))
	if err != nil {
		t.Fatalf("conversion: %v", err)
	}
	if len(got) != len(ops) {
		t.Fatalf("got %d ops, want %d", len(got), len(ops))
	}

	ins, ok := got[0].(patch.Insert[rune])
	if !ok || ins.Index != 1 || !slices.Equal(ins.Values, []rune("héllo")) {
		t.Errorf("op 0 = %+v, want Insert{1, héllo}", got[0])
	}
	del, ok := got[1].(patch.Delete[rune])
	if !ok || del != (patch.Delete[rune]{Index: 6, Count: 3}) {
		t.Errorf("op 1 = %+v, want Delete{6, 3}", got[1])
	}
}

func TestOpsFromChangesRejectsUnknownOp(t *testing.T) {
	_, err := OpsFromChanges([]Change{{Op: "retain", Index: 0, Count: 5}})
	if !errors.Is(err, ErrUnknownOp) {
		t.Errorf("expected ErrUnknownOp, got %v", err)
	}
}
