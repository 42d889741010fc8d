// Package session implements the client-side synchronization loop.
//
// A Session owns a private shadow copy of the document: the last state known
// to be in sync across participants. Local keystrokes arm a debounce timer;
// when it fires the live buffer is snapshotted, diffed against the shadow
// copy, and the resulting patch is verified against the buffer before being
// committed and emitted. Inbound patches are applied to the shadow copy,
// local edits typed during the round trip are folded in, and the live buffer
// is then overwritten wholesale from the shadow copy, never partially
// updated.
//
// All state transitions are serialized: the session behaves as a single
// logical thread of control per participant. The protocol is optimistic
// last-applied-wins per patch; concurrent overlapping edits from multiple
// participants are not guaranteed to converge.
package session
