package session

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/dshills/textsync/internal/diff"
	"github.com/dshills/textsync/internal/patch"
)

// State is the synchronization loop state.
type State uint8

const (
	// StateIdle means no local edit is pending and no patch is being applied.
	StateIdle State = iota

	// StateLocalEditPending means the debounce timer is armed.
	StateLocalEditPending

	// StateReconciling means a remote patch is being applied.
	StateReconciling
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLocalEditPending:
		return "local-edit-pending"
	case StateReconciling:
		return "reconciling"
	default:
		return "unknown"
	}
}

// Buffer is the live text buffer held by the editing widget. Implementations
// must be safe for concurrent use: the widget mutates the buffer on its own
// thread while the session reads it on timer fires.
//
// The session never inspects cursor position, selection, or rendering; it
// only reads and replaces content.
type Buffer interface {
	// Value returns the current buffer content. The returned slice must be a
	// copy the session can keep.
	Value() []rune

	// SetValue replaces the entire buffer content atomically.
	SetValue(content []rune)
}

// Emitter delivers outbound events to the messaging channel.
type Emitter interface {
	// EmitPatch publishes a verified local patch.
	EmitPatch(documentID string, ops []patch.Operation[rune]) error

	// RequestResync asks peers for a full-content snapshot after the session
	// detects desynchronization.
	RequestResync(documentID string) error
}

// Session reconciles a live buffer against remote edits using a shadow-copy
// patch protocol. All methods are safe for concurrent use; internally every
// transition is serialized, so the session behaves as one logical thread.
type Session struct {
	documentID string
	buf        Buffer
	emitter    Emitter

	logger      *zap.Logger
	clock       clockwork.Clock
	debounce    time.Duration
	limits      diff.Limits
	fillerLines int

	mu       sync.Mutex
	shadow   []rune
	state    State
	timer    clockwork.Timer
	desynced bool
	closed   bool
}

// New creates a session for the given document. The shadow copy and the live
// buffer are both seeded with the filler content (a run of line breaks) until
// the first inbound patch or snapshot arrives.
func New(documentID string, buf Buffer, emitter Emitter, opts ...Option) *Session {
	s := &Session{
		documentID:  documentID,
		buf:         buf,
		emitter:     emitter,
		logger:      zap.NewNop(),
		clock:       clockwork.NewRealClock(),
		debounce:    time.Second,
		limits:      diff.DefaultLimits(),
		fillerLines: 3,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.shadow = []rune(strings.Repeat("\n", s.fillerLines))
	s.buf.SetValue(slices.Clone(s.shadow))

	return s
}

// DocumentID returns the document this session synchronizes.
func (s *Session) DocumentID() string {
	return s.documentID
}

// State returns the current loop state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Desynced reports whether the session is waiting for a full snapshot after
// a remote patch failed to apply.
func (s *Session) Desynced() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.desynced
}

// Snapshot returns a copy of the shadow copy: the last state known to be in
// sync across participants. Used to answer peers' resync requests.
func (s *Session) Snapshot() []rune {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.shadow)
}

// SetDebounce changes the debounce window for subsequent keystrokes. An
// already armed timer keeps its original deadline.
func (s *Session) SetDebounce(d time.Duration) {
	if d <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debounce = d
}

// SetLimits changes the diff engine selection bounds for subsequent flushes.
func (s *Session) SetLimits(limits diff.Limits) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limits = limits
}

// Keystroke records a local edit notification from the widget. Each call
// rearms the debounce timer: the patch is computed only after the buffer has
// been quiescent for the full window.
func (s *Session) Keystroke() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	if s.timer == nil {
		s.timer = s.clock.AfterFunc(s.debounce, s.onTimer)
	} else {
		s.timer.Reset(s.debounce)
	}
	s.state = StateLocalEditPending
}

// onTimer runs when the debounce window elapses without another keystroke.
func (s *Session) onTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state != StateLocalEditPending {
		return
	}
	s.flushLocked()
	s.state = StateIdle
}

// Flush forces a pending local edit to be reconciled immediately, as if the
// debounce timer had fired. It does nothing when no edit is pending.
func (s *Session) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state != StateLocalEditPending {
		return
	}
	s.stopTimerLocked()
	s.flushLocked()
	s.state = StateIdle
}

// ApplyRemotePatch applies an inbound patch to the shadow copy, folds in any
// local edits typed during the round trip, and overwrites the live buffer
// from the shadow copy.
//
// A patch referencing positions beyond the shadow copy signals protocol
// desynchronization: the shadow copy is left untouched, a resync request is
// emitted, and ErrDesynced is returned. The session recovers when the
// snapshot arrives via ApplySnapshot.
func (s *Session) ApplyRemotePatch(ops []patch.Operation[rune]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	// Local edits are folded in below only when a flush is actually pending;
	// otherwise the stale buffer would read as an edit reverting the patch.
	pending := s.state == StateLocalEditPending
	s.state = StateReconciling

	patched, err := patch.Apply(s.shadow, ops)
	if err != nil {
		s.desynced = true
		s.state = StateIdle
		s.logger.Warn("remote patch failed to apply, requesting resync",
			zap.String("document", s.documentID),
			zap.Error(err))
		if rerr := s.emitter.RequestResync(s.documentID); rerr != nil {
			s.logger.Warn("resync request failed", zap.Error(rerr))
		}
		return fmt.Errorf("%w: %v", ErrDesynced, err)
	}
	s.shadow = patched

	// Fold in local edits typed while the remote patch was in flight, then
	// replace the whole buffer content from the shadow copy.
	if pending {
		s.flushLocked()
	}
	s.stopTimerLocked()
	s.buf.SetValue(slices.Clone(s.shadow))
	s.state = StateIdle

	return nil
}

// ApplySnapshot replaces the shadow copy and the live buffer with a full
// document snapshot, clearing any desync condition. Unsent local edits are
// discarded; full-state resync is authoritative.
func (s *Session) ApplySnapshot(content []rune) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.shadow = slices.Clone(content)
	s.buf.SetValue(slices.Clone(content))
	s.stopTimerLocked()
	s.desynced = false
	s.state = StateIdle

	s.logger.Info("applied full snapshot",
		zap.String("document", s.documentID),
		zap.Int("length", len(content)))
}

// Close stops the debounce timer and discards any pending unsent patch.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.stopTimerLocked()
}

// flushLocked snapshots the buffer, diffs it against the shadow copy, and
// commits and emits the patch only if applying it to a scratch copy of the
// shadow reproduces the buffer content exactly. A mismatch means the buffer
// changed while the patch was being computed; the patch is discarded and the
// next timer fire works from fresh state.
func (s *Session) flushLocked() {
	snap := s.buf.Value()

	stream := diff.DiffWithLimits(s.shadow, snap, diff.Equal[rune](), s.limits)
	ops := patch.Compact(stream, snap)
	if len(ops) == 0 {
		return
	}

	scratch, err := patch.Apply(s.shadow, ops)
	if err != nil {
		// The verify step exists precisely so this never reaches the wire.
		s.logger.Error("diff pipeline produced an inconsistent patch",
			zap.String("document", s.documentID),
			zap.Error(err))
		return
	}

	if !slices.Equal(scratch, s.buf.Value()) {
		s.logger.Debug("buffer changed during diff, discarding patch",
			zap.String("document", s.documentID))
		return
	}

	s.shadow = scratch
	if err := s.emitter.EmitPatch(s.documentID, ops); err != nil {
		s.logger.Warn("patch emission failed",
			zap.String("document", s.documentID),
			zap.Error(err))
	}
}

func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
	}
}
