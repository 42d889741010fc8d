package transport

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/textsync/internal/patch"
	"github.com/dshills/textsync/internal/session"
)

// Option configures a Participant.
type Option func(*Participant)

// WithLogger sets the participant logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Participant) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithSessionOptions forwards options to the participant's session.
func WithSessionOptions(opts ...session.Option) Option {
	return func(p *Participant) {
		p.sessOpts = append(p.sessOpts, opts...)
	}
}

// Participant attaches a synchronization session to a hub. It implements
// session.Emitter for the outbound direction and feeds inbound events to the
// session through a single worker goroutine, so each participant applies
// events in arrival order without re-entering the publisher's call stack.
type Participant struct {
	id       string
	hub      *Hub
	logger   *zap.Logger
	sessOpts []session.Option

	session *session.Session
	sub     *Subscription

	inbox chan []byte
	done  chan struct{}
	wg    sync.WaitGroup

	closeOnce sync.Once
}

// Join creates a session over buf for the given document and subscribes it
// to the hub.
func Join(hub *Hub, documentID string, buf session.Buffer, opts ...Option) (*Participant, error) {
	p := &Participant{
		id:     uuid.NewString(),
		hub:    hub,
		logger: zap.NewNop(),
		inbox:  make(chan []byte, 64),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.session = session.New(documentID, buf, p, p.sessOpts...)

	sub, err := hub.Subscribe(documentID, p.id, p.enqueue)
	if err != nil {
		p.session.Close()
		return nil, err
	}
	p.sub = sub

	p.wg.Add(1)
	go p.worker()

	return p, nil
}

// ID returns the participant's sender ID.
func (p *Participant) ID() string { return p.id }

// Session returns the participant's synchronization session.
func (p *Participant) Session() *session.Session { return p.session }

// EmitPatch implements session.Emitter.
func (p *Participant) EmitPatch(documentID string, ops []patch.Operation[rune]) error {
	raw, err := Encode(Event{
		Kind:       KindPatch,
		DocumentID: documentID,
		Sender:     p.id,
		Changes:    ChangesFromOps(ops),
	})
	if err != nil {
		return err
	}
	return p.hub.Publish(raw)
}

// RequestResync implements session.Emitter.
func (p *Participant) RequestResync(documentID string) error {
	raw, err := Encode(Event{
		Kind:       KindResync,
		DocumentID: documentID,
		Sender:     p.id,
	})
	if err != nil {
		return err
	}
	return p.hub.Publish(raw)
}

// Close unsubscribes from the hub and shuts down the session. Events already
// queued are dropped.
func (p *Participant) Close() {
	p.closeOnce.Do(func() {
		p.hub.Unsubscribe(p.sub)
		close(p.done)
		p.wg.Wait()
		p.session.Close()
	})
}

// enqueue is the hub-facing handler. It never blocks the publisher; if this
// participant's queue is full the event is dropped and the session will
// recover through the resync path when the gap surfaces.
func (p *Participant) enqueue(raw []byte) {
	select {
	case p.inbox <- raw:
	case <-p.done:
	default:
		p.logger.Warn("inbox full, dropping event",
			zap.String("participant", p.id))
	}
}

// worker applies inbound events in arrival order.
func (p *Participant) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.done:
			return
		case raw := <-p.inbox:
			p.dispatch(raw)
		}
	}
}

func (p *Participant) dispatch(raw []byte) {
	ev, err := Decode(raw)
	if err != nil {
		p.logger.Warn("dropping undecodable event", zap.Error(err))
		return
	}

	switch ev.Kind {
	case KindPatch:
		ops, err := OpsFromChanges(ev.Changes)
		if err != nil {
			p.logger.Warn("dropping malformed patch",
				zap.String("document", ev.DocumentID),
				zap.Error(err))
			return
		}
		if err := p.session.ApplyRemotePatch(ops); err != nil {
			if errors.Is(err, session.ErrDesynced) {
				// The session already requested a resync.
				p.logger.Info("desynced, awaiting snapshot",
					zap.String("document", ev.DocumentID))
				return
			}
			p.logger.Warn("remote patch rejected", zap.Error(err))
		}

	case KindResync:
		if p.session.Desynced() {
			// A stale shadow copy is no answer to a resync request.
			return
		}
		raw, err := Encode(Event{
			Kind:       KindSnapshot,
			DocumentID: ev.DocumentID,
			Sender:     p.id,
			Content:    string(p.session.Snapshot()),
		})
		if err != nil {
			p.logger.Warn("encoding snapshot failed", zap.Error(err))
			return
		}
		if err := p.hub.Publish(raw); err != nil {
			p.logger.Warn("publishing snapshot failed", zap.Error(err))
		}

	case KindSnapshot:
		// Snapshots are only consumed while desynced; applying one
		// otherwise would clobber pending local edits.
		if p.session.Desynced() {
			p.session.ApplySnapshot([]rune(ev.Content))
		}
	}
}
