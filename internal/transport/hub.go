package transport

import (
	"sync"

	"github.com/google/uuid"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"
)

// Handler receives raw payloads published for a subscribed document.
type Handler func(raw []byte)

// Subscription is a handle for cancelling a hub subscription.
type Subscription struct {
	id         string
	documentID string
	sender     string
	handler    Handler
}

// ID returns the subscription identifier.
func (s *Subscription) ID() string { return s.id }

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithHubLogger sets the hub logger. Defaults to a no-op logger.
func WithHubLogger(logger *zap.Logger) HubOption {
	return func(h *Hub) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// Hub is an in-process publish/subscribe channel for patch events. It stands
// in for the external messaging channel in tests and the demo binary.
//
// Delivery is synchronous and in publish order, matching the protocol's
// assumption that each participant applies inbound patches in arrival order.
type Hub struct {
	logger *zap.Logger

	mu     sync.RWMutex
	subs   map[string][]*Subscription // keyed by document ID
	seqs   map[string]int64
	closed bool
}

// NewHub creates an empty hub.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		logger: zap.NewNop(),
		subs:   make(map[string][]*Subscription),
		seqs:   make(map[string]int64),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Subscribe registers a handler for a document's events. Events published by
// sender are not delivered back to it.
func (h *Hub) Subscribe(documentID, sender string, handler Handler) (*Subscription, error) {
	if handler == nil || documentID == "" {
		return nil, ErrMissingDocument
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}

	sub := &Subscription{
		id:         uuid.NewString(),
		documentID: documentID,
		sender:     sender,
		handler:    handler,
	}
	h.subs[documentID] = append(h.subs[documentID], sub)

	h.logger.Debug("subscribed",
		zap.String("document", documentID),
		zap.String("sender", sender),
		zap.String("subscription", sub.id))

	return sub, nil
}

// Unsubscribe removes a subscription. Unknown subscriptions are ignored.
func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.subs[sub.documentID]
	for i, s := range subs {
		if s.id == sub.id {
			h.subs[sub.documentID] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// Publish routes a raw payload to every subscriber of its document except
// the sender. A per-document sequence number is stamped into the payload
// before fanout.
func (h *Hub) Publish(raw []byte) error {
	documentID := PeekDocumentID(raw)
	if documentID == "" {
		return ErrMissingDocument
	}
	sender := PeekSender(raw)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrHubClosed
	}
	h.seqs[documentID]++
	seq := h.seqs[documentID]
	targets := make([]*Subscription, 0, len(h.subs[documentID]))
	for _, sub := range h.subs[documentID] {
		if sub.sender != sender {
			targets = append(targets, sub)
		}
	}
	h.mu.Unlock()

	stamped, err := sjson.SetBytes(raw, "seq", seq)
	if err != nil {
		return err
	}

	h.logger.Debug("publishing",
		zap.String("document", documentID),
		zap.String("sender", sender),
		zap.Int64("seq", seq),
		zap.Int("targets", len(targets)))

	for _, sub := range targets {
		sub.handler(stamped)
	}
	return nil
}

// Close rejects further publishes and subscriptions.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
}
