// Package transport carries patch events between participants.
//
// The synchronization core treats the messaging channel as an external
// collaborator; this package provides the envelope and JSON codec for that
// channel plus an in-process Hub used by tests and the demo binary. The Hub
// is a plain publish/subscribe fanout: it routes raw payloads by document ID,
// stamps a per-document sequence number, and never inspects patch contents.
package transport
