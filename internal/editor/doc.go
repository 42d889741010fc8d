// Package editor provides the terminal editing widget whose buffer the
// synchronization session reconciles.
//
// The package splits into two layers. Content is the pure text model: a
// rune buffer plus a cursor, safe for concurrent use, implementing
// session.Buffer. Widget owns the tcell screen, translates key events into
// Content edits, and notifies the session after each local keystroke.
// Remote updates arrive through SetValue and never fire the keystroke
// notification.
package editor
