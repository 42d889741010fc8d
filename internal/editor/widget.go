package editor

import (
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// KeystrokeFunc is invoked after every local edit so the session can arm its
// debounce timer.
type KeystrokeFunc func()

// Widget is the terminal editing surface. It owns a tcell screen, applies
// key events to its Content, and redraws after every change. It implements
// session.Buffer: the session reads the content on timer fires and replaces
// it wholesale when a remote patch lands.
type Widget struct {
	screen  tcell.Screen
	content *Content
	logger  *zap.Logger

	onKeystroke KeystrokeFunc
	ready       chan struct{}
}

// Option customizes a Widget.
type Option func(*Widget)

// WithScreen supplies the tcell screen. Tests inject a simulation screen;
// the default is the real terminal.
func WithScreen(screen tcell.Screen) Option {
	return func(w *Widget) {
		if screen != nil {
			w.screen = screen
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Widget) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWidget creates a widget. onKeystroke may be nil; it is normally wired
// to session.Keystroke after the session is created.
func NewWidget(onKeystroke KeystrokeFunc, opts ...Option) (*Widget, error) {
	w := &Widget{
		content:     NewContent(),
		logger:      zap.NewNop(),
		onKeystroke: onKeystroke,
		ready:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, err
		}
		w.screen = screen
	}
	return w, nil
}

// SetKeystrokeFunc installs the local-edit notification. Call before Run.
func (w *Widget) SetKeystrokeFunc(fn KeystrokeFunc) {
	w.onKeystroke = fn
}

// Value implements session.Buffer.
func (w *Widget) Value() []rune {
	return w.content.Value()
}

// SetValue implements session.Buffer. It replaces the content and wakes the
// event loop for a redraw. It never fires the keystroke notification; only
// local edits do that.
func (w *Widget) SetValue(content []rune) {
	w.content.SetValue(content)
	_ = w.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// quitRequest is the interrupt payload distinguishing Quit from a redraw.
type quitRequest struct{}

// Quit asks the event loop to exit, as if the user pressed Escape. Safe to
// call from any goroutine.
func (w *Widget) Quit() {
	_ = w.screen.PostEvent(tcell.NewEventInterrupt(quitRequest{}))
}

// Run initializes the screen and processes events until the user quits with
// Escape or Ctrl+C, or the screen is torn down.
func (w *Widget) Run() error {
	if err := w.screen.Init(); err != nil {
		return err
	}
	defer w.screen.Fini()

	close(w.ready)
	w.draw()

	for {
		ev := w.screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch e := ev.(type) {
		case *tcell.EventKey:
			if !w.handleKey(e) {
				return nil
			}
		case *tcell.EventResize:
			w.screen.Sync()
		case *tcell.EventInterrupt:
			if _, quit := e.Data().(quitRequest); quit {
				return nil
			}
			// Remote update landed; fall through to redraw.
		}
		w.draw()
	}
}

// handleKey applies one key event. It returns false when the user quits.
func (w *Widget) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false

	case tcell.KeyRune:
		w.content.InsertRune(ev.Rune())
		w.keystroke()
	case tcell.KeyEnter:
		w.content.InsertRune('\n')
		w.keystroke()
	case tcell.KeyTab:
		w.content.InsertRune('\t')
		w.keystroke()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		w.content.Backspace()
		w.keystroke()
	case tcell.KeyDelete:
		w.content.DeleteForward()
		w.keystroke()

	case tcell.KeyLeft:
		w.content.MoveLeft()
	case tcell.KeyRight:
		w.content.MoveRight()
	case tcell.KeyUp:
		w.content.MoveUp()
	case tcell.KeyDown:
		w.content.MoveDown()
	case tcell.KeyHome:
		w.content.Home()
	case tcell.KeyEnd:
		w.content.End()
	}
	return true
}

func (w *Widget) keystroke() {
	if w.onKeystroke != nil {
		w.onKeystroke()
	}
}

// draw repaints the whole document. The document is small by design, so a
// full repaint per event keeps the widget simple.
func (w *Widget) draw() {
	text, cursor := w.content.Snapshot()
	width, height := w.screen.Size()

	w.screen.Clear()

	x, y := 0, 0
	cx, cy := 0, 0
	for i, r := range text {
		if i == cursor {
			cx, cy = x, y
		}
		if r == '\n' {
			x, y = 0, y+1
			continue
		}
		if x < width && y < height {
			w.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
		}
		x++
	}
	if cursor == len(text) {
		cx, cy = x, y
	}

	w.screen.ShowCursor(cx, cy)
	w.screen.Show()
}
