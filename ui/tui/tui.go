// Package tui plays in a terminal with the mouse.
package tui

import (
	"context"
	"fmt"

	"clickchess/src"
	"clickchess/src/logx"

	"github.com/gdamore/tcell/v2"
)

type TUIProcessing struct {
	screen  tcell.Screen
	session *src.Session
	logger  logx.Logger
}

// NewScreen opens the terminal with mouse reporting on.
func NewScreen() (tcell.Screen, error) {
	tcell.SetEncodingFallback(tcell.EncodingFallbackASCII)

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("screen init: %w", err)
	}
	screen.EnableMouse()
	return screen, nil
}

func NewTUI(screen tcell.Screen, s *src.Session, r *ScreenRenderer, logger logx.Logger) *TUIProcessing {
	if logger == nil {
		logger = logx.NewNop()
	}
	t := &TUIProcessing{screen: screen, session: s, logger: logger}
	r.SetStatus(t.statusLines)
	return t
}

func (t *TUIProcessing) statusLines() []string {
	s := t.session
	return []string{
		fmt.Sprintf("%v to move, status %v", s.Turn(), s.Status()),
		s.History().MovesAsPGN(),
		"click a piece then a square, <f> flip, <q> quit",
	}
}

// Shutdown tears down the terminal.
func (t *TUIProcessing) Shutdown() {
	t.screen.Fini()
}

// Run blocks until quit or an engine fault. Terminal events are read on
// their own goroutine and handed to the session one at a time.
func (t *TUIProcessing) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan src.Event)
	go t.pollEvents(ctx, events)
	return t.session.Run(ctx, events)
}

// toVirtual maps a terminal cell to session pixels. Cells off the board
// map outside the viewport.
func toVirtual(x, y int) (int, int) {
	sq := Viewport / 8
	vx := (x - padLeft) * (sq / cellWidth)
	vy := (y - padTop) * (sq / cellHeight)
	if x < padLeft {
		vx = -1
	}
	if y < padTop {
		vy = -1
	}
	return vx, vy
}

func (t *TUIProcessing) pollEvents(ctx context.Context, events chan<- src.Event) {
	pressed := false
	send := func(ev src.Event) bool {
		select {
		case events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		event := t.screen.PollEvent()
		if event == nil {
			return
		}

		switch ev := event.(type) {
		case *tcell.EventMouse:
			down := ev.Buttons()&tcell.Button1 != 0
			if down && !pressed {
				x, y := toVirtual(ev.Position())
				if !send(src.Event{Kind: src.EventClick, X: x, Y: y}) {
					return
				}
			}
			pressed = down
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q'):
				send(src.Event{Kind: src.EventQuit})
				return
			case ev.Key() == tcell.KeyRune && ev.Rune() == 'f':
				if !send(src.Event{Kind: src.EventFlip}) {
					return
				}
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}
