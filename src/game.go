package src

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clickchess/src/base"
	"clickchess/src/engine"
	"clickchess/src/logic/coords"
	"clickchess/src/logic/highlight"
	"clickchess/src/logic/history"
	"clickchess/src/logic/selection"
	"clickchess/src/logx"

	"github.com/google/uuid"
)

// ErrHalted is returned for every event after an engine fault.
var ErrHalted = errors.New("session halted")

// Renderer draws one frame. It never changes the session.
type Renderer interface {
	DrawBoard(o base.Orientation)
	DrawPieces(mb base.Mailbox, o base.Orientation)
	DrawHighlights(set highlight.Set, o base.Orientation)
}

// Flusher is implemented by renderers that present a frame at once.
type Flusher interface {
	Flush()
}

// engines that can tell check and mate
type statusReporter interface {
	Status() base.GameStatus
}

type EventKind uint8

const (
	EventClick EventKind = iota
	EventFlip
	EventQuit
)

type Event struct {
	Kind EventKind
	X, Y int
}

// Session turns clicks into moves on one game. Not safe for concurrent use,
// events are handled one at a time.
type Session struct {
	id       string
	engine   engine.MoveEngine
	renderer Renderer
	logger   logx.Logger

	viewport    int
	orientation base.Orientation

	state      selection.State
	turn       base.Color
	highlights highlight.Set
	history    *history.History
	status     base.GameStatus
	fault      error
}

func NewSession(e engine.MoveEngine, r Renderer, logger logx.Logger, viewport int, o base.Orientation) *Session {
	if logger == nil {
		logger = logx.NewNop()
	}
	id := uuid.NewString()
	turn := e.Turn()
	s := &Session{
		id:          id,
		engine:      e,
		renderer:    r,
		logger:      logger.With("session", id),
		viewport:    viewport,
		orientation: o,
		state:       selection.Idle,
		turn:        turn,
		highlights:  highlight.Empty(),
		history:     history.NewHistory(turn),
		status:      base.Pass,
	}
	s.logger.Infof("new session: viewport %d, %v view, %v to move", viewport, o, turn)
	return s
}

func (s *Session) ID() string { return s.id }
func (s *Session) State() selection.State { return s.state }
func (s *Session) Turn() base.Color { return s.turn }
func (s *Session) Highlights() highlight.Set { return s.highlights }
func (s *Session) History() *history.History { return s.history }
func (s *Session) Orientation() base.Orientation { return s.orientation }
func (s *Session) Viewport() int { return s.viewport }
func (s *Session) Status() base.GameStatus { return s.status }
func (s *Session) Fault() error { return s.fault }
func (s *Session) Halted() bool { return s.fault != nil }
func (s *Session) Engine() engine.MoveEngine { return s.engine }

func (s *Session) halted() error {
	return fmt.Errorf("%w: %w", ErrHalted, s.fault)
}

// fail records the first engine fault and stops the session.
func (s *Session) fail(err error) error {
	s.fault = err
	s.state = selection.Idle
	s.highlights = highlight.Empty()
	s.logger.Errorf("engine fault, session halted: %v", err)
	return s.halted()
}

// Redraw paints a full frame: board, pieces, highlights.
func (s *Session) Redraw() error {
	if s.fault != nil {
		return s.halted()
	}
	mb, err := s.engine.Snapshot()
	if err != nil {
		return s.fail(fmt.Errorf("snapshot: %w", err))
	}
	if s.renderer == nil {
		return nil
	}
	s.renderer.DrawBoard(s.orientation)
	s.renderer.DrawPieces(mb, s.orientation)
	s.renderer.DrawHighlights(s.highlights, s.orientation)
	if f, ok := s.renderer.(Flusher); ok {
		f.Flush()
	}
	return nil
}

// ToggleFlip rotates the view. Selection and highlights stay, they are cells.
func (s *Session) ToggleFlip() error {
	if s.fault != nil {
		return s.halted()
	}
	s.orientation = s.orientation.Toggle()
	s.logger.Debugf("orientation: %v", s.orientation)
	return s.Redraw()
}

// SetViewport follows a window resize.
func (s *Session) SetViewport(viewport int) error {
	if s.fault != nil {
		return s.halted()
	}
	if viewport == s.viewport {
		return nil
	}
	s.viewport = viewport
	s.logger.Debugf("viewport: %d", viewport)
	return s.Redraw()
}

// HandleClick processes one pointer click at pixel (x, y). Ignored clicks and
// rejected moves return nil; only engine faults are errors.
func (s *Session) HandleClick(x, y int) error {
	if s.fault != nil {
		return s.halted()
	}
	if !coords.InBoard(x, y, s.viewport) {
		s.logger.Debugf("click (%d,%d) outside board %d", x, y, s.viewport)
		return nil
	}
	cell := coords.PixelToCell(x, y, s.viewport, s.orientation)

	target, err := s.engine.Occupant(cell)
	if err != nil {
		return s.fail(fmt.Errorf("occupant %v: %w", cell, err))
	}
	anchorPiece := base.NoPiece
	if s.state.Selected {
		if anchorPiece, err = s.engine.Occupant(s.state.Anchor); err != nil {
			return s.fail(fmt.Errorf("occupant %v: %w", s.state.Anchor, err))
		}
	}

	tr := selection.Next(s.state, cell, target, anchorPiece, s.turn)
	s.logger.Debugf("click %v (%v): %v -> %v", cell, target, tr.Action, tr.Next)

	switch tr.Action {
	case selection.Ignore:
		return nil
	case selection.SelectPiece, selection.Reselect:
		set, err := highlight.Generate(s.engine, cell)
		if err != nil {
			return s.fail(err)
		}
		s.state = tr.Next
		s.highlights = set
	case selection.Deselect:
		s.state = tr.Next
		s.highlights = highlight.Empty()
	case selection.Attempt:
		if err := s.attempt(s.state.Anchor, cell); err != nil {
			return err
		}
	}
	return s.Redraw()
}

func (s *Session) attempt(from, to base.Cell) error {
	start := time.Now()
	res, err := s.engine.AttemptMove(from, to)
	s.state = selection.Idle
	s.highlights = highlight.Empty()
	if err != nil {
		return s.fail(fmt.Errorf("attempt %v-%v: %w", from, to, err))
	}
	if !res.Accepted {
		s.logger.Warnf("move %v-%v rejected, %v to move", from, to, s.turn)
		return nil
	}

	s.history.Push(history.Record{From: from, To: to, Notation: res.Notation})
	s.turn = s.turn.Other()
	if sr, ok := s.engine.(statusReporter); ok {
		s.status = sr.Status()
	}
	s.logger.Infof("move %s (%v-%v), status %v", res.Notation, from, to, s.status)
	s.logger.Infof("moves: %s | calculated in %v", s.history.MovesAsPGN(), time.Since(start))
	return nil
}

// HandleEvent dispatches one input event. It reports quit separately so the
// caller can stop its loop.
func (s *Session) HandleEvent(ev Event) (quit bool, err error) {
	switch ev.Kind {
	case EventClick:
		return false, s.HandleClick(ev.X, ev.Y)
	case EventFlip:
		return false, s.ToggleFlip()
	case EventQuit:
		s.logger.Info("quit")
		return true, nil
	default:
		s.logger.Warnf("unknown event kind %d", ev.Kind)
		return false, nil
	}
}

// Run draws the first frame and handles events until quit, a closed channel,
// a cancelled context or an engine fault. The fault is returned.
func (s *Session) Run(ctx context.Context, events <-chan Event) error {
	if err := s.Redraw(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			quit, err := s.HandleEvent(ev)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
	}
}
