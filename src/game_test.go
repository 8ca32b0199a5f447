package src

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"clickchess/src/base"
	"clickchess/src/engine"
	"clickchess/src/engine/libchess"
	"clickchess/src/logic/coords"
	"clickchess/src/logic/highlight"
	"clickchess/src/logic/selection"
	"clickchess/src/logx"

	"go.uber.org/zap/zapcore"
)

type move struct{ from, to base.Cell }

// scriptedEngine answers from a fixed board and a table of accepted moves.
type scriptedEngine struct {
	board    base.Mailbox
	turn     base.Color
	dests    map[base.Cell][]base.Cell
	accept   map[move]string
	attempts []move

	occupantErr error
	attemptErr  error
}

func newScripted(t *testing.T, placement string) *scriptedEngine {
	t.Helper()
	mb, err := base.MailboxFromPlacement(placement)
	if err != nil {
		t.Fatalf("placement: %v", err)
	}
	return &scriptedEngine{
		board:  mb,
		turn:   base.White,
		dests:  make(map[base.Cell][]base.Cell),
		accept: make(map[move]string),
	}
}

func (e *scriptedEngine) Occupant(c base.Cell) (base.Piece, error) {
	if e.occupantErr != nil {
		return base.NoPiece, e.occupantErr
	}
	return e.board.At(c), nil
}

func (e *scriptedEngine) LegalDestinations(c base.Cell) ([]base.Cell, error) {
	return e.dests[c], nil
}

func (e *scriptedEngine) AttemptMove(from, to base.Cell) (engine.Result, error) {
	e.attempts = append(e.attempts, move{from, to})
	if e.attemptErr != nil {
		return engine.Result{}, e.attemptErr
	}
	san, ok := e.accept[move{from, to}]
	if !ok {
		return engine.Result{}, nil
	}
	e.board.Set(to, e.board.At(from))
	e.board.Set(from, base.NoPiece)
	e.turn = e.turn.Other()
	return engine.Result{Accepted: true, Notation: san}, nil
}

func (e *scriptedEngine) Snapshot() (base.Mailbox, error) { return e.board, nil }
func (e *scriptedEngine) Turn() base.Color               { return e.turn }

type frameRecorder struct {
	boards, pieces, highlights, flushes int

	orientation base.Orientation
	set         highlight.Set
	board       base.Mailbox
}

func (r *frameRecorder) DrawBoard(o base.Orientation) {
	r.boards++
	r.orientation = o
}

func (r *frameRecorder) DrawPieces(mb base.Mailbox, o base.Orientation) {
	r.pieces++
	r.board = mb
}

func (r *frameRecorder) DrawHighlights(set highlight.Set, o base.Orientation) {
	r.highlights++
	r.set = set
}

func (r *frameRecorder) Flush() { r.flushes++ }

func sq(t *testing.T, name string) base.Cell {
	t.Helper()
	c, err := base.ParseCell(name)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func click(t *testing.T, s *Session, name string) error {
	t.Helper()
	x, y := coords.CellCenter(sq(t, name), s.Viewport(), s.Orientation())
	return s.HandleClick(x, y)
}

func mustClick(t *testing.T, s *Session, name string) {
	t.Helper()
	if err := click(t, s, name); err != nil {
		t.Fatalf("click %s: %v", name, err)
	}
}

// white: e2 pawn, e1 king, g1 knight. black: e8 king, d3 pawn
func sampleEngine(t *testing.T) *scriptedEngine {
	e := newScripted(t, "4k3/8/8/8/8/3p4/4P3/4K1N1")
	e.dests[sq(t, "e2")] = []base.Cell{sq(t, "e3"), sq(t, "e4"), sq(t, "d3")}
	e.dests[sq(t, "g1")] = []base.Cell{sq(t, "f3"), sq(t, "h3")}
	e.accept[move{sq(t, "e2"), sq(t, "e3")}] = "e3"
	e.accept[move{sq(t, "e2"), sq(t, "d3")}] = "exd3"
	return e
}

func TestScenarioA(t *testing.T) {
	eng, err := libchess.New("")
	if err != nil {
		t.Fatal(err)
	}
	r := &frameRecorder{}
	s := NewSession(eng, r, logx.NewNop(), 560, base.Normal)
	if s.Turn() != base.White {
		t.Fatalf("turn = %v", s.Turn())
	}

	mustClick(t, s, "e2")
	if s.State() != selection.Select(sq(t, "e2")) {
		t.Fatalf("state = %v", s.State())
	}
	if hs := s.Highlights(); !hs.Active || len(hs.Markers) != 2 {
		t.Fatalf("highlights = %+v", hs)
	}

	mustClick(t, s, "e3")
	if s.State() != selection.Idle || s.Turn() != base.Black || s.History().Len() != 1 {
		t.Fatalf("after e2-e3: state=%v turn=%v moves=%d", s.State(), s.Turn(), s.History().Len())
	}
	if got := s.History().MovesAsPGN(); got != "1. e3" {
		t.Fatalf("pgn = %q", got)
	}
	if s.Highlights().Active {
		t.Fatal("highlights must clear after an attempt")
	}
	if r.board.At(sq(t, "e3")).Kind != base.Pawn {
		t.Fatal("renderer did not get the new position")
	}
}

func TestScenarioB(t *testing.T) {
	eng, _ := libchess.New("")
	s := NewSession(eng, &frameRecorder{}, nil, 560, base.Normal)

	mustClick(t, s, "e2")
	mustClick(t, s, "e5")
	if s.State() != selection.Idle || s.Turn() != base.White || s.History().Len() != 0 {
		t.Fatalf("after rejected move: state=%v turn=%v moves=%d", s.State(), s.Turn(), s.History().Len())
	}
	if s.Halted() {
		t.Fatal("a rejected move is not a fault")
	}
}

func TestScenarioCReselect(t *testing.T) {
	e := sampleEngine(t)
	s := NewSession(e, &frameRecorder{}, nil, 560, base.Normal)

	mustClick(t, s, "e2")
	mustClick(t, s, "g1")
	if s.State() != selection.Select(sq(t, "g1")) {
		t.Fatalf("state = %v", s.State())
	}
	hs := s.Highlights()
	if hs.Anchor != sq(t, "g1") || len(hs.Markers) != 2 {
		t.Fatalf("highlights = %+v", hs)
	}
	if _, ok := hs.Has(sq(t, "e3")); ok {
		t.Fatal("highlights were patched instead of recomputed")
	}
	if len(e.attempts) != 0 {
		t.Fatalf("reselect attempted %v", e.attempts)
	}
}

func TestScenarioDFlipped(t *testing.T) {
	e := newScripted(t, "4k3/8/8/8/8/8/8/4K2R")
	e.dests[sq(t, "h1")] = []base.Cell{sq(t, "h2")}
	s := NewSession(e, &frameRecorder{}, nil, 8, base.Flipped)

	if err := s.HandleClick(0, 0); err != nil {
		t.Fatal(err)
	}
	if s.State() != selection.Select(base.Cell{Row: 7, Col: 7}) {
		t.Fatalf("flipped (0,0) selected %v", s.State())
	}
	if err := s.HandleClick(7, 7); err != nil {
		t.Fatal(err)
	}
	if len(e.attempts) != 1 || e.attempts[0].to != (base.Cell{Row: 0, Col: 0}) {
		t.Fatalf("attempts = %v", e.attempts)
	}
}

func TestIdempotentDeselect(t *testing.T) {
	e := sampleEngine(t)
	r := &frameRecorder{}
	s := NewSession(e, r, nil, 560, base.Normal)

	mustClick(t, s, "e2")
	mustClick(t, s, "e2")
	if s.State() != selection.Idle || s.Highlights().Active || len(s.Highlights().Markers) != 0 {
		t.Fatalf("state=%v highlights=%+v", s.State(), s.Highlights())
	}
	if r.set.Active {
		t.Fatal("renderer still shows highlights")
	}
	if len(e.attempts) != 0 {
		t.Fatal("deselect must not attempt a move")
	}
}

func TestIgnoredClicks(t *testing.T) {
	e := sampleEngine(t)
	r := &frameRecorder{}
	s := NewSession(e, r, nil, 560, base.Normal)

	for _, p := range [][2]int{{-1, 10}, {10, -5}, {560, 0}, {0, 900}} {
		if err := s.HandleClick(p[0], p[1]); err != nil {
			t.Fatalf("click %v: %v", p, err)
		}
	}
	mustClick(t, s, "a5") // empty
	mustClick(t, s, "d3") // black pawn, white to move
	if s.State() != selection.Idle || r.boards != 0 {
		t.Fatalf("ignored clicks changed something: state=%v frames=%d", s.State(), r.boards)
	}
}

func TestTurnDiscipline(t *testing.T) {
	cases := []struct {
		to       string
		accepted bool
	}{
		{"e3", true},
		{"d3", true},
		{"e4", false},
		{"a8", false},
	}
	for _, tc := range cases {
		e := sampleEngine(t)
		s := NewSession(e, &frameRecorder{}, nil, 560, base.Normal)
		mustClick(t, s, "e2")
		mustClick(t, s, tc.to)

		if len(e.attempts) != 1 {
			t.Fatalf("e2-%s: %d attempts", tc.to, len(e.attempts))
		}
		changed := s.Turn() != base.White
		if changed != tc.accepted {
			t.Errorf("e2-%s: turn changed=%v, accepted=%v", tc.to, changed, tc.accepted)
		}
		if (s.History().Len() == 1) != tc.accepted {
			t.Errorf("e2-%s: history len %d", tc.to, s.History().Len())
		}
	}
}

func TestOpponentCanMoveAfterTurnPasses(t *testing.T) {
	e := sampleEngine(t)
	e.dests[sq(t, "e8")] = []base.Cell{sq(t, "d8"), sq(t, "f8")}
	s := NewSession(e, &frameRecorder{}, nil, 560, base.Normal)

	mustClick(t, s, "e8")
	if s.State().Selected {
		t.Fatal("black piece selected on white's turn")
	}
	mustClick(t, s, "e2")
	mustClick(t, s, "e3")
	mustClick(t, s, "e8")
	if s.State() != selection.Select(sq(t, "e8")) {
		t.Fatalf("black could not select after white moved: %v", s.State())
	}
}

func TestHighlightCorrectness(t *testing.T) {
	e := sampleEngine(t)
	s := NewSession(e, &frameRecorder{}, nil, 560, base.Normal)
	mustClick(t, s, "e2")

	want := map[base.Cell]bool{sq(t, "e3"): false, sq(t, "e4"): false, sq(t, "d3"): true}
	hs := s.Highlights()
	if len(hs.Markers) != len(want) {
		t.Fatalf("markers = %+v", hs.Markers)
	}
	for _, m := range hs.Markers {
		capture, ok := want[m.Cell]
		if !ok {
			t.Fatalf("%v is not a legal destination", m.Cell)
		}
		if m.Capture != capture {
			t.Errorf("%v capture = %v, want %v", m.Cell, m.Capture, capture)
		}
	}
}

func TestMalformedDestinationHalts(t *testing.T) {
	e := sampleEngine(t)
	e.dests[sq(t, "g1")] = []base.Cell{sq(t, "f3"), {Row: 8, Col: 5}}
	s := NewSession(e, &frameRecorder{}, nil, 560, base.Normal)

	err := click(t, s, "g1")
	if !errors.Is(err, ErrHalted) || !errors.Is(err, highlight.ErrMalformedDestination) {
		t.Fatalf("err = %v", err)
	}
	if !s.Halted() || s.State() != selection.Idle {
		t.Fatalf("halted=%v state=%v", s.Halted(), s.State())
	}

	err = click(t, s, "e2")
	if !errors.Is(err, ErrHalted) {
		t.Fatalf("later click err = %v", err)
	}
	if s.State().Selected {
		t.Fatal("halted session must not process clicks")
	}
	if !errors.Is(s.ToggleFlip(), ErrHalted) {
		t.Fatal("flip after halt should fail")
	}
}

func TestAttemptFaultHalts(t *testing.T) {
	e := sampleEngine(t)
	e.attemptErr = engine.ErrUnavailable
	s := NewSession(e, &frameRecorder{}, nil, 560, base.Normal)

	mustClick(t, s, "e2")
	err := click(t, s, "e3")
	if !errors.Is(err, engine.ErrUnavailable) || !errors.Is(err, ErrHalted) {
		t.Fatalf("err = %v", err)
	}
	if s.Turn() != base.White || s.History().Len() != 0 {
		t.Fatal("a fault must not advance the game")
	}
}

func TestOccupantFaultHalts(t *testing.T) {
	e := sampleEngine(t)
	e.occupantErr = errors.New("pipe closed")
	s := NewSession(e, nil, nil, 560, base.Normal)
	if err := click(t, s, "e2"); !errors.Is(err, ErrHalted) {
		t.Fatalf("err = %v", err)
	}
}

func TestRedrawAfterEveryStateChange(t *testing.T) {
	e := sampleEngine(t)
	r := &frameRecorder{}
	s := NewSession(e, r, nil, 560, base.Normal)

	mustClick(t, s, "e2") // select
	mustClick(t, s, "g1") // reselect
	mustClick(t, s, "g1") // deselect
	mustClick(t, s, "e2") // select
	mustClick(t, s, "a8") // rejected attempt
	if r.boards != 5 || r.pieces != 5 || r.highlights != 5 || r.flushes != 5 {
		t.Fatalf("frames: board=%d pieces=%d highlights=%d flush=%d", r.boards, r.pieces, r.highlights, r.flushes)
	}
}

func TestToggleFlipKeepsSelection(t *testing.T) {
	e := sampleEngine(t)
	r := &frameRecorder{}
	s := NewSession(e, r, nil, 560, base.Normal)
	mustClick(t, s, "e2")

	if err := s.ToggleFlip(); err != nil {
		t.Fatal(err)
	}
	if s.Orientation() != base.Flipped || r.orientation != base.Flipped {
		t.Fatal("view was not flipped")
	}
	// same square, now drawn rotated
	mustClick(t, s, "e3")
	if s.History().Len() != 1 {
		t.Fatalf("move after flip failed: %v", e.attempts)
	}
}

func TestSetViewport(t *testing.T) {
	e := sampleEngine(t)
	r := &frameRecorder{}
	s := NewSession(e, r, nil, 560, base.Normal)

	if err := s.SetViewport(560); err != nil || r.boards != 0 {
		t.Fatal("same viewport should not redraw")
	}
	if err := s.SetViewport(800); err != nil || r.boards != 1 {
		t.Fatal("resize should redraw")
	}
	mustClick(t, s, "e2")
	if s.State() != selection.Select(sq(t, "e2")) {
		t.Fatalf("click after resize selected %v", s.State())
	}
}

func TestRun(t *testing.T) {
	eng, _ := libchess.New("")
	r := &frameRecorder{}
	s := NewSession(eng, r, nil, 560, base.Normal)

	at := func(name string) Event {
		x, y := coords.CellCenter(sq(t, name), 560, base.Normal)
		return Event{Kind: EventClick, X: x, Y: y}
	}
	events := make(chan Event, 8)
	events <- at("e2")
	events <- at("e4")
	events <- Event{Kind: EventFlip}
	events <- Event{Kind: EventQuit}
	events <- at("e7")

	if err := s.Run(context.Background(), events); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.History().MovesAsPGN() != "1. e4" || s.Orientation() != base.Flipped {
		t.Fatalf("pgn=%q orientation=%v", s.History().MovesAsPGN(), s.Orientation())
	}
	if len(events) != 1 {
		t.Fatal("events after quit must not be consumed")
	}
	// initial frame, select, move, flip
	if r.flushes != 4 {
		t.Fatalf("flushes = %d", r.flushes)
	}
}

func TestRunReturnsFault(t *testing.T) {
	eng, _ := libchess.New("")
	s := NewSession(eng, &frameRecorder{}, nil, 560, base.Normal)
	events := make(chan Event, 1)
	eng.Close()

	err := s.Run(context.Background(), events)
	if !errors.Is(err, engine.ErrUnavailable) {
		t.Fatalf("err = %v", err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	eng, _ := libchess.New("")
	s := NewSession(eng, nil, nil, 560, base.Normal)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Run(ctx, make(chan Event)); err != nil {
		t.Fatalf("err = %v", err)
	}
}

func TestMoveListIsLogged(t *testing.T) {
	var buf bytes.Buffer
	l := logx.NewLogx(zapcore.DebugLevel, false, false)
	l.InitLogger(&buf)

	eng, _ := libchess.New("")
	s := NewSession(eng, nil, l, 560, base.Normal)
	mustClick(t, s, "g1")
	mustClick(t, s, "f3")
	_ = l.Sync()

	out := buf.String()
	if !strings.Contains(out, "moves: 1. Nf3") || !strings.Contains(out, "calculated in") {
		t.Fatalf("log does not contain the move list:\n%s", out)
	}
	if !strings.Contains(out, s.ID()) {
		t.Fatal("log lines are not tagged with the session id")
	}
}
