// Package libchess backs engine.MoveEngine with github.com/corentings/chess/v2.
package libchess

import (
	"fmt"
	"strings"

	"clickchess/src/base"
	"clickchess/src/engine"

	nchess "github.com/corentings/chess/v2"
)

type Engine struct {
	game   *nchess.Game
	closed bool
}

// New starts a game from fen, or from the initial position when fen is
// empty or "startpos".
func New(fen string) (*Engine, error) {
	fen = strings.TrimSpace(fen)
	if fen == "" || fen == "startpos" {
		return &Engine{game: nchess.NewGame()}, nil
	}
	option, err := nchess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse fen %q: %w", fen, err)
	}
	return &Engine{game: nchess.NewGame(option)}, nil
}

// Close makes every later call fail with engine.ErrUnavailable.
func (e *Engine) Close() {
	e.closed = true
}

func (e *Engine) ready() error {
	if e == nil || e.closed || e.game == nil {
		return engine.ErrUnavailable
	}
	return nil
}

func toSquare(c base.Cell) nchess.Square {
	return nchess.NewSquare(nchess.File(c.Col), nchess.Rank(7-c.Row))
}

func toCell(sq nchess.Square) base.Cell {
	return base.Cell{Row: 7 - int(sq.Rank()), Col: int(sq.File())}
}

func toColor(c nchess.Color) base.Color {
	switch c {
	case nchess.White:
		return base.White
	case nchess.Black:
		return base.Black
	default:
		return base.NoColor
	}
}

func toPiece(p nchess.Piece) base.Piece {
	if p == nchess.NoPiece {
		return base.NoPiece
	}
	var kind base.PieceKind
	switch p.Type() {
	case nchess.King:
		kind = base.King
	case nchess.Queen:
		kind = base.Queen
	case nchess.Rook:
		kind = base.Rook
	case nchess.Bishop:
		kind = base.Bishop
	case nchess.Knight:
		kind = base.Knight
	case nchess.Pawn:
		kind = base.Pawn
	default:
		return base.NoPiece
	}
	return base.Piece{Kind: kind, Owner: toColor(p.Color())}
}

func (e *Engine) Occupant(c base.Cell) (base.Piece, error) {
	if err := e.ready(); err != nil {
		return base.NoPiece, err
	}
	if !c.Valid() {
		return base.NoPiece, fmt.Errorf("occupant %v: %w", c, engine.ErrBadCell)
	}
	return toPiece(e.game.Position().Board().Piece(toSquare(c))), nil
}

// LegalDestinations lists target cells of the piece on c. Promotion variants
// of the same move collapse into one cell.
func (e *Engine) LegalDestinations(c base.Cell) ([]base.Cell, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if !c.Valid() {
		return nil, fmt.Errorf("destinations %v: %w", c, engine.ErrBadCell)
	}
	from := toSquare(c)
	seen := make(map[nchess.Square]bool)
	var out []base.Cell
	moves := e.game.ValidMoves()
	for i := range moves {
		mv := &moves[i]
		if mv.S1() != from || seen[mv.S2()] {
			continue
		}
		seen[mv.S2()] = true
		out = append(out, toCell(mv.S2()))
	}
	return out, nil
}

// AttemptMove plays from->to when it is legal. Pawns reaching the last rank
// promote to a queen.
func (e *Engine) AttemptMove(from, to base.Cell) (engine.Result, error) {
	if err := e.ready(); err != nil {
		return engine.Result{}, err
	}
	if !from.Valid() || !to.Valid() {
		return engine.Result{}, fmt.Errorf("move %v-%v: %w", from, to, engine.ErrBadCell)
	}
	s1, s2 := toSquare(from), toSquare(to)
	var selected *nchess.Move
	moves := e.game.ValidMoves()
	for i := range moves {
		mv := &moves[i]
		if mv.S1() != s1 || mv.S2() != s2 {
			continue
		}
		if mv.Promo() != nchess.NoPieceType && mv.Promo() != nchess.Queen {
			continue
		}
		selected = mv
		break
	}
	if selected == nil {
		return engine.Result{Accepted: false}, nil
	}

	san := nchess.AlgebraicNotation{}.Encode(e.game.Position(), selected)
	if err := e.game.Move(selected, nil); err != nil {
		return engine.Result{}, fmt.Errorf("apply %s: %v: %w", san, err, engine.ErrUnavailable)
	}
	return engine.Result{Accepted: true, Notation: san}, nil
}

func (e *Engine) Snapshot() (base.Mailbox, error) {
	if err := e.ready(); err != nil {
		return base.Mailbox{}, err
	}
	var mb base.Mailbox
	for sq, p := range e.game.Position().Board().SquareMap() {
		mb.Set(toCell(sq), toPiece(p))
	}
	return mb, nil
}

func (e *Engine) Turn() base.Color {
	if e.ready() != nil {
		return base.NoColor
	}
	return toColor(e.game.Position().Turn())
}

// Status reports check, checkmate, stalemate, draw or pass for the side to move.
func (e *Engine) Status() base.GameStatus {
	if e.ready() != nil {
		return base.InvalidGame
	}
	switch e.game.Outcome() {
	case nchess.WhiteWon, nchess.BlackWon:
		if e.game.Method() == nchess.Checkmate {
			return base.Checkmate
		}
		return base.Pass
	case nchess.Draw:
		if e.game.Method() == nchess.Stalemate {
			return base.Stalemate
		}
		return base.Draw
	}
	if moves := e.game.Moves(); len(moves) > 0 && moves[len(moves)-1].HasTag(nchess.Check) {
		return base.Check
	}
	return base.Pass
}

func (e *Engine) FEN() string {
	if e.ready() != nil {
		return ""
	}
	return e.game.FEN()
}
