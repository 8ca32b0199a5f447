package engine

import (
	"errors"

	"clickchess/src/base"
)

var (
	// ErrUnavailable means the rules engine cannot answer anymore.
	ErrUnavailable = errors.New("move engine unavailable")
	// ErrBadCell is returned for queries outside the board.
	ErrBadCell = errors.New("cell out of board")
)

// Result of a move attempt. A rejected move is not an error.
type Result struct {
	Accepted bool
	Notation string // engine owned notation, empty when rejected
}

// MoveEngine is the rules oracle behind the board. Only AttemptMove mutates
// the position. Every error returned is a fault of the engine itself.
type MoveEngine interface {
	Occupant(c base.Cell) (base.Piece, error)
	LegalDestinations(c base.Cell) ([]base.Cell, error)
	AttemptMove(from, to base.Cell) (Result, error)
	Snapshot() (base.Mailbox, error)
	Turn() base.Color
}
