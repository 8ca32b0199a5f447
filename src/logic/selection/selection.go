// Package selection is the two-click state machine. It decides, it does not act.
package selection

import "clickchess/src/base"

// State is Idle or Selected(anchor).
type State struct {
	Selected bool
	Anchor   base.Cell
}

var Idle = State{}

func Select(anchor base.Cell) State {
	return State{Selected: true, Anchor: anchor}
}

func (s State) String() string {
	if !s.Selected {
		return "idle"
	}
	return "selected(" + s.Anchor.String() + ")"
}

type Action uint8

const (
	Ignore Action = iota
	SelectPiece
	Deselect
	Reselect
	Attempt
)

func (a Action) String() string {
	switch a {
	case SelectPiece:
		return "select"
	case Deselect:
		return "deselect"
	case Reselect:
		return "reselect"
	case Attempt:
		return "attempt"
	default:
		return "ignore"
	}
}

type Transition struct {
	Action Action
	Next   State
}

// Next computes the transition for a click on cell. target is the occupant of
// cell, anchorPiece the occupant of the current anchor (ignored while idle),
// turn the side to move. The turn only gates Idle -> Selected.
func Next(state State, cell base.Cell, target, anchorPiece base.Piece, turn base.Color) Transition {
	if !state.Selected {
		if target.Empty() || target.Owner != turn {
			return Transition{Action: Ignore, Next: Idle}
		}
		return Transition{Action: SelectPiece, Next: Select(cell)}
	}

	switch {
	case cell == state.Anchor:
		return Transition{Action: Deselect, Next: Idle}
	case !target.Empty() && target.Owner == anchorPiece.Owner:
		return Transition{Action: Reselect, Next: Select(cell)}
	default:
		return Transition{Action: Attempt, Next: Idle}
	}
}
