// Package highlight builds the destination markers shown for a selected piece.
package highlight

import (
	"errors"
	"fmt"

	"clickchess/src/base"
)

var ErrMalformedDestination = errors.New("malformed destination")

// Querier is the part of the move engine the generator needs.
type Querier interface {
	Occupant(c base.Cell) (base.Piece, error)
	LegalDestinations(c base.Cell) ([]base.Cell, error)
}

type Marker struct {
	Cell    base.Cell
	Capture bool // opponent piece on the cell, drawn as a ring
}

// Set is what the renderer overlays on the board. Inactive while idle.
type Set struct {
	Anchor  base.Cell
	Active  bool
	Markers []Marker
}

func Empty() Set {
	return Set{}
}

// Generate asks the engine for the destinations of the piece on anchor and
// marks those holding an opponent piece as captures.
func Generate(q Querier, anchor base.Cell) (Set, error) {
	owner, err := q.Occupant(anchor)
	if err != nil {
		return Set{}, fmt.Errorf("highlight %v: %w", anchor, err)
	}
	dests, err := q.LegalDestinations(anchor)
	if err != nil {
		return Set{}, fmt.Errorf("highlight %v: %w", anchor, err)
	}

	set := Set{Anchor: anchor, Active: true, Markers: make([]Marker, 0, len(dests))}
	seen := make(map[base.Cell]bool, len(dests))
	for _, d := range dests {
		if !d.Valid() {
			return Set{}, fmt.Errorf("highlight %v: destination %v: %w", anchor, d, ErrMalformedDestination)
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		occ, err := q.Occupant(d)
		if err != nil {
			return Set{}, fmt.Errorf("highlight %v: %w", anchor, err)
		}
		set.Markers = append(set.Markers, Marker{
			Cell:    d,
			Capture: !occ.Empty() && occ.Owner != owner.Owner,
		})
	}
	return set, nil
}

// Has reports whether c carries a marker.
func (s Set) Has(c base.Cell) (Marker, bool) {
	for _, m := range s.Markers {
		if m.Cell == c {
			return m, true
		}
	}
	return Marker{}, false
}
