package cli

import (
	"bufio"
	"fmt"
	"io"

	"clickchess/src/base"
	"clickchess/src/logic/highlight"
)

// ANSI-code
const (
	reset    = "\033[0m"
	lightBg  = "\033[47m"
	darkBg   = "\033[100m"
	anchorBg = "\033[46m"
	attackBg = "\033[41m"
	whiteF   = "\033[97m"
	blackF   = "\033[30m"
	dimF     = "\033[90m"
)

// Board renders frames as text. The frame is written on Flush.
type Board struct {
	out   io.Writer
	plain bool // no escape codes, letters instead of glyphs

	orientation base.Orientation
	mb          base.Mailbox
	set         highlight.Set
}

func NewBoard(out io.Writer, plain bool) *Board {
	return &Board{out: out, plain: plain}
}

func (b *Board) DrawBoard(o base.Orientation) {
	b.orientation = o
	b.mb = base.Mailbox{}
	b.set = highlight.Empty()
}

func (b *Board) DrawPieces(mb base.Mailbox, o base.Orientation) {
	b.mb = mb
}

func (b *Board) DrawHighlights(set highlight.Set, o base.Orientation) {
	b.set = set
}

// Piece -> unicode glyph
func pieceGlyph(p base.Piece) string {
	white := p.Owner == base.White
	switch p.Kind {
	case base.King:
		if white {
			return "♔"
		}
		return "♚"
	case base.Queen:
		if white {
			return "♕"
		}
		return "♛"
	case base.Rook:
		if white {
			return "♖"
		}
		return "♜"
	case base.Bishop:
		if white {
			return "♗"
		}
		return "♝"
	case base.Knight:
		if white {
			return "♘"
		}
		return "♞"
	case base.Pawn:
		if white {
			return "♙"
		}
		return "♟"
	default:
		return " "
	}
}

func (b *Board) files() string {
	if b.orientation == base.Flipped {
		return "   h  g  f  e  d  c  b  a"
	}
	return "   a  b  c  d  e  f  g  h"
}

// Flush prints the board, rank 8 on top unless flipped.
func (b *Board) Flush() {
	w := bufio.NewWriter(b.out)
	defer w.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, b.files())
	for sr := 0; sr < 8; sr++ {
		row := sr
		if b.orientation == base.Flipped {
			row = 7 - sr
		}
		fmt.Fprintf(w, "%d ", 8-row)
		for sc := 0; sc < 8; sc++ {
			col := sc
			if b.orientation == base.Flipped {
				col = 7 - sc
			}
			c := base.Cell{Row: row, Col: col}
			if b.plain {
				fmt.Fprint(w, b.plainSquare(c))
			} else {
				fmt.Fprint(w, b.ansiSquare(c))
			}
		}
		fmt.Fprintf(w, " %d\n", 8-row)
	}
	fmt.Fprintln(w, b.files())
}

func (b *Board) plainSquare(c base.Cell) string {
	p := b.mb.At(c)
	r := string(base.ConvertRuneFromPiece(p))
	if b.set.Active && c == b.set.Anchor {
		return "[" + r + "]"
	}
	if m, ok := b.set.Has(c); ok {
		if m.Capture {
			return "(" + r + ")"
		}
		return " * "
	}
	return " " + r + " "
}

func (b *Board) ansiSquare(c base.Cell) string {
	p := b.mb.At(c)
	g := pieceGlyph(p)

	var bg, fg string
	if (c.Row+c.Col)%2 == 0 {
		bg = lightBg
	} else {
		bg = darkBg
	}
	switch {
	case p.Empty():
		fg = dimF
	case p.Owner == base.White && bg == darkBg:
		fg = whiteF
	default:
		fg = blackF
	}

	if b.set.Active && c == b.set.Anchor {
		bg = anchorBg
	} else if m, ok := b.set.Has(c); ok {
		if m.Capture {
			bg = attackBg
		} else {
			g = "·"
		}
	}
	return fmt.Sprintf("%s%s %s %s", bg, fg, g, reset)
}
