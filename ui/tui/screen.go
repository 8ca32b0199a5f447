package tui

import (
	"image/color"

	"clickchess/src/base"
	"clickchess/src/logic/highlight"
	"clickchess/ui/gui/gbase"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	cellWidth  = 4
	cellHeight = 2
	padTop     = 1
	padLeft    = 3
	boardRows  = 8 * cellHeight

	// Viewport is the virtual pixel size of the board handed to the session.
	// One square is 8x8 virtual pixels.
	Viewport = 64
)

const quietRune = '·'

func tcolor(c color.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

// ScreenRenderer draws frames on a tcell screen. Status lines come from
// the status callback and go under the board.
type ScreenRenderer struct {
	screen tcell.Screen
	theme  gbase.Palette
	status func() []string

	orientation base.Orientation
}

func NewScreenRenderer(screen tcell.Screen, theme gbase.Palette) *ScreenRenderer {
	return &ScreenRenderer{screen: screen, theme: theme}
}

func (r *ScreenRenderer) SetStatus(fn func() []string) {
	r.status = fn
}

// screen cell of the top-left corner of c
func (r *ScreenRenderer) origin(c base.Cell) (int, int) {
	row, col := c.Row, c.Col
	if r.orientation == base.Flipped {
		row, col = 7-row, 7-col
	}
	return padLeft + col*cellWidth, padTop + row*cellHeight
}

func (r *ScreenRenderer) squareStyle(c base.Cell) tcell.Style {
	bg := r.theme.Light
	if (c.Row+c.Col)%2 != 0 {
		bg = r.theme.Dark
	}
	return tcell.StyleDefault.Background(tcolor(bg))
}

func (r *ScreenRenderer) fill(c base.Cell, style tcell.Style) {
	x, y := r.origin(c)
	for dy := 0; dy < cellHeight; dy++ {
		for dx := 0; dx < cellWidth; dx++ {
			r.screen.SetContent(x+dx, y+dy, ' ', nil, style)
		}
	}
}

func (r *ScreenRenderer) print(x, y int, str string, style tcell.Style) {
	for _, c := range str {
		var comb []rune
		w := runewidth.RuneWidth(c)
		if w == 0 {
			comb = []rune{c}
			c = ' '
			w = 1
		}
		r.screen.SetContent(x, y, c, comb, style)
		x += w
	}
}

func (r *ScreenRenderer) DrawBoard(o base.Orientation) {
	r.orientation = o
	r.screen.Clear()
	for i := 0; i < 64; i++ {
		c := base.CellFromIndex(i)
		r.fill(c, r.squareStyle(c))
	}

	label := tcell.StyleDefault.Foreground(tcolor(r.theme.Label))
	for i := 0; i < 8; i++ {
		c := base.Cell{Row: i, Col: i}
		x, y := r.origin(c)
		name := c.String()
		r.print(1, y, name[1:], label)
		r.print(x+1, padTop+boardRows, name[:1], label)
	}
}

func glyph(p base.Piece) rune {
	white := p.Owner == base.White
	switch p.Kind {
	case base.King:
		if white {
			return '♔'
		}
		return '♚'
	case base.Queen:
		if white {
			return '♕'
		}
		return '♛'
	case base.Rook:
		if white {
			return '♖'
		}
		return '♜'
	case base.Bishop:
		if white {
			return '♗'
		}
		return '♝'
	case base.Knight:
		if white {
			return '♘'
		}
		return '♞'
	case base.Pawn:
		if white {
			return '♙'
		}
		return '♟'
	default:
		return ' '
	}
}

func (r *ScreenRenderer) DrawPieces(mb base.Mailbox, o base.Orientation) {
	for i := 0; i < 64; i++ {
		c := base.CellFromIndex(i)
		p := mb.At(c)
		if p.Empty() {
			continue
		}
		x, y := r.origin(c)
		fg := tcell.ColorBlack
		if p.Owner == base.White {
			fg = tcell.ColorWhite
		}
		r.print(x+1, y, string(glyph(p)), r.squareStyle(c).Foreground(fg).Bold(true))
	}
}

func (r *ScreenRenderer) DrawHighlights(set highlight.Set, o base.Orientation) {
	if !set.Active {
		return
	}
	r.tint(set.Anchor, r.theme.Accent)
	for _, m := range set.Markers {
		if m.Capture {
			r.tint(m.Cell, r.theme.Capture)
			continue
		}
		x, y := r.origin(m.Cell)
		r.screen.SetContent(x+1, y+1, quietRune, nil, r.squareStyle(m.Cell).Foreground(tcolor(r.theme.Quiet)))
	}
}

// tint changes the background of c and keeps what is drawn on it
func (r *ScreenRenderer) tint(c base.Cell, bg color.Color) {
	x, y := r.origin(c)
	for dy := 0; dy < cellHeight; dy++ {
		for dx := 0; dx < cellWidth; dx++ {
			mainc, comb, style, _ := r.screen.GetContent(x+dx, y+dy)
			r.screen.SetContent(x+dx, y+dy, mainc, comb, style.Background(tcolor(bg)))
		}
	}
}

func (r *ScreenRenderer) Flush() {
	if r.status != nil {
		for i, line := range r.status() {
			r.print(padLeft, padTop+boardRows+2+i, line, tcell.StyleDefault)
		}
	}
	r.screen.Show()
}
