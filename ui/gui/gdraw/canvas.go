// Package gdraw renders the board into an in-memory RGBA image. Front ends
// present the image however they like.
package gdraw

import (
	"image"
	"strconv"

	"clickchess/src/base"
	"clickchess/src/logic/coords"
	"clickchess/src/logic/highlight"
	"clickchess/src/logx"
	"clickchess/ui/gui/gbase"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// labels need some room
const minLabelSquare = 24

// Canvas is the rendering context of one session.
type Canvas struct {
	theme      gbase.Palette
	showCoords bool
	logger     logx.Logger

	size   int
	dc     *gg.Context
	pieces *pieceCache

	frames int
	dirty  bool
	err    error
}

func NewCanvas(size int, theme gbase.Palette, showCoords bool, logger logx.Logger) *Canvas {
	if logger == nil {
		logger = logx.NewNop()
	}
	c := &Canvas{theme: theme, showCoords: showCoords, logger: logger, pieces: newPieceCache()}
	c.Resize(size)
	return c
}

// Resize starts a new blank image when the side length changes.
func (c *Canvas) Resize(size int) {
	if size < 1 {
		size = 1
	}
	if c.dc != nil && size == c.size {
		return
	}
	c.size = size
	c.dc = gg.NewContext(size, size)
	c.dirty = true
}

func (c *Canvas) Size() int { return c.size }

// Image is the current frame. Valid until the next Resize.
func (c *Canvas) Image() *image.RGBA {
	return c.dc.Image().(*image.RGBA)
}

// Frames counts flushed frames.
func (c *Canvas) Frames() int { return c.frames }

// TakeDirty reports whether a frame was flushed since the last call.
func (c *Canvas) TakeDirty() bool {
	d := c.dirty
	c.dirty = false
	return d
}

// Err returns the last sprite error, if any.
func (c *Canvas) Err() error { return c.err }

func (c *Canvas) Flush() {
	c.frames++
	c.dirty = true
}

func (c *Canvas) DrawBoard(o base.Orientation) {
	dc := c.dc
	sq := coords.SquareSize(c.size)

	dc.SetColor(c.theme.Light)
	dc.Clear()
	if sq < 1 {
		return
	}

	// parity is the same in both orientations
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if (row+col)%2 == 0 {
				dc.SetColor(c.theme.Light)
			} else {
				dc.SetColor(c.theme.Dark)
			}
			dc.DrawRectangle(float64(col*sq), float64(row*sq), float64(sq), float64(sq))
			dc.Fill()
		}
	}

	if c.showCoords && sq >= minLabelSquare {
		c.drawLabels(o, sq)
	}
}

func (c *Canvas) drawLabels(o base.Orientation, sq int) {
	dc := c.dc
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(c.theme.Label)
	for i := 0; i < 8; i++ {
		// files along the bottom edge
		file := base.Cell{Row: 7, Col: i}
		if o == base.Flipped {
			file.Col = 7 - i
		}
		x := float64(i*sq + sq - 9)
		dc.DrawString(file.String()[:1], x, float64(8*sq-3))

		// ranks along the left edge
		rank := base.Cell{Row: i, Col: 0}
		if o == base.Flipped {
			rank.Row = 7 - i
		}
		dc.DrawString(strconv.Itoa(8-rank.Row), 2, float64(i*sq+13))
	}
}

func (c *Canvas) DrawPieces(mb base.Mailbox, o base.Orientation) {
	sq := coords.SquareSize(c.size)
	if sq < 1 {
		return
	}
	for i := 0; i < 64; i++ {
		cell := base.CellFromIndex(i)
		p := mb.At(cell)
		if p.Empty() {
			continue
		}
		img, err := c.pieces.get(p, sq)
		if err != nil {
			c.err = err
			c.logger.Errorf("draw %v on %v: %v", p, cell, err)
			continue
		}
		x, y := coords.CellToPixel(cell, c.size, o)
		c.dc.DrawImage(img, x, y)
	}
}

// DrawHighlights outlines the anchor, rings captures and dots quiet moves.
func (c *Canvas) DrawHighlights(set highlight.Set, o base.Orientation) {
	sq := coords.SquareSize(c.size)
	if !set.Active || sq < 1 {
		return
	}
	dc := c.dc
	s := float64(sq)

	ax, ay := coords.CellToPixel(set.Anchor, c.size, o)
	dc.SetColor(c.theme.Accent)
	dc.SetLineWidth(2)
	dc.DrawRectangle(float64(ax)+2, float64(ay)+2, s-4, s-4)
	dc.Stroke()

	for _, m := range set.Markers {
		x, y := coords.CellToPixel(m.Cell, c.size, o)
		cx, cy := float64(x)+s/2, float64(y)+s/2
		if m.Capture {
			w := float64(sq / 10)
			if w < 1 {
				w = 1
			}
			dc.SetColor(c.theme.Capture)
			dc.SetLineWidth(w)
			dc.DrawCircle(cx, cy, s/2-w/2)
			dc.Stroke()
		} else {
			r := float64(sq / 10)
			if r < 1 {
				r = 1
			}
			dc.SetColor(c.theme.Quiet)
			dc.DrawCircle(cx, cy, r)
			dc.Fill()
		}
	}
}
