// Package coords maps viewport pixels to board cells and back.
package coords

import "clickchess/src/base"

// SquareSize returns the pixel size of one square in a square viewport.
// Remainder pixels (viewport % 8) belong to no square.
func SquareSize(viewport int) int {
	return viewport / 8
}

// InBoard reports whether (x, y) lies inside the viewport and the viewport
// is large enough to hold a board.
func InBoard(x, y, viewport int) bool {
	if SquareSize(viewport) < 1 {
		return false
	}
	return x >= 0 && y >= 0 && x < viewport && y < viewport
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 7 {
		return 7
	}
	return v
}

func orient(v int, o base.Orientation) int {
	if o == base.Flipped {
		return 7 - v
	}
	return v
}

// PixelToCell converts a pixel to a board cell. The flip is applied after
// the division and after clamping, so the result is always a valid cell.
func PixelToCell(x, y, viewport int, o base.Orientation) base.Cell {
	sq := SquareSize(viewport)
	if sq < 1 {
		return base.Cell{}
	}
	col := clamp(x / sq)
	row := clamp(y / sq)
	return base.Cell{Row: orient(row, o), Col: orient(col, o)}
}

// CellToPixel returns the top-left pixel of the square showing c.
func CellToPixel(c base.Cell, viewport int, o base.Orientation) (int, int) {
	sq := SquareSize(viewport)
	return orient(c.Col, o) * sq, orient(c.Row, o) * sq
}

// CellCenter returns the pixel in the middle of the square showing c.
func CellCenter(c base.Cell, viewport int, o base.Orientation) (int, int) {
	x, y := CellToPixel(c, viewport, o)
	half := SquareSize(viewport) / 2
	return x + half, y + half
}
