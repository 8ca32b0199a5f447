package base

import "fmt"

// Forsyth–Edwards Notation
const FEN_START_GAME string = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

type Color uint8

const (
	NoColor Color = iota
	White
	Black
)

func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

type PieceKind uint8

const (
	NoKind PieceKind = iota
	King
	Queen
	Rook
	Knight
	Bishop
	Pawn
)

func (k PieceKind) String() string {
	switch k {
	case King:
		return "king"
	case Queen:
		return "queen"
	case Rook:
		return "rook"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Pawn:
		return "pawn"
	default:
		return "none"
	}
}

// Piece is what the move engine reports for a square. The zero value is an empty square.
type Piece struct {
	Kind  PieceKind
	Owner Color
}

var NoPiece = Piece{}

func (p Piece) Empty() bool {
	return p.Kind == NoKind
}

func (p Piece) String() string {
	if p.Empty() {
		return "empty"
	}
	return p.Owner.String() + " " + p.Kind.String()
}

type GameStatus uint8

const (
	Check       GameStatus = 10
	Checkmate   GameStatus = 11
	Stalemate   GameStatus = 12
	Draw        GameStatus = 13
	InvalidGame GameStatus = 88
	Pass        GameStatus = 99
)

func (gs GameStatus) String() string {
	switch gs {
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Draw:
		return "draw"
	case Pass:
		return "pass"
	default:
		return "invalid"
	}
}

func (gs GameStatus) Finished() bool {
	return gs == Checkmate || gs == Stalemate || gs == Draw
}

// Orientation of the board on screen. Flipped is the 180° rotated view.
type Orientation bool

const (
	Normal  Orientation = false
	Flipped Orientation = true
)

func (o Orientation) Toggle() Orientation {
	return !o
}

func (o Orientation) String() string {
	if o == Flipped {
		return "flipped"
	}
	return "normal"
}

// Cell is a board square. Row 0 is rank 8, Col 0 is file a.
type Cell struct {
	Row int
	Col int
}

func (c Cell) Valid() bool {
	return c.Row >= 0 && c.Row <= 7 && c.Col >= 0 && c.Col <= 7
}

func (c Cell) Index() int {
	return c.Row*8 + c.Col
}

func (c Cell) String() string {
	if !c.Valid() {
		return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
	}
	return string([]rune{rune('a' + c.Col), rune('8' - c.Row)})
}

func CellFromIndex(i int) Cell {
	return Cell{Row: i / 8, Col: i % 8}
}

func ParseCell(pos string) (Cell, error) {
	// 'a' ~ 'h' to column 0-7
	// '8' ~ '1' to row 0-7
	if len(pos) != 2 || pos[0] < 'a' || pos[0] > 'h' || pos[1] < '1' || pos[1] > '8' {
		return Cell{}, fmt.Errorf("invalid position %q", pos)
	}
	return Cell{Row: int('8' - pos[1]), Col: int(pos[0] - 'a')}, nil
}

type Mailbox [64]Piece

func (mb *Mailbox) At(c Cell) Piece {
	if mb == nil || !c.Valid() {
		return NoPiece
	}
	return mb[c.Index()]
}

func (mb *Mailbox) Set(c Cell, p Piece) {
	if mb == nil || !c.Valid() {
		return
	}
	mb[c.Index()] = p
}

func ConvertPieceFromRune(p rune) Piece {
	switch p {
	case 'P':
		return Piece{Pawn, White}
	case 'R':
		return Piece{Rook, White}
	case 'N':
		return Piece{Knight, White}
	case 'B':
		return Piece{Bishop, White}
	case 'Q':
		return Piece{Queen, White}
	case 'K':
		return Piece{King, White}
	case 'p':
		return Piece{Pawn, Black}
	case 'r':
		return Piece{Rook, Black}
	case 'n':
		return Piece{Knight, Black}
	case 'b':
		return Piece{Bishop, Black}
	case 'q':
		return Piece{Queen, Black}
	case 'k':
		return Piece{King, Black}
	default:
		return NoPiece
	}
}

func ConvertRuneFromPiece(p Piece) rune {
	var r rune
	switch p.Kind {
	case Pawn:
		r = 'P'
	case Knight:
		r = 'N'
	case Bishop:
		r = 'B'
	case Rook:
		r = 'R'
	case Queen:
		r = 'Q'
	case King:
		r = 'K'
	default:
		return '.'
	}
	if p.Owner == Black {
		r += 'a' - 'A'
	}
	return r
}

// MailboxFromPlacement reads the piece placement field of a FEN string.
func MailboxFromPlacement(placement string) (Mailbox, error) {
	var mb Mailbox
	row, col := 0, 0
	for _, r := range placement {
		switch {
		case r == '/':
			if col != 8 {
				return Mailbox{}, fmt.Errorf("row %d has %d squares", row, col)
			}
			row++
			col = 0
		case r >= '1' && r <= '8':
			col += int(r - '0')
		default:
			p := ConvertPieceFromRune(r)
			if p.Empty() {
				return Mailbox{}, fmt.Errorf("unknown piece %q", r)
			}
			mb.Set(Cell{Row: row, Col: col}, p)
			col++
		}
		if col > 8 || row > 7 {
			return Mailbox{}, fmt.Errorf("placement overflows the board")
		}
	}
	if row != 7 || col != 8 {
		return Mailbox{}, fmt.Errorf("placement is incomplete")
	}
	return mb, nil
}
