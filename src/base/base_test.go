package base

import "testing"

func TestParseCellRoundTrip(t *testing.T) {
	for i := 0; i < 64; i++ {
		c := CellFromIndex(i)
		got, err := ParseCell(c.String())
		if err != nil {
			t.Fatalf("ParseCell(%q): %v", c.String(), err)
		}
		if got != c {
			t.Fatalf("ParseCell(%q) = %v, want %v", c.String(), got, c)
		}
	}
}

func TestParseCellCorners(t *testing.T) {
	cases := map[string]Cell{
		"a8": {Row: 0, Col: 0},
		"h8": {Row: 0, Col: 7},
		"a1": {Row: 7, Col: 0},
		"h1": {Row: 7, Col: 7},
		"e2": {Row: 6, Col: 4},
	}
	for in, want := range cases {
		got, err := ParseCell(in)
		if err != nil {
			t.Fatalf("ParseCell(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseCell(%q) = %+v, want %+v", in, got, want)
		}
	}
	for _, bad := range []string{"", "e", "i1", "a9", "a0", "e22"} {
		if _, err := ParseCell(bad); err == nil {
			t.Errorf("ParseCell(%q) expected error", bad)
		}
	}
}

func TestCellValid(t *testing.T) {
	if !(Cell{Row: 7, Col: 7}).Valid() {
		t.Fatal("h1 should be valid")
	}
	for _, c := range []Cell{{-1, 0}, {0, -1}, {8, 0}, {0, 8}} {
		if c.Valid() {
			t.Errorf("%+v should be invalid", c)
		}
	}
}

func TestColorOther(t *testing.T) {
	if White.Other() != Black || Black.Other() != White {
		t.Fatal("Other must swap white and black")
	}
	if NoColor.Other() != NoColor {
		t.Fatal("NoColor has no opponent")
	}
}

func TestMailboxFromPlacement(t *testing.T) {
	mb, err := MailboxFromPlacement("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR")
	if err != nil {
		t.Fatalf("MailboxFromPlacement: %v", err)
	}
	if p := mb.At(Cell{Row: 7, Col: 4}); p != (Piece{King, White}) {
		t.Errorf("e1 = %v, want white king", p)
	}
	if p := mb.At(Cell{Row: 1, Col: 0}); p != (Piece{Pawn, Black}) {
		t.Errorf("a7 = %v, want black pawn", p)
	}
	if p := mb.At(Cell{Row: 4, Col: 4}); !p.Empty() {
		t.Errorf("e4 = %v, want empty", p)
	}
	for _, bad := range []string{"8/8", "9/8/8/8/8/8/8/8", "x7/8/8/8/8/8/8/8", "7/8/8/8/8/8/8/8"} {
		if _, err := MailboxFromPlacement(bad); err == nil {
			t.Errorf("MailboxFromPlacement(%q) expected error", bad)
		}
	}
}

func TestConvertRuneFromPiece(t *testing.T) {
	for _, r := range "PNBRQKpnbrqk" {
		if got := ConvertRuneFromPiece(ConvertPieceFromRune(r)); got != r {
			t.Errorf("round trip %q -> %q", r, got)
		}
	}
	if ConvertRuneFromPiece(NoPiece) != '.' {
		t.Error("empty square should print as '.'")
	}
}
