package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"clickchess/src"
	"clickchess/src/base"
	"clickchess/src/logic/coords"

	"golang.org/x/term"
)

// engines that can print their position
type fenner interface {
	FEN() string
}

type CLIProcessing struct {
	session *src.Session
	in      io.Reader
	out     io.Writer
	prompt  bool
}

func NewCLI(s *src.Session, in io.Reader, out io.Writer) *CLIProcessing {
	c := &CLIProcessing{session: s, in: in, out: out}
	if f, ok := in.(*os.File); ok {
		c.prompt = term.IsTerminal(int(f.Fd()))
	}
	return c
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

const help = `Click with "x y" (pixels) or a square name like "e2".
Commands: moves, pgn, fen, status, flip, help, q`

// line processing
// - "x y" clicks a pixel, "e2" clicks the middle of a square
// - moves/pgn/fen/status print the game
// - flip rotates the board
// - q to exit
// An engine fault ends the loop with the error.
func (c *CLIProcessing) RunLineMode() error {
	scanner := bufio.NewScanner(c.in)
	if err := c.session.Redraw(); err != nil {
		return err
	}
	c.printStatus()
	fmt.Fprintln(c.out, help)

	for {
		if c.prompt {
			fmt.Fprint(c.out, "> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "q", "quit", "exit":
			fmt.Fprintln(c.out, "Quitting")
			return nil
		case "help", "?":
			fmt.Fprintln(c.out, help)
			continue
		case "moves":
			fmt.Fprintln(c.out, strings.Join(c.session.History().Notations(), " "))
			continue
		case "pgn":
			fmt.Fprintln(c.out, c.session.History().MovesAsPGN())
			continue
		case "fen":
			if f, ok := c.session.Engine().(fenner); ok {
				fmt.Fprintln(c.out, f.FEN())
			} else {
				fmt.Fprintln(c.out, "FEN is not available")
			}
			continue
		case "status":
			c.printStatus()
			continue
		case "flip":
			if err := c.session.ToggleFlip(); err != nil {
				return err
			}
			continue
		}

		x, y, err := c.parseClick(line)
		if err != nil {
			fmt.Fprintf(c.out, "%v\n", err)
			continue
		}
		before := c.session.History().Len()
		if err := c.session.HandleClick(x, y); err != nil {
			return err
		}
		c.printState(before)
	}
}

// parseClick accepts "x y" in pixels or a square name.
func (c *CLIProcessing) parseClick(line string) (int, int, error) {
	if fields := strings.Fields(line); len(fields) == 2 {
		x, errX := strconv.Atoi(fields[0])
		y, errY := strconv.Atoi(fields[1])
		if errX != nil || errY != nil {
			return 0, 0, fmt.Errorf("bad click %q, want two numbers", line)
		}
		return x, y, nil
	}
	cell, err := base.ParseCell(strings.ToLower(line))
	if err != nil {
		return 0, 0, fmt.Errorf("unknown command %q, type help", line)
	}
	x, y := coords.CellCenter(cell, c.session.Viewport(), c.session.Orientation())
	return x, y, nil
}

func (c *CLIProcessing) printState(before int) {
	h := c.session.History()
	if h.Len() > before {
		last, _ := h.Last()
		fmt.Fprintf(c.out, "Move: %s\n", last.Notation)
		c.printStatus()
		return
	}
	fmt.Fprintf(c.out, "State: %v\n", c.session.State())
}

func (c *CLIProcessing) printStatus() {
	fmt.Fprintf(c.out, "Turn: %v\n", c.session.Turn())
	fmt.Fprintf(c.out, "Moves: %s\n", c.session.History().MovesAsPGN())
	fmt.Fprintf(c.out, "Status: %s\n", statusString(c.session.Status()))
}

func statusString(s base.GameStatus) string {
	switch s {
	case base.Check:
		return "Check"
	case base.Checkmate:
		return "Checkmate"
	case base.Stalemate:
		return "Stalemate"
	case base.Draw:
		return "Draw"
	case base.Pass:
		return "Normal"
	case base.InvalidGame:
		return "Invalid"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}
