package history

import (
	"fmt"
	"strings"

	"clickchess/src/base"
)

// Record of one accepted move. Notation comes from the move engine.
type Record struct {
	From     base.Cell
	To       base.Cell
	Notation string
}

// append only move log
type History struct {
	first   base.Color // side that made the first recorded move
	records []Record
}

func NewHistory(first base.Color) *History {
	if first != base.Black {
		first = base.White
	}
	return &History{first: first, records: make([]Record, 0)}
}

func (h *History) Len() int {
	if h == nil {
		return 0
	}
	return len(h.records)
}

func (h *History) Push(r Record) {
	h.records = append(h.records, r)
}

func (h *History) Records() []Record {
	out := make([]Record, len(h.records))
	copy(out, h.records)
	return out
}

func (h *History) Last() (Record, bool) {
	if h.Len() == 0 {
		return Record{}, false
	}
	return h.records[len(h.records)-1], true
}

func (h *History) Notations() []string {
	out := make([]string, h.Len())
	for i := range out {
		out[i] = h.records[i].Notation
	}
	return out
}

// returned string with all moves
// example: "1. e4 e5 2. Nf3 Nc6 3. Bb5"
// a log started by black begins with "1... e5"
func (h *History) MovesAsPGN() string {
	if h.Len() == 0 {
		return ""
	}

	var b strings.Builder
	moveNum := 1
	i := 0

	if h.first == base.Black {
		b.WriteString(fmt.Sprintf("%d... %s", moveNum, strings.TrimSpace(h.records[0].Notation)))
		moveNum++
		i = 1
		if i < h.Len() {
			b.WriteString(" ")
		}
	}

	for ; i < h.Len(); i += 2 {
		b.WriteString(fmt.Sprintf("%d. %s", moveNum, strings.TrimSpace(h.records[i].Notation)))
		if i+1 < h.Len() {
			b.WriteString(" ")
			b.WriteString(strings.TrimSpace(h.records[i+1].Notation))
		}
		if i+2 < h.Len() {
			b.WriteString(" ")
		}
		moveNum++
	}

	return b.String()
}
