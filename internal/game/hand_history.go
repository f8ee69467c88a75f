package game

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lox/holdem-engine/internal/fileutil"
	"github.com/lox/holdem-engine/poker"
)

// ActionLog holds the committed actions of a hand per street. The Predeal
// slot holds antes and blinds.
type ActionLog [bettingStreets][]Action

// Len returns the number of actions across every street.
func (l *ActionLog) Len() int {
	n := 0
	for _, actions := range l {
		n += len(actions)
	}
	return n
}

// SeatRecord is a seat as it was when the hand started.
type SeatRecord struct {
	Name     string
	Position int
	Stack    int
}

// HandHistory is the full record of one hand.
type HandHistory struct {
	ID        string
	StartedAt time.Time
	Structure Structure
	Blinds    Blinds
	Ante      int
	Rake      int
	Button    int // index into Seats

	Seats     []SeatRecord
	HoleCards []poker.Hand
	Flop      poker.Hand
	Turn      poker.Hand
	River     poker.Hand
	Actions   ActionLog

	Street    Street
	Folded    []bool
	AllIn     []bool
	Showdown  bool
	Strengths []uint32
	Pots      []Pot
	Winners   []Winner
	Stacks    []int // stacks after the last committed action or payout
}

func newHandHistory(id string, seats []Seat, button int, cfg HandConfig, started time.Time) *HandHistory {
	h := &HandHistory{
		ID:        id,
		StartedAt: started,
		Structure: cfg.Structure,
		Blinds:    cfg.Blinds,
		Ante:      cfg.Ante,
		Rake:      cfg.Rake,
		Button:    button,
		Seats:     make([]SeatRecord, len(seats)),
		HoleCards: make([]poker.Hand, len(seats)),
		Folded:    make([]bool, len(seats)),
		AllIn:     make([]bool, len(seats)),
		Stacks:    make([]int, len(seats)),
	}
	for i, s := range seats {
		h.Seats[i] = SeatRecord{Name: s.Name, Position: s.Position, Stack: s.Stack}
		h.Stacks[i] = s.Stack
	}
	return h
}

// Board returns every community card dealt so far.
func (h *HandHistory) Board() poker.Hand {
	return h.Flop | h.Turn | h.River
}

// SeatIndex returns the index of the named seat.
func (h *HandHistory) SeatIndex(name string) (int, bool) {
	for i, s := range h.Seats {
		if s.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Complete reports whether the hand has been paid out.
func (h *HandHistory) Complete() bool {
	return h.Street == Over
}

// Net returns the chips won or lost by each seat.
func (h *HandHistory) Net() []int {
	net := make([]int, len(h.Seats))
	for i, s := range h.Seats {
		net[i] = h.Stacks[i] - s.Stack
	}
	return net
}

// String renders the hand in a plain text format close to what online
// rooms produce.
func (h *HandHistory) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hand #%s: Hold'em %s (%s) - %s\n", h.ID, h.Structure, blindsLabel(h.Blinds), h.StartedAt.UTC().Format(time.RFC3339))
	if len(h.Seats) > 0 {
		fmt.Fprintf(&b, "Seat #%d is the button\n", h.Seats[h.Button].Position)
	}
	for i, s := range h.Seats {
		fmt.Fprintf(&b, "Seat %d: %s (%d in chips)\n", s.Position, s.Name, s.Stack)
		if h.HoleCards[i] != 0 {
			fmt.Fprintf(&b, "Dealt to %s [%s]\n", s.Name, h.HoleCards[i])
		}
	}
	for _, a := range h.Actions[Predeal] {
		fmt.Fprintln(&b, a)
	}

	for st := Preflop; st <= River; st++ {
		switch st {
		case Preflop:
			b.WriteString("*** HOLE CARDS ***\n")
		case Flop:
			if h.Flop == 0 {
				continue
			}
			fmt.Fprintf(&b, "*** FLOP *** [%s]\n", h.Flop)
		case Turn:
			if h.Turn == 0 {
				continue
			}
			fmt.Fprintf(&b, "*** TURN *** [%s] [%s]\n", h.Flop, h.Turn)
		case River:
			if h.River == 0 {
				continue
			}
			fmt.Fprintf(&b, "*** RIVER *** [%s] [%s]\n", h.Flop|h.Turn, h.River)
		}
		for _, a := range h.Actions[st] {
			fmt.Fprintln(&b, a)
		}
	}

	if len(h.Winners) > 0 {
		b.WriteString("*** SUMMARY ***\n")
		for _, p := range h.Pots {
			fmt.Fprintf(&b, "%s: %d\n", p.Name, p.Size)
		}
		if h.Rake > 0 {
			fmt.Fprintf(&b, "Rake: %d\n", h.Rake)
		}
		for _, w := range h.Winners {
			fmt.Fprintf(&b, "%s collected %d from %s\n", w.Player, w.Amount, w.Pot)
		}
	}
	return b.String()
}

func blindsLabel(b Blinds) string {
	switch {
	case b.Small > 0:
		return fmt.Sprintf("%d/%d", b.Small, b.Big)
	case b.Big > 0:
		return fmt.Sprintf("%d", b.Big)
	}
	return "no blinds"
}

// HistoryWriter persists rendered hand histories.
type HistoryWriter interface {
	WriteHistory(h *HandHistory) error
}

// FileHistoryWriter writes one text file per hand into a directory.
type FileHistoryWriter struct {
	dir string
}

func NewFileHistoryWriter(dir string) *FileHistoryWriter {
	return &FileHistoryWriter{dir: dir}
}

func (w *FileHistoryWriter) WriteHistory(h *HandHistory) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create hand history directory: %w", err)
	}
	filename := filepath.Join(w.dir, fmt.Sprintf("hand_%s.txt", h.ID))
	if err := fileutil.WriteFileAtomic(filename, []byte(h.String()), 0o644); err != nil {
		return fmt.Errorf("write hand history: %w", err)
	}
	return nil
}
