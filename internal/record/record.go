// Package record is the persisted form of a hand: a TOML document holding
// the table, the cards dealt so far and every committed action. A record
// can be replayed by game.Resumer at any point in the hand.
package record

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/poker"
)

// ErrInvalid is wrapped by every structural problem found while converting
// a record.
var ErrInvalid = errors.New("invalid hand record")

type Record struct {
	ID        string   `toml:"id"`
	Structure string   `toml:"structure"`
	Button    int      `toml:"button"`
	Blinds    []int    `toml:"blinds"`
	Ante      int      `toml:"ante,omitempty"`
	Rake      int      `toml:"rake,omitempty"`
	Seats     []Seat   `toml:"seats"`
	Postings  []Action `toml:"postings,omitempty"`
	Streets   []Street `toml:"streets,omitempty"`
	Winners   []Winner `toml:"winners,omitempty"`
}

type Seat struct {
	Name      string `toml:"name"`
	Position  int    `toml:"position"`
	Stack     int    `toml:"stack"`
	HoleCards string `toml:"hole_cards,omitempty"`
}

type Action struct {
	Player string `toml:"player" json:"player"`
	Type   string `toml:"type" json:"type"`
	Amount int    `toml:"amount,omitempty" json:"amount,omitempty"`
	AllIn  bool   `toml:"all_in,omitempty" json:"all_in,omitempty"`
}

// Street holds the board cards dealt on one street and its actions.
type Street struct {
	Name    string   `toml:"name"`
	Board   string   `toml:"board,omitempty"`
	Actions []Action `toml:"actions"`
}

type Winner struct {
	Player string `toml:"player" json:"player"`
	Pot    string `toml:"pot" json:"pot"`
	Amount int    `toml:"amount" json:"amount"`
}

// Decode reads a record. Unknown keys are rejected so typos do not
// silently drop data.
func Decode(r io.Reader) (*Record, error) {
	var rec Record
	md, err := toml.NewDecoder(r).Decode(&rec)
	if err != nil {
		return nil, fmt.Errorf("decode hand record: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}
	return &rec, nil
}

// Encode writes the record as TOML.
func Encode(w io.Writer, rec *Record) error {
	enc := toml.NewEncoder(w)
	enc.Indent = "  "
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encode hand record: %w", err)
	}
	return nil
}

func FromAction(a game.Action) Action {
	return Action{Player: a.Player, Type: a.Kind.String(), Amount: a.Amount, AllIn: a.AllIn}
}

// GameAction converts a recorded action. The all-in flag is carried for
// readers only; replay recomputes it.
func (a Action) GameAction() (game.Action, error) {
	kind, err := game.ParseActionKind(a.Type)
	if err != nil {
		return game.Action{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if kind == game.ActionNone {
		return game.Action{}, fmt.Errorf("%w: action by %q has no type", ErrInvalid, a.Player)
	}
	return game.Action{Player: a.Player, Kind: kind, Amount: a.Amount, AllIn: a.AllIn}, nil
}

// FromHistory records a hand, finished or not.
func FromHistory(h *game.HandHistory) *Record {
	rec := &Record{
		ID:        h.ID,
		Structure: h.Structure.String(),
		Blinds:    h.Blinds.Slice(),
		Ante:      h.Ante,
		Rake:      h.Rake,
		Seats:     make([]Seat, len(h.Seats)),
	}
	if len(h.Seats) > 0 {
		rec.Button = h.Seats[h.Button].Position
	}
	for i, s := range h.Seats {
		rec.Seats[i] = Seat{Name: s.Name, Position: s.Position, Stack: s.Stack}
		if h.HoleCards[i] != 0 {
			rec.Seats[i].HoleCards = h.HoleCards[i].String()
		}
	}
	for _, a := range h.Actions[game.Predeal] {
		rec.Postings = append(rec.Postings, FromAction(a))
	}
	boards := map[game.Street]poker.Hand{game.Flop: h.Flop, game.Turn: h.Turn, game.River: h.River}
	for st := game.Preflop; st <= game.River; st++ {
		dealt := st == game.Preflop || boards[st] != 0
		if !dealt && len(h.Actions[st]) == 0 {
			break
		}
		s := Street{Name: st.String(), Actions: []Action{}}
		if b := boards[st]; b != 0 {
			s.Board = b.String()
		}
		for _, a := range h.Actions[st] {
			s.Actions = append(s.Actions, FromAction(a))
		}
		rec.Streets = append(rec.Streets, s)
	}
	for _, w := range h.Winners {
		rec.Winners = append(rec.Winners, Winner(w))
	}
	return rec
}

// HandConfig builds the table description. Seats get no decision source.
func (r *Record) HandConfig() (game.HandConfig, error) {
	structure, err := game.ParseStructure(r.Structure)
	if err != nil {
		return game.HandConfig{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	blinds, err := game.BlindsFromSlice(r.Blinds)
	if err != nil {
		return game.HandConfig{}, err
	}
	cfg := game.HandConfig{
		ID:        r.ID,
		Button:    r.Button,
		Blinds:    blinds,
		Ante:      r.Ante,
		Structure: structure,
		Rake:      r.Rake,
		Seats:     make([]game.Seat, len(r.Seats)),
	}
	for i, s := range r.Seats {
		cfg.Seats[i] = game.Seat{Name: s.Name, Position: s.Position, Stack: s.Stack}
	}
	return cfg, nil
}

// ResumeInput converts the record into resumer input.
func (r *Record) ResumeInput() (game.ResumeInput, error) {
	cfg, err := r.HandConfig()
	if err != nil {
		return game.ResumeInput{}, err
	}
	in := game.ResumeInput{Config: cfg}
	for i, p := range r.Postings {
		a, err := p.GameAction()
		if err != nil {
			return in, fmt.Errorf("posting %d: %w", i, err)
		}
		if !a.Kind.IsPost() {
			return in, fmt.Errorf("%w: posting %d is a %s", ErrInvalid, i, a.Kind)
		}
		in.Actions[game.Predeal] = append(in.Actions[game.Predeal], a)
	}
	seen := make(map[game.Street]bool)
	for _, s := range r.Streets {
		st, err := r.street(s.Name)
		if err != nil {
			return in, err
		}
		if seen[st] {
			return in, fmt.Errorf("%w: street %s recorded twice", ErrInvalid, st)
		}
		seen[st] = true
		for i, ra := range s.Actions {
			a, err := ra.GameAction()
			if err != nil {
				return in, fmt.Errorf("%s action %d: %w", st, i, err)
			}
			in.Actions[st] = append(in.Actions[st], a)
		}
	}
	return in, nil
}

func (r *Record) street(name string) (game.Street, error) {
	st, err := game.ParseStreet(name)
	if err != nil {
		return st, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if st < game.Preflop || st > game.River {
		return st, fmt.Errorf("%w: %s is not a betting street", ErrInvalid, st)
	}
	return st, nil
}

// sortedSeats returns seat indices ordered by table position, the order
// the engine deals in.
func (r *Record) sortedSeats() []int {
	idx := make([]int, len(r.Seats))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return r.Seats[idx[a]].Position < r.Seats[idx[b]].Position })
	return idx
}

func (r *Record) board(st game.Street) (poker.Hand, error) {
	for _, s := range r.Streets {
		if strings.EqualFold(s.Name, st.String()) && s.Board != "" {
			h, err := poker.ParseHand(s.Board)
			if err != nil {
				return 0, fmt.Errorf("%w: %s board: %v", ErrInvalid, st, err)
			}
			return h, nil
		}
	}
	return 0, nil
}

// Deck returns a card source that deals the recorded cards and fills
// anything not yet dealt from rng.
func (r *Record) Deck(rng *rand.Rand) (*deck.Fixed, error) {
	order := r.sortedSeats()
	holes := make([]poker.Hand, len(order))
	for i, idx := range order {
		if r.Seats[idx].HoleCards == "" {
			continue
		}
		h, err := poker.ParseHand(r.Seats[idx].HoleCards)
		if err != nil {
			return nil, fmt.Errorf("%w: hole cards of %s: %v", ErrInvalid, r.Seats[idx].Name, err)
		}
		holes[i] = h
	}
	var boards [3]poker.Hand
	for i, st := range []game.Street{game.Flop, game.Turn, game.River} {
		b, err := r.board(st)
		if err != nil {
			return nil, err
		}
		boards[i] = b
	}
	src, err := deck.Complete(rng, holes, boards[0], boards[1], boards[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return src, nil
}

// Resume replays the record. Cards the record lacks are drawn from rng and
// written back, so a later replay deals the same hand.
func (r *Record) Resume(rng *rand.Rand, opts ...game.Option) (*game.ResumeResult, error) {
	in, err := r.ResumeInput()
	if err != nil {
		return nil, err
	}
	src, err := r.Deck(rng)
	if err != nil {
		return nil, err
	}
	opts = append(slices.Clone(opts), game.WithDeck(src))
	res, err := game.NewResumer(in, opts...).Resume()
	if err != nil {
		return nil, err
	}
	r.syncCards(res.History)
	if res.Complete {
		r.Winners = r.Winners[:0]
		for _, w := range res.History.Winners {
			r.Winners = append(r.Winners, Winner(w))
		}
	}
	return res, nil
}

// syncCards copies every card dealt in the replayed history into the
// record.
func (r *Record) syncCards(h *game.HandHistory) {
	for i, s := range h.Seats {
		if h.HoleCards[i] == 0 {
			continue
		}
		for j := range r.Seats {
			if r.Seats[j].Name == s.Name {
				r.Seats[j].HoleCards = h.HoleCards[i].String()
			}
		}
	}
	for st, b := range map[game.Street]poker.Hand{game.Flop: h.Flop, game.Turn: h.Turn, game.River: h.River} {
		if b != 0 {
			r.streetEntry(st).Board = b.String()
		}
	}
}

// streetEntry returns the entry for st, creating it and any missing
// earlier streets so the list stays in order.
func (r *Record) streetEntry(st game.Street) *Street {
	for s := game.Preflop; s <= st; s++ {
		found := false
		for i := range r.Streets {
			if strings.EqualFold(r.Streets[i].Name, s.String()) {
				found = true
				break
			}
		}
		if !found {
			r.Streets = append(r.Streets, Street{Name: s.String(), Actions: []Action{}})
		}
	}
	for i := range r.Streets {
		if strings.EqualFold(r.Streets[i].Name, st.String()) {
			return &r.Streets[i]
		}
	}
	return nil
}

// Append adds an action to the end of the given street, or to the
// postings for Predeal.
func (r *Record) Append(st game.Street, a game.Action) error {
	if st == game.Predeal {
		if !a.Kind.IsPost() {
			return fmt.Errorf("%w: %s is not a posting", ErrInvalid, a.Kind)
		}
		r.Postings = append(r.Postings, FromAction(a))
		return nil
	}
	if st > game.River {
		return fmt.Errorf("%w: cannot act on the %s", ErrInvalid, st)
	}
	s := r.streetEntry(st)
	s.Actions = append(s.Actions, FromAction(a))
	return nil
}

// Clone returns a deep copy.
func (r *Record) Clone() *Record {
	c := *r
	c.Blinds = slices.Clone(r.Blinds)
	c.Seats = slices.Clone(r.Seats)
	c.Postings = slices.Clone(r.Postings)
	c.Winners = slices.Clone(r.Winners)
	c.Streets = make([]Street, len(r.Streets))
	for i, s := range r.Streets {
		s.Actions = slices.Clone(s.Actions)
		c.Streets[i] = s
	}
	return &c
}
